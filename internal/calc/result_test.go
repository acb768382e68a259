package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResult(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"solved_development_fee": "1250000.5",
		"development_fee_irr": 0.12,
		"bep": 45.2,
		"target_project_discount_rate": 0.08,
		"rated_power_mw": 49.9,
		"project_sale_date": "2028-03-31",
		"financial_close": "2027-01-01T00:00:00",
		"commercial_operation": "2028-06-30",
		"first_year_yield_mwh": 98000,
		"operational_lifetime": 35,
		"input_components": [
			{"name": "TOTAL_CAPEX", "total": 42000000},
			{"name": "MERCHANT_REVENUE", "total": 7100000},
			{"name": "TOTAL_OPEX", "total": 900000}
		]
	}`)

	res, err := ParseResult(body)
	require.NoError(t, err)

	assert.Equal(t, 1250000.5, res.DevelopmentFee)
	require.NotNil(t, res.TotalCapex)
	assert.Equal(t, 42000000.0, *res.TotalCapex)
	assert.Equal(t, 7100000.0, *res.TotalMerchantRevenue)
	assert.Equal(t, 900000.0, *res.TotalOpex)
	assert.Equal(t, 0.12, *res.IRR)
	assert.Equal(t, 45.2, *res.BEP)
	assert.Equal(t, 0.08, *res.DiscountRate)
	assert.Equal(t, 49.9, *res.InstalledCapacity)
	assert.Equal(t, "2028-03-31", res.ProjectSaleDate.String())
	assert.Equal(t, "2027-01-01", res.FID.String())
	assert.Equal(t, "2028-06-30", res.COD.String())
	assert.Equal(t, 98000.0, *res.EnergyYield)
	assert.Equal(t, 35, *res.Lifetime)
}

func TestParseResult_OptionalFieldsMayBeAbsent(t *testing.T) {
	t.Parallel()

	res, err := ParseResult([]byte(`{"solved_development_fee": 10, "bep": null}`))
	require.NoError(t, err)
	assert.Equal(t, 10.0, res.DevelopmentFee)
	assert.Nil(t, res.TotalCapex)
	assert.Nil(t, res.BEP)
	assert.Nil(t, res.ProjectSaleDate)
	assert.Nil(t, res.Lifetime)
}

func TestParseResult_Malformed(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"not json":       `<html>`,
		"not an object":  `[1, 2]`,
		"fee missing":    `{"bep": 1}`,
		"fee null":       `{"solved_development_fee": null}`,
		"fee not number": `{"solved_development_fee": "n/a"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseResult([]byte(body))
			assert.ErrorIs(t, err, ErrMalformedResult)
		})
	}
}
