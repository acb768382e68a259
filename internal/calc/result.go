package calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/sweepgrid/internal/model"
	"github.com/tidwall/gjson"
)

// ErrMalformedResult is returned when a successful response lacks the
// required fields. It is permanent: retrying would return the same body.
var ErrMalformedResult = errors.New("malformed calculation result")

// componentTotal looks up the total of a named input component.
func componentTotal(name string) string {
	return `input_components.#(name=="` + name + `").total`
}

// ParseResult extracts the calculation result from a response body.
func ParseResult(body []byte) (*model.CalculationResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrMalformedResult)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: response is not an object", ErrMalformedResult)
	}

	feeField := doc.Get("solved_development_fee")
	if !feeField.Exists() || feeField.Type == gjson.Null {
		return nil, fmt.Errorf("%w: solved_development_fee is missing", ErrMalformedResult)
	}
	fee := optFloat(feeField)
	if fee == nil {
		return nil, fmt.Errorf("%w: solved_development_fee '%s' is not a number", ErrMalformedResult, feeField.Raw)
	}

	return &model.CalculationResult{
		DevelopmentFee:       *fee,
		TotalCapex:           optFloat(doc.Get(componentTotal("TOTAL_CAPEX"))),
		TotalMerchantRevenue: optFloat(doc.Get(componentTotal("MERCHANT_REVENUE"))),
		IRR:                  optFloat(doc.Get("development_fee_irr")),
		BEP:                  optFloat(doc.Get("bep")),
		DiscountRate:         optFloat(doc.Get("target_project_discount_rate")),
		InstalledCapacity:    optFloat(doc.Get("rated_power_mw")),
		ProjectSaleDate:      optDate(doc.Get("project_sale_date")),
		TotalOpex:            optFloat(doc.Get(componentTotal("TOTAL_OPEX"))),
		FID:                  optDate(doc.Get("financial_close")),
		COD:                  optDate(doc.Get("commercial_operation")),
		EnergyYield:          optFloat(doc.Get("first_year_yield_mwh")),
		Lifetime:             optInt(doc.Get("operational_lifetime")),
	}, nil
}

func optFloat(r gjson.Result) *float64 {
	switch r.Type {
	case gjson.Number:
		f := r.Float()
		return &f
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}

func optInt(r gjson.Result) *int {
	f := optFloat(r)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}

func optDate(r gjson.Result) *model.Date {
	if r.Type != gjson.String {
		return nil
	}
	d, err := model.ParseDate(r.Str)
	if err != nil {
		return nil
	}
	return &d
}
