package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const sample = `{
	"discount_rate": 0.07,
	"currency": "EUR",
	"calculators": [{"name": "BOP_CAPEX", "cost": 10}],
	"energy_yield_information": {"monthly_profile": [1, 2], "energy_loss_calculators": null},
	"date_of_financial_close": {"year": 2027, "month": 3}
}`

func TestParse_RejectsNonObjects(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`[1, 2, 3]`))
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = Parse([]byte(`{"broken": `))
	assert.Error(t, err)
}

func TestParse_KeysMustBeNFC(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("{\"k\u0301\": 1}"))
	assert.ErrorContains(t, err, "decode document")

	doc, err := Parse([]byte(`{"energy_yield_per_year_MWh": 1}`))
	require.NoError(t, err)
	assert.True(t, doc.Has("energy_yield_per_year_MWh"))
}

func TestGetAndNumber(t *testing.T) {
	t.Parallel()

	doc := MustParse(sample)

	rate, err := doc.Number("discount_rate")
	require.NoError(t, err)
	assert.InDelta(t, 0.07, rate, 1e-12)

	year, err := doc.Number("date_of_financial_close", "year")
	require.NoError(t, err)
	assert.Equal(t, 2027.0, year)

	_, err = doc.Number("missing")
	assert.ErrorIs(t, err, ErrFieldMissing)

	_, err = doc.Number("currency")
	assert.ErrorIs(t, err, ErrFieldType)

	assert.True(t, doc.Has("energy_yield_information", "monthly_profile"))
	assert.False(t, doc.Has("energy_yield_information", "energy_loss_calculators"), "null counts as absent")
}

func TestSet_LeavesReceiverUntouched(t *testing.T) {
	t.Parallel()

	base := MustParse(sample)
	before, err := json.Marshal(base)
	require.NoError(t, err)

	changed, err := base.SetNumber(0.09, "discount_rate")
	require.NoError(t, err)
	changed, err = changed.Set(cty.StringVal("x"), "new", "nested", "leaf")
	require.NoError(t, err)

	after, err := json.Marshal(base)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))

	rate, err := changed.Number("discount_rate")
	require.NoError(t, err)
	assert.InDelta(t, 0.09, rate, 1e-12)
	leaf, ok := changed.Get("new", "nested", "leaf")
	require.True(t, ok)
	assert.Equal(t, "x", leaf.AsString())
	assert.False(t, base.Equal(changed))
}

func TestSet_ThroughScalarFails(t *testing.T) {
	t.Parallel()

	_, err := MustParse(sample).Set(cty.True, "currency", "code")
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	doc := MustParse(sample)
	out, err := doc.Delete("energy_yield_information", "monthly_profile")
	require.NoError(t, err)
	assert.False(t, out.Has("energy_yield_information", "monthly_profile"))
	assert.True(t, doc.Has("energy_yield_information", "monthly_profile"))

	same, err := doc.Delete("energy_yield_information", "not_there")
	require.NoError(t, err)
	assert.True(t, same.Equal(doc))
}

func TestUpdateAndCollections(t *testing.T) {
	t.Parallel()

	doc := MustParse(sample)
	out, err := doc.Update(func(v cty.Value) (cty.Value, error) {
		return Append(v, Object(map[string]any{"name": "EXTRA", "cost": 2.5, "tags": cty.EmptyTupleVal}))
	}, "calculators")
	require.NoError(t, err)

	calcs, ok := out.Get("calculators")
	require.True(t, ok)
	els, err := Elements(calcs)
	require.NoError(t, err)
	require.Len(t, els, 2)
	name, _ := String(els[1].GetAttr("name"))
	assert.Equal(t, "EXTRA", name)

	orig, _ := doc.Get("calculators")
	origEls, err := Elements(orig)
	require.NoError(t, err)
	assert.Len(t, origEls, 1)

	appended, err := Append(cty.NullVal(cty.DynamicPseudoType), cty.NumberIntVal(1))
	require.NoError(t, err)
	assert.Equal(t, 1, appended.LengthInt())

	_, err = Elements(cty.StringVal("nope"))
	assert.ErrorIs(t, err, ErrFieldType)
}

func TestMapAttributes_Scale(t *testing.T) {
	t.Parallel()

	rates := MustParse(`{"2026": 1.2, "2027": 1.5}`).Value()
	scaled, err := MapAttributes(rates, func(_ string, v cty.Value) (cty.Value, error) {
		return Scale(v, 2)
	})
	require.NoError(t, err)

	f, ok := Float(scaled.GetAttr("2027"))
	require.True(t, ok)
	assert.InDelta(t, 3.0, f, 1e-12)
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(sample), &doc))

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, sample, string(raw))

	var zero Document
	raw, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestNumber_RejectsNonFinite(t *testing.T) {
	t.Parallel()

	_, err := MustParse(sample).SetNumber(1/zero(), "discount_rate")
	assert.ErrorIs(t, err, ErrFieldType)
}

func zero() float64 { return 0 }
