package testutil

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/model"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// EngineInputJSON is a small but complete engine-input document touching
// every field the adjustment modules read or write.
const EngineInputJSON = `{
	"project_name": "Fixture Solar",
	"discount_rate": 0.07,
	"currency": "EUR",
	"currencies": {
		"GBP": {"2025": 0.85, "2026": 0.8},
		"USD": {"2025": 1.1, "2026": 1.2}
	},
	"calculators": [
		{"name": "SITE_OPEX", "calculator": "GENERIC_OPEX", "items": [{"cost": 100, "cost_type": "LUMP_SUM"}], "operational_lifetime_years": 30},
		{"name": "LEASE", "calculator": "LAND_OPEX", "items": [{"cost": 50, "cost_type": "PER_MW"}, {"cost": 5, "cost_type": "LUMP_SUM"}]},
		{"name": "MODULE_CAPEX", "calculator": "GENERIC_CAPEX", "cost": 1000, "cost_type": "LUMP_SUM"}
	],
	"electricity_price": {"curve": "central", "risk_factor": 1},
	"energy_yield_information": {
		"energy_yield_per_year_MWh": 1000,
		"monthly_profile": [0.1, 0.2, 0.7],
		"energy_loss_calculators": [{"name": "DEGRADATION", "calculator": "DEGRADATION", "operational_lifetime_years": 30}]
	},
	"inflation_rate": [{"year": 2025, "rate": 0.02}, {"year": 2026, "rate": 0.025}],
	"operational_lifetime_years": 30,
	"date_of_financial_close": {"year": 2026, "month": 11},
	"turbine_groups": [
		{"name": "T1", "turbine_o_and_m": {"o_and_m_cost_per_turbine": {"2025": 100, "2026": 110}, "o_and_m_cost_per_mwh": {"2025": 2}}}
	],
	"project_land_area": 120,
	"total_module_rated_power_mw": 50,
	"installed_ac_capacity": 40
}`

// SampleDocument parses EngineInputJSON.
func SampleDocument(t *testing.T) document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(EngineInputJSON))
	require.NoError(t, err)
	return doc
}

// Base builds a base input. A nil doc models a project without engine input.
func Base(id string, doc *document.Document) model.BaseInput {
	return model.BaseInput{
		Project: model.Project{
			ProjectID:   id,
			ProjectName: "Project " + id,
			Technology:  "solar",
			Phase:       1,
			Country:     "GB",
			Currency:    "GBP",
		},
		EngineInput: doc,
	}
}

// Bases builds n base inputs sharing doc.
func Bases(n int, doc *document.Document) []model.BaseInput {
	out := make([]model.BaseInput, n)
	for i := range out {
		out[i] = Base(fmt.Sprintf("p%d", i+1), doc)
	}
	return out
}

// ResultBody returns a minimal successful calculation response.
func ResultBody(fee float64) []byte {
	body, _ := json.Marshal(map[string]any{
		"solved_development_fee": fee,
		"development_fee_irr":    0.11,
		"input_components": []map[string]any{
			{"name": "TOTAL_CAPEX", "total": 1000.0},
			{"name": "TOTAL_OPEX", "total": 250.0},
		},
	})
	return body
}

// Number reads a number from doc and fails the test when it is missing.
func Number(t *testing.T, doc document.Document, path ...string) float64 {
	t.Helper()
	f, err := doc.Number(path...)
	require.NoError(t, err)
	return f
}

// NamedDocument returns the sample document with project_name set to name.
// FakeCalculator tells calls apart by that name.
func NamedDocument(t *testing.T, name string) *document.Document {
	t.Helper()
	doc, err := SampleDocument(t).Set(cty.StringVal(name), "project_name")
	require.NoError(t, err)
	return &doc
}

// Decode converts doc into plain Go values for assertions.
func Decode(t *testing.T, doc document.Document) map[string]any {
	t.Helper()
	raw, err := doc.MarshalJSON()
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// List decodes the sequence at key of doc.
func List(t *testing.T, doc document.Document, key string) []any {
	t.Helper()
	list, ok := Decode(t, doc)[key].([]any)
	require.True(t, ok, "'%s' is not a list", key)
	return list
}
