package opex

import (
	"testing"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/specialistvlad/sweepgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_SetsRiskFactorOnOpexItems(t *testing.T) {
	t.Parallel()
	base := testutil.SampleDocument(t)

	out, err := Apply(base, 0.1, sensitivity.PercentageAdjustment, nil)
	require.NoError(t, err)

	calcs := testutil.List(t, out, "calculators")
	for _, i := range []int{0, 1} {
		for _, item := range calcs[i].(map[string]any)["items"].([]any) {
			assert.InDelta(t, 1.1, item.(map[string]any)["risk_factor"], 1e-12)
		}
	}
	capex := calcs[2].(map[string]any)
	assert.NotContains(t, capex, "risk_factor")

	groups := testutil.List(t, out, "turbine_groups")
	om := groups[0].(map[string]any)["turbine_o_and_m"].(map[string]any)
	perTurbine := om["o_and_m_cost_per_turbine"].(map[string]any)
	assert.InDelta(t, 110.0, perTurbine["2025"], 1e-9)
	assert.InDelta(t, 121.0, perTurbine["2026"], 1e-9)
	assert.InDelta(t, 2.2, om["o_and_m_cost_per_mwh"].(map[string]any)["2025"], 1e-9)

	baseGroups := testutil.List(t, base, "turbine_groups")
	baseOM := baseGroups[0].(map[string]any)["turbine_o_and_m"].(map[string]any)
	assert.Equal(t, 100.0, baseOM["o_and_m_cost_per_turbine"].(map[string]any)["2025"])
}

func TestApply_WithoutTurbines(t *testing.T) {
	t.Parallel()

	doc := document.MustParse(`{"calculators": [{"calculator": "LAND_OPEX", "items": [{"cost": 1}]}], "turbine_groups": []}`)
	out, err := Apply(doc, -0.2, sensitivity.PercentageAdjustment, nil)
	require.NoError(t, err)
	item := testutil.List(t, out, "calculators")[0].(map[string]any)["items"].([]any)[0].(map[string]any)
	assert.InDelta(t, 0.8, item["risk_factor"], 1e-12)
}

func TestApply_RejectsNonListCalculators(t *testing.T) {
	t.Parallel()

	_, err := Apply(document.MustParse(`{"calculators": {"a": 1}}`), 0.1, sensitivity.PercentageAdjustment, nil)
	assert.ErrorIs(t, err, document.ErrFieldType)
}
