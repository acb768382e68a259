package capex

import (
	"testing"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/specialistvlad/sweepgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calculators(t *testing.T, doc document.Document) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, c := range testutil.List(t, doc, "calculators") {
		out = append(out, c.(map[string]any))
	}
	return out
}

func TestApply_PercentageAddsContingencyPerComponent(t *testing.T) {
	t.Parallel()
	base := testutil.SampleDocument(t)

	out, err := Apply(base, 0.05, sensitivity.PercentageAdjustment, nil)
	require.NoError(t, err)

	calcs := calculators(t, out)
	require.Len(t, calcs, 3+len(Components))
	added := calcs[3:]
	for i, c := range added {
		assert.Equal(t, "INVESTOR_CONTINGENCY", c["name"])
		assert.Equal(t, "GENERIC_CAPEX", c["calculator"])
		assert.Equal(t, 0.05, c["cost"])
		assert.Equal(t, "PERCENTAGE_OF_COMPONENT", c["cost_type"])
		assert.Equal(t, Components[i], c["component_to_apply_percentage"])
		assert.Equal(t, true, c["is_contingency"])
	}
	assert.Len(t, calculators(t, base), 3, "base must stay untouched")
}

func TestApply_Adders(t *testing.T) {
	t.Parallel()
	base := testutil.SampleDocument(t)

	tests := []struct {
		kind     sensitivity.AdjustmentKind
		costType string
	}{
		{sensitivity.GenericAdder, "LUMP_SUM"},
		{sensitivity.CapexAdderPerMW, "PER_MW"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			out, err := Apply(base, 250000, tt.kind, nil)
			require.NoError(t, err)
			calcs := calculators(t, out)
			require.Len(t, calcs, 4)
			assert.Equal(t, map[string]any{
				"name":       "BOP_CAPEX",
				"calculator": "GENERIC_CAPEX",
				"cost":       250000.0,
				"cost_type":  tt.costType,
			}, calcs[3])
		})
	}
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	_, err := Apply(testutil.SampleDocument(t), 0.1, sensitivity.OverrideValue, nil)
	assert.ErrorIs(t, err, registry.ErrUnsupportedAdjustmentKind)

	_, err = Apply(document.MustParse(`{"discount_rate": 0.1}`), 0.1, sensitivity.GenericAdder, nil)
	assert.ErrorIs(t, err, document.ErrFieldMissing)
}
