package inflation

import (
	"testing"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/specialistvlad/sweepgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Parallel()
	base := testutil.SampleDocument(t)

	out, err := Apply(base, 0.01, sensitivity.PercentageAdjustment, nil)
	require.NoError(t, err)

	curve := testutil.List(t, out, "inflation_rate")
	require.Len(t, curve, 2)
	assert.InDelta(t, 0.03, curve[0].(map[string]any)["rate"], 1e-12)
	assert.InDelta(t, 0.035, curve[1].(map[string]any)["rate"], 1e-12)
	assert.Equal(t, 2026.0, curve[1].(map[string]any)["year"])

	_, err = Apply(document.MustParse(`{"inflation_rate": [{"year": 2025}]}`), 0.01, sensitivity.PercentageAdjustment, nil)
	assert.ErrorIs(t, err, document.ErrFieldMissing)
}
