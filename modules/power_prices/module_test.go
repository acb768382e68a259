package power_prices

import (
	"testing"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/specialistvlad/sweepgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Parallel()
	base := testutil.SampleDocument(t)

	out, err := Apply(base, -0.15, sensitivity.PercentageAdjustment, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.85, testutil.Number(t, out, "electricity_price", "risk_factor"), 1e-12)

	curve, _ := out.Get("electricity_price", "curve")
	s, _ := document.String(curve)
	assert.Equal(t, "central", s)

	_, err = Apply(base, 1, sensitivity.OverrideValue, nil)
	assert.ErrorIs(t, err, registry.ErrUnsupportedAdjustmentKind)

	_, err = Apply(document.MustParse(`{}`), 0.1, sensitivity.PercentageAdjustment, nil)
	assert.ErrorIs(t, err, document.ErrFieldMissing)
}
