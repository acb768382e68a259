package discount_rate

import (
	"testing"

	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/specialistvlad/sweepgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Parallel()
	base := testutil.SampleDocument(t)

	shifted, err := Apply(base, 0.01, sensitivity.PercentageAdjustment, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.08, testutil.Number(t, shifted, "discount_rate"), 1e-12)

	overridden, err := Apply(base, 0.05, sensitivity.OverrideValue, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.05, testutil.Number(t, overridden, "discount_rate"))

	assert.Equal(t, 0.07, testutil.Number(t, base, "discount_rate"), "base must stay untouched")

	_, err = Apply(base, 1, sensitivity.GenericAdder, nil)
	assert.ErrorIs(t, err, registry.ErrUnsupportedAdjustmentKind)
}
