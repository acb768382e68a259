package scenario

import (
	"context"
	"testing"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/model"
	"github.com/specialistvlad/sweepgrid/internal/progress"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/specialistvlad/sweepgrid/internal/testutil"
	"github.com/specialistvlad/sweepgrid/modules/capex"
	"github.com/specialistvlad/sweepgrid/modules/discount_rate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, seq func(func([]model.ScenarioVariant, error) bool)) ([][]model.ScenarioVariant, error) {
	t.Helper()
	var batches [][]model.ScenarioVariant
	for batch, err := range seq {
		if err != nil {
			return batches, err
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

func flatten(batches [][]model.ScenarioVariant) []model.ScenarioVariant {
	var out []model.ScenarioVariant
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}

func rateSettings(values ...float64) *sensitivity.Settings {
	return &sensitivity.Settings{Scenarios: []sensitivity.ScenarioDefinition{{
		Name: "rates",
		Sweeps: []sensitivity.ParameterSweep{
			{Name: "rate", Component: sensitivity.DiscountRate, Kind: sensitivity.OverrideValue, Values: values},
		},
	}}}
}

func TestBatches_CapexAndDiscountRate(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	// --- Arrange ---
	reg := registry.New(&capex.Module{}, &discount_rate.Module{})
	settings := &sensitivity.Settings{Scenarios: []sensitivity.ScenarioDefinition{{
		Name: "capex_and_rate",
		Sweeps: []sensitivity.ParameterSweep{
			{Name: "capex", Component: sensitivity.AllCapex, Kind: sensitivity.PercentageAdjustment, Values: []float64{0.05, -0.05}},
			{Name: "rate", Component: sensitivity.DiscountRate, Kind: sensitivity.OverrideValue, Values: []float64{0.08}},
		},
	}}}
	doc := testutil.SampleDocument(t)
	snapshot := doc
	bases := []model.BaseInput{testutil.Base("p1", &doc)}

	// --- Act ---
	batches, err := collect(t, NewBuilder(reg, settings).Batches(ctx, bases))

	// --- Assert ---
	require.NoError(t, err)
	variants := flatten(batches)
	require.Len(t, variants, 2)

	for i, want := range []float64{0.05, -0.05} {
		v := variants[i]
		assert.Equal(t, "capex_and_rate", v.Scenario)
		assert.Equal(t, "p1", v.ProjectID)
		got, _ := v.Combination.Value(sensitivity.AllCapex)
		assert.Equal(t, want, got)

		require.NotNil(t, v.EngineInput)
		assert.Equal(t, 0.08, testutil.Number(t, *v.EngineInput, "discount_rate"))
		calcs := testutil.List(t, *v.EngineInput, "calculators")
		require.Len(t, calcs, 3+len(capex.Components))
		assert.Equal(t, want, calcs[3].(map[string]any)["cost"])
	}

	assert.True(t, doc.Equal(snapshot), "base document must stay untouched")
	assert.Equal(t, 0.07, testutil.Number(t, *bases[0].EngineInput, "discount_rate"))
	assert.Len(t, testutil.List(t, *bases[0].EngineInput, "calculators"), 3)
}

func TestBatches_SizesAndOrder(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	reg := registry.New(&discount_rate.Module{})
	settings := rateSettings(0.01, 0.02, 0.03)
	doc := testutil.SampleDocument(t)
	bases := testutil.Bases(4, &doc)
	board := progress.NewBoard("", nil)

	batches, err := collect(t, NewBuilder(reg, settings, WithBatchSize(5), WithBoard(board)).Batches(ctx, bases))
	require.NoError(t, err)

	// 12 variants in batches of 5: ceil(12/5) = 3.
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 5)
	assert.Len(t, batches[1], 5)
	assert.Len(t, batches[2], 2)
	assert.Equal(t, 12, board.Snapshot().Built)

	variants := flatten(batches)
	for i, v := range variants {
		wantRate := []float64{0.01, 0.02, 0.03}[i/4]
		assert.Equal(t, bases[i%4].ProjectID, v.ProjectID, "variant %d", i)
		assert.Equal(t, wantRate, testutil.Number(t, *v.EngineInput, "discount_rate"), "variant %d", i)
	}
}

func TestBatches_SiblingDocumentsAreIndependent(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	reg := registry.New(&discount_rate.Module{})
	doc := testutil.SampleDocument(t)
	batches, err := collect(t, NewBuilder(reg, rateSettings(0.1, 0.2)).Batches(ctx, []model.BaseInput{testutil.Base("p1", &doc)}))
	require.NoError(t, err)
	variants := flatten(batches)
	require.Len(t, variants, 2)

	edited, err := variants[0].EngineInput.SetNumber(99, "discount_rate")
	require.NoError(t, err)
	*variants[0].EngineInput = edited

	assert.Equal(t, 0.2, testutil.Number(t, *variants[1].EngineInput, "discount_rate"))
	assert.Equal(t, 0.07, testutil.Number(t, doc, "discount_rate"))
}

func TestBatches_BaseWithoutDocument(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	reg := registry.New(&discount_rate.Module{})
	batches, err := collect(t, NewBuilder(reg, rateSettings(0.1, 0.2)).Batches(ctx, []model.BaseInput{testutil.Base("empty", nil)}))
	require.NoError(t, err)

	variants := flatten(batches)
	require.Len(t, variants, 2)
	for _, v := range variants {
		assert.Nil(t, v.EngineInput)
		assert.Equal(t, "rates", v.Scenario)
		assert.Len(t, v.Combination, 1)
	}
}

func TestBatches_ConfigurationErrorsStopTheBuild(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)
	doc := testutil.SampleDocument(t)
	bases := []model.BaseInput{testutil.Base("p1", &doc)}

	tests := []struct {
		name     string
		settings *sensitivity.Settings
		want     error
	}{
		{
			name: "unknown component",
			settings: &sensitivity.Settings{Scenarios: []sensitivity.ScenarioDefinition{{Name: "s", Sweeps: []sensitivity.ParameterSweep{
				{Name: "sale", Component: sensitivity.SaleDate, Kind: sensitivity.GenericAdder, Values: []float64{1}},
			}}}},
			want: registry.ErrUnknownComponent,
		},
		{
			name: "unsupported kind",
			settings: &sensitivity.Settings{Scenarios: []sensitivity.ScenarioDefinition{{Name: "s", Sweeps: []sensitivity.ParameterSweep{
				{Name: "rate", Component: sensitivity.DiscountRate, Kind: sensitivity.CapexAdderPerMW, Values: []float64{1}},
			}}}},
			want: registry.ErrUnsupportedAdjustmentKind,
		},
		{
			name:     "missing value",
			settings: rateSettings(),
			want:     sensitivity.ErrMissingSweepValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := registry.New(&discount_rate.Module{})
			batches, err := collect(t, NewBuilder(reg, tt.settings).Batches(ctx, bases))
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, batches)
		})
	}
}

func TestBatches_TransformDataErrorIsWrapped(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	reg := registry.New(&capex.Module{})
	settings := &sensitivity.Settings{Scenarios: []sensitivity.ScenarioDefinition{{Name: "capex", Sweeps: []sensitivity.ParameterSweep{
		{Name: "c", Component: sensitivity.AllCapex, Kind: sensitivity.GenericAdder, Values: []float64{1}},
	}}}}
	doc := document.MustParse(`{"discount_rate": 0.1}`)

	_, err := collect(t, NewBuilder(reg, settings).Batches(ctx, []model.BaseInput{testutil.Base("p9", &doc)}))
	require.ErrorIs(t, err, document.ErrFieldMissing)
	assert.Contains(t, err.Error(), "project 'p9'")
	assert.Contains(t, err.Error(), "component 'all_capex'")
}

func TestBatches_RestartableAndStoppable(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	reg := registry.New(&discount_rate.Module{})
	doc := testutil.SampleDocument(t)
	seq := NewBuilder(reg, rateSettings(0.1, 0.2, 0.3), WithBatchSize(1)).Batches(ctx, testutil.Bases(2, &doc))

	first, err := collect(t, seq)
	require.NoError(t, err)
	second, err := collect(t, seq)
	require.NoError(t, err)
	assert.Len(t, first, 6)
	assert.Equal(t, len(first), len(second))

	taken := 0
	for range seq {
		taken++
		if taken == 2 {
			break
		}
	}
	assert.Equal(t, 2, taken)
}

func TestBatches_CancelledContext(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	reg := registry.New(&discount_rate.Module{})
	doc := testutil.SampleDocument(t)
	_, err := collect(t, NewBuilder(reg, rateSettings(0.1)).Batches(ctx, testutil.Bases(1, &doc)))
	assert.ErrorIs(t, err, context.Canceled)
}
