package results

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/sweepgrid/internal/model"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() *model.Results {
	v := func(id, scenario string) model.ScenarioVariant {
		return model.ScenarioVariant{
			Project:     model.Project{ProjectID: id, ProjectName: "Project " + id, Technology: "wind"},
			Scenario:    scenario,
			Combination: sensitivity.Combination{{Component: sensitivity.DiscountRate, Value: 0.01}},
		}
	}
	irr := 0.09
	return model.NewCollection(
		model.Succeeded(v("1", "rates"), &model.CalculationResult{DevelopmentFee: 5, IRR: &irr}),
		model.Failed(v("2", "rates"), model.ReasonCalculationError),
		model.Succeeded(v("3", "capex"), nil),
		model.Succeeded(v("1", "capex"), &model.CalculationResult{DevelopmentFee: 7}),
	)
}

func TestJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	path := Path(filepath.Join(t.TempDir(), "out"), "q3")
	assert.Equal(t, "q3_results.json", filepath.Base(path))

	want := sampleResults()
	require.NoError(t, WriteJSON(path, want))

	got, err := LoadJSON(path)
	require.NoError(t, err)
	require.Equal(t, want.Len(), got.Len())

	if diff := cmp.Diff(Summarize(want), Summarize(got)); diff != "" {
		t.Errorf("summary mismatch after round trip (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 0.09, *got.Items()[0].Results.IRR, 1e-12)
	assert.True(t, got.Items()[2].NoData())
}

func TestLoadJSON_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read results")
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	got := Summarize(sampleResults())
	want := []ScenarioSummary{
		{Scenario: "rates", Variants: 2, Computed: 1, Failed: 1, Reasons: map[model.FailureReason]int{model.ReasonCalculationError: 1}},
		{Scenario: "capex", Variants: 2, Computed: 1, NoData: 1, Reasons: map[model.FailureReason]int{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, got))
	assert.Contains(t, buf.String(), "SCENARIO")
	assert.Contains(t, buf.String(), "rates: 1 x Calculation error")
}

func TestSQLStore_AppendsRowsPerRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dsn := "sqlite://" + filepath.Join(t.TempDir(), "results.db")
	store, err := OpenSQL(ctx, dsn, "run-1")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Append(ctx, sampleResults().Items()))
	require.NoError(t, store.Append(ctx, nil))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	var fee float64
	row := store.db.QueryRowContext(ctx,
		"SELECT development_fee FROM variant_results WHERE project_id = ? AND scenario = ?", "1", "capex")
	require.NoError(t, row.Scan(&fee))
	assert.InDelta(t, 7.0, fee, 1e-12)
}

func TestOpenSQL_RequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := OpenSQL(context.Background(), " ", "run")
	assert.ErrorIs(t, err, ErrNoDSN)
}

func TestParseDSN(t *testing.T) {
	t.Parallel()

	d, src := parseDSN("postgres://u:p@localhost/db")
	assert.Equal(t, "pgx", d.driver)
	assert.Equal(t, "postgres://u:p@localhost/db", src)
	assert.Equal(t, "$3", d.placeholder(3))

	d, src = parseDSN("sqlite:///tmp/x.db")
	assert.Equal(t, "sqlite", d.driver)
	assert.Equal(t, "/tmp/x.db", src)

	d, src = parseDSN("results.db")
	assert.Equal(t, "sqlite", d.driver)
	assert.Equal(t, "results.db", src)
}
