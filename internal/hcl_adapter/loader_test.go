package hcl_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/sweepgrid/internal/config"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/specialistvlad/sweepgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ratesHCL = `
folder       = "uk-pipeline"
technologies = ["Solar"]
fx_currency  = "usd"

scenario "rates" {
  sweep "discount" {
    component = "discount_rate"
    type      = "override_value"
    values    = [0.06, 0.08]
  }
  sweep "capex" {
    component = "ALL_CAPEX"
    type      = "percentage_adjustment"
    values    = [-0.1, 0, 0.1]
  }
}
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_SingleFile(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	path := write(t, t.TempDir(), "settings.hcl", ratesHCL)
	settings, err := config.LoadSettings(ctx, NewLoader(), path)
	require.NoError(t, err)

	assert.Equal(t, "uk-pipeline", settings.Folder)
	assert.Equal(t, []string{"solar"}, settings.Technologies)
	assert.Equal(t, "USD", settings.Currency())
	require.Len(t, settings.Scenarios, 1)

	sc := settings.Scenarios[0]
	require.Len(t, sc.Sweeps, 2)
	assert.Equal(t, sensitivity.ParameterSweep{
		Name: "discount", Component: sensitivity.DiscountRate, Kind: sensitivity.OverrideValue, Values: []float64{0.06, 0.08},
	}, sc.Sweeps[0])
	assert.Equal(t, sensitivity.AllCapex, sc.Sweeps[1].Component)
	assert.Equal(t, 6, sc.CombinationCount())
}

func TestLoader_DirectoryMergesInLexicalOrder(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	dir := t.TempDir()
	write(t, dir, "b.hcl", `scenario "second" {}`)
	write(t, dir, "a.hcl", ratesHCL)
	write(t, dir, "notes.txt", "ignored")

	m, err := NewLoader().Load(ctx, dir)
	require.NoError(t, err)
	require.Len(t, m.Scenarios, 2)
	assert.Equal(t, "rates", m.Scenarios[0].Name)
	assert.Equal(t, "second", m.Scenarios[1].Name)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
		is      error
	}{
		{name: "syntax", content: `scenario "x" {`, wantErr: "failed to parse"},
		{name: "unknown attribute", content: `colour = "red"`, wantErr: "failed to decode"},
		{name: "missing component", content: `scenario "x" {
  sweep "y" {
    type = "override_value"
  }
}`, wantErr: "failed to decode"},
		{name: "values not a list", content: `scenario "x" {
  sweep "y" {
    component = "inflation"
    type      = "generic_adder"
    values    = 1
  }
}`, wantErr: "values must be a list"},
		{name: "string value", content: `scenario "x" {
  sweep "y" {
    component = "inflation"
    type      = "generic_adder"
    values    = ["a"]
  }
}`, wantErr: "expected a number"},
		{name: "null value", content: `scenario "x" {
  sweep "y" {
    component = "inflation"
    type      = "generic_adder"
    values    = [0.01, null]
  }
}`, is: sensitivity.ErrMissingSweepValue},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx, _ := testutil.Context(t)
			path := write(t, t.TempDir(), "s.hcl", tc.content)
			_, err := config.LoadSettings(ctx, NewLoader(), path)
			require.Error(t, err)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
			}
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestLoader_MissingValuesFailRegistryValidation(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	path := write(t, t.TempDir(), "s.hcl", `scenario "x" {
  sweep "y" {
    component = "discount_rate"
    type      = "override_value"
  }
}`)
	settings, err := config.LoadSettings(ctx, NewLoader(), path)
	require.NoError(t, err)
	assert.Empty(t, settings.Scenarios[0].Sweeps[0].Values)

	err = registry.New(&testutil.SimpleModule{Component: sensitivity.DiscountRate}).Validate(ctx, settings)
	assert.ErrorIs(t, err, sensitivity.ErrMissingSweepValue)
}

func TestLoader_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	assert.ErrorContains(t, err, "error accessing path")
}
