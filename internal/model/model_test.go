package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantResult_StatesAreDistinguishable(t *testing.T) {
	t.Parallel()

	v := ScenarioVariant{
		Project:     Project{ProjectID: "42"},
		Scenario:    "capex",
		Combination: sensitivity.Combination{{Component: sensitivity.AllCapex, Value: 0.1}},
	}

	noData := Succeeded(v, nil)
	assert.True(t, noData.NoData())
	assert.False(t, noData.Failed())
	assert.False(t, noData.Computed())

	failed := Failed(v, ReasonCalculationError)
	assert.True(t, failed.Failed())
	assert.False(t, failed.NoData())

	ok := Succeeded(v, &CalculationResult{DevelopmentFee: 1})
	assert.True(t, ok.Computed())
	assert.False(t, ok.NoData())
	assert.Equal(t, v.Combination, ok.Combination)
}

func TestScenarioVariant_HasInput(t *testing.T) {
	t.Parallel()

	assert.False(t, ScenarioVariant{}.HasInput())
	doc := document.MustParse(`{"a": 1}`)
	assert.True(t, ScenarioVariant{EngineInput: &doc}.HasInput())
}

func TestCollection_JSONShape(t *testing.T) {
	t.Parallel()

	c := NewCollection[VariantResult]()
	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"assessments": []}`, string(raw))

	fee := 12.5
	sale := NewDate(2028, time.June, 1)
	c.Add(VariantResult{
		Project:  Project{ProjectID: "7", ProjectName: "Wolf Tail", Phase: 2},
		Scenario: "rates",
		Results:  &CalculationResult{DevelopmentFee: fee, ProjectSaleDate: &sale},
	})
	raw, err = json.Marshal(c)
	require.NoError(t, err)

	var decoded Results
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, 1, decoded.Len())
	got := decoded.Items()[0]
	assert.Equal(t, "Wolf Tail", got.ProjectName)
	require.NotNil(t, got.Results.ProjectSaleDate)
	assert.Equal(t, "2028-06-01", got.Results.ProjectSaleDate.String())
	assert.Empty(t, got.FailureReason)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2030-01-31T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2030-01-31", d.String())

	_, err = ParseDate("31/01/2030")
	assert.Error(t, err)
}
