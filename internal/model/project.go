package model

import (
	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
)

// Project carries the identity fields shared by every record.
type Project struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	Technology  string `json:"technology"`
	Phase       int    `json:"phase"`
	Country     string `json:"country"`
	Currency    string `json:"currency"`
}

// BaseInput is a project with its engine-input document. EngineInput is nil
// when the data source could not produce one.
type BaseInput struct {
	Project
	EngineInput *document.Document `json:"engine_input_json"`
}

// ScenarioVariant is a base input transformed by one combination.
type ScenarioVariant struct {
	Project
	Scenario    string                  `json:"scenario"`
	Combination sensitivity.Combination `json:"combination"`
	EngineInput *document.Document      `json:"engine_input_json"`
}

// HasInput reports whether the variant has anything to calculate.
func (v ScenarioVariant) HasInput() bool {
	return v.EngineInput != nil && !v.EngineInput.IsZero()
}

// LogAttrs returns the identity of the variant as slog key/value pairs.
func (v ScenarioVariant) LogAttrs() []any {
	return []any{
		"project_id", v.ProjectID,
		"scenario", v.Scenario,
		"combination", v.Combination.String(),
	}
}

// VariantResult is the outcome of one variant.
type VariantResult struct {
	Project
	Scenario      string                  `json:"scenario"`
	Combination   sensitivity.Combination `json:"combination"`
	Results       *CalculationResult      `json:"results"`
	FailureReason FailureReason           `json:"reason_for_no_assessment,omitempty"`
}

// Computed reports whether the variant produced a calculation result.
func (r VariantResult) Computed() bool { return r.Results != nil }

// Failed reports whether the variant carries a failure reason.
func (r VariantResult) Failed() bool { return r.FailureReason != "" }

// NoData reports whether the variant had nothing to compute.
func (r VariantResult) NoData() bool { return r.Results == nil && r.FailureReason == "" }

// Succeeded builds the result of a computed variant. A nil result marks a
// variant without input.
func Succeeded(v ScenarioVariant, results *CalculationResult) VariantResult {
	return VariantResult{
		Project:     v.Project,
		Scenario:    v.Scenario,
		Combination: v.Combination,
		Results:     results,
	}
}

// Failed builds the result of a variant that could not be computed.
func Failed(v ScenarioVariant, reason FailureReason) VariantResult {
	return VariantResult{
		Project:       v.Project,
		Scenario:      v.Scenario,
		Combination:   v.Combination,
		FailureReason: reason,
	}
}
