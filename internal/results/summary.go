package results

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/specialistvlad/sweepgrid/internal/model"
)

// ScenarioSummary counts outcomes for one scenario.
type ScenarioSummary struct {
	Scenario string
	Variants int
	Computed int
	Failed   int
	NoData   int
	// Reasons counts failed variants by failure reason.
	Reasons map[model.FailureReason]int
}

// Summarize groups results by scenario, in order of first appearance.
func Summarize(results *model.Results) []ScenarioSummary {
	var out []ScenarioSummary
	index := make(map[string]int)
	for _, r := range results.Items() {
		i, ok := index[r.Scenario]
		if !ok {
			i = len(out)
			index[r.Scenario] = i
			out = append(out, ScenarioSummary{Scenario: r.Scenario, Reasons: make(map[model.FailureReason]int)})
		}
		s := &out[i]
		s.Variants++
		switch {
		case r.Computed():
			s.Computed++
		case r.Failed():
			s.Failed++
			s.Reasons[r.FailureReason]++
		default:
			s.NoData++
		}
	}
	return out
}

// WriteSummary prints summaries as an aligned table.
func WriteSummary(w io.Writer, summaries []ScenarioSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tVARIANTS\tCOMPUTED\tFAILED\tNO DATA")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", s.Scenario, s.Variants, s.Computed, s.Failed, s.NoData)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, s := range summaries {
		reasons := make([]model.FailureReason, 0, len(s.Reasons))
		for r := range s.Reasons {
			reasons = append(reasons, r)
		}
		slices.Sort(reasons)
		for _, r := range reasons {
			if _, err := fmt.Fprintf(w, "%s: %d x %s\n", s.Scenario, s.Reasons[r], r); err != nil {
				return err
			}
		}
	}
	return nil
}
