package sensitivity

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

var (
	// ErrMissingSweepValue reports a sweep without usable values.
	ErrMissingSweepValue = errors.New("missing sweep value")
	// ErrDuplicateComponent reports two sweeps targeting the same component
	// inside one scenario.
	ErrDuplicateComponent = errors.New("component swept more than once")
)

// ParameterSweep is one axis of variation.
type ParameterSweep struct {
	Name      string
	Component Component
	Kind      AdjustmentKind
	Values    []float64
}

// ScenarioDefinition is a named set of independent sweeps.
type ScenarioDefinition struct {
	Name   string
	Sweeps []ParameterSweep
}

// CombinationCount returns the size of the scenario's cartesian product.
func (s ScenarioDefinition) CombinationCount() int {
	n := 1
	for _, sweep := range s.Sweeps {
		n *= len(sweep.Values)
	}
	return n
}

// All yields every combination of the scenario in cartesian order: the first
// sweep varies slowest and the last varies fastest. A scenario without sweeps
// yields exactly one empty combination.
func (s ScenarioDefinition) All() iter.Seq[Combination] {
	return func(yield func(Combination) bool) {
		for _, sweep := range s.Sweeps {
			if len(sweep.Values) == 0 {
				return
			}
		}

		idx := make([]int, len(s.Sweeps))
		for {
			combo := make(Combination, len(s.Sweeps))
			for i, sweep := range s.Sweeps {
				combo[i] = Assignment{Component: sweep.Component, Value: sweep.Values[idx[i]]}
			}
			if !yield(combo) {
				return
			}

			// Odometer increment from the last sweep.
			pos := len(idx) - 1
			for pos >= 0 {
				idx[pos]++
				if idx[pos] < len(s.Sweeps[pos].Values) {
					break
				}
				idx[pos] = 0
				pos--
			}
			if pos < 0 {
				return
			}
		}
	}
}

// Combinations materialises All into a slice.
func (s ScenarioDefinition) Combinations() []Combination {
	out := make([]Combination, 0, s.CombinationCount())
	for combo := range s.All() {
		out = append(out, combo)
	}
	return out
}

// Validate checks the structural rules of the scenario that do not depend on
// the adjustment registry.
func (s ScenarioDefinition) Validate() error {
	var errs []error
	seen := make(map[Component]string, len(s.Sweeps))
	for _, sweep := range s.Sweeps {
		if len(sweep.Values) == 0 {
			errs = append(errs, fmt.Errorf("scenario '%s', sweep '%s': %w", s.Name, sweep.Name, ErrMissingSweepValue))
		}
		if prev, ok := seen[sweep.Component]; ok {
			errs = append(errs, fmt.Errorf("scenario '%s': sweeps '%s' and '%s' target '%s': %w", s.Name, prev, sweep.Name, sweep.Component, ErrDuplicateComponent))
			continue
		}
		seen[sweep.Component] = sweep.Name
	}
	return errors.Join(errs...)
}

// Settings is the full declarative input of a sensitivity run.
type Settings struct {
	// Folder is the project-source folder the base inputs are read from.
	Folder string
	// Technologies is the allow-list of project technologies, lower-cased.
	Technologies []string
	// FXCurrency is the currency swept by the generic fx_rates component.
	FXCurrency string
	Scenarios  []ScenarioDefinition
}

// DefaultFXCurrency is used when the settings do not name one.
const DefaultFXCurrency = "GBP"

// Currency returns the configured FX sweep currency.
func (s *Settings) Currency() string {
	if s == nil || s.FXCurrency == "" {
		return DefaultFXCurrency
	}
	return s.FXCurrency
}

// AllowsTechnology reports whether the technology is in the allow-list. An
// empty allow-list admits everything.
func (s *Settings) AllowsTechnology(technology string) bool {
	if s == nil || len(s.Technologies) == 0 {
		return true
	}
	for _, t := range s.Technologies {
		if strings.EqualFold(t, technology) {
			return true
		}
	}
	return false
}

// Scenario looks a scenario up by name.
func (s *Settings) Scenario(name string) (ScenarioDefinition, bool) {
	for _, sc := range s.Scenarios {
		if sc.Name == name {
			return sc, true
		}
	}
	return ScenarioDefinition{}, false
}

// Validate runs the structural checks of every scenario.
func (s *Settings) Validate() error {
	var errs []error
	names := make(map[string]struct{}, len(s.Scenarios))
	for _, sc := range s.Scenarios {
		if _, dup := names[sc.Name]; dup {
			errs = append(errs, fmt.Errorf("scenario '%s' is declared more than once", sc.Name))
		}
		names[sc.Name] = struct{}{}
		if err := sc.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TotalCombinations sums the combination counts of every scenario.
func (s *Settings) TotalCombinations() int {
	total := 0
	for _, sc := range s.Scenarios {
		total += sc.CombinationCount()
	}
	return total
}
