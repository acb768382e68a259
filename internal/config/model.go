package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
)

// Model is the unified, format-agnostic representation of a settings file.
type Model struct {
	Folder       string
	Technologies []string
	FXCurrency   string
	Scenarios    []*Scenario
}

// Scenario is the format-agnostic representation of one scenario.
type Scenario struct {
	Name   string
	Sweeps []*Sweep
}

// Sweep is one parameter sweep as written in the file. A nil value marks an
// entry that was present but empty.
type Sweep struct {
	Name      string
	Component string
	Type      string
	Values    []*float64
}

// Settings normalises the model. Component and type names are lower-cased
// and trimmed but not checked: unknown names are reported by the registry,
// which knows which transforms exist.
func (m *Model) Settings() (*sensitivity.Settings, error) {
	settings := &sensitivity.Settings{
		Folder:     strings.TrimSpace(m.Folder),
		FXCurrency: strings.ToUpper(strings.TrimSpace(m.FXCurrency)),
	}
	for _, tech := range m.Technologies {
		settings.Technologies = append(settings.Technologies, strings.ToLower(strings.TrimSpace(tech)))
	}

	var errs []error
	for _, sc := range m.Scenarios {
		def := sensitivity.ScenarioDefinition{Name: sc.Name}
		for _, sw := range sc.Sweeps {
			values, err := sweepValues(sw.Values)
			if err != nil {
				errs = append(errs, fmt.Errorf("scenario '%s', sweep '%s': %w", sc.Name, sw.Name, err))
			}
			def.Sweeps = append(def.Sweeps, sensitivity.ParameterSweep{
				Name:      sw.Name,
				Component: sensitivity.Component(normalise(sw.Component)),
				Kind:      sensitivity.AdjustmentKind(normalise(sw.Type)),
				Values:    values,
			})
		}
		settings.Scenarios = append(settings.Scenarios, def)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return settings, nil
}

func sweepValues(raw []*float64) ([]float64, error) {
	values := make([]float64, 0, len(raw))
	for i, v := range raw {
		if v == nil {
			return nil, fmt.Errorf("value %d: %w", i, sensitivity.ErrMissingSweepValue)
		}
		values = append(values, *v)
	}
	return values, nil
}

func normalise(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
