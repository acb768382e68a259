package config

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/tidwall/gjson"
)

// JSONLoader reads the JSON settings format:
//
//	{"folder": "...", "technologies": ["solar"], "fx_currency": "USD",
//	 "sensitivities": {"<scenario>": {"element_wise_parameter_sweep": {
//	   "<sweep>": {"component": "...", "type": "...", "values": [...]}}}}}
//
// Scenario and sweep order follows key order in the file.
type JSONLoader struct{}

// NewJSONLoader creates a new JSON settings loader.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

// Load implements Loader.
func (l *JSONLoader) Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("settings '%s' is not valid JSON", path)
	}
	root := gjson.ParseBytes(data)

	m := &Model{
		Folder:     root.Get("folder").String(),
		FXCurrency: root.Get("fx_currency").String(),
	}
	for _, tech := range root.Get("technologies").Array() {
		m.Technologies = append(m.Technologies, tech.String())
	}

	var decodeErr error
	root.Get("sensitivities").ForEach(func(name, body gjson.Result) bool {
		sc := &Scenario{Name: name.String()}
		body.Get("element_wise_parameter_sweep").ForEach(func(sweepName, sweep gjson.Result) bool {
			values, err := jsonValues(sweep.Get("values"))
			if err != nil {
				decodeErr = fmt.Errorf("scenario '%s', sweep '%s': %w", sc.Name, sweepName.String(), err)
				return false
			}
			sc.Sweeps = append(sc.Sweeps, &Sweep{
				Name:      sweepName.String(),
				Component: sweep.Get("component").String(),
				Type:      sweep.Get("type").String(),
				Values:    values,
			})
			return true
		})
		m.Scenarios = append(m.Scenarios, sc)
		return decodeErr == nil
	})
	if decodeErr != nil {
		return nil, fmt.Errorf("settings '%s': %w", path, decodeErr)
	}

	logger.Debug("JSON settings loaded.", "path", path, "scenarios", len(m.Scenarios))
	return m, nil
}

func jsonValues(r gjson.Result) ([]*float64, error) {
	if !r.Exists() || r.Type == gjson.Null {
		return nil, nil
	}
	if !r.IsArray() {
		return nil, fmt.Errorf("values must be a list, got %s", r.Type)
	}
	var out []*float64
	for i, v := range r.Array() {
		switch v.Type {
		case gjson.Null:
			out = append(out, nil)
		case gjson.Number:
			f := v.Float()
			out = append(out, &f)
		default:
			return nil, fmt.Errorf("value %d: expected a number, got %s", i, v.Type)
		}
	}
	return out, nil
}
