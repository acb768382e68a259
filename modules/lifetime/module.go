// Package lifetime extends or shortens the operational lifetime of a project.
package lifetime

import (
	"math"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/zclconf/go-cty/cty"
)

const field = "operational_lifetime_years"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the operational_life_time transform.
func (m *Module) Register(r *registry.Registry) {
	r.Register(sensitivity.OperationalLifetime, &registry.Adjustment{
		Kinds: []sensitivity.AdjustmentKind{sensitivity.GenericAdder},
		Apply: Apply,
	})
}

// Apply adds value years to the project lifetime and to every calculator
// that carries its own lifetime. Results are truncated to whole years.
func Apply(doc document.Document, value float64, kind sensitivity.AdjustmentKind, _ *sensitivity.Settings) (document.Document, error) {
	if kind != sensitivity.GenericAdder {
		return document.Document{}, registry.Unsupported(sensitivity.OperationalLifetime, kind)
	}

	years, err := doc.Number(field)
	if err != nil {
		return document.Document{}, err
	}
	out, err := doc.Set(extend(years, value), field)
	if err != nil {
		return document.Document{}, err
	}

	out, err = out.Update(func(calculators cty.Value) (cty.Value, error) {
		return document.MapElements(calculators, func(_ int, calc cty.Value) (cty.Value, error) {
			return extendEntry(calc, value)
		})
	}, "calculators")
	if err != nil {
		return document.Document{}, err
	}

	return out.Update(func(info cty.Value) (cty.Value, error) {
		losses, ok := document.Attr(info, "energy_loss_calculators")
		if !ok || losses.IsNull() {
			return info, nil
		}
		extended, err := document.MapElements(losses, func(_ int, calc cty.Value) (cty.Value, error) {
			return extendEntry(calc, value)
		})
		if err != nil {
			return cty.NilVal, err
		}
		return document.WithAttr(info, "energy_loss_calculators", extended)
	}, "energy_yield_information")
}

func extendEntry(entry cty.Value, value float64) (cty.Value, error) {
	raw, ok := document.Attr(entry, field)
	if !ok || raw.IsNull() {
		return entry, nil
	}
	years, ok := document.Float(raw)
	if !ok {
		return cty.NilVal, document.ErrFieldType
	}
	return document.WithAttr(entry, field, extend(years, value))
}

func extend(years, value float64) cty.Value {
	return cty.NumberIntVal(int64(math.Trunc(years + value)))
}
