// Package design overrides the physical design figures of a project: land
// area and installed DC and AC capacity. Design options use these transforms
// to derive alternative base inputs.
package design

import (
	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
)

var fields = map[sensitivity.Component]string{
	sensitivity.LandArea:            "project_land_area",
	sensitivity.InstalledDCCapacity: "total_module_rated_power_mw",
	sensitivity.InstalledACCapacity: "installed_ac_capacity",
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers one override transform per design figure.
func (m *Module) Register(r *registry.Registry) {
	for component, field := range fields {
		r.Register(component, &registry.Adjustment{
			Kinds: []sensitivity.AdjustmentKind{sensitivity.OverrideValue},
			Apply: override(component, field),
		})
	}
}

func override(component sensitivity.Component, field string) registry.Func {
	return func(doc document.Document, value float64, kind sensitivity.AdjustmentKind, _ *sensitivity.Settings) (document.Document, error) {
		if kind != sensitivity.OverrideValue {
			return document.Document{}, registry.Unsupported(component, kind)
		}
		return doc.SetNumber(value, field)
	}
}
