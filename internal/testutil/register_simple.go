package testutil

import (
	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
)

// SimpleModule is a test helper for easily creating a mock module that
// registers a single adjustment.
type SimpleModule struct {
	Component sensitivity.Component
	Kinds     []sensitivity.AdjustmentKind
	Apply     registry.Func
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	kinds := m.Kinds
	if len(kinds) == 0 {
		kinds = []sensitivity.AdjustmentKind{sensitivity.OverrideValue}
	}
	apply := m.Apply
	if apply == nil {
		apply = SetField(string(m.Component))
	}
	r.Register(m.Component, &registry.Adjustment{Kinds: kinds, Apply: apply})
}

// SetField returns a transform that stores the sweep value at field.
func SetField(field string) registry.Func {
	return func(doc document.Document, value float64, _ sensitivity.AdjustmentKind, _ *sensitivity.Settings) (document.Document, error) {
		return doc.SetNumber(value, field)
	}
}
