// Package discount_rate shifts or overrides the project discount rate.
package discount_rate

import (
	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
)

const field = "discount_rate"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the discount rate transform.
func (m *Module) Register(r *registry.Registry) {
	r.Register(sensitivity.DiscountRate, &registry.Adjustment{
		Kinds: []sensitivity.AdjustmentKind{sensitivity.PercentageAdjustment, sensitivity.OverrideValue},
		Apply: Apply,
	})
}

// Apply adds value to the discount rate, or replaces it.
func Apply(doc document.Document, value float64, kind sensitivity.AdjustmentKind, _ *sensitivity.Settings) (document.Document, error) {
	switch kind {
	case sensitivity.PercentageAdjustment:
		rate, err := doc.Number(field)
		if err != nil {
			return document.Document{}, err
		}
		return doc.SetNumber(rate+value, field)
	case sensitivity.OverrideValue:
		return doc.SetNumber(value, field)
	}
	return document.Document{}, registry.Unsupported(sensitivity.DiscountRate, kind)
}
