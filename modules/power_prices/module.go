// Package power_prices applies a risk factor to the electricity price curve.
package power_prices

import (
	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the power_prices transform.
func (m *Module) Register(r *registry.Registry) {
	r.Register(sensitivity.PowerPrices, &registry.Adjustment{
		Kinds: []sensitivity.AdjustmentKind{sensitivity.PercentageAdjustment},
		Apply: Apply,
	})
}

// Apply sets electricity_price.risk_factor to 1+value.
func Apply(doc document.Document, value float64, kind sensitivity.AdjustmentKind, _ *sensitivity.Settings) (document.Document, error) {
	if kind != sensitivity.PercentageAdjustment {
		return document.Document{}, registry.Unsupported(sensitivity.PowerPrices, kind)
	}
	factor, err := document.Number(1 + value)
	if err != nil {
		return document.Document{}, err
	}
	return doc.Update(func(price cty.Value) (cty.Value, error) {
		return document.WithAttr(price, "risk_factor", factor)
	}, "electricity_price")
}
