// Package inflation shifts every rate of the inflation curve.
package inflation

import (
	"fmt"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the inflation transform.
func (m *Module) Register(r *registry.Registry) {
	r.Register(sensitivity.Inflation, &registry.Adjustment{
		Kinds: []sensitivity.AdjustmentKind{sensitivity.PercentageAdjustment},
		Apply: Apply,
	})
}

// Apply adds value to inflation_rate[].rate.
func Apply(doc document.Document, value float64, kind sensitivity.AdjustmentKind, _ *sensitivity.Settings) (document.Document, error) {
	if kind != sensitivity.PercentageAdjustment {
		return document.Document{}, registry.Unsupported(sensitivity.Inflation, kind)
	}
	return doc.Update(func(curve cty.Value) (cty.Value, error) {
		return document.MapElements(curve, func(_ int, entry cty.Value) (cty.Value, error) {
			raw, _ := document.Attr(entry, "rate")
			rate, ok := document.Float(raw)
			if !ok {
				return cty.NilVal, fmt.Errorf("%w: rate", document.ErrFieldMissing)
			}
			shifted, err := document.Number(rate + value)
			if err != nil {
				return cty.NilVal, err
			}
			return document.WithAttr(entry, "rate", shifted)
		})
	}, "inflation_rate")
}
