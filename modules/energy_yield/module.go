// Package energy_yield adjusts the expected annual energy yield, either by
// adding a line-loss calculator or by overriding the yearly figure.
package energy_yield

import (
	"fmt"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/zclconf/go-cty/cty"
)

const section = "energy_yield_information"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the energy_yield transform.
func (m *Module) Register(r *registry.Registry) {
	r.Register(sensitivity.EnergyYield, &registry.Adjustment{
		Kinds: []sensitivity.AdjustmentKind{sensitivity.PercentageAdjustment, sensitivity.OverrideValue},
		Apply: Apply,
	})
}

// Apply adjusts energy_yield_information.
func Apply(doc document.Document, value float64, kind sensitivity.AdjustmentKind, _ *sensitivity.Settings) (document.Document, error) {
	switch kind {
	case sensitivity.PercentageAdjustment:
		loss := document.Object(map[string]any{
			"name":       "GRID_LINE_LOSSES",
			"calculator": "LINE LOSS",
			"items": cty.TupleVal([]cty.Value{document.Object(map[string]any{
				"cost":       1 + value,
				"cost_type":  "PERCENTAGE",
				"start_year": 1,
			})}),
		})
		return doc.Update(func(info cty.Value) (cty.Value, error) {
			calculators, _ := document.Attr(info, "energy_loss_calculators")
			appended, err := document.Append(calculators, loss)
			if err != nil {
				return cty.NilVal, err
			}
			return document.WithAttr(info, "energy_loss_calculators", appended)
		}, section)
	case sensitivity.OverrideValue:
		if !doc.Has(section) {
			return document.Document{}, fmt.Errorf("%w: %s", document.ErrFieldMissing, section)
		}
		out, err := doc.Delete(section, "monthly_profile")
		if err != nil {
			return document.Document{}, err
		}
		return out.SetNumber(value, section, "energy_yield_per_year_MWh")
	}
	return document.Document{}, registry.Unsupported(sensitivity.EnergyYield, kind)
}
