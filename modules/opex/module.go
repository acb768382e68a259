// Package opex applies a risk factor to operating costs.
package opex

import (
	"fmt"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/zclconf/go-cty/cty"
)

var opexCalculators = map[string]bool{
	"GENERIC_OPEX": true,
	"LAND_OPEX":    true,
}

var turbineCostSchedules = []string{"o_and_m_cost_per_turbine", "o_and_m_cost_per_mwh"}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the all_opex transform.
func (m *Module) Register(r *registry.Registry) {
	r.Register(sensitivity.AllOpex, &registry.Adjustment{
		Kinds: []sensitivity.AdjustmentKind{sensitivity.PercentageAdjustment},
		Apply: Apply,
	})
}

// Apply sets risk_factor = 1+value on every item of the opex calculators and
// scales the yearly turbine O&M schedules by the same factor.
func Apply(doc document.Document, value float64, kind sensitivity.AdjustmentKind, _ *sensitivity.Settings) (document.Document, error) {
	if kind != sensitivity.PercentageAdjustment {
		return document.Document{}, registry.Unsupported(sensitivity.AllOpex, kind)
	}
	factor := 1 + value
	riskFactor, err := document.Number(factor)
	if err != nil {
		return document.Document{}, err
	}

	out := doc
	if out.Has("calculators") {
		out, err = out.Update(func(calculators cty.Value) (cty.Value, error) {
			return document.MapElements(calculators, func(_ int, calc cty.Value) (cty.Value, error) {
				return applyRiskFactor(calc, riskFactor)
			})
		}, "calculators")
		if err != nil {
			return document.Document{}, err
		}
	}

	groups, _ := out.Get("turbine_groups")
	members, err := document.Elements(groups)
	if err != nil {
		return document.Document{}, fmt.Errorf("turbine_groups: %w", err)
	}
	if len(members) == 0 {
		return out, nil
	}
	return out.Update(func(groups cty.Value) (cty.Value, error) {
		return document.MapElements(groups, func(_ int, group cty.Value) (cty.Value, error) {
			return scaleTurbineCosts(group, factor)
		})
	}, "turbine_groups")
}

func applyRiskFactor(calc cty.Value, riskFactor cty.Value) (cty.Value, error) {
	name, _ := document.Attr(calc, "calculator")
	if s, ok := document.String(name); !ok || !opexCalculators[s] {
		return calc, nil
	}
	items, ok := document.Attr(calc, "items")
	if !ok || items.IsNull() {
		return calc, nil
	}
	if ty := items.Type(); !ty.IsTupleType() && !ty.IsListType() {
		return calc, nil
	}
	updated, err := document.MapElements(items, func(_ int, item cty.Value) (cty.Value, error) {
		return document.WithAttr(item, "risk_factor", riskFactor)
	})
	if err != nil {
		return cty.NilVal, err
	}
	return document.WithAttr(calc, "items", updated)
}

func scaleTurbineCosts(group cty.Value, factor float64) (cty.Value, error) {
	om, ok := document.Attr(group, "turbine_o_and_m")
	if !ok || !document.IsObject(om) {
		return group, nil
	}
	for _, key := range turbineCostSchedules {
		schedule, ok := document.Attr(om, key)
		if !ok || !document.IsObject(schedule) {
			continue
		}
		scaled, err := document.MapAttributes(schedule, func(_ string, cost cty.Value) (cty.Value, error) {
			return document.Scale(cost, factor)
		})
		if err != nil {
			return cty.NilVal, err
		}
		if om, err = document.WithAttr(om, key, scaled); err != nil {
			return cty.NilVal, err
		}
	}
	return document.WithAttr(group, "turbine_o_and_m", om)
}
