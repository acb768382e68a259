// Package capex adds capital expenditure lines to the calculator list.
//
// A percentage adjustment appends one investor contingency per capex
// component, each charging the sweep value as a share of that component. The
// two adders append a single balance-of-plant line, either as a lump sum or
// per MW.
package capex

import (
	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/zclconf/go-cty/cty"
)

// Components lists the capex components a percentage adjustment applies to.
var Components = []string{
	"ADDITIONAL_CIVIL_WORKS",
	"AUGMENTATION_CAPEX",
	"BOP_CAPEX",
	"CABLES",
	"COMPENSATION_CAPEX",
	"CONSTRUCTION_COMPOUND",
	"CONSTRUCTION_INSURANCE_CAPEX",
	"CONSTRUCTION_MANAGEMENT",
	"CONSTRUCTION_INSURANCE",
	"EXTERNAL_CONSULTANCY",
	"HARDSTANDINGS",
	"INTERCONNECTION",
	"INTERNAL",
	"INVERTERS_EQUIPMENT",
	"INVERTERS",
	"LAND_CAPEX",
	"LOCAL_TAX_CAPEX",
	"MODULE_CAPEX",
	"GRID_CAPEX",
	"OTHER_CAPEX",
	"PCS_CAPEX",
	"PROJECT_SPECIFIC_CAPEX",
	"SUBSTATION",
	"CONTINGENCY",
	"ROADS",
	"SITE_COMMUNICATIONS",
	"SOLAR_FOUNDATIONS",
	"STORAGE_LAND_CAPEX",
	"BATTERY_CAPEX",
	"TRACKS",
	"SITE_CLEARANCE",
	"TURBINE_CAPEX",
	"WIDER_NETWORK_UPGRADE",
	"TURBINE_FOUNDATIONS",
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the all_capex transform.
func (m *Module) Register(r *registry.Registry) {
	r.Register(sensitivity.AllCapex, &registry.Adjustment{
		Kinds: []sensitivity.AdjustmentKind{
			sensitivity.PercentageAdjustment,
			sensitivity.GenericAdder,
			sensitivity.CapexAdderPerMW,
		},
		Apply: Apply,
	})
}

// Apply appends the capex lines for value.
func Apply(doc document.Document, value float64, kind sensitivity.AdjustmentKind, _ *sensitivity.Settings) (document.Document, error) {
	var lines []cty.Value
	switch kind {
	case sensitivity.PercentageAdjustment:
		lines = make([]cty.Value, 0, len(Components))
		for _, component := range Components {
			lines = append(lines, document.Object(map[string]any{
				"name":                          "INVESTOR_CONTINGENCY",
				"calculator":                    "GENERIC_CAPEX",
				"cost":                          value,
				"cost_type":                     "PERCENTAGE_OF_COMPONENT",
				"component_to_apply_percentage": component,
				"is_contingency":                true,
			}))
		}
	case sensitivity.GenericAdder:
		lines = []cty.Value{adder(value, "LUMP_SUM")}
	case sensitivity.CapexAdderPerMW:
		lines = []cty.Value{adder(value, "PER_MW")}
	default:
		return document.Document{}, registry.Unsupported(sensitivity.AllCapex, kind)
	}

	return doc.Update(func(calculators cty.Value) (cty.Value, error) {
		return document.Append(calculators, lines...)
	}, "calculators")
}

func adder(value float64, costType string) cty.Value {
	return document.Object(map[string]any{
		"name":       "BOP_CAPEX",
		"calculator": "GENERIC_CAPEX",
		"cost":       value,
		"cost_type":  costType,
	})
}
