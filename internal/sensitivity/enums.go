package sensitivity

import (
	"fmt"
	"strings"
)

// Component identifies a perturbable axis of the project model.
type Component string

const (
	DiscountRate        Component = "discount_rate"
	PowerPrices         Component = "power_prices"
	AllCapex            Component = "all_capex"
	AllOpex             Component = "all_opex"
	EnergyYield         Component = "energy_yield"
	GBPFXRates          Component = "gbp_fx_rates"
	FXRates             Component = "fx_rates"
	Inflation           Component = "inflation"
	OperationalLifetime Component = "operational_life_time"
	SaleDate            Component = "sale_date"
	FinancialCloseDate  Component = "financial_close_date"
	LandArea            Component = "land_area"
	InstalledDCCapacity Component = "installed_dc_capacity"
	InstalledACCapacity Component = "installed_ac_capacity"
)

var knownComponents = []Component{
	DiscountRate,
	PowerPrices,
	AllCapex,
	AllOpex,
	EnergyYield,
	GBPFXRates,
	FXRates,
	Inflation,
	OperationalLifetime,
	SaleDate,
	FinancialCloseDate,
	LandArea,
	InstalledDCCapacity,
	InstalledACCapacity,
}

// Components returns every declared component in a stable order.
func Components() []Component {
	out := make([]Component, len(knownComponents))
	copy(out, knownComponents)
	return out
}

// ParseComponent converts a configuration string into a Component.
func ParseComponent(s string) (Component, error) {
	c := Component(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range knownComponents {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown component '%s'", s)
}

func (c Component) String() string { return string(c) }

// AdjustmentKind selects how a sweep value is applied to a component.
type AdjustmentKind string

const (
	PercentageAdjustment AdjustmentKind = "percentage_adjustment"
	GenericAdder         AdjustmentKind = "generic_adder"
	CapexAdderPerMW      AdjustmentKind = "capex_adder_per_mw"
	OverrideValue        AdjustmentKind = "override_value"
)

var knownKinds = []AdjustmentKind{
	PercentageAdjustment,
	GenericAdder,
	CapexAdderPerMW,
	OverrideValue,
}

// ParseAdjustmentKind converts a configuration string into an AdjustmentKind.
func ParseAdjustmentKind(s string) (AdjustmentKind, error) {
	k := AdjustmentKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range knownKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown adjustment type '%s'", s)
}

func (k AdjustmentKind) String() string { return string(k) }
