package app

import (
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/modules/capex"
	"github.com/specialistvlad/sweepgrid/modules/design"
	"github.com/specialistvlad/sweepgrid/modules/discount_rate"
	"github.com/specialistvlad/sweepgrid/modules/energy_yield"
	"github.com/specialistvlad/sweepgrid/modules/financial_close"
	"github.com/specialistvlad/sweepgrid/modules/fx_rates"
	"github.com/specialistvlad/sweepgrid/modules/inflation"
	"github.com/specialistvlad/sweepgrid/modules/lifetime"
	"github.com/specialistvlad/sweepgrid/modules/opex"
	"github.com/specialistvlad/sweepgrid/modules/power_prices"
)

// coreModules is the definitive list of all adjustment modules compiled into
// the sweepgrid binary.
var coreModules = []registry.Module{
	&discount_rate.Module{},
	&power_prices.Module{},
	&capex.Module{},
	&opex.Module{},
	&energy_yield.Module{},
	&fx_rates.Module{},
	&inflation.Module{},
	&lifetime.Module{},
	&financial_close.Module{},
	&design.Module{},
}
