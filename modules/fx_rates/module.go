// Package fx_rates stresses foreign exchange rates.
//
// The engine input keeps, per currency, a map of year to the rate from the
// project's base currency. Stressing currency S by a factor f scales S's
// rates, rewrites the base currency's entry as the inverse of S, and
// re-expresses every other currency through S.
package fx_rates

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/zclconf/go-cty/cty"
)

// ErrZeroRate is returned when a stressed rate would be inverted from zero.
var ErrZeroRate = errors.New("fx rate is zero")

// Module implements the registry.Module interface for this package. It
// registers gbp_fx_rates, which always stresses GBP, and fx_rates, which
// stresses the currency named in the settings.
type Module struct{}

// Register registers both FX transforms.
func (m *Module) Register(r *registry.Registry) {
	r.Register(sensitivity.GBPFXRates, &registry.Adjustment{
		Kinds: []sensitivity.AdjustmentKind{sensitivity.PercentageAdjustment},
		Apply: stress(sensitivity.GBPFXRates, func(*sensitivity.Settings) string { return "GBP" }),
	})
	r.Register(sensitivity.FXRates, &registry.Adjustment{
		Kinds: []sensitivity.AdjustmentKind{sensitivity.PercentageAdjustment},
		Apply: stress(sensitivity.FXRates, (*sensitivity.Settings).Currency),
	})
}

func stress(component sensitivity.Component, currencyOf func(*sensitivity.Settings) string) registry.Func {
	return func(doc document.Document, value float64, kind sensitivity.AdjustmentKind, settings *sensitivity.Settings) (document.Document, error) {
		if kind != sensitivity.PercentageAdjustment {
			return document.Document{}, registry.Unsupported(component, kind)
		}
		return Stress(doc, currencyOf(settings), 1+value)
	}
}

// Stress scales the rates of currency by factor and rebases the other
// currencies on the result. Missing rates for currency are a data error,
// unless currency is the document's own currency, in which case the document
// is returned unchanged.
func Stress(doc document.Document, currency string, factor float64) (document.Document, error) {
	rawBase, ok := doc.Get("currency")
	base, isString := document.String(rawBase)
	if !ok || !isString {
		return document.Document{}, fmt.Errorf("%w: currency", document.ErrFieldMissing)
	}
	rawCurrencies, ok := doc.Get("currencies")
	if !ok {
		return document.Document{}, fmt.Errorf("%w: currencies", document.ErrFieldMissing)
	}
	currencies, err := document.Attributes(rawCurrencies)
	if err != nil {
		return document.Document{}, fmt.Errorf("currencies: %w", err)
	}
	stressedRates, ok := currencies[currency]
	if !ok || stressedRates.IsNull() {
		if base == currency {
			return doc, nil
		}
		return document.Document{}, fmt.Errorf("%w: currencies.%s", document.ErrFieldMissing, currency)
	}

	stressed, err := yearlyRates(stressedRates, currency)
	if err != nil {
		return document.Document{}, err
	}
	for year, rate := range stressed {
		stressed[year] = rate * factor
		if stressed[year] == 0 {
			return document.Document{}, fmt.Errorf("currencies.%s.%s: %w", currency, year, ErrZeroRate)
		}
	}
	if currencies[currency], err = ratesValue(stressed); err != nil {
		return document.Document{}, err
	}

	if base != currency {
		baseRates, err := yearlyRates(currencies[base], base)
		if err != nil {
			return document.Document{}, err
		}
		for year, rate := range stressed {
			baseRates[year] = 1 / rate
		}
		if currencies[base], err = ratesValue(baseRates); err != nil {
			return document.Document{}, err
		}
	}

	for other, raw := range currencies {
		if other == currency || other == base {
			continue
		}
		rates, err := yearlyRates(raw, other)
		if err != nil {
			return document.Document{}, err
		}
		for year, baseToOther := range rates {
			s, ok := stressed[year]
			if !ok {
				return document.Document{}, fmt.Errorf("%w: currencies.%s.%s", document.ErrFieldMissing, currency, year)
			}
			rates[year] = s * baseToOther
		}
		if currencies[other], err = ratesValue(rates); err != nil {
			return document.Document{}, err
		}
	}

	return doc.Set(cty.ObjectVal(currencies), "currencies")
}

func yearlyRates(v cty.Value, currency string) (map[string]float64, error) {
	attrs, err := document.Attributes(v)
	if err != nil {
		return nil, fmt.Errorf("currencies.%s: %w", currency, err)
	}
	out := make(map[string]float64, len(attrs))
	for year, raw := range attrs {
		rate, ok := document.Float(raw)
		if !ok {
			return nil, fmt.Errorf("%w: currencies.%s.%s", document.ErrFieldType, currency, year)
		}
		out[year] = rate
	}
	return out, nil
}

func ratesValue(rates map[string]float64) (cty.Value, error) {
	attrs := make(map[string]cty.Value, len(rates))
	for year, rate := range rates {
		v, err := document.Number(rate)
		if err != nil {
			return cty.NilVal, err
		}
		attrs[year] = v
	}
	return cty.ObjectVal(attrs), nil
}
