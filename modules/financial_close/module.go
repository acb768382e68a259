// Package financial_close moves the financial close date by whole months.
package financial_close

import (
	"fmt"
	"math"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
)

const section = "date_of_financial_close"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the financial_close_date transform.
func (m *Module) Register(r *registry.Registry) {
	r.Register(sensitivity.FinancialCloseDate, &registry.Adjustment{
		Kinds: []sensitivity.AdjustmentKind{sensitivity.GenericAdder},
		Apply: Apply,
	})
}

// Apply shifts date_of_financial_close by value months, rolling over years.
func Apply(doc document.Document, value float64, kind sensitivity.AdjustmentKind, _ *sensitivity.Settings) (document.Document, error) {
	if kind != sensitivity.GenericAdder {
		return document.Document{}, registry.Unsupported(sensitivity.FinancialCloseDate, kind)
	}
	if value != math.Trunc(value) {
		return document.Document{}, fmt.Errorf("financial close shift must be a whole number of months, got %v", value)
	}

	year, err := doc.Number(section, "year")
	if err != nil {
		return document.Document{}, err
	}
	month, err := doc.Number(section, "month")
	if err != nil {
		return document.Document{}, err
	}
	if month < 1 || month > 12 {
		return document.Document{}, fmt.Errorf("%w: %s.month out of range: %v", document.ErrFieldType, section, month)
	}

	newYear, newMonth := ShiftMonths(int(year), int(month), int(value))
	out, err := doc.SetNumber(float64(newYear), section, "year")
	if err != nil {
		return document.Document{}, err
	}
	return out.SetNumber(float64(newMonth), section, "month")
}

// ShiftMonths adds months to a year/month pair.
func ShiftMonths(year, month, months int) (int, int) {
	total := year*12 + (month - 1) + months
	y := total / 12
	m := total % 12
	if m < 0 {
		m += 12
		y--
	}
	return y, m + 1
}
