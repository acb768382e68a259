package source

import (
	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/model"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
)

// Candidate is a project as listed by the project API, before its engine
// input has been fetched.
type Candidate struct {
	model.Project
	HasLiveAssessment bool
	Imported          bool
	SaleDate          string
	FinancialClose    string
}

// Verdict is the outcome of screening a candidate.
type Verdict struct {
	Accepted bool
	// Reason is set for rejections worth reporting. Projects outside the
	// technology allow-list and phase 0 projects are rejected silently.
	Reason model.FailureReason
}

var accepted = Verdict{Accepted: true}

// Screen decides whether a candidate is worth fetching. today is the cut-off
// for sale and financial close dates: both must lie strictly after it.
func Screen(c Candidate, settings *sensitivity.Settings, today model.Date) Verdict {
	switch {
	case !settings.AllowsTechnology(c.Technology):
		return Verdict{}
	case c.Phase == 0:
		return Verdict{}
	case !c.HasLiveAssessment:
		return Verdict{Reason: model.ReasonNoLiveAssessment}
	case c.Imported:
		return Verdict{Reason: model.ReasonExcelImport}
	case !inFuture(c.SaleDate, today), !inFuture(c.FinancialClose, today):
		return Verdict{Reason: model.ReasonSaleDateInPast}
	}
	return accepted
}

// ScreenEngineInput rejects engine inputs without an electricity price
// forecast.
func ScreenEngineInput(doc document.Document) Verdict {
	forecast, ok := doc.Get("electricity_price", "forecast")
	if !ok || forecast.IsNull() {
		return Verdict{Reason: model.ReasonNoElectricityPrices}
	}
	if document.IsObject(forecast) {
		if attrs, _ := document.Attributes(forecast); len(attrs) == 0 {
			return Verdict{Reason: model.ReasonNoElectricityPrices}
		}
		return accepted
	}
	if els, err := document.Elements(forecast); err == nil && len(els) == 0 {
		return Verdict{Reason: model.ReasonNoElectricityPrices}
	}
	return accepted
}

// inFuture treats a missing or unreadable date as not in the future.
func inFuture(date string, today model.Date) bool {
	d, err := model.ParseDate(date)
	if err != nil {
		return false
	}
	return d.After(today.Time)
}
