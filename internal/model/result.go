package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// CalculationResult is the structured payload extracted from a successful
// calculation response.
type CalculationResult struct {
	DevelopmentFee       float64  `json:"development_fee"`
	TotalCapex           *float64 `json:"total_capex"`
	TotalMerchantRevenue *float64 `json:"total_merchant_revenue"`
	IRR                  *float64 `json:"irr"`
	BEP                  *float64 `json:"bep"`
	DiscountRate         *float64 `json:"discount_rate"`
	InstalledCapacity    *float64 `json:"installed_capacity"`
	ProjectSaleDate      *Date    `json:"project_sale_date"`
	TotalOpex            *float64 `json:"total_opex"`
	FID                  *Date    `json:"fid"`
	COD                  *Date    `json:"cod"`
	EnergyYield          *float64 `json:"energy_yield"`
	Lifetime             *int     `json:"lifetime"`
}

// FailureReason explains why a project or variant has no result.
type FailureReason string

const (
	ReasonExcelImport              FailureReason = "Excel import"
	ReasonSaleDateInPast           FailureReason = "Sale date in past"
	ReasonNoLiveAssessment         FailureReason = "No live assessment"
	ReasonCalculationError         FailureReason = "Calculation error"
	ReasonNoElectricityPrices      FailureReason = "No electricity prices"
	ReasonFinancialCloseBeforeSale FailureReason = "Financial close date before sale date"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate builds a Date in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts "2006-01-02" and full RFC 3339 timestamps.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) >= len(dateLayout) {
		if t, err := time.Parse(dateLayout, s[:len(dateLayout)]); err == nil {
			return Date{t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date '%s'", s)
}

func (d Date) String() string { return d.Format(dateLayout) }

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
