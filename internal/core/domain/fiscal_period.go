package domain

import "time"

// FiscalPeriodStatus says whether postings into a period are allowed.
type FiscalPeriodStatus string

const (
	FiscalPeriodOpen   FiscalPeriodStatus = "OPEN"
	FiscalPeriodClosed FiscalPeriodStatus = "CLOSED"
)

// FiscalPeriod governs posting for one YYYY-MM bucket of a company.
type FiscalPeriod struct {
	ID        string             `json:"id"`
	CompanyID string             `json:"company_id"`
	Period    string             `json:"period"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Status    FiscalPeriodStatus `json:"status"`
}

// IsOpen reports whether journals may be posted into the period.
func (p FiscalPeriod) IsOpen() bool {
	return p.Status == FiscalPeriodOpen
}
