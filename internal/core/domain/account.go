package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// ChartAccount is the slice of a chart-of-accounts entry the journal engine needs.
// Header accounts (IsPostable=false) only group children and never receive lines.
type ChartAccount struct {
	ID         string      `json:"id"`
	CompanyID  string      `json:"company_id"`
	Code       string      `json:"code"`
	Name       string      `json:"name"`
	Type       AccountType `json:"account_type"`
	IsPostable bool        `json:"is_postable"`
	IsActive   bool        `json:"is_active"`
}

// CanReceiveLines reports whether journal lines may reference this account.
func (a ChartAccount) CanReceiveLines() bool {
	return a.IsActive && a.IsPostable
}
