package domain

import (
	"github.com/shopspring/decimal"
)

// AccountBalance summarises the debit/credit activity of a set of lines.
type AccountBalance struct {
	AccountID   string          `json:"account_id,omitempty"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"` // TotalDebit - TotalCredit
}

// AccountSummary is one row of a trial balance.
type AccountSummary struct {
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType AccountType     `json:"account_type"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalance aggregates account summaries for a company.
type TrialBalance struct {
	Accounts    []AccountSummary `json:"accounts"`
	TotalDebit  decimal.Decimal  `json:"total_debit"`
	TotalCredit decimal.Decimal  `json:"total_credit"`
	IsBalanced  bool             `json:"is_balanced"`
}

// IntegrityIssue is a journal whose persisted lines contradict its header.
type IntegrityIssue struct {
	JournalID     string          `json:"journal_id"`
	JournalNumber string          `json:"journal_number"`
	Status        JournalStatus   `json:"status"`
	HeaderDebit   decimal.Decimal `json:"header_debit"`
	HeaderCredit  decimal.Decimal `json:"header_credit"`
	LineDebit     decimal.Decimal `json:"line_debit"`
	LineCredit    decimal.Decimal `json:"line_credit"`
	LineCount     int             `json:"line_count"`
	Problems      []string        `json:"problems"`
}

// IntegrityReport is the outcome of re-validating a company's journals from storage.
type IntegrityReport struct {
	TrialBalance TrialBalance     `json:"trial_balance"`
	Issues       []IntegrityIssue `json:"issues"`
}

// Healthy reports whether the trial balance balances and no journal has issues.
func (r IntegrityReport) Healthy() bool {
	return r.TrialBalance.IsBalanced && len(r.Issues) == 0
}
