package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalHeader is a row of journal_headers.
type JournalHeader struct {
	ID              string  `db:"id"`
	CompanyID       string  `db:"company_id"`
	BranchID        *string `db:"branch_id"`
	JournalType     string  `db:"journal_type"`
	SourceModule    string  `db:"source_module"`
	ReferenceType   *string `db:"reference_type"`
	ReferenceID     *string `db:"reference_id"`
	ReferenceNumber *string `db:"reference_number"`

	JournalNumber  string    `db:"journal_number"`
	SequenceNumber int       `db:"sequence_number"`
	Period         string    `db:"period"`
	JournalDate    time.Time `db:"journal_date"`
	Description    string    `db:"description"`

	TotalDebit   decimal.Decimal `db:"total_debit"`
	TotalCredit  decimal.Decimal `db:"total_credit"`
	Currency     string          `db:"currency"`
	ExchangeRate decimal.Decimal `db:"exchange_rate"`

	Status          string     `db:"status"`
	SubmittedAt     *time.Time `db:"submitted_at"`
	SubmittedBy     *string    `db:"submitted_by"`
	ApprovedAt      *time.Time `db:"approved_at"`
	ApprovedBy      *string    `db:"approved_by"`
	RejectedAt      *time.Time `db:"rejected_at"`
	RejectedBy      *string    `db:"rejected_by"`
	RejectionReason *string    `db:"rejection_reason"`
	PostedAt        *time.Time `db:"posted_at"`
	PostedBy        *string    `db:"posted_by"`

	IsReversed     bool       `db:"is_reversed"`
	ReversedBy     *string    `db:"reversed_by"`
	ReversalDate   *time.Time `db:"reversal_date"`
	ReversalReason *string    `db:"reversal_reason"`
	ReversalOfID   *string    `db:"reversal_of_id"`

	SoftDeleteFields
	AuditFields
}

// JournalLine is a row of journal_lines, optionally joined with its account.
type JournalLine struct {
	ID               string          `db:"id"`
	JournalHeaderID  string          `db:"journal_header_id"`
	LineNumber       int             `db:"line_number"`
	AccountID        string          `db:"account_id"`
	Description      string          `db:"description"`
	DebitAmount      decimal.Decimal `db:"debit_amount"`
	CreditAmount     decimal.Decimal `db:"credit_amount"`
	Currency         string          `db:"currency"`
	ExchangeRate     decimal.Decimal `db:"exchange_rate"`
	BaseDebitAmount  decimal.Decimal `db:"base_debit_amount"`
	BaseCreditAmount decimal.Decimal `db:"base_credit_amount"`
	CostCenterID     *string         `db:"cost_center_id"`
	ProjectID        *string         `db:"project_id"`
	CreatedAt        time.Time       `db:"created_at"`
	CreatedBy        string          `db:"created_by"`

	AccountCode *string `db:"account_code"`
	AccountName *string `db:"account_name"`
	AccountType *string `db:"account_type"`
}

// JournalLineDetail is a line joined with its account and owning header.
type JournalLineDetail struct {
	JournalLine

	JournalNumber string    `db:"journal_number"`
	JournalDate   time.Time `db:"journal_date"`
	JournalType   string    `db:"journal_type"`
	JournalStatus string    `db:"journal_status"`
	Period        string    `db:"period"`
	IsReversed    bool      `db:"is_reversed"`
	BranchID      *string   `db:"branch_id"`
}
