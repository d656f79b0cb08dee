package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalType classifies where a journal entry originates.
type JournalType string

const (
	JournalTypeManual     JournalType = "MANUAL"
	JournalTypePurchase   JournalType = "PURCHASE"
	JournalTypeSales      JournalType = "SALES"
	JournalTypePayment    JournalType = "PAYMENT"
	JournalTypeReceipt    JournalType = "RECEIPT"
	JournalTypeAdjustment JournalType = "ADJUSTMENT"
	JournalTypeOpening    JournalType = "OPENING"
	JournalTypeClosing    JournalType = "CLOSING"
)

// JournalTypes lists every journal type in display order.
var JournalTypes = []JournalType{
	JournalTypeManual,
	JournalTypePurchase,
	JournalTypeSales,
	JournalTypePayment,
	JournalTypeReceipt,
	JournalTypeAdjustment,
	JournalTypeOpening,
	JournalTypeClosing,
}

// IsValid checks if the type is one of the known journal types.
func (t JournalType) IsValid() bool {
	for _, jt := range JournalTypes {
		if jt == t {
			return true
		}
	}
	return false
}

// JournalStatus indicates the lifecycle state of a journal entry.
type JournalStatus string

const (
	StatusDraft     JournalStatus = "DRAFT"
	StatusSubmitted JournalStatus = "SUBMITTED"
	StatusApproved  JournalStatus = "APPROVED"
	StatusPosted    JournalStatus = "POSTED"
	StatusReversed  JournalStatus = "REVERSED"
	StatusRejected  JournalStatus = "REJECTED"
)

// IsValid checks if the status is one of the lifecycle states.
func (s JournalStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusPosted, StatusReversed, StatusRejected:
		return true
	}
	return false
}

// IsDeletable reports whether a journal in this status may be soft-deleted.
func (s JournalStatus) IsDeletable() bool {
	return s == StatusDraft || s == StatusRejected
}

// JournalHeader is the aggregate root of a journal entry. Lines are owned by it.
type JournalHeader struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"company_id"`
	BranchID  *string `json:"branch_id,omitempty"`

	JournalType     JournalType `json:"journal_type"`
	SourceModule    string      `json:"source_module"`
	ReferenceType   *string     `json:"reference_type,omitempty"`
	ReferenceID     *string     `json:"reference_id,omitempty"`
	ReferenceNumber *string     `json:"reference_number,omitempty"`

	JournalNumber  string    `json:"journal_number"`
	SequenceNumber int       `json:"sequence_number"`
	Period         string    `json:"period"` // YYYY-MM, derived from JournalDate
	JournalDate    time.Time `json:"journal_date"`
	Description    string    `json:"description"`

	TotalDebit   decimal.Decimal `json:"total_debit"`
	TotalCredit  decimal.Decimal `json:"total_credit"`
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`

	Status          JournalStatus `json:"status"`
	SubmittedAt     *time.Time    `json:"submitted_at,omitempty"`
	SubmittedBy     *string       `json:"submitted_by,omitempty"`
	ApprovedAt      *time.Time    `json:"approved_at,omitempty"`
	ApprovedBy      *string       `json:"approved_by,omitempty"`
	RejectedAt      *time.Time    `json:"rejected_at,omitempty"`
	RejectedBy      *string       `json:"rejected_by,omitempty"`
	RejectionReason *string       `json:"rejection_reason,omitempty"`
	PostedAt        *time.Time    `json:"posted_at,omitempty"`
	PostedBy        *string       `json:"posted_by,omitempty"`

	IsReversed bool `json:"is_reversed"`
	// ReversedBy holds the id of the reversal journal, not a user id.
	ReversedBy     *string    `json:"reversed_by,omitempty"`
	ReversalDate   *time.Time `json:"reversal_date,omitempty"`
	ReversalReason *string    `json:"reversal_reason,omitempty"`
	// ReversalOfID is set on a reversal journal and points at the journal it cancels.
	ReversalOfID *string `json:"reversal_of_id,omitempty"`

	SoftDeleteFields
	AuditFields

	Lines []JournalLine `json:"lines,omitempty"`
}

// JournalLine is one debit-or-credit row of a journal header.
type JournalLine struct {
	ID              string `json:"id"`
	JournalHeaderID string `json:"journal_header_id"`
	LineNumber      int    `json:"line_number"`
	AccountID       string `json:"account_id"`
	Description     string `json:"description"`

	DebitAmount  decimal.Decimal `json:"debit_amount"`
	CreditAmount decimal.Decimal `json:"credit_amount"`

	// Mirrored from the header at insert time.
	Currency         string          `json:"currency"`
	ExchangeRate     decimal.Decimal `json:"exchange_rate"`
	BaseDebitAmount  decimal.Decimal `json:"base_debit_amount"`
	BaseCreditAmount decimal.Decimal `json:"base_credit_amount"`

	CostCenterID *string `json:"cost_center_id,omitempty"`
	ProjectID    *string `json:"project_id,omitempty"`

	// Populated on reads joined with the chart of accounts.
	AccountCode string      `json:"account_code,omitempty"`
	AccountName string      `json:"account_name,omitempty"`
	AccountType AccountType `json:"account_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

// LineWithDetails is the flattened read view of a line joined with its account and header.
type LineWithDetails struct {
	JournalLine

	JournalNumber string        `json:"journal_number"`
	JournalDate   time.Time     `json:"journal_date"`
	JournalType   JournalType   `json:"journal_type"`
	JournalStatus JournalStatus `json:"journal_status"`
	Period        string        `json:"period"`
	IsReversed    bool          `json:"is_reversed"`
	BranchID      *string       `json:"branch_id,omitempty"`

	IsDebit bool            `json:"is_debit"`
	Amount  decimal.Decimal `json:"amount"`
}

// StatusChange describes one state-machine step and the stamps written with it.
type StatusChange struct {
	From            JournalStatus
	To              JournalStatus
	ActorID         string
	At              time.Time
	RejectionReason *string
}

// JournalFilter holds the list filters for journal headers.
type JournalFilter struct {
	BranchID    *string
	JournalType *JournalType
	Status      *JournalStatus
	DateFrom    *time.Time
	DateTo      *time.Time
	Period      *string
	Search      string
	ShowDeleted bool
	SortBy      string
	SortOrder   string
}

// LineFilter holds the filters for line queries. Soft-deleted and reversed headers
// are excluded unless the Include flags are set.
type LineFilter struct {
	AccountID       *string
	BranchID        *string
	Statuses        []JournalStatus
	Period          *string
	DateFrom        *time.Time
	DateTo          *time.Time
	IncludeReversed bool
	IncludeDeleted  bool
}

// Page is a resolved page request.
type Page struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
