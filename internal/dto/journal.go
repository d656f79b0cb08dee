package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of journal, reversal and filter dates.
const DateLayout = "2006-01-02"

// JournalLineRequest is one line of a create/update payload. Shape rules
// (amount sides, duplicates, missing accounts) are checked by the service so
// every violation is reported at once.
type JournalLineRequest struct {
	LineNumber   int             `json:"line_number" binding:"gte=0"`
	AccountID    string          `json:"account_id"`
	Description  string          `json:"description" binding:"max=500"`
	DebitAmount  decimal.Decimal `json:"debit_amount" swaggertype:"string" example:"100.00"`
	CreditAmount decimal.Decimal `json:"credit_amount" swaggertype:"string" example:"0"`
	CostCenterID *string         `json:"cost_center_id,omitempty"`
	ProjectID    *string         `json:"project_id,omitempty"`
}

// CreateJournalRequest defines the data needed to create a journal entry.
type CreateJournalRequest struct {
	BranchID        *string              `json:"branch_id,omitempty"`
	JournalType     domain.JournalType   `json:"journal_type" binding:"required,journal_type" example:"MANUAL"`
	SourceModule    string               `json:"source_module" binding:"max=50"`
	ReferenceType   *string              `json:"reference_type,omitempty"`
	ReferenceID     *string              `json:"reference_id,omitempty"`
	ReferenceNumber *string              `json:"reference_number,omitempty"`
	JournalDate     string               `json:"journal_date" binding:"required,datetime=2006-01-02" example:"2024-03-15"`
	Description     string               `json:"description" binding:"max=500"`
	Currency        string               `json:"currency" binding:"omitempty,len=3" example:"IDR"`
	ExchangeRate    *decimal.Decimal     `json:"exchange_rate,omitempty" swaggertype:"string" example:"1"`
	Lines           []JournalLineRequest `json:"lines" binding:"dive"`
}

// UpdateJournalRequest carries the editable fields of a DRAFT journal. Absent
// fields keep their stored value; a nil Lines slice keeps the stored lines.
type UpdateJournalRequest struct {
	BranchID        *string              `json:"branch_id,omitempty"`
	ReferenceType   *string              `json:"reference_type,omitempty"`
	ReferenceID     *string              `json:"reference_id,omitempty"`
	ReferenceNumber *string              `json:"reference_number,omitempty"`
	JournalDate     *string              `json:"journal_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Description     *string              `json:"description,omitempty" binding:"omitempty,max=500"`
	Currency        *string              `json:"currency,omitempty" binding:"omitempty,len=3"`
	ExchangeRate    *decimal.Decimal     `json:"exchange_rate,omitempty" swaggertype:"string"`
	Lines           []JournalLineRequest `json:"lines,omitempty" binding:"omitempty,dive"`
}

// RejectJournalRequest carries the mandatory rejection reason.
type RejectJournalRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required,max=500"`
}

// ReverseJournalRequest defines the payload for reversing a posted journal.
type ReverseJournalRequest struct {
	ReversalReason string  `json:"reversal_reason" binding:"required,max=500"`
	ReversalDate   *string `json:"reversal_date,omitempty" binding:"omitempty,datetime=2006-01-02" example:"2024-04-01"`
}

// ParseDate parses a wire date into a UTC midnight time.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// ToDomainLines converts request lines, numbering any line that arrived without a number.
func ToDomainLines(reqs []JournalLineRequest) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqs))
	for i, r := range reqs {
		number := r.LineNumber
		if number == 0 {
			number = i + 1
		}
		lines[i] = domain.JournalLine{
			LineNumber:   number,
			AccountID:    r.AccountID,
			Description:  r.Description,
			DebitAmount:  r.DebitAmount,
			CreditAmount: r.CreditAmount,
			CostCenterID: r.CostCenterID,
			ProjectID:    r.ProjectID,
		}
	}
	return lines
}

// AccountLinesResponse is the by-account view: the page of lines plus the account summary.
type AccountLinesResponse struct {
	AccountID string                   `json:"account_id"`
	Lines     []domain.LineWithDetails `json:"lines"`
	Summary   domain.AccountBalance    `json:"summary"`
}
