package repositories

import (
	"context"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
)

// JournalLineReader is the read side of journal lines. Lines are never mutated
// outside the header that owns them.
type JournalLineReader interface {
	// ListLinesByJournal returns a header's lines ordered by line number.
	ListLinesByJournal(ctx context.Context, companyID, journalID string) ([]domain.LineWithDetails, error)

	// ListLines returns one page of lines in chronological order and the total count.
	ListLines(ctx context.Context, companyID string, filter domain.LineFilter, page domain.Page) ([]domain.LineWithDetails, int, error)

	// ListLinesByAccount is ListLines narrowed to one account.
	ListLinesByAccount(ctx context.Context, companyID, accountID string, filter domain.LineFilter, page domain.Page) ([]domain.LineWithDetails, int, error)

	// GetAccountBalance aggregates the debit/credit activity of an account.
	// Without explicit statuses only POSTED journals count.
	GetAccountBalance(ctx context.Context, companyID, accountID string, filter domain.LineFilter) (domain.AccountBalance, error)

	// GetAccountSummaries aggregates every account that has activity, ordered by account code.
	GetAccountSummaries(ctx context.Context, companyID string, filter domain.LineFilter) ([]domain.AccountSummary, error)

	// FindIntegrityIssues lists live headers whose persisted lines contradict them.
	// Problems is left for the caller to describe.
	FindIntegrityIssues(ctx context.Context, companyID string) ([]domain.IntegrityIssue, error)
}

// JournalLineRepositoryFacade combines all journal line repository interfaces
type JournalLineRepositoryFacade interface {
	JournalLineReader
}
