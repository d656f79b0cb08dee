package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
)

// JournalReader defines read operations for journal headers.
type JournalReader interface {
	// FindJournalByID retrieves a header with its lines joined to the chart of accounts.
	// Soft-deleted headers are only returned when includeDeleted is set.
	FindJournalByID(ctx context.Context, companyID, journalID string, includeDeleted bool) (*domain.JournalHeader, error)

	// ListJournals returns one page of headers and the total number of matching rows.
	ListJournals(ctx context.Context, companyID string, filter domain.JournalFilter, page domain.Page) ([]domain.JournalHeader, int, error)

	// FindLinesByJournalIDs loads lines for many headers in one round trip, grouped by header id.
	FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error)
}

// JournalWriter defines write operations for journal headers and the lines they own.
type JournalWriter interface {
	// CreateJournalWithLines inserts a DRAFT header and its lines atomically.
	CreateJournalWithLines(ctx context.Context, header domain.JournalHeader, lines []domain.JournalLine) error

	// UpdateJournalWithLines rewrites a DRAFT header. A nil lines slice leaves lines untouched.
	UpdateJournalWithLines(ctx context.Context, header domain.JournalHeader, lines []domain.JournalLine) error

	// UpdateJournalStatus moves a header from change.From to change.To, failing if the
	// stored status is no longer change.From.
	UpdateJournalStatus(ctx context.Context, companyID, journalID string, change domain.StatusChange) error

	// MarkJournalReversed links a POSTED header to the journal that cancels it.
	MarkJournalReversed(ctx context.Context, companyID, journalID, reversalJournalID, reason string, at time.Time, userID string) error

	SoftDeleteJournal(ctx context.Context, companyID, journalID, userID string, at time.Time) error
	RestoreJournal(ctx context.Context, companyID, journalID, userID string, at time.Time) error

	// GetNextSequence atomically reserves the next sequence number for (company, type, period).
	GetNextSequence(ctx context.Context, companyID string, journalType domain.JournalType, period string) (int, error)
}

// JournalRepositoryFacade combines all journal header repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction scoping.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade

	// WithinTx runs fn with a repository bound to one database transaction. The
	// transaction commits when fn returns nil and rolls back otherwise. Calling
	// WithinTx on a repository that is already transaction-bound opens a savepoint.
	WithinTx(ctx context.Context, fn func(repo JournalRepositoryWithTx) error) error
}
