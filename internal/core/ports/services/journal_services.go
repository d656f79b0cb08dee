package services

import (
	"context"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	"github.com/SscSPs/erp_journal_engine/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal with its lines.
	GetJournalByID(ctx context.Context, auth domain.AuthContext, journalID string, includeDeleted bool) (*domain.JournalHeader, error)

	// ListJournals returns one page of journals and the total count. Lines are
	// attached when withLines is set.
	ListJournals(ctx context.Context, auth domain.AuthContext, filter domain.JournalFilter, page domain.Page, withLines bool) ([]domain.JournalHeader, int, error)
}

// JournalWriterSvc defines create/edit operations for DRAFT journals.
type JournalWriterSvc interface {
	// CreateJournal validates, numbers and stores a new DRAFT journal.
	CreateJournal(ctx context.Context, auth domain.AuthContext, req dto.CreateJournalRequest) (*domain.JournalHeader, error)

	// UpdateJournal edits a DRAFT journal, optionally replacing its lines.
	UpdateJournal(ctx context.Context, auth domain.AuthContext, journalID string, req dto.UpdateJournalRequest) (*domain.JournalHeader, error)

	// DeleteJournal soft-deletes a DRAFT or REJECTED journal.
	DeleteJournal(ctx context.Context, auth domain.AuthContext, journalID string) error

	// RestoreJournal clears the soft-delete markers of a journal.
	RestoreJournal(ctx context.Context, auth domain.AuthContext, journalID string) (*domain.JournalHeader, error)
}

// JournalLifecycleSvc drives journals through the approval state machine.
type JournalLifecycleSvc interface {
	SubmitJournal(ctx context.Context, auth domain.AuthContext, journalID string) (*domain.JournalHeader, error)
	ApproveJournal(ctx context.Context, auth domain.AuthContext, journalID string) (*domain.JournalHeader, error)
	RejectJournal(ctx context.Context, auth domain.AuthContext, journalID string, reason string) (*domain.JournalHeader, error)
	ReopenJournal(ctx context.Context, auth domain.AuthContext, journalID string) (*domain.JournalHeader, error)

	// PostJournal re-validates the stored lines and checks the fiscal period before posting.
	PostJournal(ctx context.Context, auth domain.AuthContext, journalID string) (*domain.JournalHeader, error)

	// ReverseJournal creates and posts a mirrored journal and returns it.
	ReverseJournal(ctx context.Context, auth domain.AuthContext, journalID string, req dto.ReverseJournalRequest) (*domain.JournalHeader, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalLifecycleSvc
}
