package services

import (
	"context"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
)

// JournalLineSvc is the read layer over journal lines used by reports.
type JournalLineSvc interface {
	ListByJournal(ctx context.Context, auth domain.AuthContext, journalID string) ([]domain.LineWithDetails, error)
	ListLines(ctx context.Context, auth domain.AuthContext, filter domain.LineFilter, page domain.Page) ([]domain.LineWithDetails, int, error)

	// ListByAccount returns a page of an account's lines with its balance summary.
	ListByAccount(ctx context.Context, auth domain.AuthContext, accountID string, filter domain.LineFilter, page domain.Page) ([]domain.LineWithDetails, int, domain.AccountBalance, error)

	GetTrialBalance(ctx context.Context, auth domain.AuthContext, filter domain.LineFilter) (*domain.TrialBalance, error)

	// VerifyIntegrity recomputes the trial balance and lists journals whose lines contradict them.
	VerifyIntegrity(ctx context.Context, companyID string) (*domain.IntegrityReport, error)
}
