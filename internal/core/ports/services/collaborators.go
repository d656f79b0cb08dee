package services

import (
	"context"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
)

// ChartOfAccountsValidator checks that accounts exist and accept postings.
type ChartOfAccountsValidator interface {
	// ValidateAccounts checks every id in a single lookup. Unknown ids yield a
	// VALIDATION_ERROR; inactive or header accounts yield ACCOUNT_NOT_POSTABLE.
	ValidateAccounts(ctx context.Context, companyID string, accountIDs []string) error
}

// FiscalPeriodReader answers whether a period accepts postings.
type FiscalPeriodReader interface {
	IsPeriodOpen(ctx context.Context, companyID, period string) (bool, error)
}

// AuditSink receives audit entries. Record must not block the caller.
type AuditSink interface {
	Record(ctx context.Context, entry domain.AuditEntry)
}
