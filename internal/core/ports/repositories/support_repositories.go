package repositories

import (
	"context"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
)

// ChartOfAccountsRepository reads chart-of-accounts entries.
type ChartOfAccountsRepository interface {
	// FindAccountsByIDs loads every requested account of a company keyed by id.
	// Unknown ids are simply absent from the result.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.ChartAccount, error)
}

// FiscalPeriodRepository reads fiscal periods.
type FiscalPeriodRepository interface {
	// FindFiscalPeriod returns apperrors.ErrNotFound when no row exists for the period.
	FindFiscalPeriod(ctx context.Context, companyID, period string) (*domain.FiscalPeriod, error)
}

// AuditLogRepository persists audit entries.
type AuditLogRepository interface {
	SaveAuditEntries(ctx context.Context, entries []domain.AuditEntry) error
}
