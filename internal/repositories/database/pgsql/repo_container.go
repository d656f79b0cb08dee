package pgsql

import (
	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JournalRepo:      newPgxJournalRepository(dbPool),
		JournalLineRepo:  newPgxJournalLineRepository(dbPool),
		AccountRepo:      newPgxChartOfAccountsRepository(dbPool),
		FiscalPeriodRepo: newPgxFiscalPeriodRepository(dbPool),
		AuditLogRepo:     newPgxAuditLogRepository(dbPool),
	}
}
