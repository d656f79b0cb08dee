package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	JournalRepo      JournalRepositoryWithTx
	JournalLineRepo  JournalLineRepositoryFacade
	AccountRepo      ChartOfAccountsRepository
	FiscalPeriodRepo FiscalPeriodRepository
	AuditLogRepo     AuditLogRepository
}
