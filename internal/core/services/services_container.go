package services

import (
	"log/slog"

	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_journal_engine/internal/core/ports/services"
	"github.com/SscSPs/erp_journal_engine/internal/platform/config"
	"github.com/SscSPs/erp_journal_engine/pkg/cache"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// periodCache may be nil, in which case fiscal periods are read from the database every time.
// The Audit sink implements io.Closer and must be closed on shutdown.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, periodCache cache.Store) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Accounts = NewChartOfAccountsValidator(repos.AccountRepo)

	var periodOptions []FiscalPeriodOption
	if periodCache != nil {
		periodOptions = append(periodOptions, WithPeriodCache(periodCache, cfg.FiscalPeriodCacheTTL))
	}
	container.FiscalPeriod = NewFiscalPeriodService(repos.FiscalPeriodRepo, periodOptions...)

	container.Audit = NewAuditService(repos.AuditLogRepo, cfg.AuditBufferSize, slog.Default())

	policy, err := ParseReversalTypePolicy(cfg.ReversalTypePolicy)
	if err != nil {
		slog.Warn("Invalid reversal type policy, using original", slog.String("error", err.Error()))
		policy = ReversalTypeOriginal
	}

	container.Journal = NewJournalService(
		repos.JournalRepo,
		container.Accounts,
		container.FiscalPeriod,
		WithAuditSink(container.Audit),
		WithReversalTypePolicy(policy),
		WithCreateRetry(cfg.JournalCreateMaxAttempts, cfg.JournalCreateRetryBackoff),
		WithDefaultCurrency(cfg.DefaultCurrency),
	)
	container.JournalLine = NewJournalLineService(repos.JournalLineRepo)

	return container
}
