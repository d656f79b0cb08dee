package pgsql

import (
	"context"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	"github.com/SscSPs/erp_journal_engine/internal/models"
	"github.com/SscSPs/erp_journal_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxChartOfAccountsRepository struct {
	BaseRepository
}

// newPgxChartOfAccountsRepository creates a new repository for chart-of-accounts data.
func newPgxChartOfAccountsRepository(db DBTX) *PgxChartOfAccountsRepository {
	return &PgxChartOfAccountsRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.ChartOfAccountsRepository = (*PgxChartOfAccountsRepository)(nil)

// FindAccountsByIDs loads all requested accounts of a company in one query.
func (r *PgxChartOfAccountsRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.ChartAccount, error) {
	result := make(map[string]domain.ChartAccount, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	rows, err := r.DB.Query(ctx, `
		SELECT id, company_id, code, name, account_type, is_postable, is_active
		FROM chart_of_accounts
		WHERE company_id = $1 AND id = ANY($2)`,
		companyID, accountIDs,
	)
	if err != nil {
		return nil, mapDBError("failed to query accounts for company "+companyID, err)
	}
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ChartAccount])
	if err != nil {
		return nil, mapDBError("failed to scan account rows", err)
	}

	for _, m := range accounts {
		result[m.ID] = mapping.ToDomainChartAccount(m)
	}
	return result, nil
}
