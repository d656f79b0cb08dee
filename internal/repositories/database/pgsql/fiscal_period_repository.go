package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/erp_journal_engine/internal/apperrors"
	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	"github.com/SscSPs/erp_journal_engine/internal/models"
	"github.com/SscSPs/erp_journal_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxFiscalPeriodRepository struct {
	BaseRepository
}

func newPgxFiscalPeriodRepository(db DBTX) *PgxFiscalPeriodRepository {
	return &PgxFiscalPeriodRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.FiscalPeriodRepository = (*PgxFiscalPeriodRepository)(nil)

// FindFiscalPeriod retrieves the fiscal period row for a YYYY-MM period.
func (r *PgxFiscalPeriodRepository) FindFiscalPeriod(ctx context.Context, companyID, period string) (*domain.FiscalPeriod, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, company_id, period, start_date, end_date, status
		FROM fiscal_periods
		WHERE company_id = $1 AND period = $2`,
		companyID, period,
	)
	if err != nil {
		return nil, mapDBError("failed to query fiscal period "+period, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.FiscalPeriod])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("fiscal period", period)
		}
		return nil, mapDBError("failed to scan fiscal period "+period, err)
	}

	fp := mapping.ToDomainFiscalPeriod(m)
	return &fp, nil
}
