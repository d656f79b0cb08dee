package pgsql

import (
	"context"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	"github.com/SscSPs/erp_journal_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

func newPgxAuditLogRepository(db DBTX) *PgxAuditLogRepository {
	return &PgxAuditLogRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditLogRepository)(nil)

// SaveAuditEntries inserts a batch of audit entries.
func (r *PgxAuditLogRepository) SaveAuditEntries(ctx context.Context, entries []domain.AuditEntry) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, entry := range entries {
		m, err := mapping.ToModelAuditLog(entry)
		if err != nil {
			return mapDBError("failed to encode audit metadata for "+entry.EntityID, err)
		}
		batch.Queue(`
			INSERT INTO audit_logs (id, company_id, actor_id, action, entity_type, entity_id, metadata, occurred_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			m.ID, m.CompanyID, m.ActorID, m.Action, m.EntityType, m.EntityID, m.Metadata, m.OccurredAt,
		)
	}

	if err := r.DB.SendBatch(ctx, batch).Close(); err != nil {
		return mapDBError("failed to insert audit entries", err)
	}
	return nil
}
