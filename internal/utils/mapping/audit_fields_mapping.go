package mapping

import (
	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	"github.com/SscSPs/erp_journal_engine/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
		UpdatedAt: d.UpdatedAt,
		UpdatedBy: d.UpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
		UpdatedAt: m.UpdatedAt,
		UpdatedBy: m.UpdatedBy,
	}
}

func toDomainSoftDelete(m models.SoftDeleteFields) domain.SoftDeleteFields {
	return domain.SoftDeleteFields{DeletedAt: m.DeletedAt, DeletedBy: m.DeletedBy}
}

func toModelSoftDelete(d domain.SoftDeleteFields) models.SoftDeleteFields {
	return models.SoftDeleteFields{DeletedAt: d.DeletedAt, DeletedBy: d.DeletedBy}
}
