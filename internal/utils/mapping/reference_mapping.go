package mapping

import (
	"encoding/json"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	"github.com/SscSPs/erp_journal_engine/internal/models"
)

// ToDomainChartAccount converts a model ChartAccount to a domain ChartAccount
func ToDomainChartAccount(m models.ChartAccount) domain.ChartAccount {
	return domain.ChartAccount{
		ID:         m.ID,
		CompanyID:  m.CompanyID,
		Code:       m.Code,
		Name:       m.Name,
		Type:       domain.AccountType(m.AccountType),
		IsPostable: m.IsPostable,
		IsActive:   m.IsActive,
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		ID:        m.ID,
		CompanyID: m.CompanyID,
		Period:    m.Period,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Status:    domain.FiscalPeriodStatus(m.Status),
	}
}

// ToModelAuditLog converts an audit entry into its row, encoding metadata as JSON.
func ToModelAuditLog(d domain.AuditEntry) (models.AuditLog, error) {
	m := models.AuditLog{
		ID:         d.ID,
		CompanyID:  d.CompanyID,
		ActorID:    d.ActorID,
		Action:     d.Action,
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		OccurredAt: d.OccurredAt,
	}
	if len(d.Metadata) > 0 {
		raw, err := json.Marshal(d.Metadata)
		if err != nil {
			return m, err
		}
		m.Metadata = raw
	}
	return m, nil
}
