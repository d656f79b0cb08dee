package mapping

import (
	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	"github.com/SscSPs/erp_journal_engine/internal/models"
	"github.com/SscSPs/erp_journal_engine/internal/utils/accounting"
)

// ToModelJournalHeader converts a domain JournalHeader to a model JournalHeader
func ToModelJournalHeader(d domain.JournalHeader) models.JournalHeader {
	return models.JournalHeader{
		ID:               d.ID,
		CompanyID:        d.CompanyID,
		BranchID:         d.BranchID,
		JournalType:      string(d.JournalType),
		SourceModule:     d.SourceModule,
		ReferenceType:    d.ReferenceType,
		ReferenceID:      d.ReferenceID,
		ReferenceNumber:  d.ReferenceNumber,
		JournalNumber:    d.JournalNumber,
		SequenceNumber:   d.SequenceNumber,
		Period:           d.Period,
		JournalDate:      d.JournalDate,
		Description:      d.Description,
		TotalDebit:       d.TotalDebit,
		TotalCredit:      d.TotalCredit,
		Currency:         d.Currency,
		ExchangeRate:     d.ExchangeRate,
		Status:           string(d.Status),
		SubmittedAt:      d.SubmittedAt,
		SubmittedBy:      d.SubmittedBy,
		ApprovedAt:       d.ApprovedAt,
		ApprovedBy:       d.ApprovedBy,
		RejectedAt:       d.RejectedAt,
		RejectedBy:       d.RejectedBy,
		RejectionReason:  d.RejectionReason,
		PostedAt:         d.PostedAt,
		PostedBy:         d.PostedBy,
		IsReversed:       d.IsReversed,
		ReversedBy:       d.ReversedBy,
		ReversalDate:     d.ReversalDate,
		ReversalReason:   d.ReversalReason,
		ReversalOfID:     d.ReversalOfID,
		SoftDeleteFields: toModelSoftDelete(d.SoftDeleteFields),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalHeader converts a model JournalHeader to a domain JournalHeader
func ToDomainJournalHeader(m models.JournalHeader) domain.JournalHeader {
	return domain.JournalHeader{
		ID:               m.ID,
		CompanyID:        m.CompanyID,
		BranchID:         m.BranchID,
		JournalType:      domain.JournalType(m.JournalType),
		SourceModule:     m.SourceModule,
		ReferenceType:    m.ReferenceType,
		ReferenceID:      m.ReferenceID,
		ReferenceNumber:  m.ReferenceNumber,
		JournalNumber:    m.JournalNumber,
		SequenceNumber:   m.SequenceNumber,
		Period:           m.Period,
		JournalDate:      m.JournalDate,
		Description:      m.Description,
		TotalDebit:       m.TotalDebit,
		TotalCredit:      m.TotalCredit,
		Currency:         m.Currency,
		ExchangeRate:     m.ExchangeRate,
		Status:           domain.JournalStatus(m.Status),
		SubmittedAt:      m.SubmittedAt,
		SubmittedBy:      m.SubmittedBy,
		ApprovedAt:       m.ApprovedAt,
		ApprovedBy:       m.ApprovedBy,
		RejectedAt:       m.RejectedAt,
		RejectedBy:       m.RejectedBy,
		RejectionReason:  m.RejectionReason,
		PostedAt:         m.PostedAt,
		PostedBy:         m.PostedBy,
		IsReversed:       m.IsReversed,
		ReversedBy:       m.ReversedBy,
		ReversalDate:     m.ReversalDate,
		ReversalReason:   m.ReversalReason,
		ReversalOfID:     m.ReversalOfID,
		SoftDeleteFields: toDomainSoftDelete(m.SoftDeleteFields),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		ID:               d.ID,
		JournalHeaderID:  d.JournalHeaderID,
		LineNumber:       d.LineNumber,
		AccountID:        d.AccountID,
		Description:      d.Description,
		DebitAmount:      d.DebitAmount,
		CreditAmount:     d.CreditAmount,
		Currency:         d.Currency,
		ExchangeRate:     d.ExchangeRate,
		BaseDebitAmount:  d.BaseDebitAmount,
		BaseCreditAmount: d.BaseCreditAmount,
		CostCenterID:     d.CostCenterID,
		ProjectID:        d.ProjectID,
		CreatedAt:        d.CreatedAt,
		CreatedBy:        d.CreatedBy,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	line := domain.JournalLine{
		ID:               m.ID,
		JournalHeaderID:  m.JournalHeaderID,
		LineNumber:       m.LineNumber,
		AccountID:        m.AccountID,
		Description:      m.Description,
		DebitAmount:      m.DebitAmount,
		CreditAmount:     m.CreditAmount,
		Currency:         m.Currency,
		ExchangeRate:     m.ExchangeRate,
		BaseDebitAmount:  m.BaseDebitAmount,
		BaseCreditAmount: m.BaseCreditAmount,
		CostCenterID:     m.CostCenterID,
		ProjectID:        m.ProjectID,
		CreatedAt:        m.CreatedAt,
		CreatedBy:        m.CreatedBy,
	}
	if m.AccountCode != nil {
		line.AccountCode = *m.AccountCode
	}
	if m.AccountName != nil {
		line.AccountName = *m.AccountName
	}
	if m.AccountType != nil {
		line.AccountType = domain.AccountType(*m.AccountType)
	}
	return line
}

// ToDomainLineWithDetails flattens a joined row and derives is_debit/amount.
func ToDomainLineWithDetails(m models.JournalLineDetail) domain.LineWithDetails {
	line := ToDomainJournalLine(m.JournalLine)
	isDebit, amount := accounting.DescribeLine(line)
	return domain.LineWithDetails{
		JournalLine:   line,
		JournalNumber: m.JournalNumber,
		JournalDate:   m.JournalDate,
		JournalType:   domain.JournalType(m.JournalType),
		JournalStatus: domain.JournalStatus(m.JournalStatus),
		Period:        m.Period,
		IsReversed:    m.IsReversed,
		BranchID:      m.BranchID,
		IsDebit:       isDebit,
		Amount:        amount,
	}
}
