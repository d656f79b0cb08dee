package domain

import "time"

// Audit actions emitted by the journal engine.
const (
	AuditJournalCreated  = "journal.create"
	AuditJournalUpdated  = "journal.update"
	AuditJournalDeleted  = "journal.delete"
	AuditJournalRestored = "journal.restore"
	AuditJournalStatus   = "journal.status"
	AuditJournalReversed = "journal.reverse"
)

// AuditEntry is one record handed to the audit sink.
type AuditEntry struct {
	ID         string         `json:"id"`
	CompanyID  string         `json:"company_id"`
	ActorID    string         `json:"actor_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
