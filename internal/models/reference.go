package models

import "time"

// ChartAccount is a row of chart_of_accounts.
type ChartAccount struct {
	ID          string `db:"id"`
	CompanyID   string `db:"company_id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	AccountType string `db:"account_type"`
	IsPostable  bool   `db:"is_postable"`
	IsActive    bool   `db:"is_active"`
}

// FiscalPeriod is a row of fiscal_periods.
type FiscalPeriod struct {
	ID        string    `db:"id"`
	CompanyID string    `db:"company_id"`
	Period    string    `db:"period"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`
}

// AuditLog is a row of audit_logs. Metadata is stored as JSONB.
type AuditLog struct {
	ID         string    `db:"id"`
	CompanyID  string    `db:"company_id"`
	ActorID    string    `db:"actor_id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Metadata   []byte    `db:"metadata"`
	OccurredAt time.Time `db:"occurred_at"`
}
