package models

import "time"

// AuditFields mirrors the created/updated columns shared by mutable tables.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
	UpdatedAt time.Time `db:"updated_at"`
	UpdatedBy string    `db:"updated_by"`
}

// SoftDeleteFields mirrors the deleted_at/deleted_by columns.
type SoftDeleteFields struct {
	DeletedAt *time.Time `db:"deleted_at"`
	DeletedBy *string    `db:"deleted_by"`
}
