package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"` // UserID Reference
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"` // UserID Reference
}

// SoftDeleteFields marks a record as hidden from default reads without removing it.
type SoftDeleteFields struct {
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *string    `json:"deleted_by,omitempty"`
}

// IsDeleted reports whether the record has been soft-deleted.
func (s SoftDeleteFields) IsDeleted() bool {
	return s.DeletedAt != nil
}

// AuthContext identifies the caller of a request. It is populated by the auth
// middleware and is the only source of company scoping.
type AuthContext struct {
	UserID    string
	CompanyID string
}
