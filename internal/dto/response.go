package dto

import "github.com/SscSPs/erp_journal_engine/internal/utils/pagination"

// Response is the success envelope of every endpoint.
type Response struct {
	Data       any              `json:"data"`
	Message    string           `json:"message"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

// ErrorResponse is the error envelope of every endpoint.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Field   string   `json:"field,omitempty"`
	Details []string `json:"details,omitempty"`
}
