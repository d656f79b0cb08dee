package pagination

import "github.com/SscSPs/erp_journal_engine/internal/core/domain"

const (
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit far from integer overflow.
	MaxPage = 1_000_000
)

// Meta is the pagination block returned next to list results.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Resolve clamps a requested page/limit pair into a usable domain.Page.
func Resolve(page, limit int) domain.Page {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return domain.Page{Page: page, Limit: limit}
}

// NewMeta builds the response block for a page and a total row count.
func NewMeta(p domain.Page, total int) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
