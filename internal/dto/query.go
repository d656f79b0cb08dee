package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
)

// ListJournalsQuery binds the query string of GET /journals.
type ListJournalsQuery struct {
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=journal_date journal_number created_at total_debit status"`
	SortOrder   string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
	BranchID    string `form:"branch_id"`
	JournalType string `form:"journal_type" binding:"omitempty,journal_type"`
	Status      string `form:"status" binding:"omitempty,journal_status"`
	DateFrom    string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo      string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Period      string `form:"period" binding:"omitempty,period"`
	Search      string `form:"search" binding:"max=100"`
	ShowDeleted bool   `form:"show_deleted"`
	WithLines   bool   `form:"with_lines"`
	// WithLinesFlag accepts the legacy withLines=1 spelling.
	WithLinesFlag string `form:"withLines"`
}

// IncludeLines reports whether either spelling of the with-lines flag is set.
func (q ListJournalsQuery) IncludeLines() bool {
	return q.WithLines || q.WithLinesFlag == "1" || strings.EqualFold(q.WithLinesFlag, "true")
}

// ToFilter converts the bound query into a domain filter. Dates are already
// format-checked by binding.
func (q ListJournalsQuery) ToFilter() (domain.JournalFilter, error) {
	f := domain.JournalFilter{
		Search:      strings.TrimSpace(q.Search),
		ShowDeleted: q.ShowDeleted,
		SortBy:      q.SortBy,
		SortOrder:   strings.ToUpper(q.SortOrder),
	}
	if q.BranchID != "" {
		f.BranchID = &q.BranchID
	}
	if q.JournalType != "" {
		jt := domain.JournalType(q.JournalType)
		f.JournalType = &jt
	}
	if q.Status != "" {
		st := domain.JournalStatus(strings.ToUpper(q.Status))
		f.Status = &st
	}
	if q.Period != "" {
		f.Period = &q.Period
	}
	var err error
	if f.DateFrom, err = optionalDate(q.DateFrom); err != nil {
		return f, err
	}
	if f.DateTo, err = optionalDate(q.DateTo); err != nil {
		return f, err
	}
	return f, nil
}

// LineQuery binds the query string of the journal line endpoints.
type LineQuery struct {
	Page            int    `form:"page"`
	Limit           int    `form:"limit"`
	AccountID       string `form:"account_id"`
	BranchID        string `form:"branch_id"`
	Status          string `form:"status"` // comma separated
	Period          string `form:"period" binding:"omitempty,period"`
	DateFrom        string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo          string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	IncludeReversed bool   `form:"include_reversed"`
	IncludeDeleted  bool   `form:"include_deleted"`
}

// ToFilter converts the bound query into a domain line filter.
func (q LineQuery) ToFilter() (domain.LineFilter, error) {
	f := domain.LineFilter{
		IncludeReversed: q.IncludeReversed,
		IncludeDeleted:  q.IncludeDeleted,
	}
	if q.AccountID != "" {
		f.AccountID = &q.AccountID
	}
	if q.BranchID != "" {
		f.BranchID = &q.BranchID
	}
	if q.Period != "" {
		f.Period = &q.Period
	}
	for _, s := range strings.Split(q.Status, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		status := domain.JournalStatus(s)
		if !status.IsValid() {
			return f, &InvalidQueryError{Field: "status", Value: s}
		}
		f.Statuses = append(f.Statuses, status)
	}
	var err error
	if f.DateFrom, err = optionalDate(q.DateFrom); err != nil {
		return f, err
	}
	if f.DateTo, err = optionalDate(q.DateTo); err != nil {
		return f, err
	}
	return f, nil
}

// InvalidQueryError reports a query parameter binding could not express.
type InvalidQueryError struct {
	Field string
	Value string
}

func (e *InvalidQueryError) Error() string {
	return "invalid value " + e.Value + " for " + e.Field
}

func optionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
