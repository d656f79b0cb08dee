package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestJournalType_IsValid(t *testing.T) {
	tests := []struct {
		name        string
		journalType domain.JournalType
		want        bool
	}{
		{name: "manual", journalType: domain.JournalTypeManual, want: true},
		{name: "closing", journalType: domain.JournalTypeClosing, want: true},
		{name: "lowercase is rejected", journalType: domain.JournalType("sales"), want: false},
		{name: "empty", journalType: domain.JournalType(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.journalType.IsValid())
		})
	}
}

func TestJournalStatus_IsDeletable(t *testing.T) {
	deletable := map[domain.JournalStatus]bool{
		domain.StatusDraft:     true,
		domain.StatusRejected:  true,
		domain.StatusSubmitted: false,
		domain.StatusApproved:  false,
		domain.StatusPosted:    false,
		domain.StatusReversed:  false,
	}
	for status, want := range deletable {
		assert.Equal(t, want, status.IsDeletable(), string(status))
		assert.True(t, status.IsValid(), string(status))
	}
	assert.False(t, domain.JournalStatus("VOID").IsValid())
}

func TestSoftDeleteFields_IsDeleted(t *testing.T) {
	now := time.Now()
	assert.False(t, domain.SoftDeleteFields{}.IsDeleted())
	assert.True(t, domain.SoftDeleteFields{DeletedAt: &now}.IsDeleted())
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, domain.Page{Page: 0, Limit: 20}.Offset())
	assert.Equal(t, 0, domain.Page{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, domain.Page{Page: 3, Limit: 20}.Offset())
}

func TestChartAccount_CanReceiveLines(t *testing.T) {
	assert.True(t, domain.ChartAccount{IsActive: true, IsPostable: true}.CanReceiveLines())
	assert.False(t, domain.ChartAccount{IsActive: true, IsPostable: false}.CanReceiveLines())
	assert.False(t, domain.ChartAccount{IsActive: false, IsPostable: true}.CanReceiveLines())
}
