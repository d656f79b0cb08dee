package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
)

func TestDescribeIntegrityProblems(t *testing.T) {
	d := decimal.RequireFromString

	tests := []struct {
		name  string
		issue domain.IntegrityIssue
		want  []string
	}{
		{
			name: "consistent journal",
			issue: domain.IntegrityIssue{
				HeaderDebit: d("100"), HeaderCredit: d("100"),
				LineDebit: d("100"), LineCredit: d("100"),
				LineCount: 2,
			},
			want: nil,
		},
		{
			name: "no lines",
			issue: domain.IntegrityIssue{
				HeaderDebit: d("0"), HeaderCredit: d("0"),
				LineDebit: d("0"), LineCredit: d("0"),
			},
			want: []string{"journal has no lines"},
		},
		{
			name: "single line",
			issue: domain.IntegrityIssue{
				HeaderDebit: d("50"), HeaderCredit: d("0"),
				LineDebit: d("50"), LineCredit: d("0"),
				LineCount: 1,
			},
			want: []string{
				"journal has 1 line, at least 2 are required",
				"lines are not balanced: debit 50, credit 0",
			},
		},
		{
			name: "header drifted from lines",
			issue: domain.IntegrityIssue{
				HeaderDebit: d("120"), HeaderCredit: d("120"),
				LineDebit: d("100"), LineCredit: d("100"),
				LineCount: 3,
			},
			want: []string{"header totals 120/120 differ from line totals 100/100"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescribeIntegrityProblems(tt.issue))
		})
	}
}
