package accounting

import (
	"fmt"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
)

// DescribeIntegrityProblems explains why a re-aggregated journal is inconsistent.
// An empty result means the issue is not actually a problem.
func DescribeIntegrityProblems(issue domain.IntegrityIssue) []string {
	var problems []string

	switch {
	case issue.LineCount == 0:
		problems = append(problems, "journal has no lines")
	case issue.LineCount < 2:
		problems = append(problems, fmt.Sprintf("journal has %d line, at least 2 are required", issue.LineCount))
	}

	lines := Totals{TotalDebit: issue.LineDebit, TotalCredit: issue.LineCredit}
	if issue.LineCount > 0 && !lines.IsBalanced() {
		problems = append(problems, fmt.Sprintf("lines are not balanced: debit %s, credit %s",
			issue.LineDebit.String(), issue.LineCredit.String()))
	}

	if !issue.LineDebit.Equal(issue.HeaderDebit) || !issue.LineCredit.Equal(issue.HeaderCredit) {
		problems = append(problems, fmt.Sprintf("header totals %s/%s differ from line totals %s/%s",
			issue.HeaderDebit.String(), issue.HeaderCredit.String(),
			issue.LineDebit.String(), issue.LineCredit.String()))
	}
	return problems
}
