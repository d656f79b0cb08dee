package accounting

import (
	"fmt"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places amounts are stored with.
const AmountScale = 4

// BalanceTolerance is the largest debit/credit difference still treated as balanced.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// Totals holds the summed sides of a set of journal lines.
type Totals struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// ValidateJournalLines checks the shape of a line set and returns every violation found.
// Fewer than two lines short-circuits, since line-level checks are meaningless without it.
func ValidateJournalLines(lines []domain.JournalLine) []string {
	if len(lines) < 2 {
		return []string{"Journal must have at least 2 lines"}
	}

	var violations []string
	seen := make(map[int]struct{}, len(lines))
	for _, line := range lines {
		prefix := fmt.Sprintf("Line %d: ", line.LineNumber)

		if _, dup := seen[line.LineNumber]; dup {
			violations = append(violations, prefix+"Duplicate line number")
		}
		seen[line.LineNumber] = struct{}{}

		if line.AccountID == "" {
			violations = append(violations, prefix+"Account is required")
		}

		debit, credit := line.DebitAmount, line.CreditAmount
		switch {
		case debit.IsNegative() || credit.IsNegative():
			violations = append(violations, prefix+"Amounts cannot be negative")
		case debit.IsZero() && credit.IsZero():
			violations = append(violations, prefix+"Either debit or credit amount is required")
		case debit.IsPositive() && credit.IsPositive():
			violations = append(violations, prefix+"A line cannot have both debit and credit amounts")
		}
		if !fitsAmountScale(debit) || !fitsAmountScale(credit) {
			violations = append(violations, prefix+fmt.Sprintf("Amounts support at most %d decimal places", AmountScale))
		}
	}
	return violations
}

func fitsAmountScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

// CalculateTotals sums the debit and credit sides.
func CalculateTotals(lines []domain.JournalLine) Totals {
	totals := Totals{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, line := range lines {
		totals.TotalDebit = totals.TotalDebit.Add(line.DebitAmount)
		totals.TotalCredit = totals.TotalCredit.Add(line.CreditAmount)
	}
	return totals
}

// IsBalanced reports whether the two sides agree within BalanceTolerance.
func (t Totals) IsBalanced() bool {
	return t.TotalDebit.Sub(t.TotalCredit).Abs().LessThan(BalanceTolerance)
}

// ValidateJournalBalance reports whether sum(debit) - sum(credit) is within tolerance.
func ValidateJournalBalance(lines []domain.JournalLine) bool {
	return CalculateTotals(lines).IsBalanced()
}

// CalculateAccountBalance summarises lines as debit, credit and debit-minus-credit.
func CalculateAccountBalance(lines []domain.JournalLine) domain.AccountBalance {
	totals := CalculateTotals(lines)
	return domain.AccountBalance{
		TotalDebit:  totals.TotalDebit,
		TotalCredit: totals.TotalCredit,
		Balance:     totals.TotalDebit.Sub(totals.TotalCredit),
	}
}

// DescribeLine normalises a debit/credit pair into a direction and a magnitude.
func DescribeLine(line domain.JournalLine) (isDebit bool, amount decimal.Decimal) {
	if line.DebitAmount.IsPositive() {
		return true, line.DebitAmount
	}
	return false, line.CreditAmount
}

// ApplyExchangeRate mirrors the header currency onto each line and derives base amounts.
func ApplyExchangeRate(lines []domain.JournalLine, currency string, rate decimal.Decimal) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		line.Currency = currency
		line.ExchangeRate = rate
		line.BaseDebitAmount = line.DebitAmount.Mul(rate).Round(AmountScale)
		line.BaseCreditAmount = line.CreditAmount.Mul(rate).Round(AmountScale)
		out[i] = line
	}
	return out
}

// ReverseLines mirrors a line set: debit and credit swap, everything else is kept.
// Ids are cleared and lines renumbered from 1 in their original order.
func ReverseLines(lines []domain.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		out[i] = domain.JournalLine{
			LineNumber:   i + 1,
			AccountID:    line.AccountID,
			Description:  line.Description,
			DebitAmount:  line.CreditAmount,
			CreditAmount: line.DebitAmount,
			CostCenterID: line.CostCenterID,
			ProjectID:    line.ProjectID,
		}
	}
	return out
}
