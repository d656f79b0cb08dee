package accounting

import (
	"fmt"
	"time"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
)

const periodLayout = "2006-01"

var journalTypePrefixes = map[domain.JournalType]string{
	domain.JournalTypeManual:     "JM",
	domain.JournalTypePurchase:   "JP",
	domain.JournalTypeSales:      "JS",
	domain.JournalTypePayment:    "JY",
	domain.JournalTypeReceipt:    "JR",
	domain.JournalTypeAdjustment: "JA",
	domain.JournalTypeOpening:    "JO",
	domain.JournalTypeClosing:    "JC",
}

// JournalTypePrefix returns the number prefix for a journal type.
func JournalTypePrefix(journalType domain.JournalType) (string, bool) {
	prefix, ok := journalTypePrefixes[journalType]
	return prefix, ok
}

// GenerateJournalNumber formats PREFIX/YYYYMM/00001.
func GenerateJournalNumber(journalType domain.JournalType, date time.Time, sequence int) (string, error) {
	prefix, ok := journalTypePrefixes[journalType]
	if !ok {
		return "", fmt.Errorf("unknown journal type %q", journalType)
	}
	if sequence <= 0 {
		return "", fmt.Errorf("sequence must be positive, got %d", sequence)
	}
	return fmt.Sprintf("%s/%s/%05d", prefix, date.Format("200601"), sequence), nil
}

// GetPeriodFromDate returns the YYYY-MM accounting bucket of a date.
func GetPeriodFromDate(date time.Time) string {
	return date.Format(periodLayout)
}

// ParsePeriod validates a YYYY-MM string.
func ParsePeriod(period string) (time.Time, error) {
	t, err := time.Parse(periodLayout, period)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period %q, expected YYYY-MM: %w", period, err)
	}
	return t, nil
}
