package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/SscSPs/erp_journal_engine/internal/apperrors"
	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_journal_engine/internal/core/ports/services"
)

type chartOfAccountsValidator struct {
	BaseService
	accountRepo portsrepo.ChartOfAccountsRepository
}

// NewChartOfAccountsValidator checks line accounts against the chart of accounts.
func NewChartOfAccountsValidator(accountRepo portsrepo.ChartOfAccountsRepository) portssvc.ChartOfAccountsValidator {
	return &chartOfAccountsValidator{accountRepo: accountRepo}
}

var _ portssvc.ChartOfAccountsValidator = (*chartOfAccountsValidator)(nil)

// ValidateAccounts loads every account in one query. Missing accounts are
// reported before unpostable ones.
func (v *chartOfAccountsValidator) ValidateAccounts(ctx context.Context, companyID string, accountIDs []string) error {
	if len(accountIDs) == 0 {
		return nil
	}

	accounts, err := v.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		v.LogError(ctx, err, "Failed to load accounts for validation", slog.String("company_id", companyID))
		return err
	}

	var missing, notPostable []string
	for _, id := range accountIDs {
		account, ok := accounts[id]
		switch {
		case !ok:
			missing = append(missing, id)
		case !account.CanReceiveLines():
			notPostable = append(notPostable, id)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		appErr := apperrors.NewValidationError("lines.account_id", "unknown accounts: "+strings.Join(missing, ", "))
		appErr.Details = missing
		return appErr
	}
	if len(notPostable) > 0 {
		sort.Strings(notPostable)
		return apperrors.NewAccountNotPostableError(notPostable)
	}
	return nil
}
