package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_journal_engine/internal/core/ports/services"
	"github.com/SscSPs/erp_journal_engine/internal/utils/accounting"
)

// journalLineService is the read side used by ledgers and reports.
type journalLineService struct {
	BaseService
	lineRepo portsrepo.JournalLineRepositoryFacade
}

// NewJournalLineService creates a new journal line query service.
func NewJournalLineService(lineRepo portsrepo.JournalLineRepositoryFacade) portssvc.JournalLineSvc {
	return &journalLineService{lineRepo: lineRepo}
}

var _ portssvc.JournalLineSvc = (*journalLineService)(nil)

func (s *journalLineService) ListByJournal(ctx context.Context, auth domain.AuthContext, journalID string) ([]domain.LineWithDetails, error) {
	return s.lineRepo.ListLinesByJournal(ctx, auth.CompanyID, journalID)
}

func (s *journalLineService) ListLines(ctx context.Context, auth domain.AuthContext, filter domain.LineFilter, page domain.Page) ([]domain.LineWithDetails, int, error) {
	return s.lineRepo.ListLines(ctx, auth.CompanyID, filter, page)
}

// ListByAccount returns a page of lines and the balance over every matching line,
// not just the page.
func (s *journalLineService) ListByAccount(ctx context.Context, auth domain.AuthContext, accountID string, filter domain.LineFilter, page domain.Page) ([]domain.LineWithDetails, int, domain.AccountBalance, error) {
	lines, total, err := s.lineRepo.ListLinesByAccount(ctx, auth.CompanyID, accountID, filter, page)
	if err != nil {
		return nil, 0, domain.AccountBalance{}, err
	}

	balance, err := s.lineRepo.GetAccountBalance(ctx, auth.CompanyID, accountID, filter)
	if err != nil {
		return nil, 0, domain.AccountBalance{}, err
	}
	return lines, total, balance, nil
}

// GetTrialBalance sums every account's activity and checks the two sides agree.
func (s *journalLineService) GetTrialBalance(ctx context.Context, auth domain.AuthContext, filter domain.LineFilter) (*domain.TrialBalance, error) {
	summaries, err := s.lineRepo.GetAccountSummaries(ctx, auth.CompanyID, filter)
	if err != nil {
		return nil, err
	}

	totals := accounting.Totals{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, row := range summaries {
		totals.TotalDebit = totals.TotalDebit.Add(row.TotalDebit)
		totals.TotalCredit = totals.TotalCredit.Add(row.TotalCredit)
	}
	if summaries == nil {
		summaries = []domain.AccountSummary{}
	}

	return &domain.TrialBalance{
		Accounts:    summaries,
		TotalDebit:  totals.TotalDebit,
		TotalCredit: totals.TotalCredit,
		IsBalanced:  totals.IsBalanced(),
	}, nil
}

// VerifyIntegrity re-validates a company's stored journals: the POSTED trial
// balance must balance and no live journal may contradict its own lines.
func (s *journalLineService) VerifyIntegrity(ctx context.Context, companyID string) (*domain.IntegrityReport, error) {
	auth := domain.AuthContext{CompanyID: companyID}
	trialBalance, err := s.GetTrialBalance(ctx, auth, domain.LineFilter{})
	if err != nil {
		return nil, err
	}

	found, err := s.lineRepo.FindIntegrityIssues(ctx, companyID)
	if err != nil {
		return nil, err
	}

	issues := make([]domain.IntegrityIssue, 0, len(found))
	for _, issue := range found {
		issue.Problems = accounting.DescribeIntegrityProblems(issue)
		if len(issue.Problems) == 0 {
			continue
		}
		issues = append(issues, issue)
	}

	report := &domain.IntegrityReport{TrialBalance: *trialBalance, Issues: issues}
	if !report.Healthy() {
		s.LogWarn(ctx, "Journal integrity check found problems",
			slog.String("company_id", companyID),
			slog.Bool("trial_balance_balanced", trialBalance.IsBalanced),
			slog.Int("issues", len(issues)))
	}
	return report, nil
}
