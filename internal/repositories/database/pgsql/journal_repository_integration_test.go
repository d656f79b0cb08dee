package pgsql_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/SscSPs/erp_journal_engine/internal/apperrors"
	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_journal_engine/internal/core/ports/services"
	"github.com/SscSPs/erp_journal_engine/internal/core/services"
	"github.com/SscSPs/erp_journal_engine/internal/dto"
	"github.com/SscSPs/erp_journal_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/erp_journal_engine/pkg/database"
)

const migrationsDir = "../../../../migrations"

type JournalRepositoryIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
	journals  portssvc.JournalSvcFacade
	lines     portssvc.JournalLineSvc
}

type company struct {
	auth  domain.AuthContext
	cash  string
	sales string
	total string // header account, not postable
}

func (s *JournalRepositoryIntegrationSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("skipping postgres integration tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(s.T())

	s.ctx = context.Background()
	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("journal_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err, "Failed to start PostgreSQL container")
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(database.MigrateUp(logger, dsn, migrationsDir))

	s.pool, err = database.NewPgxPool(s.ctx, dsn, 10, true)
	s.Require().NoError(err)

	s.repos = pgsql.NewRepositoryProvider(s.pool)
	accounts := services.NewChartOfAccountsValidator(s.repos.AccountRepo)
	periods := services.NewFiscalPeriodService(s.repos.FiscalPeriodRepo)
	s.journals = services.NewJournalService(s.repos.JournalRepo, accounts, periods,
		services.WithCreateRetry(5, 10*time.Millisecond))
	s.lines = services.NewJournalLineService(s.repos.JournalLineRepo)
}

func (s *JournalRepositoryIntegrationSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
	if s.container != nil {
		if err := s.container.Terminate(context.Background()); err != nil {
			s.T().Logf("failed to terminate container: %v", err)
		}
	}
}

// seedCompany creates a chart of accounts and fiscal periods for a fresh company.
// 2024-02 is closed, 2024-03 and 2024-04 are open.
func (s *JournalRepositoryIntegrationSuite) seedCompany() company {
	c := company{
		auth:  domain.AuthContext{UserID: uuid.NewString(), CompanyID: uuid.NewString()},
		cash:  uuid.NewString(),
		sales: uuid.NewString(),
		total: uuid.NewString(),
	}

	_, err := s.pool.Exec(s.ctx, `
		INSERT INTO chart_of_accounts (id, company_id, code, name, account_type, is_postable)
		VALUES ($1, $4, '1100', 'Cash', 'ASSET', TRUE),
		       ($2, $4, '4100', 'Sales', 'REVENUE', TRUE),
		       ($3, $4, '1000', 'Current Assets', 'ASSET', FALSE)`,
		c.cash, c.sales, c.total, c.auth.CompanyID)
	s.Require().NoError(err)

	_, err = s.pool.Exec(s.ctx, `
		INSERT INTO fiscal_periods (id, company_id, period, start_date, end_date, status)
		VALUES ($1, $4, '2024-02', '2024-02-01', '2024-02-29', 'CLOSED'),
		       ($2, $4, '2024-03', '2024-03-01', '2024-03-31', 'OPEN'),
		       ($3, $4, '2024-04', '2024-04-01', '2024-04-30', 'OPEN')`,
		uuid.NewString(), uuid.NewString(), uuid.NewString(), c.auth.CompanyID)
	s.Require().NoError(err)
	return c
}

func (s *JournalRepositoryIntegrationSuite) saleRequest(c company, date string, value int64) dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		JournalType: domain.JournalTypeSales,
		JournalDate: date,
		Description: "Cash sale",
		Lines: []dto.JournalLineRequest{
			{AccountID: c.cash, DebitAmount: decimal.NewFromInt(value)},
			{AccountID: c.sales, CreditAmount: decimal.NewFromInt(value)},
		},
	}
}

func (s *JournalRepositoryIntegrationSuite) createApproved(c company, date string, value int64) *domain.JournalHeader {
	j, err := s.journals.CreateJournal(s.ctx, c.auth, s.saleRequest(c, date, value))
	s.Require().NoError(err)
	_, err = s.journals.SubmitJournal(s.ctx, c.auth, j.ID)
	s.Require().NoError(err)
	approved, err := s.journals.ApproveJournal(s.ctx, c.auth, j.ID)
	s.Require().NoError(err)
	return approved
}

func (s *JournalRepositoryIntegrationSuite) requireCode(err error, code string) {
	s.Require().Error(err)
	appErr, ok := apperrors.As(err)
	s.Require().True(ok, "expected AppError, got %v", err)
	s.Equal(code, appErr.Code)
}

func (s *JournalRepositoryIntegrationSuite) TestLifecycleAndReversal() {
	c := s.seedCompany()

	created, err := s.journals.CreateJournal(s.ctx, c.auth, s.saleRequest(c, "2024-03-15", 1500))
	s.Require().NoError(err)
	s.Equal("JS/202403/00001", created.JournalNumber)
	s.Equal(domain.StatusDraft, created.Status)
	s.Require().Len(created.Lines, 2)
	s.True(created.Lines[0].BaseDebitAmount.Equal(decimal.NewFromInt(1500)))

	_, err = s.journals.SubmitJournal(s.ctx, c.auth, created.ID)
	s.Require().NoError(err)
	approved, err := s.journals.ApproveJournal(s.ctx, c.auth, created.ID)
	s.Require().NoError(err)
	s.NotNil(approved.ApprovedAt)

	posted, err := s.journals.PostJournal(s.ctx, c.auth, created.ID)
	s.Require().NoError(err)
	s.Equal(domain.StatusPosted, posted.Status)
	s.Equal(c.auth.UserID, *posted.PostedBy)

	_, err = s.journals.PostJournal(s.ctx, c.auth, created.ID)
	s.requireCode(err, apperrors.CodeInvalidStatusTransition)
	appErr, _ := apperrors.As(err)
	s.Equal([]string{"POSTED", "POSTED"}, appErr.Details)

	tb, err := s.lines.GetTrialBalance(s.ctx, c.auth, domain.LineFilter{})
	s.Require().NoError(err)
	s.True(tb.IsBalanced)
	s.Len(tb.Accounts, 2)
	s.True(tb.TotalDebit.Equal(decimal.NewFromInt(1500)))

	reversalDate := "2024-04-02"
	reversal, err := s.journals.ReverseJournal(s.ctx, c.auth, created.ID, dto.ReverseJournalRequest{
		ReversalReason: "customer refund",
		ReversalDate:   &reversalDate,
	})
	s.Require().NoError(err)
	s.Equal(domain.StatusPosted, reversal.Status)
	s.Equal("JS/202404/00001", reversal.JournalNumber)
	s.Require().NotNil(reversal.ReversalOfID)
	s.Equal(created.ID, *reversal.ReversalOfID)
	s.True(reversal.Lines[0].CreditAmount.Equal(decimal.NewFromInt(1500)))

	original, err := s.journals.GetJournalByID(s.ctx, c.auth, created.ID, false)
	s.Require().NoError(err)
	s.True(original.IsReversed)
	s.Equal(domain.StatusPosted, original.Status)
	s.Equal(reversal.ID, *original.ReversedBy)

	_, err = s.journals.ReverseJournal(s.ctx, c.auth, created.ID, dto.ReverseJournalRequest{ReversalReason: "again"})
	s.requireCode(err, apperrors.CodeAlreadyReversed)

	// Both sides of a reversal drop out of default reports.
	tb, err = s.lines.GetTrialBalance(s.ctx, c.auth, domain.LineFilter{})
	s.Require().NoError(err)
	s.Empty(tb.Accounts)

	withReversed, err := s.lines.GetTrialBalance(s.ctx, c.auth, domain.LineFilter{IncludeReversed: true})
	s.Require().NoError(err)
	s.True(withReversed.IsBalanced)
	s.True(withReversed.TotalDebit.Equal(decimal.NewFromInt(3000)))

	report, err := s.lines.VerifyIntegrity(s.ctx, c.auth.CompanyID)
	s.Require().NoError(err)
	s.True(report.Healthy())
}

func (s *JournalRepositoryIntegrationSuite) TestPostRefusesClosedPeriod() {
	c := s.seedCompany()
	approved := s.createApproved(c, "2024-02-10", 200)

	_, err := s.journals.PostJournal(s.ctx, c.auth, approved.ID)
	s.requireCode(err, apperrors.CodePeriodClosed)

	// A period without a row is closed too.
	approved = s.createApproved(c, "2024-05-10", 200)
	_, err = s.journals.PostJournal(s.ctx, c.auth, approved.ID)
	s.requireCode(err, apperrors.CodePeriodClosed)
}

func (s *JournalRepositoryIntegrationSuite) TestStaleStatusTransitionIsRejected() {
	c := s.seedCompany()
	j, err := s.journals.CreateJournal(s.ctx, c.auth, s.saleRequest(c, "2024-03-01", 50))
	s.Require().NoError(err)

	err = s.repos.JournalRepo.UpdateJournalStatus(s.ctx, c.auth.CompanyID, j.ID, domain.StatusChange{
		From:    domain.StatusSubmitted,
		To:      domain.StatusApproved,
		ActorID: c.auth.UserID,
		At:      time.Now().UTC(),
	})
	s.requireCode(err, apperrors.CodeInvalidStatusTransition)
}

func (s *JournalRepositoryIntegrationSuite) TestAccountsMustBePostable() {
	c := s.seedCompany()
	req := s.saleRequest(c, "2024-03-15", 10)
	req.Lines[0].AccountID = c.total

	_, err := s.journals.CreateJournal(s.ctx, c.auth, req)
	s.requireCode(err, apperrors.CodeAccountNotPostable)

	req.Lines[0].AccountID = uuid.NewString()
	_, err = s.journals.CreateJournal(s.ctx, c.auth, req)
	s.requireCode(err, apperrors.CodeValidation)
}

func (s *JournalRepositoryIntegrationSuite) TestConcurrentCreatesGetDistinctNumbers() {
	c := s.seedCompany()
	const workers = 8

	var wg sync.WaitGroup
	numbers := make([]string, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			j, err := s.journals.CreateJournal(s.ctx, c.auth, s.saleRequest(c, "2024-03-20", int64(i+1)))
			errs[i] = err
			if err == nil {
				numbers[i] = j.JournalNumber
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		s.Require().NoError(err)
	}
	sort.Strings(numbers)
	for i, n := range numbers {
		s.Equal(fmt.Sprintf("JS/202403/%05d", i+1), n)
	}
}

func (s *JournalRepositoryIntegrationSuite) TestSoftDeleteAndRestore() {
	c := s.seedCompany()
	j, err := s.journals.CreateJournal(s.ctx, c.auth, s.saleRequest(c, "2024-03-05", 75))
	s.Require().NoError(err)

	s.Require().NoError(s.journals.DeleteJournal(s.ctx, c.auth, j.ID))

	_, err = s.journals.GetJournalByID(s.ctx, c.auth, j.ID, false)
	s.requireCode(err, apperrors.CodeNotFound)

	deleted, err := s.journals.GetJournalByID(s.ctx, c.auth, j.ID, true)
	s.Require().NoError(err)
	s.True(deleted.IsDeleted())

	list, total, err := s.journals.ListJournals(s.ctx, c.auth, domain.JournalFilter{}, domain.Page{Page: 1, Limit: 20}, false)
	s.Require().NoError(err)
	s.Zero(total)
	s.Empty(list)

	restored, err := s.journals.RestoreJournal(s.ctx, c.auth, j.ID)
	s.Require().NoError(err)
	s.False(restored.IsDeleted())
	s.Equal(j.JournalNumber, restored.JournalNumber)
}

func (s *JournalRepositoryIntegrationSuite) TestListJournalsWithLinesAndLineQueries() {
	c := s.seedCompany()
	for i := 1; i <= 3; i++ {
		approved := s.createApproved(c, fmt.Sprintf("2024-03-%02d", i), int64(i*100))
		_, err := s.journals.PostJournal(s.ctx, c.auth, approved.ID)
		s.Require().NoError(err)
	}
	_, err := s.journals.CreateJournal(s.ctx, c.auth, s.saleRequest(c, "2024-03-28", 999))
	s.Require().NoError(err)

	posted := domain.StatusPosted
	journals, total, err := s.journals.ListJournals(s.ctx, c.auth, domain.JournalFilter{Status: &posted}, domain.Page{Page: 1, Limit: 2}, true)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Len(journals, 2)
	for _, j := range journals {
		s.Len(j.Lines, 2)
	}

	_, total, err = s.journals.ListJournals(s.ctx, c.auth, domain.JournalFilter{Search: "202403/00001"}, domain.Page{Page: 1, Limit: 10}, false)
	s.Require().NoError(err)
	s.Equal(1, total)

	// Wildcards in the search term are literal
	_, total, err = s.journals.ListJournals(s.ctx, c.auth, domain.JournalFilter{Search: "202403/0000_"}, domain.Page{Page: 1, Limit: 10}, false)
	s.Require().NoError(err)
	s.Equal(0, total)

	lines, lineTotal, balance, err := s.lines.ListByAccount(s.ctx, c.auth, c.cash, domain.LineFilter{}, domain.Page{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(4, lineTotal, "drafts are listed, only posted lines count in the balance")
	s.Len(lines, 4)
	s.True(balance.Balance.Equal(decimal.NewFromInt(600)))
}

func (s *JournalRepositoryIntegrationSuite) TestIntegrityDetectsTamperedTotals() {
	c := s.seedCompany()
	approved := s.createApproved(c, "2024-03-12", 300)
	_, err := s.journals.PostJournal(s.ctx, c.auth, approved.ID)
	s.Require().NoError(err)

	_, err = s.pool.Exec(s.ctx, `UPDATE journal_headers SET total_debit = 999 WHERE id = $1`, approved.ID)
	s.Require().NoError(err)

	report, err := s.lines.VerifyIntegrity(s.ctx, c.auth.CompanyID)
	s.Require().NoError(err)
	s.False(report.Healthy())
	s.Require().Len(report.Issues, 1)
	s.Equal(approved.ID, report.Issues[0].JournalID)
	s.NotEmpty(report.Issues[0].Problems)
}

func (s *JournalRepositoryIntegrationSuite) TestAuditEntriesArePersisted() {
	c := s.seedCompany()
	audit := services.NewAuditService(s.repos.AuditLogRepo, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	accounts := services.NewChartOfAccountsValidator(s.repos.AccountRepo)
	periods := services.NewFiscalPeriodService(s.repos.FiscalPeriodRepo)
	journals := services.NewJournalService(s.repos.JournalRepo, accounts, periods, services.WithAuditSink(audit))

	j, err := journals.CreateJournal(s.ctx, c.auth, s.saleRequest(c, "2024-03-15", 40))
	s.Require().NoError(err)
	_, err = journals.SubmitJournal(s.ctx, c.auth, j.ID)
	s.Require().NoError(err)
	s.Require().NoError(audit.Close())

	var count int
	err = s.pool.QueryRow(s.ctx, `SELECT COUNT(*) FROM audit_logs WHERE company_id = $1 AND entity_id = $2`, c.auth.CompanyID, j.ID).Scan(&count)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func TestJournalRepositoryIntegration(t *testing.T) {
	suite.Run(t, new(JournalRepositoryIntegrationSuite))
}
