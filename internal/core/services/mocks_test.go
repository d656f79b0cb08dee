package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_journal_engine/internal/core/ports/services"
	"github.com/SscSPs/erp_journal_engine/pkg/cache"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

// WithinTx runs fn against the mock itself; commit and rollback are covered by
// the repository integration tests.
func (m *MockJournalRepository) WithinTx(ctx context.Context, fn func(repo portsrepo.JournalRepositoryWithTx) error) error {
	return fn(m)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, companyID, journalID string, includeDeleted bool) (*domain.JournalHeader, error) {
	args := m.Called(ctx, companyID, journalID, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalHeader), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, companyID string, filter domain.JournalFilter, page domain.Page) ([]domain.JournalHeader, int, error) {
	args := m.Called(ctx, companyID, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.JournalHeader), args.Int(1), args.Error(2)
}

func (m *MockJournalRepository) FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, journalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) CreateJournalWithLines(ctx context.Context, header domain.JournalHeader, lines []domain.JournalLine) error {
	args := m.Called(ctx, header, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournalWithLines(ctx context.Context, header domain.JournalHeader, lines []domain.JournalLine) error {
	args := m.Called(ctx, header, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournalStatus(ctx context.Context, companyID, journalID string, change domain.StatusChange) error {
	args := m.Called(ctx, companyID, journalID, change)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkJournalReversed(ctx context.Context, companyID, journalID, reversalJournalID, reason string, at time.Time, userID string) error {
	args := m.Called(ctx, companyID, journalID, reversalJournalID, reason, at, userID)
	return args.Error(0)
}

func (m *MockJournalRepository) SoftDeleteJournal(ctx context.Context, companyID, journalID, userID string, at time.Time) error {
	args := m.Called(ctx, companyID, journalID, userID, at)
	return args.Error(0)
}

func (m *MockJournalRepository) RestoreJournal(ctx context.Context, companyID, journalID, userID string, at time.Time) error {
	args := m.Called(ctx, companyID, journalID, userID, at)
	return args.Error(0)
}

func (m *MockJournalRepository) GetNextSequence(ctx context.Context, companyID string, journalType domain.JournalType, period string) (int, error) {
	args := m.Called(ctx, companyID, journalType, period)
	return args.Int(0), args.Error(1)
}

// --- Mock JournalLineRepository ---
type MockJournalLineRepository struct {
	mock.Mock
}

var _ portsrepo.JournalLineRepositoryFacade = (*MockJournalLineRepository)(nil)

func (m *MockJournalLineRepository) ListLinesByJournal(ctx context.Context, companyID, journalID string) ([]domain.LineWithDetails, error) {
	args := m.Called(ctx, companyID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineWithDetails), args.Error(1)
}

func (m *MockJournalLineRepository) ListLines(ctx context.Context, companyID string, filter domain.LineFilter, page domain.Page) ([]domain.LineWithDetails, int, error) {
	args := m.Called(ctx, companyID, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.LineWithDetails), args.Int(1), args.Error(2)
}

func (m *MockJournalLineRepository) ListLinesByAccount(ctx context.Context, companyID, accountID string, filter domain.LineFilter, page domain.Page) ([]domain.LineWithDetails, int, error) {
	args := m.Called(ctx, companyID, accountID, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.LineWithDetails), args.Int(1), args.Error(2)
}

func (m *MockJournalLineRepository) GetAccountBalance(ctx context.Context, companyID, accountID string, filter domain.LineFilter) (domain.AccountBalance, error) {
	args := m.Called(ctx, companyID, accountID, filter)
	return args.Get(0).(domain.AccountBalance), args.Error(1)
}

func (m *MockJournalLineRepository) GetAccountSummaries(ctx context.Context, companyID string, filter domain.LineFilter) ([]domain.AccountSummary, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountSummary), args.Error(1)
}

func (m *MockJournalLineRepository) FindIntegrityIssues(ctx context.Context, companyID string) ([]domain.IntegrityIssue, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IntegrityIssue), args.Error(1)
}

// --- Mock ChartOfAccountsRepository ---
type MockChartOfAccountsRepository struct {
	mock.Mock
}

var _ portsrepo.ChartOfAccountsRepository = (*MockChartOfAccountsRepository)(nil)

func (m *MockChartOfAccountsRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.ChartAccount, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ChartAccount), args.Error(1)
}

// --- Mock FiscalPeriodRepository ---
type MockFiscalPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalPeriodRepository = (*MockFiscalPeriodRepository)(nil)

func (m *MockFiscalPeriodRepository) FindFiscalPeriod(ctx context.Context, companyID, period string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

// --- Mock collaborators ---
type MockAccountsValidator struct {
	mock.Mock
}

var _ portssvc.ChartOfAccountsValidator = (*MockAccountsValidator)(nil)

func (m *MockAccountsValidator) ValidateAccounts(ctx context.Context, companyID string, accountIDs []string) error {
	args := m.Called(ctx, companyID, accountIDs)
	return args.Error(0)
}

type MockPeriodReader struct {
	mock.Mock
}

var _ portssvc.FiscalPeriodReader = (*MockPeriodReader)(nil)

func (m *MockPeriodReader) IsPeriodOpen(ctx context.Context, companyID, period string) (bool, error) {
	args := m.Called(ctx, companyID, period)
	return args.Bool(0), args.Error(1)
}

// recordingAuditSink keeps every entry in memory.
type recordingAuditSink struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *recordingAuditSink) Record(_ context.Context, entry domain.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingAuditSink) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Action
	}
	return out
}

// --- Mock cache.Store ---
type MockStore struct {
	mock.Mock
}

var _ cache.Store = (*MockStore)(nil)

func (m *MockStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// --- Mock AuditLogRepository ---
type MockAuditLogRepository struct {
	mock.Mock
}

var _ portsrepo.AuditLogRepository = (*MockAuditLogRepository)(nil)

func (m *MockAuditLogRepository) SaveAuditEntries(ctx context.Context, entries []domain.AuditEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}
