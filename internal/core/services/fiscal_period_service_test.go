package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/erp_journal_engine/internal/apperrors"
	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	"github.com/SscSPs/erp_journal_engine/internal/core/services"
)

const periodKey = "fiscal-period:company-1:2024-03"

type FiscalPeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockFiscalPeriodRepository
	mockStore      *MockStore
	ctx            context.Context
}

func (suite *FiscalPeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockFiscalPeriodRepository)
	suite.mockStore = new(MockStore)
	suite.ctx = context.Background()
}

func (suite *FiscalPeriodServiceTestSuite) period(status domain.FiscalPeriodStatus) *domain.FiscalPeriod {
	return &domain.FiscalPeriod{ID: "fp-1", CompanyID: "company-1", Period: "2024-03", Status: status}
}

func (suite *FiscalPeriodServiceTestSuite) TestWithoutCache() {
	svc := services.NewFiscalPeriodService(suite.mockPeriodRepo)
	suite.mockPeriodRepo.On("FindFiscalPeriod", mock.Anything, "company-1", "2024-03").Return(suite.period(domain.FiscalPeriodOpen), nil).Once()

	open, err := svc.IsPeriodOpen(suite.ctx, "company-1", "2024-03")

	suite.Require().NoError(err)
	suite.True(open)
}

func (suite *FiscalPeriodServiceTestSuite) TestMissingPeriodIsClosed() {
	svc := services.NewFiscalPeriodService(suite.mockPeriodRepo)
	suite.mockPeriodRepo.On("FindFiscalPeriod", mock.Anything, "company-1", "2024-03").
		Return(nil, apperrors.NewNotFoundError("fiscal period", "2024-03")).Once()

	open, err := svc.IsPeriodOpen(suite.ctx, "company-1", "2024-03")

	suite.Require().NoError(err)
	suite.False(open)
}

func (suite *FiscalPeriodServiceTestSuite) TestCachedClosedSkipsDatabase() {
	svc := services.NewFiscalPeriodService(suite.mockPeriodRepo, services.WithPeriodCache(suite.mockStore, time.Minute))
	suite.mockStore.On("Get", mock.Anything, periodKey).Return("CLOSED", true, nil).Once()

	open, err := svc.IsPeriodOpen(suite.ctx, "company-1", "2024-03")

	suite.Require().NoError(err)
	suite.False(open)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "FindFiscalPeriod", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalPeriodServiceTestSuite) TestOpenPeriodIsNotCached() {
	svc := services.NewFiscalPeriodService(suite.mockPeriodRepo, services.WithPeriodCache(suite.mockStore, time.Minute))
	suite.mockStore.On("Get", mock.Anything, periodKey).Return("", false, nil).Twice()
	suite.mockPeriodRepo.On("FindFiscalPeriod", mock.Anything, "company-1", "2024-03").Return(suite.period(domain.FiscalPeriodOpen), nil).Once()
	suite.mockPeriodRepo.On("FindFiscalPeriod", mock.Anything, "company-1", "2024-03").Return(suite.period(domain.FiscalPeriodClosed), nil).Once()
	suite.mockStore.On("Set", mock.Anything, periodKey, "CLOSED", time.Minute).Return(nil).Once()

	open, err := svc.IsPeriodOpen(suite.ctx, "company-1", "2024-03")
	suite.Require().NoError(err)
	suite.True(open)

	// The period is closed in the database between two posts
	open, err = svc.IsPeriodOpen(suite.ctx, "company-1", "2024-03")
	suite.Require().NoError(err)
	suite.False(open)

	suite.mockStore.AssertNumberOfCalls(suite.T(), "Set", 1)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *FiscalPeriodServiceTestSuite) TestStaleCachedOpenIsRereadAndDropped() {
	svc := services.NewFiscalPeriodService(suite.mockPeriodRepo, services.WithPeriodCache(suite.mockStore, time.Minute))
	suite.mockStore.On("Get", mock.Anything, periodKey).Return("OPEN", true, nil).Once()
	suite.mockStore.On("Delete", mock.Anything, []string{periodKey}).Return(nil).Once()
	suite.mockPeriodRepo.On("FindFiscalPeriod", mock.Anything, "company-1", "2024-03").Return(suite.period(domain.FiscalPeriodClosed), nil).Once()
	suite.mockStore.On("Set", mock.Anything, periodKey, "CLOSED", time.Minute).Return(nil).Once()

	open, err := svc.IsPeriodOpen(suite.ctx, "company-1", "2024-03")

	suite.Require().NoError(err)
	suite.False(open)
	suite.mockStore.AssertExpectations(suite.T())
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *FiscalPeriodServiceTestSuite) TestCachedMissingMarkerIsClosed() {
	svc := services.NewFiscalPeriodService(suite.mockPeriodRepo, services.WithPeriodCache(suite.mockStore, time.Minute))
	suite.mockStore.On("Get", mock.Anything, periodKey).Return("MISSING", true, nil).Once()

	open, err := svc.IsPeriodOpen(suite.ctx, "company-1", "2024-03")

	suite.Require().NoError(err)
	suite.False(open)
}

func (suite *FiscalPeriodServiceTestSuite) TestCacheMissStoresStatus() {
	svc := services.NewFiscalPeriodService(suite.mockPeriodRepo, services.WithPeriodCache(suite.mockStore, time.Minute))
	suite.mockStore.On("Get", mock.Anything, periodKey).Return("", false, nil).Once()
	suite.mockPeriodRepo.On("FindFiscalPeriod", mock.Anything, "company-1", "2024-03").Return(suite.period(domain.FiscalPeriodClosed), nil).Once()
	suite.mockStore.On("Set", mock.Anything, periodKey, "CLOSED", time.Minute).Return(nil).Once()

	open, err := svc.IsPeriodOpen(suite.ctx, "company-1", "2024-03")

	suite.Require().NoError(err)
	suite.False(open)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *FiscalPeriodServiceTestSuite) TestCacheMissCachesMissingMarker() {
	svc := services.NewFiscalPeriodService(suite.mockPeriodRepo, services.WithPeriodCache(suite.mockStore, 0))
	suite.mockStore.On("Get", mock.Anything, periodKey).Return("", false, nil).Once()
	suite.mockPeriodRepo.On("FindFiscalPeriod", mock.Anything, "company-1", "2024-03").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockStore.On("Set", mock.Anything, periodKey, "MISSING", 5*time.Minute).Return(nil).Once()

	open, err := svc.IsPeriodOpen(suite.ctx, "company-1", "2024-03")

	suite.Require().NoError(err)
	suite.False(open)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *FiscalPeriodServiceTestSuite) TestCacheFailuresFallBackToDatabase() {
	svc := services.NewFiscalPeriodService(suite.mockPeriodRepo, services.WithPeriodCache(suite.mockStore, time.Minute))
	suite.mockStore.On("Get", mock.Anything, periodKey).Return("", false, errors.New("redis down")).Once()
	suite.mockPeriodRepo.On("FindFiscalPeriod", mock.Anything, "company-1", "2024-03").Return(suite.period(domain.FiscalPeriodOpen), nil).Once()
	suite.mockPeriodRepo.On("FindFiscalPeriod", mock.Anything, "company-1", "2024-04").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockStore.On("Get", mock.Anything, "fiscal-period:company-1:2024-04").Return("", false, nil).Once()
	suite.mockStore.On("Set", mock.Anything, "fiscal-period:company-1:2024-04", "MISSING", time.Minute).Return(errors.New("redis down")).Once()

	open, err := svc.IsPeriodOpen(suite.ctx, "company-1", "2024-03")
	suite.Require().NoError(err)
	suite.True(open)

	open, err = svc.IsPeriodOpen(suite.ctx, "company-1", "2024-04")
	suite.Require().NoError(err)
	suite.False(open)
}

func (suite *FiscalPeriodServiceTestSuite) TestDatabaseErrorIsNotCached() {
	svc := services.NewFiscalPeriodService(suite.mockPeriodRepo, services.WithPeriodCache(suite.mockStore, time.Minute))
	suite.mockStore.On("Get", mock.Anything, periodKey).Return("", false, nil).Once()
	suite.mockPeriodRepo.On("FindFiscalPeriod", mock.Anything, "company-1", "2024-03").
		Return(nil, apperrors.NewDatabaseError("query failed", errors.New("timeout"))).Once()

	_, err := svc.IsPeriodOpen(suite.ctx, "company-1", "2024-03")

	suite.ErrorIs(err, apperrors.ErrDatabase)
	suite.mockStore.AssertNotCalled(suite.T(), "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFiscalPeriodService(t *testing.T) {
	suite.Run(t, new(FiscalPeriodServiceTestSuite))
}
