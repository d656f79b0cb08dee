package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/erp_journal_engine/internal/apperrors"
	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_journal_engine/internal/core/ports/services"
	"github.com/SscSPs/erp_journal_engine/pkg/cache"
)

// Cached marker for a period without a row, which is treated as closed.
const fiscalPeriodMissing = "MISSING"

type fiscalPeriodService struct {
	BaseService
	periodRepo portsrepo.FiscalPeriodRepository
	cache      cache.Store
	ttl        time.Duration
}

// FiscalPeriodOption is a functional option for configuring the fiscal period reader
type FiscalPeriodOption func(*fiscalPeriodService)

// WithPeriodCache caches period status in store for ttl.
func WithPeriodCache(store cache.Store, ttl time.Duration) FiscalPeriodOption {
	return func(s *fiscalPeriodService) {
		s.cache = store
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewFiscalPeriodService creates a fiscal period reader. Without a cache every
// call hits the database.
func NewFiscalPeriodService(periodRepo portsrepo.FiscalPeriodRepository, options ...FiscalPeriodOption) portssvc.FiscalPeriodReader {
	svc := &fiscalPeriodService{
		periodRepo: periodRepo,
		ttl:        5 * time.Minute,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FiscalPeriodReader = (*fiscalPeriodService)(nil)

func fiscalPeriodCacheKey(companyID, period string) string {
	return fmt.Sprintf("fiscal-period:%s:%s", companyID, period)
}

// IsPeriodOpen reports whether postings into period are allowed. A missing
// period is closed. Only closed and missing periods are cached, so closing a
// period takes effect on the next post. Cache failures only cost a database read.
func (s *fiscalPeriodService) IsPeriodOpen(ctx context.Context, companyID, period string) (bool, error) {
	key := fiscalPeriodCacheKey(companyID, period)

	if s.cache != nil {
		status, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.LogWarn(ctx, "Fiscal period cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		case ok && status == string(domain.FiscalPeriodOpen):
			// Left by releases that cached OPEN
			if err := s.cache.Delete(ctx, key); err != nil {
				s.LogWarn(ctx, "Fiscal period cache delete failed", slog.String("key", key), slog.String("error", err.Error()))
			}
		case ok:
			return false, nil
		}
	}

	status := fiscalPeriodMissing
	fp, err := s.periodRepo.FindFiscalPeriod(ctx, companyID, period)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		s.LogDebug(ctx, "No fiscal period row, treating as closed",
			slog.String("company_id", companyID),
			slog.String("period", period))
	case err != nil:
		return false, err
	default:
		status = string(fp.Status)
	}

	open := status == string(domain.FiscalPeriodOpen)
	if s.cache != nil && !open {
		if err := s.cache.Set(ctx, key, status, s.ttl); err != nil {
			s.LogWarn(ctx, "Fiscal period cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return open, nil
}
