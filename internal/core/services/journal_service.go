package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/erp_journal_engine/internal/apperrors"
	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_journal_engine/internal/core/ports/services"
	"github.com/SscSPs/erp_journal_engine/internal/dto"
	"github.com/SscSPs/erp_journal_engine/internal/utils/accounting"
)

const (
	defaultSourceModule   = "GL"
	reversalReferenceType = "JOURNAL_REVERSAL"
)

// ReversalTypePolicy decides the journal type of a reversal journal.
type ReversalTypePolicy string

// A reversal either reuses the reversed journal's type or is booked as ADJUSTMENT.
const (
	ReversalTypeOriginal   ReversalTypePolicy = "original"
	ReversalTypeAdjustment ReversalTypePolicy = "adjustment"
)

// ParseReversalTypePolicy accepts the config spelling of a policy.
func ParseReversalTypePolicy(value string) (ReversalTypePolicy, error) {
	switch p := ReversalTypePolicy(strings.ToLower(strings.TrimSpace(value))); p {
	case "":
		return ReversalTypeOriginal, nil
	case ReversalTypeOriginal, ReversalTypeAdjustment:
		return p, nil
	default:
		return "", fmt.Errorf("unknown reversal type policy %q", value)
	}
}

// journalService drives journals through creation, approval, posting and reversal.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	accounts    portssvc.ChartOfAccountsValidator
	periods     portssvc.FiscalPeriodReader
	audit       portssvc.AuditSink

	reversalPolicy  ReversalTypePolicy
	createAttempts  int
	createBackoff   time.Duration
	defaultCurrency string
	now             func() time.Time
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithAuditSink sends an audit entry for every successful write.
func WithAuditSink(sink portssvc.AuditSink) JournalServiceOption {
	return func(s *journalService) {
		s.audit = sink
	}
}

// WithReversalTypePolicy sets the journal type used for reversal journals.
func WithReversalTypePolicy(policy ReversalTypePolicy) JournalServiceOption {
	return func(s *journalService) {
		s.reversalPolicy = policy
	}
}

// WithCreateRetry bounds how often a create is retried after losing a sequence race.
// The wait before attempt n is n-1 times backoff.
func WithCreateRetry(attempts int, backoff time.Duration) JournalServiceOption {
	return func(s *journalService) {
		if attempts > 0 {
			s.createAttempts = attempts
		}
		if backoff >= 0 {
			s.createBackoff = backoff
		}
	}
}

// WithDefaultCurrency sets the currency of journals created without one.
func WithDefaultCurrency(currency string) JournalServiceOption {
	return func(s *journalService) {
		if currency != "" {
			s.defaultCurrency = strings.ToUpper(currency)
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewJournalService creates a new journal service with the provided options
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accounts portssvc.ChartOfAccountsValidator,
	periods portssvc.FiscalPeriodReader,
	options ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo:     journalRepo,
		accounts:        accounts,
		periods:         periods,
		reversalPolicy:  ReversalTypeOriginal,
		createAttempts:  3,
		createBackoff:   50 * time.Millisecond,
		defaultCurrency: "IDR",
		now:             func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// GetJournalByID returns a journal with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, auth domain.AuthContext, journalID string, includeDeleted bool) (*domain.JournalHeader, error) {
	return s.journalRepo.FindJournalByID(ctx, auth.CompanyID, journalID, includeDeleted)
}

// ListJournals returns one page of journals, attaching lines in a single extra query when asked.
func (s *journalService) ListJournals(ctx context.Context, auth domain.AuthContext, filter domain.JournalFilter, page domain.Page, withLines bool) ([]domain.JournalHeader, int, error) {
	journals, total, err := s.journalRepo.ListJournals(ctx, auth.CompanyID, filter, page)
	if err != nil {
		return nil, 0, err
	}
	if !withLines || len(journals) == 0 {
		return journals, total, nil
	}

	ids := make([]string, len(journals))
	for i, j := range journals {
		ids[i] = j.ID
	}
	linesByJournal, err := s.journalRepo.FindLinesByJournalIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range journals {
		lines := linesByJournal[journals[i].ID]
		if lines == nil {
			lines = []domain.JournalLine{}
		}
		journals[i].Lines = lines
	}
	return journals, total, nil
}

// CreateJournal validates the payload, assigns the next number of the period and
// stores the journal as DRAFT.
func (s *journalService) CreateJournal(ctx context.Context, auth domain.AuthContext, req dto.CreateJournalRequest) (*domain.JournalHeader, error) {
	journalDate, err := dto.ParseDate(req.JournalDate)
	if err != nil {
		return nil, apperrors.NewValidationError("journal_date", err.Error())
	}
	if !req.JournalType.IsValid() {
		return nil, apperrors.NewValidationError("journal_type", fmt.Sprintf("unknown journal type %q", req.JournalType))
	}

	lines := dto.ToDomainLines(req.Lines)
	totals, err := s.validateLines(ctx, auth.CompanyID, lines)
	if err != nil {
		return nil, err
	}

	currency, rate, err := s.resolveCurrency(req.Currency, req.ExchangeRate)
	if err != nil {
		return nil, err
	}

	sourceModule := strings.TrimSpace(req.SourceModule)
	if sourceModule == "" {
		sourceModule = defaultSourceModule
	}

	now := s.now()
	header := domain.JournalHeader{
		ID:              uuid.NewString(),
		CompanyID:       auth.CompanyID,
		BranchID:        req.BranchID,
		JournalType:     req.JournalType,
		SourceModule:    sourceModule,
		ReferenceType:   req.ReferenceType,
		ReferenceID:     req.ReferenceID,
		ReferenceNumber: req.ReferenceNumber,
		Period:          accounting.GetPeriodFromDate(journalDate),
		JournalDate:     journalDate,
		Description:     req.Description,
		TotalDebit:      totals.TotalDebit,
		TotalCredit:     totals.TotalCredit,
		Currency:        currency,
		ExchangeRate:    rate,
		Status:          domain.StatusDraft,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: auth.UserID,
			UpdatedAt: now,
			UpdatedBy: auth.UserID,
		},
	}

	if err := s.insertNumbered(ctx, s.journalRepo, &header, lines); err != nil {
		s.LogError(ctx, err, "Failed to create journal", slog.String("company_id", auth.CompanyID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal created",
		slog.String("journal_id", header.ID),
		slog.String("journal_number", header.JournalNumber))
	s.recordAudit(ctx, auth, domain.AuditJournalCreated, header.ID, map[string]any{
		"journal_number": header.JournalNumber,
		"journal_type":   string(header.JournalType),
		"total_debit":    header.TotalDebit.String(),
	})

	return s.journalRepo.FindJournalByID(ctx, auth.CompanyID, header.ID, false)
}

// UpdateJournal edits a DRAFT journal. Type and number never change, so the date
// may only move within the journal's period.
func (s *journalService) UpdateJournal(ctx context.Context, auth domain.AuthContext, journalID string, req dto.UpdateJournalRequest) (*domain.JournalHeader, error) {
	existing, err := s.journalRepo.FindJournalByID(ctx, auth.CompanyID, journalID, false)
	if err != nil {
		return nil, err
	}
	if existing.Status != domain.StatusDraft {
		return nil, apperrors.NewCannotEditNonDraftError(string(existing.Status))
	}

	updated := *existing
	updated.Lines = nil
	if req.BranchID != nil {
		updated.BranchID = req.BranchID
	}
	if req.ReferenceType != nil {
		updated.ReferenceType = req.ReferenceType
	}
	if req.ReferenceID != nil {
		updated.ReferenceID = req.ReferenceID
	}
	if req.ReferenceNumber != nil {
		updated.ReferenceNumber = req.ReferenceNumber
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.JournalDate != nil {
		journalDate, err := dto.ParseDate(*req.JournalDate)
		if err != nil {
			return nil, apperrors.NewValidationError("journal_date", err.Error())
		}
		if period := accounting.GetPeriodFromDate(journalDate); period != existing.Period {
			return nil, apperrors.NewValidationError("journal_date",
				fmt.Sprintf("journal date must stay within period %s of journal %s", existing.Period, existing.JournalNumber))
		}
		updated.JournalDate = journalDate
	}

	currencyChanged := false
	if req.Currency != nil || req.ExchangeRate != nil {
		currency := updated.Currency
		if req.Currency != nil {
			currency = *req.Currency
		}
		rate := &updated.ExchangeRate
		if req.ExchangeRate != nil {
			rate = req.ExchangeRate
		}
		updated.Currency, updated.ExchangeRate, err = s.resolveCurrency(currency, rate)
		if err != nil {
			return nil, err
		}
		currencyChanged = updated.Currency != existing.Currency || !updated.ExchangeRate.Equal(existing.ExchangeRate)
	}

	// nil keeps the stored lines
	var lines []domain.JournalLine
	switch {
	case req.Lines != nil:
		lines = dto.ToDomainLines(req.Lines)
		totals, err := s.validateLines(ctx, auth.CompanyID, lines)
		if err != nil {
			return nil, err
		}
		updated.TotalDebit = totals.TotalDebit
		updated.TotalCredit = totals.TotalCredit
	case currencyChanged:
		// Rewriting the same lines re-derives their base amounts
		lines = existing.Lines
	}

	now := s.now()
	updated.UpdatedAt = now
	updated.UpdatedBy = auth.UserID

	if err := s.journalRepo.UpdateJournalWithLines(ctx, updated, lines); err != nil {
		s.LogError(ctx, err, "Failed to update journal", slog.String("journal_id", journalID))
		return nil, err
	}

	s.recordAudit(ctx, auth, domain.AuditJournalUpdated, journalID, map[string]any{
		"journal_number": existing.JournalNumber,
		"lines_replaced": lines != nil,
	})
	return s.journalRepo.FindJournalByID(ctx, auth.CompanyID, journalID, false)
}

// DeleteJournal soft-deletes a DRAFT or REJECTED journal.
func (s *journalService) DeleteJournal(ctx context.Context, auth domain.AuthContext, journalID string) error {
	existing, err := s.journalRepo.FindJournalByID(ctx, auth.CompanyID, journalID, false)
	if err != nil {
		return err
	}
	if !existing.Status.IsDeletable() {
		return apperrors.NewCannotDeletePostedError(string(existing.Status))
	}

	if err := s.journalRepo.SoftDeleteJournal(ctx, auth.CompanyID, journalID, auth.UserID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to delete journal", slog.String("journal_id", journalID))
		return err
	}

	s.recordAudit(ctx, auth, domain.AuditJournalDeleted, journalID, map[string]any{
		"journal_number": existing.JournalNumber,
		"status":         string(existing.Status),
	})
	return nil
}

// RestoreJournal clears the soft-delete markers of a deleted journal.
func (s *journalService) RestoreJournal(ctx context.Context, auth domain.AuthContext, journalID string) (*domain.JournalHeader, error) {
	existing, err := s.journalRepo.FindJournalByID(ctx, auth.CompanyID, journalID, true)
	if err != nil {
		return nil, err
	}
	if !existing.IsDeleted() {
		return nil, apperrors.NewValidationError("id", fmt.Sprintf("journal %s is not deleted", journalID))
	}

	if err := s.journalRepo.RestoreJournal(ctx, auth.CompanyID, journalID, auth.UserID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to restore journal", slog.String("journal_id", journalID))
		return nil, err
	}

	s.recordAudit(ctx, auth, domain.AuditJournalRestored, journalID, map[string]any{
		"journal_number": existing.JournalNumber,
	})
	return s.journalRepo.FindJournalByID(ctx, auth.CompanyID, journalID, false)
}

func (s *journalService) SubmitJournal(ctx context.Context, auth domain.AuthContext, journalID string) (*domain.JournalHeader, error) {
	return s.changeStatus(ctx, auth, journalID, domain.StatusSubmitted, nil)
}

func (s *journalService) ApproveJournal(ctx context.Context, auth domain.AuthContext, journalID string) (*domain.JournalHeader, error) {
	return s.changeStatus(ctx, auth, journalID, domain.StatusApproved, nil)
}

// RejectJournal sends a SUBMITTED or APPROVED journal back with a reason.
func (s *journalService) RejectJournal(ctx context.Context, auth domain.AuthContext, journalID string, reason string) (*domain.JournalHeader, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("rejection_reason", "rejection reason is required")
	}
	return s.changeStatus(ctx, auth, journalID, domain.StatusRejected, &reason)
}

// ReopenJournal moves a REJECTED journal back to DRAFT so it can be edited.
func (s *journalService) ReopenJournal(ctx context.Context, auth domain.AuthContext, journalID string) (*domain.JournalHeader, error) {
	return s.changeStatus(ctx, auth, journalID, domain.StatusDraft, nil)
}

// PostJournal posts an APPROVED journal after re-checking what is stored.
func (s *journalService) PostJournal(ctx context.Context, auth domain.AuthContext, journalID string) (*domain.JournalHeader, error) {
	journal, err := s.post(ctx, s.journalRepo, auth, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal", slog.String("journal_id", journalID))
		return nil, err
	}

	s.recordAudit(ctx, auth, domain.AuditJournalStatus, journalID, map[string]any{
		"from": string(domain.StatusApproved),
		"to":   string(domain.StatusPosted),
	})
	return journal, nil
}

// ReverseJournal books a mirrored journal, drives it to POSTED and links the
// original to it, all in one transaction.
func (s *journalService) ReverseJournal(ctx context.Context, auth domain.AuthContext, journalID string, req dto.ReverseJournalRequest) (*domain.JournalHeader, error) {
	reason := strings.TrimSpace(req.ReversalReason)
	if reason == "" {
		return nil, apperrors.NewValidationError("reversal_reason", "reversal reason is required")
	}

	reversalDate := truncateToDate(s.now())
	if req.ReversalDate != nil {
		parsed, err := dto.ParseDate(*req.ReversalDate)
		if err != nil {
			return nil, apperrors.NewValidationError("reversal_date", err.Error())
		}
		reversalDate = parsed
	}

	original, err := s.journalRepo.FindJournalByID(ctx, auth.CompanyID, journalID, false)
	if err != nil {
		return nil, err
	}
	if original.IsReversed {
		return nil, apperrors.NewAlreadyReversedError(journalID)
	}
	if original.Status != domain.StatusPosted {
		return nil, apperrors.NewInvalidStatusTransitionError(string(original.Status), string(domain.StatusReversed))
	}

	reversalHeader, lines := s.buildReversal(auth, original, reversalDate, reason)
	// Accounts may have been deactivated since the original was posted
	if _, err := s.validateLines(ctx, auth.CompanyID, lines); err != nil {
		return nil, err
	}

	var reversal *domain.JournalHeader
	err = s.journalRepo.WithinTx(ctx, func(repo portsrepo.JournalRepositoryWithTx) error {
		if err := s.insertNumbered(ctx, repo, &reversalHeader, lines); err != nil {
			return err
		}
		for _, to := range []domain.JournalStatus{domain.StatusSubmitted, domain.StatusApproved} {
			if _, err := s.transition(ctx, repo, auth, reversalHeader.ID, to, nil); err != nil {
				return err
			}
		}
		posted, err := s.post(ctx, repo, auth, reversalHeader.ID)
		if err != nil {
			return err
		}
		if err := repo.MarkJournalReversed(ctx, auth.CompanyID, original.ID, posted.ID, reason, reversalDate, auth.UserID); err != nil {
			return err
		}
		reversal = posted
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse journal", slog.String("journal_id", journalID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal reversed",
		slog.String("journal_id", original.ID),
		slog.String("reversal_journal_id", reversal.ID))
	s.recordAudit(ctx, auth, domain.AuditJournalCreated, reversal.ID, map[string]any{
		"journal_number": reversal.JournalNumber,
		"reversal_of_id": original.ID,
	})
	s.recordAudit(ctx, auth, domain.AuditJournalReversed, original.ID, map[string]any{
		"journal_number":      original.JournalNumber,
		"reversal_journal_id": reversal.ID,
		"reversal_reason":     reason,
	})
	return reversal, nil
}

func (s *journalService) buildReversal(auth domain.AuthContext, original *domain.JournalHeader, reversalDate time.Time, reason string) (domain.JournalHeader, []domain.JournalLine) {
	journalType := original.JournalType
	if s.reversalPolicy == ReversalTypeAdjustment {
		journalType = domain.JournalTypeAdjustment
	}

	referenceType := reversalReferenceType
	originalID := original.ID
	originalNumber := original.JournalNumber
	now := s.now()

	header := domain.JournalHeader{
		ID:              uuid.NewString(),
		CompanyID:       auth.CompanyID,
		BranchID:        original.BranchID,
		JournalType:     journalType,
		SourceModule:    original.SourceModule,
		ReferenceType:   &referenceType,
		ReferenceID:     &originalID,
		ReferenceNumber: &originalNumber,
		Period:          accounting.GetPeriodFromDate(reversalDate),
		JournalDate:     reversalDate,
		Description:     fmt.Sprintf("Reversal of %s: %s", original.JournalNumber, reason),
		TotalDebit:      original.TotalCredit,
		TotalCredit:     original.TotalDebit,
		Currency:        original.Currency,
		ExchangeRate:    original.ExchangeRate,
		Status:          domain.StatusDraft,
		ReversalOfID:    &originalID,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: auth.UserID,
			UpdatedAt: now,
			UpdatedBy: auth.UserID,
		},
	}
	return header, accounting.ReverseLines(original.Lines)
}

// changeStatus runs a plain state-machine step and records it.
func (s *journalService) changeStatus(ctx context.Context, auth domain.AuthContext, journalID string, to domain.JournalStatus, reason *string) (*domain.JournalHeader, error) {
	from, err := s.transition(ctx, s.journalRepo, auth, journalID, to, reason)
	if err != nil {
		s.LogError(ctx, err, "Failed to change journal status",
			slog.String("journal_id", journalID),
			slog.String("to", string(to)))
		return nil, err
	}

	metadata := map[string]any{"from": string(from), "to": string(to)}
	if reason != nil {
		metadata["rejection_reason"] = *reason
	}
	s.recordAudit(ctx, auth, domain.AuditJournalStatus, journalID, metadata)
	return s.journalRepo.FindJournalByID(ctx, auth.CompanyID, journalID, false)
}

// transition checks the lifecycle graph against the stored status and writes the
// step. It returns the status the journal left.
func (s *journalService) transition(ctx context.Context, repo portsrepo.JournalRepositoryFacade, auth domain.AuthContext, journalID string, to domain.JournalStatus, reason *string) (domain.JournalStatus, error) {
	journal, err := repo.FindJournalByID(ctx, auth.CompanyID, journalID, false)
	if err != nil {
		return "", err
	}
	if !accounting.CanTransition(journal.Status, to) {
		return "", apperrors.NewInvalidStatusTransitionError(string(journal.Status), string(to))
	}

	change := domain.StatusChange{
		From:            journal.Status,
		To:              to,
		ActorID:         auth.UserID,
		At:              s.now(),
		RejectionReason: reason,
	}
	if err := repo.UpdateJournalStatus(ctx, auth.CompanyID, journalID, change); err != nil {
		return "", err
	}
	return journal.Status, nil
}

// post re-reads the journal and its lines from repo, so client totals are never
// trusted, and refuses closed periods.
func (s *journalService) post(ctx context.Context, repo portsrepo.JournalRepositoryFacade, auth domain.AuthContext, journalID string) (*domain.JournalHeader, error) {
	journal, err := repo.FindJournalByID(ctx, auth.CompanyID, journalID, false)
	if err != nil {
		return nil, err
	}
	if !accounting.CanTransition(journal.Status, domain.StatusPosted) {
		return nil, apperrors.NewInvalidStatusTransitionError(string(journal.Status), string(domain.StatusPosted))
	}

	if violations := accounting.ValidateJournalLines(journal.Lines); len(violations) > 0 {
		return nil, apperrors.NewInvalidLinesError(violations)
	}
	if totals := accounting.CalculateTotals(journal.Lines); !totals.IsBalanced() {
		return nil, apperrors.NewNotBalancedError(totals.TotalDebit.String(), totals.TotalCredit.String())
	}

	open, err := s.periods.IsPeriodOpen(ctx, auth.CompanyID, journal.Period)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, apperrors.NewPeriodClosedError(journal.Period)
	}

	change := domain.StatusChange{
		From:    journal.Status,
		To:      domain.StatusPosted,
		ActorID: auth.UserID,
		At:      s.now(),
	}
	if err := repo.UpdateJournalStatus(ctx, auth.CompanyID, journalID, change); err != nil {
		return nil, err
	}
	return repo.FindJournalByID(ctx, auth.CompanyID, journalID, false)
}

// validateLines runs shape, balance and account checks in that order, so no
// storage call happens for a malformed payload.
func (s *journalService) validateLines(ctx context.Context, companyID string, lines []domain.JournalLine) (accounting.Totals, error) {
	if violations := accounting.ValidateJournalLines(lines); len(violations) > 0 {
		return accounting.Totals{}, apperrors.NewInvalidLinesError(violations)
	}

	totals := accounting.CalculateTotals(lines)
	if !totals.IsBalanced() {
		return totals, apperrors.NewNotBalancedError(totals.TotalDebit.String(), totals.TotalCredit.String())
	}

	if err := s.accounts.ValidateAccounts(ctx, companyID, uniqueAccountIDs(lines)); err != nil {
		return totals, err
	}
	return totals, nil
}

func (s *journalService) resolveCurrency(currency string, rate *decimal.Decimal) (string, decimal.Decimal, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = s.defaultCurrency
	}
	if len(currency) != 3 {
		return "", decimal.Zero, apperrors.NewValidationError("currency", "currency must be a 3-letter ISO code")
	}

	resolved := decimal.NewFromInt(1)
	if rate != nil {
		resolved = *rate
	}
	if !resolved.IsPositive() {
		return "", decimal.Zero, apperrors.NewValidationError("exchange_rate", "exchange rate must be positive")
	}
	return currency, resolved, nil
}

// insertNumbered reserves the next sequence, formats the number and inserts the
// journal in one transaction on repo. Losing a sequence race retries the whole
// step with linear backoff.
func (s *journalService) insertNumbered(ctx context.Context, repo portsrepo.JournalRepositoryWithTx, header *domain.JournalHeader, lines []domain.JournalLine) error {
	for attempt := 1; ; attempt++ {
		err := repo.WithinTx(ctx, func(tx portsrepo.JournalRepositoryWithTx) error {
			seq, err := tx.GetNextSequence(ctx, header.CompanyID, header.JournalType, header.Period)
			if err != nil {
				return err
			}
			number, err := accounting.GenerateJournalNumber(header.JournalType, header.JournalDate, seq)
			if err != nil {
				return apperrors.NewValidationError("journal_type", err.Error())
			}
			header.SequenceNumber = seq
			header.JournalNumber = number
			return tx.CreateJournalWithLines(ctx, *header, lines)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrSequenceConflict) || attempt >= s.createAttempts {
			return err
		}

		s.LogWarn(ctx, "Journal sequence conflict, retrying",
			slog.Int("attempt", attempt),
			slog.String("period", header.Period),
			slog.String("journal_type", string(header.JournalType)))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * s.createBackoff):
		}
	}
}

func (s *journalService) recordAudit(ctx context.Context, auth domain.AuthContext, action, journalID string, metadata map[string]any) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, domain.AuditEntry{
		ID:         uuid.NewString(),
		CompanyID:  auth.CompanyID,
		ActorID:    auth.UserID,
		Action:     action,
		EntityType: "journal",
		EntityID:   journalID,
		Metadata:   metadata,
		OccurredAt: s.now(),
	})
}

func uniqueAccountIDs(lines []domain.JournalLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}
	return ids
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
