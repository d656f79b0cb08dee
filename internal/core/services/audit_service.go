package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_journal_engine/internal/core/ports/services"
)

const (
	defaultAuditBufferSize = 256
	auditMaxBatch          = 50
	auditWriteTimeout      = 5 * time.Second
)

// AuditService is a fire-and-forget AuditSink. Entries are queued on a buffered
// channel and written in batches by a single worker goroutine.
type AuditService struct {
	repo    portsrepo.AuditLogRepository
	logger  *slog.Logger
	entries chan domain.AuditEntry
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewAuditService starts the worker. bufferSize <= 0 uses a default.
func NewAuditService(repo portsrepo.AuditLogRepository, bufferSize int, logger *slog.Logger) *AuditService {
	if bufferSize <= 0 {
		bufferSize = defaultAuditBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &AuditService{
		repo:    repo,
		logger:  logger.With(slog.String("component", "audit")),
		entries: make(chan domain.AuditEntry, bufferSize),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

var _ portssvc.AuditSink = (*AuditService)(nil)

// Record enqueues entry without blocking. A full buffer or a closed service drops it.
func (s *AuditService) Record(ctx context.Context, entry domain.AuditEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.logger.Warn("Audit entry dropped after close", slog.String("action", entry.Action), slog.String("entity_id", entry.EntityID))
		return
	}

	select {
	case s.entries <- entry:
	default:
		s.logger.Warn("Audit buffer full, entry dropped", slog.String("action", entry.Action), slog.String("entity_id", entry.EntityID))
	}
}

// Close stops accepting entries and waits until the queue is written.
func (s *AuditService) Close() error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.entries)
	}
	s.mu.Unlock()

	<-s.done
	return nil
}

func (s *AuditService) run() {
	defer close(s.done)

	for entry := range s.entries {
		batch := []domain.AuditEntry{entry}
		// Drain what is already queued
	drain:
		for len(batch) < auditMaxBatch {
			select {
			case next, ok := <-s.entries:
				if !ok {
					break drain
				}
				batch = append(batch, next)
			default:
				break drain
			}
		}
		s.write(batch)
	}
}

func (s *AuditService) write(batch []domain.AuditEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
	defer cancel()

	if err := s.repo.SaveAuditEntries(ctx, batch); err != nil {
		s.logger.Error("Failed to write audit entries",
			slog.String("error", err.Error()),
			slog.Int("count", len(batch)))
	}
}
