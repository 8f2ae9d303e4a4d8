//go:generate mockery --name AuditService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/repository"
)

// AuditEntry is what an operation reports to the audit log.
type AuditEntry struct {
	Operation string
	Subject   string
	Success   bool
	Deleted   int
	Failures  []model.Failure
	Duration  time.Duration
	Detail    any
}

type AuditService interface {
	// Record stores entry. Failures are logged and never returned; a missing
	// database disables auditing.
	Record(ctx context.Context, entry AuditEntry)
	List(ctx context.Context, filter repository.AuditFilter) ([]*model.AuditRecord, error)
	// Prune removes records older than retention.
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

type auditService struct {
	db        *gorm.DB
	auditRepo repository.AuditRepository
	logger    *slog.Logger
}

func NewAuditService(db *gorm.DB, auditRepo repository.AuditRepository, logger *slog.Logger) AuditService {
	return &auditService{db: db, auditRepo: auditRepo, logger: logger}
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	logger := middleware.GetLogger(ctx)
	if s.db == nil {
		logger.Debug("Audit disabled, dropping entry", "operation", entry.Operation, "subject", entry.Subject)
		return
	}

	rec := &model.AuditRecord{
		Operation:  entry.Operation,
		Subject:    entry.Subject,
		Actor:      middleware.GetActorFromContext(ctx),
		RequestID:  chimiddleware.GetReqID(ctx),
		Success:    entry.Success,
		Deleted:    entry.Deleted,
		Failures:   len(entry.Failures),
		DurationMS: entry.Duration.Milliseconds(),
	}
	if rec.Actor == "" {
		if uid, err := middleware.GetUserIDFromContext(ctx); err == nil {
			rec.Actor = uid
		}
	}
	if entry.Detail != nil || len(entry.Failures) > 0 {
		payload := map[string]any{"failures": entry.Failures, "detail": entry.Detail}
		if b, err := json.Marshal(payload); err == nil {
			rec.Detail = string(b)
		}
	}

	// the audit row is written even if the client has gone away
	if err := s.auditRepo.Create(context.WithoutCancel(ctx), s.db, rec); err != nil {
		logger.Error("Failed to record audit entry", "operation", entry.Operation, "subject", entry.Subject, "error", err)
	}
}

func (s *auditService) List(ctx context.Context, filter repository.AuditFilter) ([]*model.AuditRecord, error) {
	if s.db == nil {
		return []*model.AuditRecord{}, nil
	}
	records, err := s.auditRepo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *auditService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if s.db == nil {
		return 0, nil
	}
	if retention <= 0 {
		return 0, model.NewAppError("INVALID_RETENTION", "retention must be positive", "retention", model.ErrInvalidInput)
	}
	n, err := s.auditRepo.Prune(ctx, s.db, time.Now().Add(-retention))
	if err != nil {
		return 0, err
	}
	middleware.GetLogger(ctx).Info("Audit records pruned", "deleted", n, "retention", retention.String())
	return n, nil
}
