//go:generate mockery --name FeedbackService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/repository"
)

type FeedbackService interface {
	List(ctx context.Context, unresolvedOnly bool, cursor string, limit int) (*model.FeedbackPage, error)
	Resolve(ctx context.Context, uid string, req *model.ResolveFeedbackRequest) (*model.FeedbackEntry, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	audit        AuditService
	logger       *slog.Logger
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository, audit AuditService, logger *slog.Logger) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo, audit: audit, logger: logger}
}

func (s *feedbackService) List(ctx context.Context, unresolvedOnly bool, cursor string, limit int) (*model.FeedbackPage, error) {
	entries, next, err := s.feedbackRepo.List(ctx, unresolvedOnly, cursor, limit)
	if err != nil {
		return nil, err
	}
	return &model.FeedbackPage{Entries: entries, NextCursor: next}, nil
}

func (s *feedbackService) Resolve(ctx context.Context, uid string, req *model.ResolveFeedbackRequest) (*model.FeedbackEntry, error) {
	if err := validateUserID(uid); err != nil {
		return nil, err
	}
	actor := middleware.GetActorFromContext(ctx)
	if actor == "" {
		actor = "unknown"
	}

	started := time.Now()
	fb, err := s.feedbackRepo.Resolve(ctx, uid, actor, strings.TrimSpace(req.Note))
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditEntry{
		Operation: model.OpResolveFeedback,
		Subject:   uid,
		Success:   true,
		Duration:  time.Since(started),
	})
	return fb, nil
}
