//go:generate mockery --name UserService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lingo_admin_console/internal/cache"
	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/repository"
)

type UserService interface {
	List(ctx context.Context, cursor string, limit int) (*model.UserPage, error)
	Get(ctx context.Context, uid string) (*model.User, error)
	Collections(ctx context.Context, uid string) ([]model.CollectionInfo, error)
	Stats(ctx context.Context) (*model.Stats, error)
	Badges(ctx context.Context) ([]model.Badge, error)
}

// UserCacheInvalidator drops cached user views after writes.
type UserCacheInvalidator interface {
	Invalidate(uid string)
}

// CachedUserService serves user views through a TTL cache. It is both a
// UserService and a UserCacheInvalidator.
type CachedUserService struct {
	userRepo    repository.UserRepository
	contentRepo repository.ContentRepository
	badgeRepo   repository.BadgeRepository
	feedback    repository.FeedbackRepository
	pages       *cache.TTL[string, model.UserPage]
	details     *cache.TTL[string, model.User]
	logger      *slog.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	contentRepo repository.ContentRepository,
	badgeRepo repository.BadgeRepository,
	feedbackRepo repository.FeedbackRepository,
	ttl time.Duration,
	clock cache.Clock,
	logger *slog.Logger,
) *CachedUserService {
	return &CachedUserService{
		userRepo:    userRepo,
		contentRepo: contentRepo,
		badgeRepo:   badgeRepo,
		feedback:    feedbackRepo,
		pages:       cache.New[string, model.UserPage](ttl, clock),
		details:     cache.New[string, model.User](ttl, clock),
		logger:      logger,
	}
}

func (s *CachedUserService) List(ctx context.Context, cursor string, limit int) (*model.UserPage, error) {
	logger := middleware.GetLogger(ctx)
	key := fmt.Sprintf("%s|%d", cursor, limit)
	if page, ok := s.pages.Get(key); ok {
		logger.Debug("User list served from cache", "cursor", cursor, "limit", limit)
		return &page, nil
	}
	page, err := s.userRepo.List(ctx, cursor, limit)
	if err != nil {
		return nil, err
	}
	s.pages.Set(key, page)
	return &page, nil
}

func (s *CachedUserService) Get(ctx context.Context, uid string) (*model.User, error) {
	if err := validateUserID(uid); err != nil {
		return nil, err
	}
	if u, ok := s.details.Get(uid); ok {
		return &u, nil
	}
	u, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	s.details.Set(uid, *u)
	return u, nil
}

func (s *CachedUserService) Collections(ctx context.Context, uid string) ([]model.CollectionInfo, error) {
	if err := validateUserID(uid); err != nil {
		return nil, err
	}
	return s.userRepo.Collections(ctx, uid)
}

// Stats counts the root collections concurrently.
func (s *CachedUserService) Stats(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Users, err = s.userRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Badges, err = s.badgeRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Feedback, err = s.feedback.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Languages, err = s.contentRepo.CountLanguages(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *CachedUserService) Badges(ctx context.Context) ([]model.Badge, error) {
	badges, err := s.badgeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []model.Badge{}
	}
	return badges, nil
}

// Invalidate drops the list pages and the detail of uid. An empty uid means
// an unknown set of users changed, so every detail goes too.
func (s *CachedUserService) Invalidate(uid string) {
	s.pages.Clear()
	if uid == "" {
		s.details.Clear()
		return
	}
	s.details.Delete(uid)
}

// validateUserID rejects ids that would address a different document.
func validateUserID(uid string) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return model.NewAppError("INVALID_USER_ID", "user id is required", "userId", model.ErrInvalidInput)
	}
	if strings.Contains(uid, "/") || len(uid) > 128 {
		return model.NewAppError("INVALID_USER_ID", "user id is malformed", "userId", model.ErrInvalidInput)
	}
	return nil
}
