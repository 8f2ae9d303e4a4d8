//go:generate mockery --name ContentService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/purge"
	"lingo_admin_console/internal/repository"
)

type ContentService interface {
	CascadeDelete(ctx context.Context, req *model.CascadeDeleteRequest) (*model.CascadeDeleteResult, error)
	DeleteContentItem(ctx context.Context, languageID, level, contentType, itemID string) (*model.DeleteContentItemResult, error)
	CleanupOrphans(ctx context.Context, req *model.OrphanCleanupRequest) (*model.OrphanCleanupResult, error)
	FindDuplicates(ctx context.Context, languageID, level string) ([]model.DuplicateGroup, error)
}

type contentService struct {
	engine      *purge.Engine
	contentRepo repository.ContentRepository
	audit       AuditService
	cache       UserCacheInvalidator
	logger      *slog.Logger
}

func NewContentService(
	engine *purge.Engine,
	contentRepo repository.ContentRepository,
	audit AuditService,
	cache UserCacheInvalidator,
	logger *slog.Logger,
) ContentService {
	return &contentService{
		engine:      engine,
		contentRepo: contentRepo,
		audit:       audit,
		cache:       cache,
		logger:      logger,
	}
}

// parseScope validates an optional language/level pair.
func parseScope(languageID, level string) (purge.Scope, error) {
	scope := purge.Scope{LanguageID: strings.TrimSpace(languageID)}
	if strings.Contains(scope.LanguageID, "/") {
		return purge.Scope{}, model.NewAppError("INVALID_LANGUAGE", "languageId is malformed", "languageId", model.ErrInvalidInput)
	}
	if strings.TrimSpace(level) == "" {
		return scope, nil
	}
	lv, ok := model.ParseLevel(level)
	if !ok {
		return purge.Scope{}, model.NewAppError("INVALID_LEVEL", "level must be beginner, intermediate or advanced", "level", model.ErrInvalidInput)
	}
	if scope.LanguageID != "" && !lv.Supports(scope.LanguageID) {
		return purge.Scope{}, model.NewAppError("INVALID_LEVEL",
			fmt.Sprintf("level %s does not exist for language %s", lv, scope.LanguageID), "level", model.ErrInvalidInput)
	}
	scope.Level = lv
	return scope, nil
}

func (s *contentService) CascadeDelete(ctx context.Context, req *model.CascadeDeleteRequest) (*model.CascadeDeleteResult, error) {
	logger := middleware.GetLogger(ctx)
	typ, ok := model.ParseContentType(req.ContentType)
	if !ok {
		return nil, model.NewAppError("INVALID_CONTENT_TYPE", "contentType must be characters, words or sentences", "contentType", model.ErrInvalidInput)
	}
	id := strings.TrimSpace(req.ContentID)
	if id == "" || strings.Contains(id, "/") {
		return nil, model.NewAppError("INVALID_CONTENT_ID", "contentId is required", "contentId", model.ErrInvalidInput)
	}
	scope, err := parseScope(req.LanguageID, req.Level)
	if err != nil {
		return nil, err
	}

	value := strings.TrimSpace(req.ContentValue)
	if value == "" && scope.LanguageID != "" && scope.Level != "" {
		// the catalog item may still exist and name the value legacy records use
		if item, err := s.contentRepo.GetItem(ctx, scope.LanguageID, scope.Level, typ, id); err == nil {
			value = item.Value
		} else if !errors.Is(err, model.ErrNotFound) {
			logger.Warn("Catalog lookup failed, matching by id only", "content_id", id, "error", err)
		}
	}
	if value != "" && scope.LanguageID == "" {
		logger.Warn("Unscoped cascade matches by value across every language", "content_id", id, "content_value", value)
	}

	return s.cascade(ctx, model.OpCascadeContent, purge.ContentReference{ID: id, Value: value}, scope, string(typ))
}

func (s *contentService) cascade(ctx context.Context, op string, target purge.ContentReference, scope purge.Scope, typ string) (*model.CascadeDeleteResult, error) {
	rep, err := s.engine.CascadeContent(ctx, target, scope)
	if err != nil {
		return nil, err
	}
	res := &model.CascadeDeleteResult{
		DeletedAssessments: rep.Deleted,
		UsersAffected:      rep.UsersAffected,
		Success:            rep.Success(),
		Failures:           rep.Failures,
	}

	if rep.UsersAffected > 0 {
		s.cache.Invalidate("")
	}
	s.audit.Record(ctx, AuditEntry{
		Operation: op,
		Subject:   target.ID,
		Success:   res.Success,
		Deleted:   rep.Deleted,
		Failures:  rep.Failures,
		Duration:  rep.Duration,
		Detail: map[string]any{
			"contentType":     typ,
			"contentValue":    target.Value,
			"languageId":      scope.LanguageID,
			"level":           scope.Level,
			"scanned":         rep.Scanned,
			"usersAffected":   rep.UsersAffected,
			"matchedBySchema": rep.Matched,
		},
	})

	if !res.Success {
		return nil, fmt.Errorf("%w: cascade for %s failed everywhere", model.ErrBackendUnavailable, target.ID)
	}
	return res, nil
}

func (s *contentService) DeleteContentItem(ctx context.Context, languageID, level, contentType, itemID string) (*model.DeleteContentItemResult, error) {
	logger := middleware.GetLogger(ctx)
	typ, ok := model.ParseContentType(contentType)
	if !ok {
		return nil, model.NewAppError("INVALID_CONTENT_TYPE", "contentType must be characters, words or sentences", "contentType", model.ErrInvalidInput)
	}
	if strings.TrimSpace(languageID) == "" || strings.TrimSpace(level) == "" {
		return nil, model.NewAppError("INVALID_SCOPE", "languageId and level are required", "", model.ErrInvalidInput)
	}
	scope, err := parseScope(languageID, level)
	if err != nil {
		return nil, err
	}
	itemID = strings.TrimSpace(itemID)
	if itemID == "" || strings.Contains(itemID, "/") {
		return nil, model.NewAppError("INVALID_CONTENT_ID", "content id is required", "contentId", model.ErrInvalidInput)
	}

	target := purge.ContentReference{ID: itemID}
	itemDeleted := false
	item, err := s.contentRepo.GetItem(ctx, scope.LanguageID, scope.Level, typ, itemID)
	switch {
	case err == nil:
		target.Value = item.Value
		if err := s.contentRepo.DeleteItem(ctx, scope.LanguageID, scope.Level, typ, itemID); err != nil {
			return nil, err
		}
		itemDeleted = true
	case errors.Is(err, model.ErrNotFound):
		// retried request: the item is gone but references may remain
		logger.Info("Catalog item already absent, cascading by id", "content_id", itemID)
	default:
		return nil, err
	}

	cres, err := s.cascade(ctx, model.OpDeleteContentItem, target, scope, string(typ))
	if err != nil {
		return nil, err
	}
	return &model.DeleteContentItemResult{ItemDeleted: itemDeleted, CascadeDeleteResult: *cres}, nil
}

func (s *contentService) CleanupOrphans(ctx context.Context, req *model.OrphanCleanupRequest) (*model.OrphanCleanupResult, error) {
	scope, err := parseScope(req.LanguageID, req.Level)
	if err != nil {
		return nil, err
	}

	rep, err := s.engine.CleanupOrphans(ctx, scope, s.contentRepo.Index)
	if err != nil {
		return nil, err
	}
	res := &model.OrphanCleanupResult{
		Scanned:       rep.Scanned,
		Deleted:       rep.Deleted,
		UsersAffected: rep.UsersAffected,
		SkippedLevels: rep.SkippedLevels,
		Success:       rep.Success(),
		Failures:      rep.Failures,
	}

	if rep.UsersAffected > 0 {
		s.cache.Invalidate("")
	}
	s.audit.Record(ctx, AuditEntry{
		Operation: model.OpCleanupOrphans,
		Subject:   scopeLabel(scope),
		Success:   res.Success,
		Deleted:   rep.Deleted,
		Failures:  rep.Failures,
		Duration:  rep.Duration,
		Detail: map[string]any{
			"scanned":         rep.Scanned,
			"skippedLevels":   rep.SkippedLevels,
			"matchedBySchema": rep.Matched,
		},
	})

	if !res.Success {
		return nil, fmt.Errorf("%w: orphan cleanup failed everywhere", model.ErrBackendUnavailable)
	}
	return res, nil
}

func scopeLabel(s purge.Scope) string {
	lang, level := s.LanguageID, string(s.Level)
	if lang == "" {
		lang = "*"
	}
	if level == "" {
		level = "*"
	}
	return lang + "/" + level
}

// FindDuplicates groups catalog items that share a trimmed value within the
// same language, level and type.
func (s *contentService) FindDuplicates(ctx context.Context, languageID, level string) ([]model.DuplicateGroup, error) {
	scope, err := parseScope(languageID, level)
	if err != nil {
		return nil, err
	}

	languages := []string{scope.LanguageID}
	if scope.LanguageID == "" {
		if languages, err = s.contentRepo.ListLanguages(ctx); err != nil {
			return nil, err
		}
	}

	groups := []model.DuplicateGroup{}
	for _, lang := range languages {
		levels := model.LevelsFor(lang)
		if scope.Level != "" {
			if !scope.Level.Supports(lang) {
				continue
			}
			levels = []model.Level{scope.Level}
		}
		for _, lv := range levels {
			for _, typ := range model.ContentTypes {
				items, err := s.contentRepo.ListItems(ctx, lang, lv, typ)
				if err != nil {
					return nil, err
				}
				groups = append(groups, GroupDuplicates(items)...)
			}
		}
	}
	return groups, nil
}

// GroupDuplicates returns one group per value held by more than one item.
// Items with an empty value are ignored.
func GroupDuplicates(items []model.ContentItem) []model.DuplicateGroup {
	type key struct {
		lang  string
		level model.Level
		typ   model.ContentType
		value string
	}
	byKey := make(map[key][]string)
	var order []key
	for _, it := range items {
		v := strings.TrimSpace(it.Value)
		if v == "" {
			continue
		}
		k := key{it.LanguageID, it.Level, it.Type, v}
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], it.ID)
	}

	var groups []model.DuplicateGroup
	for _, k := range order {
		ids := byKey[k]
		if len(ids) < 2 {
			continue
		}
		sort.Strings(ids)
		groups = append(groups, model.DuplicateGroup{
			LanguageID: k.lang,
			Level:      k.level,
			Type:       k.typ,
			Value:      k.value,
			ItemIDs:    ids,
		})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Value < groups[j].Value })
	return groups
}
