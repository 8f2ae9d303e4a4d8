package handlers

import (
	"log/slog"
	"net/http"

	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/service"
	"lingo_admin_console/internal/webutil"
)

type ContentHandler struct {
	content service.ContentService
}

func NewContentHandler(content service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// CascadeDelete removes every assessment that references a content item.
func (h *ContentHandler) CascadeDelete(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "CascadeDelete")

	var req model.CascadeDeleteRequest
	if err := webutil.DecodeAndValidate(r, &req, false); err != nil {
		logger.Warn("Invalid cascade request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("content_id", req.ContentID), slog.String("content_type", req.ContentType))

	res, err := h.content.CascadeDelete(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Content cascade finished",
		slog.Int("deleted_assessments", res.DeletedAssessments),
		slog.Int("users_affected", res.UsersAffected),
		slog.Int("failures", len(res.Failures)),
	)
	webutil.RespondWithJSON(w, http.StatusOK, res)
}

// DeleteContentItem deletes one catalog item and cascades to its assessments.
func (h *ContentHandler) DeleteContentItem(w http.ResponseWriter, r *http.Request) {
	languageID := pathParam(r, "language_id")
	level := pathParam(r, "level")
	contentType := pathParam(r, "content_type")
	contentID := pathParam(r, "content_id")
	logger := requestLogger(r, "DeleteContentItem").With(
		slog.String("language_id", languageID),
		slog.String("level", level),
		slog.String("content_type", contentType),
		slog.String("content_id", contentID),
	)

	res, err := h.content.DeleteContentItem(r.Context(), languageID, level, contentType, contentID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Content item deleted",
		slog.Bool("item_deleted", res.ItemDeleted),
		slog.Int("deleted_assessments", res.DeletedAssessments),
	)
	webutil.RespondWithJSON(w, http.StatusOK, res)
}

// CleanupOrphans accepts an empty body for an unscoped run.
func (h *ContentHandler) CleanupOrphans(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "CleanupOrphans")

	var req model.OrphanCleanupRequest
	if err := webutil.DecodeAndValidate(r, &req, true); err != nil {
		logger.Warn("Invalid orphan cleanup request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	res, err := h.content.CleanupOrphans(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Orphan cleanup finished",
		slog.Int("scanned", res.Scanned),
		slog.Int("deleted", res.Deleted),
		slog.Any("skipped_levels", res.SkippedLevels),
	)
	webutil.RespondWithJSON(w, http.StatusOK, res)
}

func (h *ContentHandler) FindDuplicates(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "FindDuplicates")
	q := r.URL.Query()

	groups, err := h.content.FindDuplicates(r.Context(), q.Get("languageId"), q.Get("level"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if groups == nil {
		groups = []model.DuplicateGroup{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, groups)
}
