package handlers

import (
	"log/slog"
	"net/http"

	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/service"
	"lingo_admin_console/internal/webutil"
)

type FeedbackHandler struct {
	feedback service.FeedbackService
}

func NewFeedbackHandler(feedback service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// ListFeedback supports ?unresolved=true, ?cursor= and ?limit=.
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "ListFeedback")

	unresolved, err := queryBool(r, "unresolved")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	page, err := h.feedback.List(r.Context(), unresolved, r.URL.Query().Get("cursor"), limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if page.Entries == nil {
		page.Entries = []model.FeedbackEntry{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *FeedbackHandler) ResolveFeedback(w http.ResponseWriter, r *http.Request) {
	uid := pathParam(r, "user_id")
	logger := requestLogger(r, "ResolveFeedback").With(slog.String("uid", uid))

	var req model.ResolveFeedbackRequest
	if err := webutil.DecodeAndValidate(r, &req, true); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	fb, err := h.feedback.Resolve(r.Context(), uid, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Feedback resolved", slog.String("resolved_by", fb.ResolvedBy))
	webutil.RespondWithJSON(w, http.StatusOK, fb)
}
