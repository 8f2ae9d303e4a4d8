package handlers

import (
	"net/http"

	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/repository"
	"lingo_admin_console/internal/service"
	"lingo_admin_console/internal/webutil"
)

type AuditHandler struct {
	audit service.AuditService
}

func NewAuditHandler(audit service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListAudit returns recent engine runs, newest first.
func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "ListAudit")

	limit, err := queryLimit(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	q := r.URL.Query()
	records, err := h.audit.List(r.Context(), repository.AuditFilter{
		Operation: q.Get("operation"),
		Subject:   q.Get("subject"),
		Limit:     limit,
	})
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if records == nil {
		records = []*model.AuditRecord{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, records)
}
