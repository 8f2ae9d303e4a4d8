package handlers

import (
	"log/slog"
	"net/http"

	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/service"
	"lingo_admin_console/internal/webutil"
)

// AccountHandler serves the end-user self-deletion route.
type AccountHandler struct {
	accounts service.AccountService
}

func NewAccountHandler(accounts service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// DeleteAccount removes the authenticated caller's data and auth account.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "DeleteAccount")

	uid, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Account deletion without caller identity", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("uid", uid))

	res, err := h.accounts.DeleteAccount(r.Context(), uid)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Account deleted",
		slog.Int("deleted_documents", res.DeletedDocuments),
		slog.Bool("auth_deleted", res.AuthDeleted),
		slog.Int("failures", len(res.Failures)),
	)
	webutil.RespondWithJSON(w, http.StatusOK, res)
}
