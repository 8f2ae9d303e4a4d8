package handlers

import (
	"log/slog"
	"net/http"

	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/service"
	"lingo_admin_console/internal/webutil"
)

// UserHandler serves the admin user routes. Reads go through UserService,
// destructive operations through AccountService.
type UserHandler struct {
	users    service.UserService
	accounts service.AccountService
}

func NewUserHandler(users service.UserService, accounts service.AccountService) *UserHandler {
	return &UserHandler{users: users, accounts: accounts}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "ListUsers")

	limit, err := queryLimit(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	page, err := h.users.List(r.Context(), r.URL.Query().Get("cursor"), limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if page.Users == nil {
		page.Users = []model.User{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "GetUser")
	uid := pathParam(r, "user_id")

	user, err := h.users.Get(r.Context(), uid)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, user)
}

// DeleteUser accepts a uid or an email address in {user_ref}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ref := pathParam(r, "user_ref")
	logger := requestLogger(r, "DeleteUser").With(slog.String("user_ref", ref))

	res, err := h.accounts.DeleteUser(r.Context(), ref)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("User deleted",
		slog.String("resolved_id", res.ResolvedID),
		slog.Int("deleted_documents", res.DeletedDocuments),
		slog.Int("failures", len(res.Failures)),
	)
	webutil.RespondWithJSON(w, http.StatusOK, res)
}

func (h *UserHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	uid := pathParam(r, "user_id")
	logger := requestLogger(r, "UpdateUserStatus").With(slog.String("uid", uid))

	var req model.UpdateUserStatusRequest
	if err := webutil.DecodeAndValidate(r, &req, false); err != nil {
		logger.Warn("Invalid status update request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	res, err := h.accounts.UpdateUserStatus(r.Context(), uid, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("User status updated", slog.String("status", string(res.Status)), slog.Bool("repaired", res.Repaired))
	webutil.RespondWithJSON(w, http.StatusOK, res)
}

func (h *UserHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	uid := pathParam(r, "user_id")
	logger := requestLogger(r, "ResetProgress").With(slog.String("uid", uid))

	res, err := h.accounts.ResetProgress(r.Context(), uid)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("User progress reset", slog.Int("deleted_documents", res.DeletedDocuments))
	webutil.RespondWithJSON(w, http.StatusOK, res)
}

func (h *UserHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "ListCollections")

	infos, err := h.users.Collections(r.Context(), pathParam(r, "user_id"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if infos == nil {
		infos = []model.CollectionInfo{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, infos)
}

func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "GetStats")

	stats, err := h.users.Stats(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *UserHandler) ListBadges(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "ListBadges")

	badges, err := h.users.Badges(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, badges)
}
