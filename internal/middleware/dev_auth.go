package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/webutil"
)

// DevUserContextMiddleware trusts the X-User-ID header as the caller's uid.
// Only mounted when APP_ENV=dev; no token is verified.
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())
		uid := r.Header.Get("X-User-ID")
		if uid == "" {
			logger.Warn("[DEV AUTH] X-User-ID header missing")
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] missing X-User-ID header", "", model.ErrUnauthorized))
			return
		}
		logger.Debug("[DEV AUTH] user set from header", slog.String("uid", uid))
		ctx := context.WithValue(r.Context(), model.UserIDKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DevAdminMiddleware marks every request as coming from a local admin.
func DevAdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := r.Header.Get("X-Admin")
		if actor == "" {
			actor = "dev-admin"
		}
		ctx := context.WithValue(r.Context(), model.ActorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
