package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"

	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/model"
)

// requestLogger returns the request-scoped logger tagged with the handler name.
func requestLogger(r *http.Request, handler string) *slog.Logger {
	return middleware.GetLogger(r.Context()).With(slog.String("handler", handler))
}

// queryLimit reads ?limit=. Missing means 0 and lets the service pick its default.
func queryLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	n, err := cast.ToIntE(raw)
	if err != nil || n < 0 {
		return 0, model.NewAppError("INVALID_QUERY_PARAM", "limit must be a non-negative integer", "limit", model.ErrInvalidInput)
	}
	return n, nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		return false, model.NewAppError("INVALID_QUERY_PARAM", key+" must be a boolean", key, model.ErrInvalidInput)
	}
	return b, nil
}

// pathParam returns a trimmed chi URL parameter.
func pathParam(r *http.Request, key string) string {
	return strings.TrimSpace(chi.URLParam(r, key))
}
