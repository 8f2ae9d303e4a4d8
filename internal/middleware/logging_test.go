package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"lingo_admin_console/internal/middleware"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		status     int
		wantLevel  string
		wantDetail bool
	}{
		{"info level hides detail", slog.LevelInfo, http.StatusOK, `"level":"INFO"`, false},
		{"client error logs warn", slog.LevelInfo, http.StatusNotFound, `"level":"WARN"`, false},
		{"server error logs error", slog.LevelInfo, http.StatusServiceUnavailable, `"level":"ERROR"`, false},
		{"debug logs masked detail", slog.LevelDebug, http.StatusOK, `"level":"INFO"`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: tc.level}))

			handler := chimiddleware.RequestID(middleware.LoggingMiddleware(logger)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					middleware.GetLogger(r.Context()).Info("inside handler")
					w.WriteHeader(tc.status)
					_, _ = w.Write([]byte(`{"ok":true}`))
				})))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/account/delete", strings.NewReader(`{"x":1}`))
			req.Header.Set("Authorization", "Bearer secret-token")
			handler.ServeHTTP(httptest.NewRecorder(), req)

			out := buf.String()
			assert.Contains(t, out, `"msg":"inside handler"`)
			assert.Contains(t, out, `"req_id":"`)
			assert.NotContains(t, out, "secret-token")

			var completed string
			for _, line := range strings.Split(out, "\n") {
				if strings.Contains(line, `"msg":"Request completed"`) {
					completed = line
				}
			}
			assert.Contains(t, completed, tc.wantLevel)

			if tc.wantDetail {
				assert.Contains(t, out, `"Authorization":"[SENSITIVE]"`)
				assert.Contains(t, out, `{\"x\":1}`)
			} else {
				assert.NotContains(t, out, "Request detail")
			}
		})
	}
}

func TestGetLogger_DefaultsWithoutContextLogger(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, slog.Default(), middleware.GetLogger(req.Context()))
}
