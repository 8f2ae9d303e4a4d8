package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/model"
)

const testSecret = "test-secret"

func signAdmin(t *testing.T, role string, exp time.Time, secret string) string {
	t.Helper()
	claims := model.AdminClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ops@example.com",
			Issuer:    "lingo-admin-console",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAdminAuthMiddleware(t *testing.T) {
	var gotActor string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor = middleware.GetActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := middleware.AdminAuthMiddleware(testSecret, "lingo-admin-console")(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signAdmin(t, model.RoleAdmin, time.Now().Add(time.Hour), "other"), http.StatusUnauthorized},
		{"expired", "Bearer " + signAdmin(t, model.RoleAdmin, time.Now().Add(-time.Minute), testSecret), http.StatusUnauthorized},
		{"not an admin", "Bearer " + signAdmin(t, model.RoleUser, time.Now().Add(time.Hour), testSecret), http.StatusForbidden},
		{"valid", "Bearer " + signAdmin(t, model.RoleAdmin, time.Now().Add(time.Hour), testSecret), http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotActor = ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, "ops@example.com", gotActor)
			} else {
				assert.Empty(t, gotActor)
			}
		})
	}
}

type stubVerifier struct {
	uid string
	err error
}

func (s stubVerifier) VerifyIDToken(context.Context, string) (string, error) { return s.uid, s.err }

func TestUserAuthMiddleware(t *testing.T) {
	var gotUID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := middleware.GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		gotUID = uid
	})

	t.Run("accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/account/delete", nil)
		req.Header.Set("Authorization", "Bearer id-token")
		rec := httptest.NewRecorder()
		middleware.UserAuthMiddleware(stubVerifier{uid: "u1"})(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", gotUID)
	})

	t.Run("rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/account/delete", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		middleware.UserAuthMiddleware(stubVerifier{err: errors.New("expired")})(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	_, err := middleware.GetUserIDFromContext(context.Background())
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
