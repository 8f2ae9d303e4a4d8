package webutil_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/webutil"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", model.ErrInvalidInput, http.StatusBadRequest},
		{"wrapped app error", model.NewAppError("X", "x", "", model.ErrInvalidInput), http.StatusBadRequest},
		{"unauthorized", model.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", model.ErrForbidden, http.StatusForbidden},
		{"not found", fmt.Errorf("lookup: %w", model.ErrNotFound), http.StatusNotFound},
		{"backend unavailable", fmt.Errorf("%w: read user u1", model.ErrBackendUnavailable), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, webutil.MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleError_HidesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	webutil.HandleError(rec, nil, errors.New("secret connection string"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")

	var body model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"DISABLED"}`))
		var req model.UpdateUserStatusRequest
		require.NoError(t, webutil.DecodeAndValidate(r, &req, false))
		assert.Equal(t, "DISABLED", req.Status)
	})

	t.Run("oneof violation", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"BANNED"}`))
		var req model.UpdateUserStatusRequest
		err := webutil.DecodeAndValidate(r, &req, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)

		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "status", appErr.Detail.Field)
	})

	t.Run("unknown field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"ACTIVE","extra":1}`))
		var req model.UpdateUserStatusRequest
		assert.ErrorIs(t, webutil.DecodeAndValidate(r, &req, false), model.ErrInvalidInput)
	})

	t.Run("empty body allowed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var req model.OrphanCleanupRequest
		assert.NoError(t, webutil.DecodeAndValidate(r, &req, true))
	})
}
