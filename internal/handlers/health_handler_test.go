package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lingo_admin_console/internal/handlers"
)

func TestHealthHandler(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	tests := []struct {
		name  string
		db    *gorm.DB
		audit string
	}{
		{name: "without audit database", db: nil, audit: "disabled"},
		{name: "with audit database", db: db, audit: "ok"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(http.HandlerFunc(handlers.NewHealthHandler(tc.db).Health), createRequest(t, http.MethodGet, "/health", nil, nil))

			require.Equal(t, http.StatusOK, rr.Code)
			var got handlers.HealthStatus
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, "ok", got.Status)
			assert.Equal(t, tc.audit, got.Audit)
			assert.NotEmpty(t, got.Version)
		})
	}
}
