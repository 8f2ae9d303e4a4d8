package service_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lingo_admin_console/internal/repository"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// setupAuditDB opens a private in-memory sqlite database with the audit
// schema applied.
func setupAuditDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	return db
}

// nopInvalidator counts invalidations.
type nopInvalidator struct{ calls []string }

func (n *nopInvalidator) Invalidate(uid string) { n.calls = append(n.calls, uid) }
