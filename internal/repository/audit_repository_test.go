package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/repository"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	return db
}

func TestGormAuditRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := repository.NewGormAuditRepository()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []*model.AuditRecord{
		{Operation: model.OpDeleteUser, Subject: "u1", Success: true, Deleted: 4, CreatedAt: base},
		{Operation: model.OpCascadeContent, Subject: "w1", Success: true, Deleted: 9, CreatedAt: base.Add(time.Minute)},
		{Operation: model.OpDeleteUser, Subject: "u2", Success: false, Failures: 1, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, rec := range records {
		require.NoError(t, repo.Create(ctx, db, rec))
		assert.NotEqual(t, uuid.Nil, rec.AuditID)
	}

	tests := []struct {
		name     string
		filter   repository.AuditFilter
		subjects []string
	}{
		{name: "newest first", filter: repository.AuditFilter{}, subjects: []string{"u2", "w1", "u1"}},
		{name: "by operation", filter: repository.AuditFilter{Operation: model.OpDeleteUser}, subjects: []string{"u2", "u1"}},
		{name: "by subject", filter: repository.AuditFilter{Subject: "w1"}, subjects: []string{"w1"}},
		{name: "limited", filter: repository.AuditFilter{Limit: 1}, subjects: []string{"u2"}},
		{name: "no match", filter: repository.AuditFilter{Operation: model.OpResetProgress}, subjects: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, db, tt.filter)
			require.NoError(t, err)
			subjects := make([]string, 0, len(got))
			for _, r := range got {
				subjects = append(subjects, r.Subject)
			}
			assert.Equal(t, tt.subjects, subjects)
		})
	}
}

func TestGormAuditRepository_CreateKeepsGivenID(t *testing.T) {
	db := setupDB(t)
	id := uuid.New()
	rec := &model.AuditRecord{AuditID: id, Operation: model.OpResolveFeedback, Subject: "u1", Success: true}
	require.NoError(t, repository.NewGormAuditRepository().Create(context.Background(), db, rec))

	var stored model.AuditRecord
	require.NoError(t, db.First(&stored, "audit_id = ?", id).Error)
	assert.Equal(t, "u1", stored.Subject)
	assert.False(t, stored.CreatedAt.IsZero())
}
