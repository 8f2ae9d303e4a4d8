package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/repository"
	"lingo_admin_console/internal/service"
)

func TestFeedbackService_ListAndResolve(t *testing.T) {
	store := docstore.NewMemoryStore()
	store.Put("feedback/u1", map[string]any{"rating": 2, "text": "too hard"})
	store.Put("feedback/u2", map[string]any{"rating": 5, "message": "great", "resolved": true})

	db := setupAuditDB(t)
	svc := service.NewFeedbackService(
		repository.NewDocFeedbackRepository(store),
		service.NewAuditService(db, repository.NewGormAuditRepository(), testLogger),
		testLogger,
	)
	ctx := context.WithValue(context.Background(), model.ActorKey, "ops@example.com")

	page, err := svc.List(ctx, true, "", 10)
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "u1", page.Entries[0].UserID)
	assert.Equal(t, "too hard", page.Entries[0].Text)

	fb, err := svc.Resolve(ctx, "u1", &model.ResolveFeedbackRequest{Note: "answered by mail"})
	require.NoError(t, err)
	assert.True(t, fb.Resolved)
	assert.Equal(t, "ops@example.com", fb.ResolvedBy)
	require.NotNil(t, fb.ResolvedAt)

	var rec model.AuditRecord
	require.NoError(t, db.First(&rec).Error)
	assert.Equal(t, model.OpResolveFeedback, rec.Operation)
	assert.Equal(t, "ops@example.com", rec.Actor)

	_, err = svc.Resolve(ctx, "missing", &model.ResolveFeedbackRequest{})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
