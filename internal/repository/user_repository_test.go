package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/docstore/docstoretest"
	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/repository"
)

func TestDocUserRepository_FindByEmail(t *testing.T) {
	store := docstore.NewMemoryStore()
	store.Put("users/u1", map[string]any{"email": "a@example.com", "displayName": "Ann"})
	store.Put("users/u2", map[string]any{"email": "b@example.com"})
	repo := repository.NewDocUserRepository(store)

	u, err := repo.FindByEmail(context.Background(), " a@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Ann", u.Name)

	_, err = repo.FindByEmail(context.Background(), "c@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDocUserRepository_SetStatus(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	store.Put("users/u1", map[string]any{"name": "Ann", "status": "ACTIVE"})
	repo := repository.NewDocUserRepository(store)

	repaired, err := repo.SetStatus(ctx, "u1", model.UserStatusDisabled)
	require.NoError(t, err)
	assert.False(t, repaired)
	u, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusDisabled, u.Status)
	assert.Equal(t, "Ann", u.Name)

	repaired, err = repo.SetStatus(ctx, "ghost", model.UserStatusDisabled)
	require.NoError(t, err)
	assert.True(t, repaired)
	assert.True(t, store.Exists("users/ghost"))
}

func TestDocUserRepository_BackendErrorsMapToSentinels(t *testing.T) {
	faulty := docstoretest.NewFaultyStore(docstore.NewMemoryStore())
	faulty.FailReads("users", docstore.ErrUnavailable)
	repo := repository.NewDocUserRepository(faulty)

	_, err := repo.FindByID(context.Background(), "u1")
	assert.ErrorIs(t, err, model.ErrBackendUnavailable)
	_, err = repo.Count(context.Background())
	assert.ErrorIs(t, err, model.ErrBackendUnavailable)
}

func TestDocContentRepository_Index(t *testing.T) {
	store := docstore.NewMemoryStore()
	store.Put("languages/spanish", map[string]any{"name": "Spanish"})
	store.Put("languages/spanish/levels/beginner/words/w1", map[string]any{"value": "hola"})
	store.Put("languages/spanish/levels/beginner/sentences/s1", map[string]any{"value": "¿Qué tal?"})
	store.Put("languages/spanish/levels/intermediate/words/w9", map[string]any{"value": "sin embargo"})
	repo := repository.NewDocContentRepository(store, 1)

	idx, err := repo.Index(context.Background(), "spanish", model.LevelBeginner)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.Resolves(model.AssessmentRecord{ReferenceIDs: []string{"w1"}}))
	assert.True(t, idx.Resolves(model.AssessmentRecord{ReferenceValues: []string{"¿Qué tal?"}}))
	assert.False(t, idx.Resolves(model.AssessmentRecord{ReferenceIDs: []string{"w9"}, ReferenceValues: []string{"sin embargo"}}))

	n, err := repo.CountLanguages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
