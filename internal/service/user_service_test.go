package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/docstore/docstoretest"
	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/repository"
	"lingo_admin_console/internal/service"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newUserService(store docstore.Store, clock *manualClock) *service.CachedUserService {
	return service.NewUserService(
		repository.NewDocUserRepository(store),
		repository.NewDocContentRepository(store, 0),
		repository.NewDocBadgeRepository(store),
		repository.NewDocFeedbackRepository(store),
		time.Minute,
		clock,
		testLogger,
	)
}

func TestUserService_ListIsCachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	store.Put("users/a", map[string]any{"name": "A", "email": "a@example.com"})
	store.Put("users/b", map[string]any{"name": "B", "status": "DISABLED"})
	clock := &manualClock{now: time.Unix(1_700_000_000, 0)}
	svc := newUserService(store, clock)

	page, err := svc.List(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, page.Users, 2)
	assert.Equal(t, model.UserStatusDisabled, page.Users[1].Status)
	assert.Equal(t, model.RoleUser, page.Users[0].Role)

	store.Put("users/c", map[string]any{"name": "C"})
	page, err = svc.List(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, page.Users, 2, "served from cache")

	svc.Invalidate("c")
	page, err = svc.List(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, page.Users, 3)

	store.Put("users/d", map[string]any{})
	clock.Advance(time.Minute)
	page, err = svc.List(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, page.Users, 4, "expired entries are reloaded")
}

func TestUserService_InvalidateDetails(t *testing.T) {
	tests := []struct {
		name       string
		invalidate string
		wantFresh  bool
	}{
		{"other user keeps cached detail", "b", false},
		{"same user reloads", "a", true},
		{"unknown set of users reloads everyone", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store := docstore.NewMemoryStore()
			store.Put("users/a", map[string]any{"name": "A", "totalAssessments": 4})
			svc := newUserService(store, &manualClock{now: time.Unix(1_700_000_000, 0)})

			u, err := svc.Get(ctx, "a")
			require.NoError(t, err)
			require.Equal(t, 4, u.TotalAssessments)

			store.Put("users/a", map[string]any{"name": "A", "totalAssessments": 1})
			svc.Invalidate(tc.invalidate)

			u, err = svc.Get(ctx, "a")
			require.NoError(t, err)
			if tc.wantFresh {
				assert.Equal(t, 1, u.TotalAssessments)
			} else {
				assert.Equal(t, 4, u.TotalAssessments)
			}
		})
	}
}

func TestUserService_ListPaging(t *testing.T) {
	store := docstore.NewMemoryStore()
	for _, id := range []string{"a", "b", "c"} {
		store.Put("users/"+id, map[string]any{})
	}
	svc := newUserService(store, &manualClock{})

	page, err := svc.List(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Equal(t, "b", page.NextCursor)

	page, err = svc.List(context.Background(), page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "c", page.Users[0].ID)
	assert.Empty(t, page.NextCursor)
}

func TestUserService_GetMissing(t *testing.T) {
	svc := newUserService(docstore.NewMemoryStore(), &manualClock{})
	_, err := svc.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserService_Stats(t *testing.T) {
	store := docstore.NewMemoryStore()
	store.Put("users/a", map[string]any{})
	store.Put("users/b", map[string]any{})
	store.Put("badges/first", map[string]any{"name": "First steps"})
	store.Put("feedback/a", map[string]any{"rating": 3})
	store.Put("languages/english", map[string]any{})
	store.Put("languages/spanish", map[string]any{})
	store.Put("languages/french", map[string]any{})

	stats, err := newUserService(store, &manualClock{}).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Stats{Users: 2, Badges: 1, Feedback: 1, Languages: 3}, *stats)
}

func TestUserService_StatsBackendDown(t *testing.T) {
	faulty := docstoretest.NewFaultyStore(docstore.NewMemoryStore())
	faulty.FailReads("badges", docstore.ErrUnavailable)

	_, err := newUserService(faulty, &manualClock{}).Stats(context.Background())
	assert.ErrorIs(t, err, model.ErrBackendUnavailable)
}

func TestUserService_Collections(t *testing.T) {
	store := docstore.NewMemoryStore()
	store.Put("users/a", map[string]any{})
	store.Put("users/a/history/h1", map[string]any{})
	store.Put("users/a/history/h2", map[string]any{})
	store.Put("users/a/legacyStuff/x", map[string]any{})

	infos, err := newUserService(store, &manualClock{}).Collections(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []model.CollectionInfo{
		{Name: "history", Documents: 2},
		{Name: "legacyStuff", Documents: 1},
	}, infos)
}
