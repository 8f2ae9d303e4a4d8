package docstore_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo_admin_console/internal/docstore"
)

func TestMemoryStore_ListPagesInIDOrder(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	for _, id := range []string{"c", "a", "e", "b", "d"} {
		store.Put("letters/"+id, map[string]any{"v": id})
	}
	store.Put("letters/a/nested/x", map[string]any{})

	page, err := store.List(ctx, "letters", docstore.ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "a", page[0].ID)
	assert.Equal(t, "letters/b", page[1].Path)

	page, err = store.List(ctx, "letters", docstore.ListOptions{Limit: 2, StartAfter: "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, ids(page))

	page, err = store.List(ctx, "letters", docstore.ListOptions{StartAfter: "d"})
	require.NoError(t, err)
	assert.Equal(t, []string{"e"}, ids(page))
}

func TestMemoryStore_MissingCollectionIsEmpty(t *testing.T) {
	store := docstore.NewMemoryStore()
	page, err := store.List(context.Background(), "users/none/history", docstore.ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page)

	n, err := store.Count(context.Background(), "users")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryStore_InvalidPaths(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()

	_, err := store.Get(ctx, "users")
	assert.ErrorIs(t, err, docstore.ErrInvalidPath)
	_, err = store.List(ctx, "users/u1", docstore.ListOptions{})
	assert.ErrorIs(t, err, docstore.ErrInvalidPath)
}

func TestMemoryStore_UpdateAndSet(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()

	err := store.Update(ctx, "users/u1", map[string]any{"status": "DISABLED"})
	require.ErrorIs(t, err, docstore.ErrNotFound)
	assert.False(t, store.Exists("users/u1"), "update never creates")

	require.NoError(t, store.Set(ctx, "users/u1", map[string]any{"status": "ACTIVE"}, true))
	require.NoError(t, store.Set(ctx, "users/u1", map[string]any{"email": "a@b.c"}, true))
	doc, err := store.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", doc.Data["status"])
	assert.Equal(t, "a@b.c", doc.Data["email"])

	require.NoError(t, store.Set(ctx, "users/u1", map[string]any{"email": "x@y.z"}, false))
	doc, err = store.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.NotContains(t, doc.Data, "status")
}

func TestMemoryStore_DocumentIDsIncludesMissingParents(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	store.Put("users/u1/languages/spanish", map[string]any{"points": 1})
	store.Put("users/u1/languages/german/assessmentsByLevel/beginner/assessments/a1", map[string]any{})
	store.Put("users/u1/languages/spanish/assessmentsByLevel/beginner/assessments/a1", map[string]any{})
	store.Put("users/u2/languages/french", map[string]any{})

	listed, err := store.List(ctx, "users/u1/languages", docstore.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"spanish"}, ids(listed))

	refs, err := store.DocumentIDs(ctx, "users/u1/languages")
	require.NoError(t, err)
	assert.Equal(t, []string{"german", "spanish"}, refs)

	empty, err := store.DocumentIDs(ctx, "users/u9/languages")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = store.DocumentIDs(ctx, "users/u1")
	assert.ErrorIs(t, err, docstore.ErrInvalidPath)
}

func TestMemoryStore_QueryAndCollections(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	store.Put("reports/r1", map[string]any{"userId": "u1"})
	store.Put("reports/r2", map[string]any{"userId": "u2"})
	store.Put("reports/r3", map[string]any{"userId": "u1"})
	store.Put("users/u1/history/h1", map[string]any{})
	store.Put("users/u1/languages/en/assessmentsByLevel/beginner/assessments/a", map[string]any{})

	docs, err := store.Query(ctx, "reports", "userId", "u1", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r3"}, ids(docs))

	names, err := store.Collections(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"history", "languages"}, names)

	roots, err := store.Collections(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"reports", "users"}, roots)
}

func TestMemoryStore_BatchIsAtomicAndCapped(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	store.Put("c/a", map[string]any{})

	b := store.NewBatch()
	b.Delete("c/a")
	b.Update("c/missing", map[string]any{"x": 1})
	require.ErrorIs(t, b.Commit(ctx), docstore.ErrNotFound)
	assert.True(t, store.Exists("c/a"), "nothing applied from a failed batch")

	big := store.NewBatch()
	for i := 0; i <= docstore.MaxBatchOps; i++ {
		big.Delete(fmt.Sprintf("c/%d", i))
	}
	assert.ErrorIs(t, big.Commit(ctx), docstore.ErrBatchFull)
	assert.Zero(t, store.Commits())
}

func TestJoinAndSplit(t *testing.T) {
	assert.Equal(t, "users/u1/languages", docstore.Join("users", "/u1/", "", "languages"))
	col, id := docstore.Split("users/u1/languages/en")
	assert.Equal(t, "users/u1/languages", col)
	assert.Equal(t, "en", id)
}

func ids(docs []docstore.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}

func TestMemoryStore_LoadSeed(t *testing.T) {
	store := docstore.NewMemoryStore()
	n, err := store.LoadSeed(strings.NewReader(`{
		"users/u1": {"email": "ann@example.com", "totalPoints": 40},
		"users/u1/languages/spanish": {"assessmentCount": 2},
		"badges/first": null
	}`))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, store.Exists("badges/first"))

	doc, err := store.Get(context.Background(), "users/u1")
	require.NoError(t, err)
	assert.Equal(t, float64(40), doc.Data["totalPoints"])

	_, err = docstore.NewMemoryStore().LoadSeed(strings.NewReader(`{"users": {}}`))
	assert.ErrorIs(t, err, docstore.ErrInvalidPath)
}
