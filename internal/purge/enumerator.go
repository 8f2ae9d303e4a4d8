package purge

import (
	"context"
	"errors"
	"fmt"

	"lingo_admin_console/internal/docstore"
)

var errNoProgress = errors.New("purge: drain made no progress")

// Enumerator walks explicitly named collections page by page. A collection
// that does not exist is simply empty.
type Enumerator struct {
	store    docstore.Store
	pageSize int
}

func NewEnumerator(store docstore.Store, pageSize int) *Enumerator {
	if pageSize <= 0 || pageSize > docstore.MaxBatchOps {
		pageSize = docstore.MaxBatchOps
	}
	return &Enumerator{store: store, pageSize: pageSize}
}

func (e *Enumerator) PageSize() int { return e.pageSize }

// Each calls fn for every document of the collection using id cursors.
// Deleting visited documents while iterating is safe. It returns the number
// of documents visited.
func (e *Enumerator) Each(ctx context.Context, collectionPath string, fn func(docstore.Document) error) (int, error) {
	visited := 0
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return visited, err
		}
		page, err := e.store.List(ctx, collectionPath, docstore.ListOptions{Limit: e.pageSize, StartAfter: cursor})
		if err != nil {
			return visited, fmt.Errorf("enumerate %s: %w", collectionPath, err)
		}
		for _, doc := range page {
			visited++
			if err := fn(doc); err != nil {
				return visited, err
			}
		}
		if len(page) < e.pageSize {
			return visited, nil
		}
		cursor = page[len(page)-1].ID
	}
}

// Drain deletes every document of the collection. Each round lists the
// first page again after the previous round was committed, so the result
// set shrinks until a short page ends the loop.
func (e *Enumerator) Drain(ctx context.Context, collectionPath string, w *BatchWriter) (int, error) {
	deleted := 0
	lastHead := ""
	for {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		page, err := e.store.List(ctx, collectionPath, docstore.ListOptions{Limit: e.pageSize})
		if err != nil {
			return deleted, fmt.Errorf("enumerate %s: %w", collectionPath, err)
		}
		if len(page) == 0 {
			return deleted, nil
		}
		if page[0].Path == lastHead {
			return deleted, fmt.Errorf("drain %s: %w", collectionPath, errNoProgress)
		}
		lastHead = page[0].Path

		n, err := e.stageAll(ctx, page, w)
		deleted += n
		if err != nil {
			return deleted, err
		}
		if len(page) < e.pageSize {
			return deleted, nil
		}
	}
}

// DrainWhere deletes every document of the collection whose field equals
// value, re-querying after each commit.
func (e *Enumerator) DrainWhere(ctx context.Context, collectionPath, field string, value any, w *BatchWriter) (int, error) {
	deleted := 0
	lastHead := ""
	for {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		page, err := e.store.Query(ctx, collectionPath, field, value, e.pageSize)
		if err != nil {
			return deleted, fmt.Errorf("query %s: %w", collectionPath, err)
		}
		if len(page) == 0 {
			return deleted, nil
		}
		if page[0].Path == lastHead {
			return deleted, fmt.Errorf("drain %s: %w", collectionPath, errNoProgress)
		}
		lastHead = page[0].Path

		n, err := e.stageAll(ctx, page, w)
		deleted += n
		if err != nil {
			return deleted, err
		}
		if len(page) < e.pageSize {
			return deleted, nil
		}
	}
}

// Sweep deletes the documents of a collection chosen by selectFn, reading
// with cursors while writing. It returns the visited and deleted counts.
func (e *Enumerator) Sweep(ctx context.Context, collectionPath string, w *BatchWriter, selectFn func(docstore.Document) bool) (int, int, error) {
	deleted := 0
	staged := 0
	visited, err := e.Each(ctx, collectionPath, func(doc docstore.Document) error {
		if !selectFn(doc) {
			return nil
		}
		w.StageDelete(doc.Path)
		staged++
		committed, err := w.CommitIfFull(ctx)
		if err != nil {
			return fmt.Errorf("commit %s: %w", collectionPath, err)
		}
		if committed {
			deleted += staged
			staged = 0
		}
		return nil
	})
	if err != nil {
		w.Discard()
		return visited, deleted, err
	}
	if err := w.CommitFinal(ctx); err != nil {
		return visited, deleted, fmt.Errorf("commit %s: %w", collectionPath, err)
	}
	return visited, deleted + staged, nil
}

// stageAll stages deletes for a page and leaves nothing pending.
func (e *Enumerator) stageAll(ctx context.Context, page []docstore.Document, w *BatchWriter) (int, error) {
	deleted := 0
	staged := 0
	for _, doc := range page {
		w.StageDelete(doc.Path)
		staged++
		committed, err := w.CommitIfFull(ctx)
		if err != nil {
			return deleted, err
		}
		if committed {
			deleted += staged
			staged = 0
		}
	}
	if err := w.CommitFinal(ctx); err != nil {
		return deleted, err
	}
	return deleted + staged, nil
}
