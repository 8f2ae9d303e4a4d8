package purge

import (
	"context"

	"lingo_admin_console/internal/docstore"
)

// BatchWriter stages writes into store batches and commits once the
// configured limit is reached. Staged work that was never committed is lost,
// which is fine: every caller is safe to re-run.
type BatchWriter struct {
	store   docstore.Store
	limit   int
	batch   docstore.Batch
	commits int
	written int
}

// NewBatchWriter clamps limit to (0, docstore.MaxBatchOps].
func NewBatchWriter(store docstore.Store, limit int) *BatchWriter {
	if limit <= 0 || limit > docstore.MaxBatchOps {
		limit = docstore.MaxBatchOps
	}
	return &BatchWriter{store: store, limit: limit, batch: store.NewBatch()}
}

func (w *BatchWriter) StageDelete(path string) {
	w.batch.Delete(path)
}

func (w *BatchWriter) StageUpdate(path string, fields map[string]any) {
	w.batch.Update(path, fields)
}

func (w *BatchWriter) Pending() int { return w.batch.Len() }

func (w *BatchWriter) Limit() int { return w.limit }

// Commits counts successful commits.
func (w *BatchWriter) Commits() int { return w.commits }

// Written counts operations made durable.
func (w *BatchWriter) Written() int { return w.written }

// CommitIfFull commits when the pending count has reached the limit.
func (w *BatchWriter) CommitIfFull(ctx context.Context) (bool, error) {
	if w.batch.Len() < w.limit {
		return false, nil
	}
	return true, w.commit(ctx)
}

// CommitFinal commits whatever is pending.
func (w *BatchWriter) CommitFinal(ctx context.Context) error {
	if w.batch.Len() == 0 {
		return nil
	}
	return w.commit(ctx)
}

// Discard drops staged operations without writing them.
func (w *BatchWriter) Discard() {
	w.batch = w.store.NewBatch()
}

func (w *BatchWriter) commit(ctx context.Context) error {
	n := w.batch.Len()
	err := w.batch.Commit(ctx)
	w.batch = w.store.NewBatch()
	if err != nil {
		return err
	}
	w.commits++
	w.written += n
	return nil
}
