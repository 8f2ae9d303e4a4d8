//go:generate mockery --name FeedbackRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"time"

	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/model"
)

const feedbackCollection = "feedback"

type FeedbackRepository interface {
	List(ctx context.Context, unresolvedOnly bool, cursor string, limit int) ([]model.FeedbackEntry, string, error)
	Resolve(ctx context.Context, uid, resolvedBy, note string) (*model.FeedbackEntry, error)
	Count(ctx context.Context) (int64, error)
}

type docFeedbackRepository struct {
	store docstore.Store
	now   func() time.Time
}

func NewDocFeedbackRepository(store docstore.Store) FeedbackRepository {
	return &docFeedbackRepository{store: store, now: time.Now}
}

// List pages feedback in user-id order. With unresolvedOnly, resolved
// entries are skipped but still advance the cursor.
func (r *docFeedbackRepository) List(ctx context.Context, unresolvedOnly bool, cursor string, limit int) ([]model.FeedbackEntry, string, error) {
	if limit <= 0 || limit > MaxUserPageSize {
		limit = DefaultUserPageSize
	}
	docs, err := r.store.List(ctx, feedbackCollection, docstore.ListOptions{Limit: limit, StartAfter: cursor})
	if err != nil {
		return nil, "", storeErr("docFeedbackRepository.List", err)
	}
	entries := make([]model.FeedbackEntry, 0, len(docs))
	for _, d := range docs {
		fb := model.FeedbackFromDoc(d.ID, d.Data)
		if unresolvedOnly && fb.Resolved {
			continue
		}
		entries = append(entries, fb)
	}
	next := ""
	if len(docs) == limit {
		next = docs[len(docs)-1].ID
	}
	return entries, next, nil
}

func (r *docFeedbackRepository) Resolve(ctx context.Context, uid, resolvedBy, note string) (*model.FeedbackEntry, error) {
	path := docstore.Join(feedbackCollection, uid)
	fields := map[string]any{
		"resolved":   true,
		"resolvedBy": resolvedBy,
		"resolvedAt": r.now().UTC(),
	}
	if note != "" {
		fields["resolutionNote"] = note
	}
	if err := r.store.Update(ctx, path, fields); err != nil {
		return nil, storeErr("docFeedbackRepository.Resolve", err)
	}
	doc, err := r.store.Get(ctx, path)
	if err != nil {
		return nil, storeErr("docFeedbackRepository.Resolve", err)
	}
	fb := model.FeedbackFromDoc(doc.ID, doc.Data)
	return &fb, nil
}

func (r *docFeedbackRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.store.Count(ctx, feedbackCollection)
	return n, storeErr("docFeedbackRepository.Count", err)
}
