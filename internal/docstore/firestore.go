package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore is the production Store backed by Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Get(ctx context.Context, path string) (Document, error) {
	ref := s.doc(path)
	if ref == nil {
		return Document{}, fmt.Errorf("firestore get %q: %w", path, ErrInvalidPath)
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return Document{}, wrapErr("get", path, err)
	}
	return toDocument(path, snap), nil
}

func (s *FirestoreStore) List(ctx context.Context, collectionPath string, opts ListOptions) ([]Document, error) {
	col := s.collection(collectionPath)
	if col == nil {
		return nil, fmt.Errorf("firestore list %q: %w", collectionPath, ErrInvalidPath)
	}
	q := col.OrderBy(firestore.DocumentID, firestore.Asc)
	if opts.StartAfter != "" {
		q = q.StartAfter(col.Doc(opts.StartAfter))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	return s.drain(ctx, collectionPath, q.Documents(ctx))
}

func (s *FirestoreStore) Query(ctx context.Context, collectionPath, field string, value any, limit int) ([]Document, error) {
	col := s.collection(collectionPath)
	if col == nil {
		return nil, fmt.Errorf("firestore query %q: %w", collectionPath, ErrInvalidPath)
	}
	q := col.Where(field, "==", value)
	if limit > 0 {
		q = q.Limit(limit)
	}
	return s.drain(ctx, collectionPath, q.Documents(ctx))
}

func (s *FirestoreStore) Count(ctx context.Context, collectionPath string) (int64, error) {
	col := s.collection(collectionPath)
	if col == nil {
		return 0, fmt.Errorf("firestore count %q: %w", collectionPath, ErrInvalidPath)
	}
	res, err := col.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, wrapErr("count", collectionPath, err)
	}
	raw, ok := res["all"]
	if !ok {
		return 0, fmt.Errorf("firestore count %q: missing aggregation result", collectionPath)
	}
	v, ok := raw.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("firestore count %q: unexpected result type %T", collectionPath, raw)
	}
	return v.GetIntegerValue(), nil
}

// DocumentIDs uses DocumentRefs, which also yields missing documents that
// only hold subcollections.
func (s *FirestoreStore) DocumentIDs(ctx context.Context, collectionPath string) ([]string, error) {
	col := s.collection(collectionPath)
	if col == nil {
		return nil, fmt.Errorf("firestore document ids %q: %w", collectionPath, ErrInvalidPath)
	}
	refs, err := col.DocumentRefs(ctx).GetAll()
	if err != nil {
		return nil, wrapErr("document ids", collectionPath, err)
	}
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *FirestoreStore) Set(ctx context.Context, path string, fields map[string]any, merge bool) error {
	ref := s.doc(path)
	if ref == nil {
		return fmt.Errorf("firestore set %q: %w", path, ErrInvalidPath)
	}
	var err error
	if merge {
		_, err = ref.Set(ctx, fields, firestore.MergeAll)
	} else {
		_, err = ref.Set(ctx, fields)
	}
	if err != nil {
		return wrapErr("set", path, err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, path string, fields map[string]any) error {
	ref := s.doc(path)
	if ref == nil {
		return fmt.Errorf("firestore update %q: %w", path, ErrInvalidPath)
	}
	if _, err := ref.Update(ctx, toUpdates(fields)); err != nil {
		return wrapErr("update", path, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, path string) error {
	ref := s.doc(path)
	if ref == nil {
		return fmt.Errorf("firestore delete %q: %w", path, ErrInvalidPath)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return wrapErr("delete", path, err)
	}
	return nil
}

func (s *FirestoreStore) Collections(ctx context.Context, docPath string) ([]string, error) {
	var it *firestore.CollectionIterator
	if docPath == "" {
		it = s.client.Collections(ctx)
	} else {
		ref := s.doc(docPath)
		if ref == nil {
			return nil, fmt.Errorf("firestore collections %q: %w", docPath, ErrInvalidPath)
		}
		it = ref.Collections(ctx)
	}
	refs, err := it.GetAll()
	if err != nil {
		return nil, wrapErr("collections", docPath, err)
	}
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.ID)
	}
	return names, nil
}

func (s *FirestoreStore) NewBatch() Batch {
	return &firestoreBatch{client: s.client, wb: s.client.Batch()}
}

func (s *FirestoreStore) doc(path string) *firestore.DocumentRef {
	if !isDocPath(path) {
		return nil
	}
	return s.client.Doc(path)
}

func (s *FirestoreStore) collection(path string) *firestore.CollectionRef {
	if !isCollectionPath(path) {
		return nil
	}
	return s.client.Collection(path)
}

func (s *FirestoreStore) drain(ctx context.Context, collectionPath string, it *firestore.DocumentIterator) ([]Document, error) {
	defer it.Stop()
	var docs []Document
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, wrapErr("list", collectionPath, err)
		}
		docs = append(docs, toDocument(Join(collectionPath, snap.Ref.ID), snap))
	}
	return docs, nil
}

type firestoreBatch struct {
	client *firestore.Client
	wb     *firestore.WriteBatch
	n      int
}

func (b *firestoreBatch) Delete(path string) {
	b.wb.Delete(b.client.Doc(path))
	b.n++
}

func (b *firestoreBatch) Update(path string, fields map[string]any) {
	b.wb.Update(b.client.Doc(path), toUpdates(fields))
	b.n++
}

func (b *firestoreBatch) Len() int { return b.n }

func (b *firestoreBatch) Commit(ctx context.Context) error {
	if b.n > MaxBatchOps {
		return ErrBatchFull
	}
	if _, err := b.wb.Commit(ctx); err != nil {
		return wrapErr("commit", fmt.Sprintf("%d ops", b.n), err)
	}
	return nil
}

func toDocument(path string, snap *firestore.DocumentSnapshot) Document {
	return Document{ID: snap.Ref.ID, Path: path, Data: snap.Data()}
}

func toUpdates(fields map[string]any) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	return updates
}

func wrapErr(op, path string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("firestore %s %q: %w", op, path, ErrNotFound)
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return fmt.Errorf("firestore %s %q: %w: %v", op, path, ErrUnavailable, err)
	}
	return fmt.Errorf("firestore %s %q: %w", op, path, err)
}
