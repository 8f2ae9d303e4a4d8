// Package docstore abstracts the managed document database: collections of
// documents addressed by slash-separated paths, batched writes with an
// operation ceiling, and server-side counts.
package docstore

import (
	"context"
	"errors"
	"strings"
)

// MaxBatchOps is the backend's hard ceiling on operations in one batch.
const MaxBatchOps = 500

var (
	ErrNotFound    = errors.New("docstore: document not found")
	ErrUnavailable = errors.New("docstore: backend unavailable")
	ErrInvalidPath = errors.New("docstore: invalid path")
	ErrBatchFull   = errors.New("docstore: batch exceeds operation ceiling")
)

// Document is a snapshot of one stored document.
type Document struct {
	ID   string
	Path string
	Data map[string]any
}

// ListOptions pages a collection in document-id order.
type ListOptions struct {
	Limit      int
	StartAfter string
}

type Store interface {
	Get(ctx context.Context, path string) (Document, error)
	// List returns documents of one collection ordered by id. A collection
	// that does not exist lists as empty.
	List(ctx context.Context, collectionPath string, opts ListOptions) ([]Document, error)
	// Query returns up to limit documents whose field equals value.
	Query(ctx context.Context, collectionPath, field string, value any, limit int) ([]Document, error)
	Count(ctx context.Context, collectionPath string) (int64, error)
	// DocumentIDs lists the ids under a collection, sorted, including ids
	// that have no document of their own but own subcollections.
	DocumentIDs(ctx context.Context, collectionPath string) ([]string, error)
	// Set writes fields. With merge, existing fields not named are kept and a
	// missing document is created.
	Set(ctx context.Context, path string, fields map[string]any, merge bool) error
	// Update changes fields of an existing document; ErrNotFound otherwise.
	Update(ctx context.Context, path string, fields map[string]any) error
	// Delete is idempotent and does not touch subcollections.
	Delete(ctx context.Context, path string) error
	// Collections lists subcollection names under docPath, or root
	// collections when docPath is empty.
	Collections(ctx context.Context, docPath string) ([]string, error)
	NewBatch() Batch
}

// Batch stages writes that are applied atomically on Commit.
type Batch interface {
	Delete(path string)
	Update(path string, fields map[string]any)
	Len() int
	Commit(ctx context.Context) error
}

// Join builds a path from segments, ignoring empty ones.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// Split returns the parent collection path and the id of a document path.
func Split(docPath string) (collection, id string) {
	docPath = strings.Trim(docPath, "/")
	i := strings.LastIndex(docPath, "/")
	if i < 0 {
		return "", docPath
	}
	return docPath[:i], docPath[i+1:]
}

func isDocPath(p string) bool {
	p = strings.Trim(p, "/")
	return p != "" && strings.Count(p, "/")%2 == 1
}

func isCollectionPath(p string) bool {
	p = strings.Trim(p, "/")
	return p != "" && strings.Count(p, "/")%2 == 0
}
