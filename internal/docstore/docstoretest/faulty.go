// Package docstoretest provides Store wrappers for tests.
package docstoretest

import (
	"context"
	"strings"
	"sync"

	"lingo_admin_console/internal/docstore"
)

// FaultyStore fails reads and commits touching configured path fragments.
// Every other call goes to the wrapped Store.
type FaultyStore struct {
	docstore.Store

	mu      sync.Mutex
	reads   map[string]error
	commits map[string]error
	seen    []string
}

func NewFaultyStore(inner docstore.Store) *FaultyStore {
	return &FaultyStore{
		Store:   inner,
		reads:   make(map[string]error),
		commits: make(map[string]error),
	}
}

// FailReads makes List, Query, Get, Count and DocumentIDs fail for paths containing fragment.
func (f *FaultyStore) FailReads(fragment string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[fragment] = err
}

// FailCommits makes any batch that stages a path containing fragment fail.
func (f *FaultyStore) FailCommits(fragment string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits[fragment] = err
}

// Touched returns every path read or staged so far, in call order.
func (f *FaultyStore) Touched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.seen...)
}

func (f *FaultyStore) record(path string, rules map[string]error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, path)
	for frag, err := range rules {
		if strings.Contains(path, frag) {
			return err
		}
	}
	return nil
}

func (f *FaultyStore) Get(ctx context.Context, path string) (docstore.Document, error) {
	if err := f.record(path, f.reads); err != nil {
		return docstore.Document{}, err
	}
	return f.Store.Get(ctx, path)
}

func (f *FaultyStore) List(ctx context.Context, collectionPath string, opts docstore.ListOptions) ([]docstore.Document, error) {
	if err := f.record(collectionPath, f.reads); err != nil {
		return nil, err
	}
	return f.Store.List(ctx, collectionPath, opts)
}

func (f *FaultyStore) Query(ctx context.Context, collectionPath, field string, value any, limit int) ([]docstore.Document, error) {
	if err := f.record(collectionPath, f.reads); err != nil {
		return nil, err
	}
	return f.Store.Query(ctx, collectionPath, field, value, limit)
}

func (f *FaultyStore) Count(ctx context.Context, collectionPath string) (int64, error) {
	if err := f.record(collectionPath, f.reads); err != nil {
		return 0, err
	}
	return f.Store.Count(ctx, collectionPath)
}

func (f *FaultyStore) DocumentIDs(ctx context.Context, collectionPath string) ([]string, error) {
	if err := f.record(collectionPath, f.reads); err != nil {
		return nil, err
	}
	return f.Store.DocumentIDs(ctx, collectionPath)
}

func (f *FaultyStore) NewBatch() docstore.Batch {
	return &faultyBatch{Batch: f.Store.NewBatch(), owner: f}
}

type faultyBatch struct {
	docstore.Batch
	owner *FaultyStore
	err   error
}

func (b *faultyBatch) Delete(path string) {
	if err := b.owner.record(path, b.owner.commits); err != nil && b.err == nil {
		b.err = err
	}
	b.Batch.Delete(path)
}

func (b *faultyBatch) Update(path string, fields map[string]any) {
	if err := b.owner.record(path, b.owner.commits); err != nil && b.err == nil {
		b.err = err
	}
	b.Batch.Update(path, fields)
}

func (b *faultyBatch) Commit(ctx context.Context) error {
	if b.err != nil {
		return b.err
	}
	return b.Batch.Commit(ctx)
}
