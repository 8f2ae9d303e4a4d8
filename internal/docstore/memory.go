package docstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store used in dev mode and tests. It keeps
// the backend's semantics that matter to callers: id ordering, the batch
// ceiling, parentless subcollections and NotFound on Update.
type MemoryStore struct {
	mu      sync.RWMutex
	docs    map[string]map[string]any
	commits int
	maxOps  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]any)}
}

// Put seeds a document, replacing any existing one.
func (m *MemoryStore) Put(path string, data map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[strings.Trim(path, "/")] = copyFields(data)
}

func (m *MemoryStore) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.docs[strings.Trim(path, "/")]
	return ok
}

// Paths returns every stored document path with the given prefix, sorted.
func (m *MemoryStore) Paths(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for p := range m.docs {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Commits is the number of batches committed so far.
func (m *MemoryStore) Commits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.commits
}

// MaxBatchSize is the largest batch committed so far.
func (m *MemoryStore) MaxBatchSize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxOps
}

func (m *MemoryStore) Get(_ context.Context, path string) (Document, error) {
	if !isDocPath(path) {
		return Document{}, fmt.Errorf("memory get %q: %w", path, ErrInvalidPath)
	}
	path = strings.Trim(path, "/")
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[path]
	if !ok {
		return Document{}, fmt.Errorf("memory get %q: %w", path, ErrNotFound)
	}
	_, id := Split(path)
	return Document{ID: id, Path: path, Data: copyFields(data)}, nil
}

func (m *MemoryStore) List(_ context.Context, collectionPath string, opts ListOptions) ([]Document, error) {
	if !isCollectionPath(collectionPath) {
		return nil, fmt.Errorf("memory list %q: %w", collectionPath, ErrInvalidPath)
	}
	docs := m.children(collectionPath, func(map[string]any) bool { return true })
	if opts.StartAfter != "" {
		i := sort.Search(len(docs), func(i int) bool { return docs[i].ID > opts.StartAfter })
		docs = docs[i:]
	}
	if opts.Limit > 0 && len(docs) > opts.Limit {
		docs = docs[:opts.Limit]
	}
	return docs, nil
}

func (m *MemoryStore) Query(_ context.Context, collectionPath, field string, value any, limit int) ([]Document, error) {
	if !isCollectionPath(collectionPath) {
		return nil, fmt.Errorf("memory query %q: %w", collectionPath, ErrInvalidPath)
	}
	docs := m.children(collectionPath, func(data map[string]any) bool {
		v, ok := data[field]
		return ok && reflect.DeepEqual(v, value)
	})
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (m *MemoryStore) Count(_ context.Context, collectionPath string) (int64, error) {
	if !isCollectionPath(collectionPath) {
		return 0, fmt.Errorf("memory count %q: %w", collectionPath, ErrInvalidPath)
	}
	return int64(len(m.children(collectionPath, func(map[string]any) bool { return true }))), nil
}

func (m *MemoryStore) DocumentIDs(_ context.Context, collectionPath string) ([]string, error) {
	if !isCollectionPath(collectionPath) {
		return nil, fmt.Errorf("memory document ids %q: %w", collectionPath, ErrInvalidPath)
	}
	prefix := strings.Trim(collectionPath, "/") + "/"
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]struct{})
	for p := range m.docs {
		if rest, ok := strings.CutPrefix(p, prefix); ok {
			id, _, _ := strings.Cut(rest, "/")
			seen[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemoryStore) Set(_ context.Context, path string, fields map[string]any, merge bool) error {
	if !isDocPath(path) {
		return fmt.Errorf("memory set %q: %w", path, ErrInvalidPath)
	}
	path = strings.Trim(path, "/")
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.docs[path]
	if !merge || !ok {
		m.docs[path] = copyFields(fields)
		return nil
	}
	for k, v := range fields {
		existing[k] = v
	}
	return nil
}

func (m *MemoryStore) Update(_ context.Context, path string, fields map[string]any) error {
	if !isDocPath(path) {
		return fmt.Errorf("memory update %q: %w", path, ErrInvalidPath)
	}
	path = strings.Trim(path, "/")
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.docs[path]
	if !ok {
		return fmt.Errorf("memory update %q: %w", path, ErrNotFound)
	}
	for k, v := range fields {
		existing[k] = v
	}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, path string) error {
	if !isDocPath(path) {
		return fmt.Errorf("memory delete %q: %w", path, ErrInvalidPath)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, strings.Trim(path, "/"))
	return nil
}

func (m *MemoryStore) Collections(_ context.Context, docPath string) ([]string, error) {
	docPath = strings.Trim(docPath, "/")
	if docPath != "" && !isDocPath(docPath) {
		return nil, fmt.Errorf("memory collections %q: %w", docPath, ErrInvalidPath)
	}
	prefix := ""
	if docPath != "" {
		prefix = docPath + "/"
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]struct{})
	for p := range m.docs {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		name, _, _ := strings.Cut(rest, "/")
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryStore) NewBatch() Batch {
	return &memoryBatch{store: m}
}

func (m *MemoryStore) children(collectionPath string, keep func(map[string]any) bool) []Document {
	collectionPath = strings.Trim(collectionPath, "/")
	m.mu.RLock()
	defer m.mu.RUnlock()
	var docs []Document
	for p, data := range m.docs {
		parent, id := Split(p)
		if parent != collectionPath || !keep(data) {
			continue
		}
		docs = append(docs, Document{ID: id, Path: p, Data: copyFields(data)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}

type memoryOp struct {
	path   string
	fields map[string]any
	delete bool
}

type memoryBatch struct {
	store *MemoryStore
	ops   []memoryOp
}

func (b *memoryBatch) Delete(path string) {
	b.ops = append(b.ops, memoryOp{path: strings.Trim(path, "/"), delete: true})
}

func (b *memoryBatch) Update(path string, fields map[string]any) {
	b.ops = append(b.ops, memoryOp{path: strings.Trim(path, "/"), fields: copyFields(fields)})
}

func (b *memoryBatch) Len() int { return len(b.ops) }

// Commit applies every op or none of them.
func (b *memoryBatch) Commit(_ context.Context) error {
	if len(b.ops) > MaxBatchOps {
		return fmt.Errorf("memory commit of %d ops: %w", len(b.ops), ErrBatchFull)
	}
	m := b.store
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range b.ops {
		if !isDocPath(op.path) {
			return fmt.Errorf("memory commit %q: %w", op.path, ErrInvalidPath)
		}
		if !op.delete {
			if _, ok := m.docs[op.path]; !ok {
				return fmt.Errorf("memory commit update %q: %w", op.path, ErrNotFound)
			}
		}
	}
	for _, op := range b.ops {
		if op.delete {
			delete(m.docs, op.path)
			continue
		}
		for k, v := range op.fields {
			m.docs[op.path][k] = v
		}
	}
	m.commits++
	if len(b.ops) > m.maxOps {
		m.maxOps = len(b.ops)
	}
	return nil
}

func copyFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
