package docstore

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LoadSeed reads a JSON object of document path to fields into the store.
// Numbers decode as float64, as they do from the real backend's JSON export.
func (m *MemoryStore) LoadSeed(r io.Reader) (int, error) {
	var docs map[string]map[string]any
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return 0, fmt.Errorf("decode seed: %w", err)
	}
	for path := range docs {
		if !isDocPath(path) {
			return 0, fmt.Errorf("seed path %q: %w", path, ErrInvalidPath)
		}
	}
	for path, fields := range docs {
		if fields == nil {
			fields = map[string]any{}
		}
		m.Put(path, fields)
	}
	return len(docs), nil
}

// LoadSeedFile is LoadSeed over a file on disk.
func (m *MemoryStore) LoadSeedFile(name string) (int, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return m.LoadSeed(f)
}
