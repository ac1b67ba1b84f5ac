package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a JSON-file-backed Store for single-user CLI use. The whole map is
// rewritten on every save; last write wins.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a store persisting to the given file path. The parent
// directory is created on first save.
func NewFile(path string) *File {
	return &File{path: path}
}

// DefaultFilePath returns the conventional store location under the user's
// home directory.
func DefaultFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".resume-studio.json"
	}
	return filepath.Join(home, ".resume-studio", "store.json")
}

func (f *File) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("failed to read store file %s: %w", f.path, err)
	}
	values := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", f.path, err)
	}
	return values, nil
}

func (f *File) write(values map[string]json.RawMessage) error {
	if dir := filepath.Dir(f.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store directory %s: %w", dir, err)
		}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal store contents: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write store file %s: %w", f.path, err)
	}
	return nil
}

// Load implements Store.
func (f *File) Load(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return nil, false, err
	}
	v, ok := values[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

// Save implements Store.
func (f *File) Save(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for key %s is not valid JSON", key)
	}
	values[key] = json.RawMessage(value)
	return f.write(values)
}

// Delete implements Store.
func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.write(values)
}
