// Package lazyjson provides a thread-safe, lazy-loading JSON file.
// Data is read from disk on first access and written back atomically.
package lazyjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a JSON document of type T backed by a path on disk.
// A missing file reads as the zero value of T.
// Mutable
type File[T any] struct {
	path   string
	data   *T
	loaded bool
	dirty  bool
	mu     sync.RWMutex
}

// New creates a File for path. Nothing is read until first use.
func New[T any](path string) *File[T] {
	return &File[T]{path: path}
}

// Path returns the backing file path.
func (f *File[T]) Path() string {
	return f.path
}

// Get returns a copy of the current data, loading it lazily if needed.
func (f *File[T]) Get() (T, error) {
	f.mu.RLock()
	if f.loaded {
		defer f.mu.RUnlock()
		return *f.data, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring write lock
	if !f.loaded {
		if err := f.loadLocked(); err != nil {
			var zero T
			return zero, err
		}
	}
	return *f.data, nil
}

// Modify applies fn to the data and marks it dirty when fn succeeds.
func (f *File[T]) Modify(fn func(*T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.loaded {
		if err := f.loadLocked(); err != nil {
			return err
		}
	}
	if err := fn(f.data); err != nil {
		return err
	}
	f.dirty = true
	return nil
}

// Save writes the data to disk if it was modified.
func (f *File[T]) Save() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.dirty {
		return nil
	}
	return f.saveLocked()
}

// Reload discards the cached data so the next access reads the file again.
// Unsaved modifications are kept; Reload is a no-op until they are saved.
func (f *File[T]) Reload() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dirty {
		return
	}
	f.loaded = false
	f.dirty = false
	f.data = nil
}

// Must be called with write lock held.
func (f *File[T]) loadLocked() error {
	var result T
	raw, err := os.ReadFile(f.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", f.path, err)
	default:
		if err := json.Unmarshal(raw, &result); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", f.path, err)
		}
	}
	f.data = &result
	f.loaded = true
	f.dirty = false
	return nil
}

// Must be called with write lock held.
func (f *File[T]) saveLocked() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Atomic write: write to temp file, then rename
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	f.dirty = false
	return nil
}
