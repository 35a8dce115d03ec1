package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/trackfolio/trackfolio-be/internal/shared"
)

// jsonFile is a mutex-guarded JSON-array collection on disk. All access goes
// through view/mutate so read-modify-write cycles are atomic with respect to
// concurrent requests in this process.
type jsonFile[T any] struct {
	mu   sync.Mutex
	path string
}

func newJSONFile[T any](path string) *jsonFile[T] {
	return &jsonFile[T]{path: path}
}

// load reads the collection, creating an empty file on first use.
// Callers must hold f.mu.
func (f *jsonFile[T]) load() ([]T, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.WriteFile(f.path, []byte("[]"), 0o644); err != nil {
				return nil, storeErr(err)
			}
			return []T{}, nil
		}
		return nil, storeErr(err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: corrupt data file %s: %v", shared.ErrStoreUnavailable, f.path, err)
	}
	return items, nil
}

// save writes the collection through a temp file + rename so readers never
// observe a partially written file.
// Callers must hold f.mu.
func (f *jsonFile[T]) save(items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return storeErr(err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return storeErr(err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return storeErr(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return storeErr(err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return storeErr(err)
	}
	return nil
}

// view runs fn against a snapshot of the collection.
func (f *jsonFile[T]) view(fn func(items []T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.load()
	if err != nil {
		return err
	}
	return fn(items)
}

// mutate runs fn and persists the collection it returns, all under the lock,
// so ownership checks and writes form a single atomic step.
func (f *jsonFile[T]) mutate(fn func(items []T) ([]T, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.load()
	if err != nil {
		return err
	}
	updated, err := fn(items)
	if err != nil {
		return err
	}
	return f.save(updated)
}
