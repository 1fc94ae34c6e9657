// Package prefs persists user preferences as string key/value pairs.
// The application stores a single key (the theme name); backends are a YAML
// file, an SQLite table and an in-memory map.
package prefs

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound indicates the requested key has no stored value.
var ErrNotFound = errors.New("preference not found")

// ThemeKey is the preference key holding the selected theme name.
const ThemeKey = "theme"

// Store reads and writes preference values.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the Store for backend rooted at path.
// The returned closer releases backend resources and is never nil.
func Open(backend, path string) (Store, func() error, error) {
	noop := func() error { return nil }
	switch backend {
	case BackendFile, "":
		return NewFileStore(path), noop, nil
	case BackendSQLite:
		s, err := NewSQLStore(path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case BackendMemory:
		return NewMemoryStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown preference backend %q", backend)
	}
}

// MemoryStore keeps preferences in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the stored value or ErrNotFound.
func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
