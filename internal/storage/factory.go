package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/toasts/internal/colors"
	"github.com/cristianoliveira/toasts/internal/config"
	"github.com/cristianoliveira/toasts/internal/storage/sqlite"
)

const (
	// BackendSQLite selects the SQLite-backed store.
	BackendSQLite = "sqlite"
	// BackendMemory selects the in-memory store.
	BackendMemory = "memory"

	dismissalsDBFileName = "dismissals.db"
)

var (
	_ Store  = (*sqlite.Store)(nil)
	_ Lister = (*sqlite.Store)(nil)
	_ Closer = (*sqlite.Store)(nil)
)

// NewFromConfig creates the store selected by store_backend.
func NewFromConfig(value string) (Store, error) {
	backend := config.Get("store_backend", BackendSQLite)
	return NewForBackend(backend, config.Get("state_dir", ""), value)
}

// NewForBackend creates a store for the provided backend name. SQLite
// failures fall back to memory so the demo still runs.
func NewForBackend(backend, stateDir, value string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		if stateDir == "" {
			return nil, fmt.Errorf("storage: state dir cannot be empty for %s backend", BackendSQLite)
		}
		store, err := sqlite.Open(filepath.Join(stateDir, dismissalsDBFileName), value)
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite store, falling back to memory: %v", err))
			return NewMemoryStore(value), nil
		}
		return store, nil
	case BackendMemory:
		return NewMemoryStore(value), nil
	default:
		colors.Warning(fmt.Sprintf("unknown store backend '%s', falling back to memory", backend))
		return NewMemoryStore(value), nil
	}
}

// Close releases the store if it holds resources.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
