package storage

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps markers in memory. Nothing survives the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
	value   string
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Lister = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty store writing value for every Set.
func NewMemoryStore(value string) *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry), value: value}
}

func (s *MemoryStore) Has(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key]
	return ok, nil
}

func (s *MemoryStore) Set(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = Entry{Key: key, Value: s.value, UpdatedAt: time.Now().UTC().Format(time.RFC3339)}
	return nil
}

// List returns entries whose key starts with prefix, sorted by key.
func (s *MemoryStore) List(prefix string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.entries))
	for key, e := range s.entries {
		if strings.HasPrefix(key, prefix) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
