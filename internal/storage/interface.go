// Package storage provides the durable key-value store behind notification
// dismissals.
package storage

import "github.com/cristianoliveira/toasts/internal/storage/sqlite"

// Store is a string key-value store. Presence of a key is what matters;
// values are opaque markers.
type Store interface {
	Has(key string) (bool, error)
	Set(key string) error
}

// Closer is implemented by stores holding resources.
type Closer interface {
	Close() error
}

// Lister is implemented by stores that can enumerate keys.
type Lister interface {
	List(prefix string) ([]Entry, error)
}

// Entry is a stored marker.
type Entry = sqlite.Entry
