// Package toast implements the notification lifecycle: bounded admission,
// timed expiry of temporary items and durable dismissal of permanent ones.
package toast

import (
	"strconv"
	"strings"
	"time"
)

// Kind distinguishes auto-expiring notifications from ones the user closes.
type Kind string

const (
	KindTemporary Kind = "temporary"
	KindPermanent Kind = "permanent"
)

// IsValid checks if the kind is one of the known kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindTemporary, KindPermanent:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

const (
	// DefaultCapacity is the number of notifications shown at once.
	DefaultCapacity = 5
	// MinTTLSeconds and MaxTTLSeconds bound the TTL the form accepts.
	MinTTLSeconds = 1
	MaxTTLSeconds = 30

	// DismissalKeyPrefix prefixes the store key of a closed permanent notification.
	DismissalKeyPrefix = "closed_"
	// DismissedValue is the value written under a dismissal key.
	DismissedValue = "1"
)

// Notification is a single on-screen item.
type Notification struct {
	ID        int64
	Kind      Kind
	Title     string
	Content   string
	TTL       time.Duration
	CreatedAt time.Time
}

// IsTemporary reports whether the notification expires on its own.
func (n Notification) IsTemporary() bool {
	return n.Kind == KindTemporary
}

// IsPermanent reports whether the notification waits for the user.
func (n Notification) IsPermanent() bool {
	return n.Kind == KindPermanent
}

// HasTitle reports whether a title should be rendered.
func (n Notification) HasTitle() bool {
	return strings.TrimSpace(n.Title) != ""
}

// ExpiresAt returns when a temporary notification is removed.
func (n Notification) ExpiresAt() time.Time {
	if !n.IsTemporary() {
		return time.Time{}
	}
	return n.CreatedAt.Add(n.TTL)
}

// Request is a single creation request coming from the form.
type Request struct {
	Kind       Kind
	Title      string
	Content    string
	TTLSeconds int
}

// ClampTTL bounds a TTL entered in the form. The manager itself uses
// whatever it is given.
func ClampTTL(seconds, minSeconds, maxSeconds int) int {
	if seconds < minSeconds {
		return minSeconds
	}
	if seconds > maxSeconds {
		return maxSeconds
	}
	return seconds
}

// DismissalKey returns the store key recording that id was closed.
func DismissalKey(id int64) string {
	return DismissalKeyPrefix + strconv.FormatInt(id, 10)
}

// ParseDismissalKey extracts the notification id from a dismissal key.
func ParseDismissalKey(key string) (int64, bool) {
	raw, ok := strings.CutPrefix(key, DismissalKeyPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
