package toast

import (
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/toasts/internal/schedule"
)

// DismissalStore records which permanent notifications were closed.
type DismissalStore interface {
	Has(key string) (bool, error)
	Set(key string) error
}

// Logger is the subset of structured logging the manager needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Manager owns the active notification list.
type Manager struct {
	mu        sync.Mutex
	active    []Notification
	progress  map[int64]float64
	store     DismissalStore
	scheduler schedule.Scheduler
	clock     schedule.Clock
	ids       IDSource
	lastID    int64
	issued    bool
	capacity  int
	logger    Logger
	observers []Observer
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the clock used for ids and progress.
func WithClock(c schedule.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithCapacity sets how many notifications may be active at once.
func WithCapacity(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithIDSource overrides the id source.
func WithIDSource(ids IDSource) Option {
	return func(m *Manager) { m.ids = ids }
}

// WithObserver registers an observer for lifecycle events.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

// NewManager creates a Manager persisting dismissals in store and expiring
// temporary notifications through scheduler.
func NewManager(store DismissalStore, scheduler schedule.Scheduler, opts ...Option) *Manager {
	m := &Manager{
		progress:  make(map[int64]float64),
		store:     store,
		scheduler: scheduler,
		clock:     schedule.SystemClock{},
		capacity:  DefaultCapacity,
		logger:    noopLogger{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.ids == nil {
		m.ids = NewClockIDs(m.clock)
	}
	return m
}

// Subscribe registers an observer after construction.
func (m *Manager) Subscribe(o Observer) {
	if o == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// Create admits a new notification and returns its id.
func (m *Manager) Create(req Request) (int64, error) {
	m.mu.Lock()
	n, err := m.admitLocked(req)
	observers := m.observers
	m.mu.Unlock()
	if err != nil {
		return 0, err
	}
	notify(observers, Event{Type: EventAdded, Notification: n})
	return n.ID, nil
}

func (m *Manager) admitLocked(req Request) (Notification, error) {
	if !req.Kind.IsValid() {
		m.logger.Warn("notification rejected", "reason", "unknown kind", "kind", string(req.Kind))
		return Notification{}, ErrUnknownKind
	}
	if len(m.active) >= m.capacity {
		m.logger.Info("notification rejected", "reason", "capacity", "active", len(m.active), "capacity", m.capacity)
		return Notification{}, ErrCapacityExceeded
	}
	if req.Kind == KindPermanent && strings.TrimSpace(req.Content) == "" {
		m.logger.Info("notification rejected", "reason", "empty content", "kind", string(req.Kind))
		return Notification{}, ErrInvalidPermanentContent
	}

	n := Notification{
		ID:        m.nextIDLocked(),
		Kind:      req.Kind,
		Title:     req.Title,
		CreatedAt: m.clock.Now(),
	}
	if n.IsPermanent() {
		n.Content = req.Content
	} else {
		n.TTL = time.Duration(req.TTLSeconds) * time.Second
	}
	m.active = append(m.active, n)

	if n.IsTemporary() {
		m.progress[n.ID] = 1
		id := n.ID
		m.scheduler.After(id, n.TTL, func() { m.remove(id, ReasonExpired) })
	}
	m.logger.Debug("notification added", "id", n.ID, "kind", string(n.Kind), "ttl", n.TTL.String())
	return n, nil
}

// nextIDLocked keeps ids strictly increasing for the life of the manager.
// A source that repeats or goes backwards is bumped past the last id handed
// out, so a removed id never comes back.
func (m *Manager) nextIDLocked() int64 {
	id := m.ids.Next()
	if m.issued && id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID, m.issued = id, true
	return id
}

// Remove takes a notification out of the active list. Closing a permanent
// notification records its dismissal. Unknown ids are ignored.
func (m *Manager) Remove(id int64) {
	m.remove(id, ReasonClosed)
}

func (m *Manager) remove(id int64, reason RemoveReason) {
	m.mu.Lock()
	idx := m.indexLocked(id)
	if idx < 0 {
		m.mu.Unlock()
		return
	}
	n := m.active[idx]
	m.active = append(m.active[:idx:idx], m.active[idx+1:]...)
	delete(m.progress, id)
	m.scheduler.Cancel(id)
	if n.IsPermanent() {
		m.markDismissedLocked(id)
	}
	observers := m.observers
	m.logger.Debug("notification removed", "id", id, "kind", string(n.Kind), "reason", string(reason))
	m.mu.Unlock()

	notify(observers, Event{Type: EventRemoved, Notification: n, Reason: reason})
}

func (m *Manager) markDismissedLocked(id int64) {
	if m.store == nil {
		return
	}
	if err := m.store.Set(DismissalKey(id)); err != nil {
		m.logger.Error("failed to record dismissal", "id", id, "error", err)
	}
}

// Restore drops permanent notifications that were dismissed in an earlier run.
func (m *Manager) Restore() {
	m.mu.Lock()
	dropped := m.restoreLocked()
	observers := m.observers
	m.mu.Unlock()

	for _, n := range dropped {
		notify(observers, Event{Type: EventRemoved, Notification: n, Reason: ReasonDismissed})
	}
}

func (m *Manager) restoreLocked() []Notification {
	if m.store == nil {
		return nil
	}
	kept := m.active[:0:0]
	var dropped []Notification
	for _, n := range m.active {
		if n.IsPermanent() && m.dismissedLocked(n.ID) {
			dropped = append(dropped, n)
			continue
		}
		kept = append(kept, n)
	}
	m.active = kept
	if len(dropped) > 0 {
		m.logger.Info("dropped dismissed notifications", "count", len(dropped))
	}
	return dropped
}

func (m *Manager) dismissedLocked(id int64) bool {
	ok, err := m.store.Has(DismissalKey(id))
	if err != nil {
		m.logger.Warn("failed to read dismissal", "id", id, "error", err)
		return false
	}
	return ok
}

// SeedRequests are the example notifications shown on an empty first screen.
var SeedRequests = []Request{
	{Kind: KindPermanent, Title: "Permanent", Content: "This is a permanent notification."},
	{Kind: KindTemporary, Title: "Temporary", Content: "This is a temporary notification.", TTLSeconds: 5},
}

// Seed inserts the example notifications when nothing is active. A seeded
// permanent notification that was dismissed before is filtered out again.
func (m *Manager) Seed() {
	m.mu.Lock()
	if len(m.active) > 0 {
		m.mu.Unlock()
		return
	}
	var added []Notification
	for _, req := range SeedRequests {
		n, err := m.admitLocked(req)
		if err != nil {
			m.logger.Warn("seed notification rejected", "title", req.Title, "error", err)
			continue
		}
		added = append(added, n)
	}
	dropped := m.restoreLocked()
	observers := m.observers
	m.mu.Unlock()

	for _, n := range added {
		if containsID(dropped, n.ID) {
			continue
		}
		notify(observers, Event{Type: EventAdded, Notification: n})
	}
}

// Start runs the once-per-process startup: Restore then Seed.
func (m *Manager) Start() {
	m.Restore()
	m.Seed()
}

// Tick recomputes the countdown of every active temporary notification.
func (m *Manager) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock.Now()
	for _, n := range m.active {
		if !n.IsTemporary() {
			continue
		}
		frac := remaining(n, now)
		if prev, ok := m.progress[n.ID]; ok && prev < frac {
			frac = prev
		}
		m.progress[n.ID] = frac
	}
}

// remaining is the fraction of the TTL left at now, within [0,1].
func remaining(n Notification, now time.Time) float64 {
	if n.TTL <= 0 {
		return 0
	}
	frac := float64(n.ExpiresAt().Sub(now)) / float64(n.TTL)
	switch {
	case frac < 0:
		return 0
	case frac > 1:
		return 1
	default:
		return frac
	}
}

// Progress returns the countdown fraction computed by the last Tick.
func (m *Manager) Progress(id int64) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	frac, ok := m.progress[id]
	return frac, ok
}

// List returns a copy of the active notifications in insertion order.
func (m *Manager) List() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.active))
	copy(out, m.active)
	return out
}

// Get returns the active notification with id.
func (m *Manager) Get(id int64) (Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexLocked(id)
	if idx < 0 {
		return Notification{}, false
	}
	return m.active[idx], true
}

// Len returns the number of active notifications.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Capacity returns the admission bound.
func (m *Manager) Capacity() int {
	return m.capacity
}

// Full reports whether a new notification would be rejected for capacity.
func (m *Manager) Full() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active) >= m.capacity
}

// HasTemporary reports whether any active notification is still counting down.
func (m *Manager) HasTemporary() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.active {
		if n.IsTemporary() {
			return true
		}
	}
	return false
}

// Close cancels every pending expiry.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.active {
		m.scheduler.Cancel(n.ID)
	}
}

func (m *Manager) indexLocked(id int64) int {
	for i, n := range m.active {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func containsID(list []Notification, id int64) bool {
	for _, n := range list {
		if n.ID == id {
			return true
		}
	}
	return false
}

func notify(observers []Observer, ev Event) {
	for _, o := range observers {
		o(ev)
	}
}
