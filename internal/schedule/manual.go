package schedule

import (
	"sort"
	"sync"
	"time"
)

// Manual is a simulated clock and scheduler. Time only moves when Advance is
// called, and due tasks fire synchronously on the calling goroutine.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	tasks   map[int64]*manualTask
	stopped bool
}

type manualTask struct {
	due time.Time
	seq uint64
	fn  func()
}

var (
	_ Scheduler = (*Manual)(nil)
	_ Clock     = (*Manual)(nil)
)

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start, tasks: make(map[int64]*manualTask)}
}

// Now returns the simulated time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) After(key int64, d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	m.seq++
	m.tasks[key] = &manualTask{due: m.now.Add(d), seq: m.seq, fn: fn}
}

func (m *Manual) Cancel(key int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[key]; !ok {
		return false
	}
	delete(m.tasks, key)
	return true
}

func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = make(map[int64]*manualTask)
	m.stopped = true
}

// Advance moves the clock forward by d, firing every task that falls due on
// the way in due order. Tasks scheduled by a firing task are honoured if they
// fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		key, task, ok := m.nextDueLocked(target)
		if !ok {
			m.now = target
			m.mu.Unlock()
			return
		}
		delete(m.tasks, key)
		if task.due.After(m.now) {
			m.now = task.due
		}
		m.mu.Unlock()
		task.fn()
	}
}

// NextDue returns the due time of the earliest pending task.
func (m *Manual) NextDue() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := m.sortedLocked()
	if len(tasks) == 0 {
		return time.Time{}, false
	}
	return tasks[0].task.due, true
}

type keyedTask struct {
	key  int64
	task *manualTask
}

func (m *Manual) nextDueLocked(target time.Time) (int64, *manualTask, bool) {
	tasks := m.sortedLocked()
	if len(tasks) == 0 || tasks[0].task.due.After(target) {
		return 0, nil, false
	}
	return tasks[0].key, tasks[0].task, true
}

func (m *Manual) sortedLocked() []keyedTask {
	out := make([]keyedTask, 0, len(m.tasks))
	for key, task := range m.tasks {
		out = append(out, keyedTask{key: key, task: task})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].task.due.Equal(out[j].task.due) {
			return out[i].task.due.Before(out[j].task.due)
		}
		return out[i].task.seq < out[j].task.seq
	})
	return out
}
