package schedule

import (
	"sync"
	"time"
)

// TimerScheduler schedules tasks on time.AfterFunc timers.
type TimerScheduler struct {
	mu      sync.Mutex
	timers  map[int64]*timerTask
	stopped bool
}

type timerTask struct {
	timer *time.Timer
}

var _ Scheduler = (*TimerScheduler)(nil)

// NewTimerScheduler returns a scheduler running on real timers.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[int64]*timerTask)}
}

func (s *TimerScheduler) After(key int64, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if old, ok := s.timers[key]; ok {
		old.timer.Stop()
	}
	task := &timerTask{}
	task.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		// A replaced or cancelled task must not run.
		current, ok := s.timers[key]
		if !ok || current != task {
			s.mu.Unlock()
			return
		}
		delete(s.timers, key)
		s.mu.Unlock()
		fn()
	})
	s.timers[key] = task
}

func (s *TimerScheduler) Cancel(key int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.timers[key]
	if !ok {
		return false
	}
	task.timer.Stop()
	delete(s.timers, key)
	return true
}

func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, task := range s.timers {
		task.timer.Stop()
		delete(s.timers, key)
	}
	s.stopped = true
}
