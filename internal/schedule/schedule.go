// Package schedule provides cancelable one-shot tasks keyed by id.
package schedule

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Scheduler runs a function once after a delay. Tasks are keyed so they can
// be cancelled when the thing they act on goes away.
type Scheduler interface {
	// After schedules fn to run once d has elapsed. An existing task for key is replaced.
	After(key int64, d time.Duration, fn func())
	// Cancel drops the pending task for key and reports whether one existed.
	Cancel(key int64) bool
	// Pending returns the number of tasks not yet fired.
	Pending() int
	// Stop cancels every pending task. Later calls to After are ignored.
	Stop()
}

// SystemClock is a Clock backed by time.Now.
type SystemClock struct{}

// Now returns the wall clock time.
func (SystemClock) Now() time.Time { return time.Now() }
