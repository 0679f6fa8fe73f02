package toast

import (
	"sync"

	"github.com/cristianoliveira/toasts/internal/schedule"
)

// IDSource hands out notification ids. The manager forces the ids it
// admits to be strictly increasing, whatever the source returns.
type IDSource interface {
	Next() int64
}

// clockIDs derives ids from the clock in milliseconds. Two ids requested in
// the same millisecond are pushed apart so ids stay strictly increasing.
type clockIDs struct {
	mu    sync.Mutex
	clock schedule.Clock
	last  int64
}

// NewClockIDs returns an IDSource based on clock.
func NewClockIDs(clock schedule.Clock) IDSource {
	return &clockIDs{clock: clock}
}

func (c *clockIDs) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.clock.Now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}
