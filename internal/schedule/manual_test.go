package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestManualFiresInDueOrder(t *testing.T) {
	m := NewManual(epoch)
	var fired []int64

	m.After(3, 3*time.Second, func() { fired = append(fired, 3) })
	m.After(1, time.Second, func() { fired = append(fired, 1) })
	m.After(2, 2*time.Second, func() { fired = append(fired, 2) })

	m.Advance(1500 * time.Millisecond)
	require.Equal(t, []int64{1}, fired)
	require.Equal(t, 2, m.Pending())

	m.Advance(2 * time.Second)
	require.Equal(t, []int64{1, 2, 3}, fired)
	require.Equal(t, 0, m.Pending())
	require.Equal(t, epoch.Add(3500*time.Millisecond), m.Now())
}

func TestManualTiesUseInsertionOrder(t *testing.T) {
	m := NewManual(epoch)
	var fired []int64
	m.After(20, time.Second, func() { fired = append(fired, 20) })
	m.After(10, time.Second, func() { fired = append(fired, 10) })

	m.Advance(time.Second)
	assert.Equal(t, []int64{20, 10}, fired)
}

func TestManualNowIsDueTimeWhileFiring(t *testing.T) {
	m := NewManual(epoch)
	var seen time.Time
	m.After(1, 2*time.Second, func() { seen = m.Now() })

	m.Advance(10 * time.Second)
	assert.Equal(t, epoch.Add(2*time.Second), seen)
	assert.Equal(t, epoch.Add(10*time.Second), m.Now())
}

func TestManualCancelAndReplace(t *testing.T) {
	m := NewManual(epoch)
	calls := 0
	m.After(1, time.Second, func() { calls++ })
	require.True(t, m.Cancel(1))
	require.False(t, m.Cancel(1))

	m.After(2, time.Second, func() { calls += 10 })
	m.After(2, 3*time.Second, func() { calls += 100 })

	m.Advance(2 * time.Second)
	assert.Equal(t, 0, calls)
	m.Advance(time.Second)
	assert.Equal(t, 100, calls)
}

func TestManualTaskScheduledDuringAdvance(t *testing.T) {
	m := NewManual(epoch)
	var fired []int64
	m.After(1, time.Second, func() {
		fired = append(fired, 1)
		m.After(2, time.Second, func() { fired = append(fired, 2) })
	})

	m.Advance(5 * time.Second)
	assert.Equal(t, []int64{1, 2}, fired)
}

func TestManualNextDue(t *testing.T) {
	m := NewManual(epoch)
	_, ok := m.NextDue()
	require.False(t, ok)

	m.After(1, 4*time.Second, func() {})
	m.After(2, 2*time.Second, func() {})
	due, ok := m.NextDue()
	require.True(t, ok)
	assert.Equal(t, epoch.Add(2*time.Second), due)
}

func TestManualStop(t *testing.T) {
	m := NewManual(epoch)
	calls := 0
	m.After(1, time.Second, func() { calls++ })
	m.Stop()
	m.After(2, time.Second, func() { calls++ })

	m.Advance(time.Minute)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, m.Pending())
}
