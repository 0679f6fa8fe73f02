package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerSchedulerFires(t *testing.T) {
	s := NewTimerScheduler()
	t.Cleanup(s.Stop)

	done := make(chan struct{})
	s.After(1, 10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not fire")
	}
	require.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestTimerSchedulerCancel(t *testing.T) {
	s := NewTimerScheduler()
	t.Cleanup(s.Stop)

	fired := make(chan struct{}, 1)
	s.After(1, 20*time.Millisecond, func() { fired <- struct{}{} })
	require.True(t, s.Cancel(1))
	require.False(t, s.Cancel(1))

	select {
	case <-fired:
		t.Fatal("cancelled task fired")
	case <-time.After(80 * time.Millisecond):
	}
}

func TestTimerSchedulerReplace(t *testing.T) {
	s := NewTimerScheduler()
	t.Cleanup(s.Stop)

	got := make(chan string, 2)
	s.After(1, 20*time.Millisecond, func() { got <- "old" })
	s.After(1, 30*time.Millisecond, func() { got <- "new" })

	select {
	case v := <-got:
		assert.Equal(t, "new", v)
	case <-time.After(2 * time.Second):
		t.Fatal("replacement did not fire")
	}
	assert.Equal(t, 0, len(got))
}

func TestTimerSchedulerStop(t *testing.T) {
	s := NewTimerScheduler()
	fired := make(chan struct{}, 2)
	s.After(1, 10*time.Millisecond, func() { fired <- struct{}{} })
	s.Stop()
	s.After(2, 10*time.Millisecond, func() { fired <- struct{}{} })

	assert.Equal(t, 0, s.Pending())
	select {
	case <-fired:
		t.Fatal("task fired after stop")
	case <-time.After(60 * time.Millisecond):
	}
}
