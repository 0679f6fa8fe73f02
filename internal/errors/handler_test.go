package errors

import (
	"bytes"
	"testing"
	"time"

	"github.com/cristianoliveira/toasts/internal/colors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockColorOutput struct {
	calls []string
}

func (m *mockColorOutput) Error(msgs ...string)   { m.calls = append(m.calls, "error:"+msgs[0]) }
func (m *mockColorOutput) Warning(msgs ...string) { m.calls = append(m.calls, "warning:"+msgs[0]) }
func (m *mockColorOutput) Info(msgs ...string)    { m.calls = append(m.calls, "info:"+msgs[0]) }
func (m *mockColorOutput) Success(msgs ...string) { m.calls = append(m.calls, "success:"+msgs[0]) }

func TestCLIHandlerDelegates(t *testing.T) {
	out := &mockColorOutput{}
	h := NewCLIHandler(out)

	h.Error("e")
	h.Warning("w")
	h.Info("i")
	h.Success("s")

	assert.Equal(t, []string{"error:e", "warning:w", "info:i", "success:s"}, out.calls)
}

func TestDefaultCLIHandlerPrints(t *testing.T) {
	var stdout, stderr bytes.Buffer
	colors.SetOutput(&stdout, &stderr)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })

	h := NewDefaultCLIHandler()
	h.Error("broken")
	h.Success("fixed")

	assert.Contains(t, stderr.String(), "Error:")
	assert.Contains(t, stderr.String(), "broken")
	assert.Contains(t, stdout.String(), "fixed")
}

func TestTUIHandlerLatest(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var seen []Message
	h := NewTUIHandler(func() time.Time { return now }, func(m Message) { seen = append(seen, m) })

	_, ok := h.Latest(0)
	require.False(t, ok)

	h.Warning("list is full")
	h.Success("added")

	msg, ok := h.Latest(time.Second)
	require.True(t, ok)
	assert.Equal(t, "added", msg.Text)
	assert.Equal(t, MessageTypeSuccess, msg.Type)
	assert.Len(t, seen, 2)

	now = now.Add(2 * time.Second)
	_, ok = h.Latest(time.Second)
	assert.False(t, ok)
	_, ok = h.Latest(0)
	assert.True(t, ok)

	h.Clear()
	_, ok = h.Latest(0)
	assert.False(t, ok)
}
