package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/toasts/internal/schedule"
	"github.com/cristianoliveira/toasts/internal/storage"
	"github.com/cristianoliveira/toasts/internal/toast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *toast.Manager, *schedule.Manual, *storage.MemoryStore) {
	t.Helper()
	clock := schedule.NewManual(epoch)
	store := storage.NewMemoryStore(toast.DismissedValue)
	mgr := toast.NewManager(store, clock, toast.WithClock(clock))
	t.Cleanup(mgr.Close)
	return New(mgr, Options{Now: clock.Now}), mgr, clock, store
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter  = tea.KeyMsg{Type: tea.KeyEnter}
	tab    = tea.KeyMsg{Type: tea.KeyTab}
	toggle = tea.KeyMsg{Type: tea.KeyCtrlT}
	closeK = tea.KeyMsg{Type: tea.KeyCtrlX}
	nextK  = tea.KeyMsg{Type: tea.KeyCtrlN}
)

func TestSubmitTemporaryClearsTitleAndStartsTick(t *testing.T) {
	m, mgr, _, _ := newTestModel(t)

	m, _ = press(t, m, runes("Hello"))
	require.Equal(t, "Hello", m.title.Value())

	m, cmd := press(t, m, enter)
	require.NotNil(t, cmd, "a temporary toast must arm the progress tick")
	assert.True(t, m.ticking)
	assert.Empty(t, m.title.Value())

	list := mgr.List()
	require.Len(t, list, 1)
	assert.Equal(t, toast.KindTemporary, list[0].Kind)
	assert.Equal(t, "Hello", list[0].Title)
	assert.Equal(t, 5*time.Second, list[0].TTL)
}

func TestTTLFieldAcceptsDigitsAndClamps(t *testing.T) {
	m, mgr, _, _ := newTestModel(t)

	m, _ = press(t, m, tab, tea.KeyMsg{Type: tea.KeyBackspace}, runes("x"))
	assert.Empty(t, m.ttl.Value(), "non-digits are ignored")

	m, _ = press(t, m, runes("9"), runes("9"), enter)
	list := mgr.List()
	require.Len(t, list, 1)
	assert.Equal(t, 30*time.Second, list[0].TTL)
	assert.Equal(t, "30", m.ttl.Value())
}

func TestPermanentNeedsContent(t *testing.T) {
	m, mgr, _, _ := newTestModel(t)

	m, _ = press(t, m, toggle)
	require.Equal(t, toast.KindPermanent, m.kind)
	assert.False(t, m.canSubmit())

	m, _ = press(t, m, enter)
	assert.Equal(t, 0, mgr.Len())
	msg, ok := m.status.Latest(0)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "need content")

	m, _ = press(t, m, tab, runes("  "))
	assert.False(t, m.canSubmit())

	m, _ = press(t, m, runes("hello"), enter)
	require.Equal(t, 1, mgr.Len())
	assert.Empty(t, m.content.Value())
	assert.Equal(t, "  hello", mgr.List()[0].Content)
	_, ok = m.status.Latest(0)
	assert.False(t, ok, "a successful submit clears the stale warning")
}

func TestSubmitDisabledWhenFull(t *testing.T) {
	m, mgr, _, _ := newTestModel(t)
	for i := 0; i < toast.DefaultCapacity; i++ {
		_, err := mgr.Create(toast.Request{Kind: toast.KindPermanent, Content: "x"})
		require.NoError(t, err)
	}
	assert.False(t, m.canSubmit())

	m, _ = press(t, m, enter)
	assert.Equal(t, toast.DefaultCapacity, mgr.Len())
	msg, ok := m.status.Latest(0)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "At most 5")
}

func TestCloseSelectedPermanent(t *testing.T) {
	m, mgr, _, store := newTestModel(t)
	first, err := mgr.Create(toast.Request{Kind: toast.KindPermanent, Content: "a"})
	require.NoError(t, err)
	second, err := mgr.Create(toast.Request{Kind: toast.KindPermanent, Content: "b"})
	require.NoError(t, err)
	_, err = mgr.Create(toast.Request{Kind: toast.KindTemporary, TTLSeconds: 5})
	require.NoError(t, err)

	m, _ = press(t, m, nextK)
	assert.Equal(t, first, m.selected)
	m, _ = press(t, m, nextK)
	assert.Equal(t, second, m.selected)
	m, _ = press(t, m, nextK)
	assert.Equal(t, first, m.selected)

	m, _ = press(t, m, closeK)
	_, ok := mgr.Get(first)
	assert.False(t, ok)
	assert.Equal(t, second, m.selected)

	has, err := store.Has(toast.DismissalKey(first))
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, 2, mgr.Len())
}

func TestCloseWithNothingToClose(t *testing.T) {
	m, mgr, _, _ := newTestModel(t)
	_, err := mgr.Create(toast.Request{Kind: toast.KindTemporary, TTLSeconds: 5})
	require.NoError(t, err)

	_, _ = press(t, m, closeK)
	assert.Equal(t, 1, mgr.Len())
}

func TestTickStopsWhenNoTemporaryLeft(t *testing.T) {
	m, mgr, clock, _ := newTestModel(t)
	id, err := mgr.Create(toast.Request{Kind: toast.KindTemporary, TTLSeconds: 2})
	require.NoError(t, err)

	clock.Advance(time.Second)
	next, cmd := m.Update(tickMsg(clock.Now()))
	m = next.(Model)
	require.NotNil(t, cmd)
	p, ok := mgr.Progress(id)
	require.True(t, ok)
	assert.InDelta(t, 0.5, p, 0.01)

	clock.Advance(time.Second)
	next, cmd = m.Update(tickMsg(clock.Now()))
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.ticking)
}

func TestChangedMsgArmsTick(t *testing.T) {
	m, mgr, _, _ := newTestModel(t)
	_, err := mgr.Create(toast.Request{Kind: toast.KindTemporary, TTLSeconds: 3})
	require.NoError(t, err)

	next, cmd := m.Update(changedMsg{})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.True(t, m.ticking)

	_, cmd = m.Update(changedMsg{})
	assert.Nil(t, cmd, "an armed tick is not doubled")
}

func TestViewRendersStack(t *testing.T) {
	m, mgr, _, _ := newTestModel(t)
	mgr.Seed()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	out := m.View()
	assert.Contains(t, out, "Notification Demo")
	assert.Contains(t, out, "Permanent")
	assert.Contains(t, out, "This is a permanent notification.")
	assert.Contains(t, out, "Temporary")
	assert.NotContains(t, out, "This is a temporary notification.")
	assert.Contains(t, out, "2/5")
}

func TestQuit(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
