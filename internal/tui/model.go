// Package tui renders the notification demo: a small form and a stack of
// toasts in the bottom-right corner.
package tui

import (
	stderrors "errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/toasts/internal/errors"
	"github.com/cristianoliveira/toasts/internal/toast"
)

type field int

const (
	fieldTitle field = iota
	fieldDetail
)

const statusMaxAge = 4 * time.Second

// Options configures the model.
type Options struct {
	TickInterval time.Duration
	MinTTL       int
	MaxTTL       int
	DefaultTTL   int
	Now          func() time.Time
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = 50 * time.Millisecond
	}
	if o.MinTTL <= 0 {
		o.MinTTL = toast.MinTTLSeconds
	}
	if o.MaxTTL < o.MinTTL {
		o.MaxTTL = toast.MaxTTLSeconds
	}
	if o.DefaultTTL <= 0 {
		o.DefaultTTL = 5
	}
	o.DefaultTTL = toast.ClampTTL(o.DefaultTTL, o.MinTTL, o.MaxTTL)
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Model is the bubbletea model of the demo.
type Model struct {
	manager *toast.Manager
	opts    Options
	keys    keyMap
	status  *errors.TUIHandler

	kind    toast.Kind
	focus   field
	title   textinput.Model
	content textinput.Model
	ttl     textinput.Model
	bar     progress.Model

	selected int64
	ticking  bool
	width    int
	height   int
}

// New creates a model driving manager.
func New(manager *toast.Manager, opts Options) Model {
	opts = opts.withDefaults()

	title := textinput.New()
	title.Placeholder = "Title (optional)"
	title.CharLimit = 80
	title.Width = 30
	title.Prompt = "Title   › "
	title.Focus()

	content := textinput.New()
	content.Placeholder = "Content"
	content.CharLimit = 200
	content.Width = 40
	content.Prompt = "Content › "

	ttl := textinput.New()
	ttl.Placeholder = strconv.Itoa(opts.DefaultTTL)
	ttl.CharLimit = 2
	ttl.Width = 4
	ttl.Prompt = "TTL (s) › "
	ttl.SetValue(strconv.Itoa(opts.DefaultTTL))

	bar := progress.New(progress.WithSolidFill(string(colorInfo)), progress.WithoutPercentage(), progress.WithWidth(toastInnerWidth))

	return Model{
		manager: manager,
		opts:    opts,
		keys:    defaultKeyMap(),
		status:  errors.NewTUIHandler(opts.Now, nil),
		kind:    toast.KindTemporary,
		title:   title,
		content: content,
		ttl:     ttl,
		bar:     bar,
	}
}

// Init starts cursor blinking and the progress tick when needed.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.manager.HasTemporary() {
		cmds = append(cmds, tickCmd(m.opts.TickInterval))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.manager.Tick()
		if m.manager.HasTemporary() {
			m.ticking = true
			return m, tickCmd(m.opts.TickInterval)
		}
		m.ticking = false
		return m, nil

	case changedMsg:
		m.fixSelection()
		return m, m.ensureTicking()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.ToggleKind):
		m.toggleKind()
		return m, nil
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		m.switchField()
		return m, nil
	case key.Matches(msg, m.keys.NextToast):
		m.moveSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevToast):
		m.moveSelection(-1)
		return m, nil
	case key.Matches(msg, m.keys.Close):
		return m.closeSelected()
	}

	if m.focus == fieldDetail && m.kind == toast.KindTemporary && msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				return m, nil
			}
		}
	}
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.focus == fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case m.kind == toast.KindPermanent:
		m.content, cmd = m.content.Update(msg)
	default:
		m.ttl, cmd = m.ttl.Update(msg)
	}
	return m, cmd
}

// canSubmit mirrors the disabled state of the Add button.
func (m Model) canSubmit() bool {
	if m.manager.Full() {
		return false
	}
	if m.kind == toast.KindPermanent && strings.TrimSpace(m.content.Value()) == "" {
		return false
	}
	return true
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.canSubmit() {
		if m.manager.Full() {
			m.status.Warning("At most " + strconv.Itoa(m.manager.Capacity()) + " notifications at a time")
		} else {
			m.status.Warning("Permanent notifications need content")
		}
		return m, nil
	}

	req := toast.Request{Kind: m.kind, Title: strings.TrimSpace(m.title.Value())}
	if m.kind == toast.KindPermanent {
		req.Content = m.content.Value()
	} else {
		req.TTLSeconds = m.ttlSeconds()
		m.ttl.SetValue(strconv.Itoa(req.TTLSeconds))
	}

	if _, err := m.manager.Create(req); err != nil {
		m.status.Error(describe(err))
		return m, nil
	}
	m.title.Reset()
	m.content.Reset()
	m.status.Clear()
	return m, m.ensureTicking()
}

// ttlSeconds reads the TTL field clamped to the configured range.
func (m Model) ttlSeconds() int {
	n, err := strconv.Atoi(strings.TrimSpace(m.ttl.Value()))
	if err != nil {
		n = m.opts.DefaultTTL
	}
	return toast.ClampTTL(n, m.opts.MinTTL, m.opts.MaxTTL)
}

func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking || !m.manager.HasTemporary() {
		return nil
	}
	m.ticking = true
	m.manager.Tick()
	return tickCmd(m.opts.TickInterval)
}

func (m *Model) toggleKind() {
	if m.kind == toast.KindTemporary {
		m.kind = toast.KindPermanent
	} else {
		m.kind = toast.KindTemporary
	}
	m.applyFocus()
}

func (m *Model) switchField() {
	if m.focus == fieldTitle {
		m.focus = fieldDetail
	} else {
		m.focus = fieldTitle
	}
	m.applyFocus()
}

func (m *Model) applyFocus() {
	m.title.Blur()
	m.content.Blur()
	m.ttl.Blur()
	switch {
	case m.focus == fieldTitle:
		m.title.Focus()
	case m.kind == toast.KindPermanent:
		m.content.Focus()
	default:
		m.ttl.Focus()
	}
}

// permanentIDs lists closable notifications in display order.
func (m Model) permanentIDs() []int64 {
	var ids []int64
	for _, n := range m.manager.List() {
		if n.IsPermanent() {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func (m *Model) moveSelection(delta int) {
	ids := m.permanentIDs()
	if len(ids) == 0 {
		m.selected = 0
		return
	}
	idx := indexOf(ids, m.selected)
	if idx < 0 {
		if delta > 0 {
			idx = 0
		} else {
			idx = len(ids) - 1
		}
	} else {
		idx = (idx + delta + len(ids)) % len(ids)
	}
	m.selected = ids[idx]
}

func (m *Model) fixSelection() {
	ids := m.permanentIDs()
	if len(ids) == 0 {
		m.selected = 0
		return
	}
	if indexOf(ids, m.selected) < 0 {
		m.selected = ids[len(ids)-1]
	}
}

func (m Model) closeSelected() (tea.Model, tea.Cmd) {
	m.fixSelection()
	if m.selected == 0 {
		return m, nil
	}
	m.manager.Remove(m.selected)
	m.fixSelection()
	return m, nil
}

func indexOf(ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func describe(err error) string {
	switch {
	case stderrors.Is(err, toast.ErrCapacityExceeded):
		return "The notification list is full"
	case stderrors.Is(err, toast.ErrInvalidPermanentContent):
		return "Permanent notifications need content"
	default:
		return err.Error()
	}
}
