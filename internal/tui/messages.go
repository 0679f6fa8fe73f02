package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/toasts/internal/toast"
)

// tickMsg drives the progress bars.
type tickMsg time.Time

// changedMsg carries a manager event into the update loop.
type changedMsg struct {
	Event toast.Event
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
