package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/toasts/internal/toast"
)

// Run starts the interactive demo and blocks until the user quits.
// The manager should already be started.
func Run(ctx context.Context, manager *toast.Manager, opts Options) error {
	p := tea.NewProgram(New(manager, opts), tea.WithAltScreen(), tea.WithContext(ctx))

	// Events may come from inside Update (closing a toast), so Send must not
	// block the loop that would receive it.
	manager.Subscribe(func(ev toast.Event) {
		go p.Send(changedMsg{Event: ev})
	})

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
