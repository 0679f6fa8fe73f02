package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	ToggleKind key.Binding
	NextToast  key.Binding
	PrevToast  key.Binding
	Close      key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		NextField:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		ToggleKind: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "kind")),
		NextToast:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n/p", "select")),
		PrevToast:  key.NewBinding(key.WithKeys("ctrl+p")),
		Close:      key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "close")),
		Quit:       key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.ToggleKind, k.NextToast, k.Close, k.Quit}
}
