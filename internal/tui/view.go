package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/toasts/internal/errors"
	"github.com/cristianoliveira/toasts/internal/toast"
)

const (
	toastWidth      = 40
	toastInnerWidth = toastWidth - 4
)

var (
	colorInfo    = lipgloss.Color("#0dcaf0")
	colorWarning = lipgloss.Color("#ffc107")
	colorMuted   = lipgloss.Color("241")
	colorError   = lipgloss.Color("#dc3545")
	colorSuccess = lipgloss.Color("#198754")

	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)

	toastBase = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(toastWidth - 2)
	temporaryStyle = toastBase.BorderForeground(colorInfo)
	permanentStyle = toastBase.BorderForeground(colorWarning)
	selectedStyle  = toastBase.BorderForeground(colorWarning).BorderStyle(lipgloss.ThickBorder())

	buttonStyle         = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("#0d6efd")).Foreground(lipgloss.Color("#ffffff"))
	disabledButtonStyle = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("238")).Foreground(colorMuted)
)

// View renders the form and the toast stack.
func (m Model) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	form := m.renderForm()
	stack := m.renderStack()
	if stack == "" {
		return form
	}

	placed := lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
	if m.height > 0 {
		gap := m.height - lipgloss.Height(form) - lipgloss.Height(placed)
		if gap > 0 {
			return form + strings.Repeat("\n", gap) + placed
		}
	}
	return form + "\n" + placed
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Notification Demo"))
	b.WriteString("\n")

	b.WriteString(m.title.View())
	b.WriteString("\n")
	if m.kind == toast.KindPermanent {
		b.WriteString(m.content.View())
	} else {
		b.WriteString(m.ttl.View())
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d-%d", m.opts.MinTTL, m.opts.MaxTTL)))
	}
	b.WriteString("\n")
	b.WriteString(kindLabel(m.kind))
	b.WriteString("   ")
	if m.canSubmit() {
		b.WriteString(buttonStyle.Render("Add"))
	} else {
		b.WriteString(disabledButtonStyle.Render("Add"))
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d", m.manager.Len(), m.manager.Capacity())))
	b.WriteString("\n")

	if msg, ok := m.status.Latest(statusMaxAge); ok {
		b.WriteString(statusStyle(msg.Type).Render(msg.Text))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(m.helpLine()))
	return b.String()
}

func kindLabel(k toast.Kind) string {
	opts := []toast.Kind{toast.KindTemporary, toast.KindPermanent}
	parts := make([]string, 0, len(opts))
	for _, o := range opts {
		label := strings.ToUpper(o.String()[:1]) + o.String()[1:]
		if o == k {
			parts = append(parts, lipgloss.NewStyle().Bold(true).Render("● "+label))
		} else {
			parts = append(parts, mutedStyle.Render("○ "+label))
		}
	}
	return strings.Join(parts, "  ")
}

func statusStyle(t errors.MessageType) lipgloss.Style {
	switch t {
	case errors.MessageTypeError:
		return lipgloss.NewStyle().Foreground(colorError)
	case errors.MessageTypeWarning:
		return lipgloss.NewStyle().Foreground(colorWarning)
	case errors.MessageTypeSuccess:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	default:
		return mutedStyle
	}
}

func (m Model) helpLine() string {
	bindings := m.keys.help()
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func (m Model) renderStack() string {
	list := m.manager.List()
	if len(list) == 0 {
		return ""
	}
	boxes := make([]string, 0, len(list))
	for _, n := range list {
		boxes = append(boxes, m.renderToast(n))
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}

func (m Model) renderToast(n toast.Notification) string {
	var lines []string
	if n.HasTitle() {
		title := lipgloss.NewStyle()
		if n.IsPermanent() {
			title = title.Bold(true)
		}
		lines = append(lines, title.Render(n.Title))
	}

	if n.IsPermanent() {
		lines = append(lines, n.Content)
		style := permanentStyle
		hint := "ctrl+x close"
		if n.ID == m.selected {
			style = selectedStyle
			hint = "▸ " + hint
		}
		lines = append(lines, lipgloss.PlaceHorizontal(toastInnerWidth, lipgloss.Right, mutedStyle.Render(hint)))
		return style.Render(strings.Join(lines, "\n"))
	}

	frac, _ := m.manager.Progress(n.ID)
	lines = append(lines, m.bar.ViewAs(frac))
	return temporaryStyle.Render(strings.Join(lines, "\n"))
}
