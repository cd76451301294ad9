package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/yasmin-chat/yasmin"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	UserMsg      lipgloss.Style
	AssistantMsg lipgloss.Style
	Error        lipgloss.Style
	Offline      lipgloss.Style
	Success      lipgloss.Style
	Muted        lipgloss.Style
	Accent       lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t yasmin.Theme) Styles {
	return Styles{
		UserMsg:      lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		AssistantMsg: lipgloss.NewStyle().Foreground(ansiColor(t.AssistantMsg)),
		Error:        lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Offline:      lipgloss.NewStyle().Foreground(ansiColor(t.Offline)),
		Success:      lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:        lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
