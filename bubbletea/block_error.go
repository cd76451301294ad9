package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/yasmin-chat/yasmin"
)

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock renders an inline error note kept in the thread, the
// failed-send indicator that travels with the user's unconfirmed
// message.
type ErrorBlock struct {
	text   string
	styles Styles
}

// NewErrorBlock creates an ErrorBlock.
func NewErrorBlock(text string, styles Styles) *ErrorBlock {
	return &ErrorBlock{text: text, styles: styles}
}

func (b *ErrorBlock) View(width int) string {
	style := lipgloss.NewStyle().Width(width)
	if yasmin.IsRTL(b.text) {
		style = style.Align(lipgloss.Right)
	}
	return style.Render(b.styles.Error.Render("✗ " + b.text))
}
