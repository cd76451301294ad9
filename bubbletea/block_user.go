package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/yasmin-chat/yasmin"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a user message with a "> " prefix. Arabic
// input is right-aligned so the thread reads the way the language does.
type UserMessageBlock struct {
	text   string
	styles Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(text string, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{text: text, styles: styles}
}

func (b *UserMessageBlock) View(width int) string {
	style := lipgloss.NewStyle().Width(width)
	if yasmin.IsRTL(b.text) {
		style = style.Align(lipgloss.Right)
	}
	content := b.styles.UserMsg.Render("> ") + b.text
	return style.Render(content)
}
