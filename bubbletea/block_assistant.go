package bubbletea

import (
	"github.com/yasmin-chat/yasmin"
	"github.com/yasmin-chat/yasmin/goldmark"
)

var _ MessageBlock = (*AssistantBlock)(nil)

// offlineBadge marks replies answered from a canned table rather than a
// model.
const offlineBadge = "⚠ رد جاهز — الخدمة غير متصلة"

// AssistantBlock renders an assistant reply with markdown formatting.
// Replies are complete when the block is built (the service does not
// stream), so the rendered output is cached per width.
type AssistantBlock struct {
	text    string
	offline bool
	theme   yasmin.Theme
	styles  Styles

	byWidth map[int]string
}

// NewAssistantBlock creates a block for an assistant reply. offline
// marks a canned fallback reply, which gets a badge above the text.
func NewAssistantBlock(text string, offline bool, theme yasmin.Theme, styles Styles) *AssistantBlock {
	return &AssistantBlock{
		text:    text,
		offline: offline,
		theme:   theme,
		styles:  styles,
		byWidth: make(map[int]string),
	}
}

func (b *AssistantBlock) View(width int) string {
	if cached, ok := b.byWidth[width]; ok {
		return cached
	}
	out := goldmark.Render(b.text, width, b.theme)
	if b.offline {
		out = b.styles.Offline.Render(offlineBadge) + "\n" + out
	}
	b.byWidth[width] = out
	return out
}
