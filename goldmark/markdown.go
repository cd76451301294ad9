// Package goldmark renders assistant replies to ANSI-styled terminal
// output using goldmark for parsing and lipgloss for styling.
//
// The service speaks markdown-lite: code fences, bold/italic emphasis,
// inline code, lists and headings. Anything richer passes through as
// plain text. The renderer is direction-aware: each paragraph, heading
// and list item picks left or right alignment from its own first strong
// character, so the predominantly Arabic replies read from the right
// while embedded English and code stay left.
package goldmark

import "github.com/yasmin-chat/yasmin"

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width, right-aligned
// when their text reads right-to-left. Code blocks are rendered at full
// width without reflow.
func Render(source string, width int, theme yasmin.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	return newRenderer(theme, width).render([]byte(source))
}
