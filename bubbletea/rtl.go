package bubbletea

import "github.com/mattn/go-runewidth"

// fitWidth truncates s to the given display width, appending "…" when
// truncation occurred. Display width, not rune count: Arabic combining
// marks are zero-width and must not eat into the budget.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
