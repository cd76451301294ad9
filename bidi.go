package yasmin

import "golang.org/x/text/unicode/bidi"

// IsRTL reports whether the first strong directional rune in s is
// right-to-left. Arabic text starts RTL even when it embeds Latin
// fragments, so first-strong matches how terminals and the bidi
// algorithm pick a paragraph direction. Neutral-only text (digits,
// punctuation, whitespace) reads left-to-right.
func IsRTL(s string) bool {
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.R, bidi.AL:
			return true
		case bidi.L:
			return false
		}
	}
	return false
}
