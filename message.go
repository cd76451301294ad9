package yasmin

import (
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// Message is a single entry in a conversation thread. Messages are
// immutable once appended; regeneration replaces the trailing assistant
// message wholesale rather than mutating it.
type Message struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// NewUserMessage returns a user message with the current time.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content, Timestamp: time.Now()}
}

// NewAssistantMessage returns an assistant message with the current time.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content, Timestamp: time.Now()}
}

// NewErrorMessage returns an inline error message with the current time.
func NewErrorMessage(content string) Message {
	return Message{Role: RoleError, Content: content, Timestamp: time.Now()}
}

// Preview returns the message content truncated to max grapheme clusters,
// with "…" appended when truncation occurred. Truncating by grapheme rather
// than by byte or rune keeps Arabic combining sequences intact.
func (m Message) Preview(max int) string {
	return truncateGraphemes(strings.TrimSpace(m.Content), max, "…")
}

func truncateGraphemes(s string, max int, tail string) string {
	if max <= 0 {
		return ""
	}
	var (
		g     = uniseg.NewGraphemes(s)
		count int
		end   int
	)
	for g.Next() {
		count++
		if count > max {
			return s[:end] + tail
		}
		_, end = g.Positions()
	}
	return s
}
