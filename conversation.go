package yasmin

import (
	"fmt"
	"time"
)

// DefaultTitle is the placeholder title for a thread with no exchanges yet.
const DefaultTitle = "محادثة جديدة"

// titleLimit is the grapheme count the service truncates derived titles to.
const titleLimit = 30

// State tags a conversation's position in its lifecycle. Transitions are
// validated so operations that require a server-assigned id (regenerate,
// delete) can be rejected before any request is issued.
type State int

const (
	// StateUnsaved is a fresh local thread the service has not assigned
	// an id to yet.
	StateUnsaved State = iota

	// StateSaved is a thread the service knows by id.
	StateSaved

	// StateEvicted marks a saved thread the service reported unknown.
	// The store drops it immediately after the transition.
	StateEvicted

	// StateDeleted is terminal: the service confirmed deletion.
	StateDeleted
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateUnsaved:
		return "unsaved"
	case StateSaved:
		return "saved"
	case StateEvicted:
		return "evicted"
	case StateDeleted:
		return "deleted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Conversation is a chat thread. The id is assigned by the service on the
// first successful exchange; until then the thread is unsaved and local.
// Confirmed counts the leading messages the service has acknowledged, so a
// failed send leaves the user's text visible without pretending it was
// delivered.
type Conversation struct {
	ID        string
	Title     string
	State     State
	Messages  []Message
	Confirmed int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewConversation returns a fresh unsaved conversation with the default
// title.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		Title:     DefaultTitle,
		State:     StateUnsaved,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Save assigns the service id and moves the conversation to StateSaved.
// Only an unsaved conversation can be saved.
func (c *Conversation) Save(id string) error {
	if id == "" {
		return fmt.Errorf("save with empty id: %w", ErrValidation)
	}
	if c.State != StateUnsaved {
		return fmt.Errorf("save from %s: %w", c.State, ErrValidation)
	}
	c.ID = id
	c.State = StateSaved
	return nil
}

// Evict marks a saved conversation stale after the service reported its id
// unknown.
func (c *Conversation) Evict() error {
	if c.State != StateSaved {
		return fmt.Errorf("evict from %s: %w", c.State, ErrValidation)
	}
	c.State = StateEvicted
	return nil
}

// Delete marks a saved conversation deleted after the service confirmed
// removal.
func (c *Conversation) Delete() error {
	if c.State != StateSaved {
		return fmt.Errorf("delete from %s: %w", c.State, ErrValidation)
	}
	c.State = StateDeleted
	return nil
}

// Append adds a message to the thread and bumps UpdatedAt. The message is
// uncommitted until Commit is called.
func (c *Conversation) Append(m Message) {
	c.Messages = append(c.Messages, m)
	c.UpdatedAt = time.Now()
}

// Commit acknowledges every message currently in the thread as known to
// the service.
func (c *Conversation) Commit() {
	c.Confirmed = len(c.Messages)
}

// Committed returns the prefix of the thread the service has acknowledged.
// The returned slice aliases the thread; callers must not mutate it.
func (c *Conversation) Committed() []Message {
	return c.Messages[:c.Confirmed]
}

// LastAssistant returns the index of the trailing assistant message, or -1
// when the thread does not end with one.
func (c *Conversation) LastAssistant() int {
	if n := len(c.Messages); n > 0 && c.Messages[n-1].Role == RoleAssistant {
		return n - 1
	}
	return -1
}

// LastConfirmedAssistant returns the index of the assistant message the
// confirmed history ends with, or -1. A canned fallback reply sits past
// the watermark, so it never qualifies.
func (c *Conversation) LastConfirmedAssistant() int {
	if c.Confirmed > 0 && c.Messages[c.Confirmed-1].Role == RoleAssistant {
		return c.Confirmed - 1
	}
	return -1
}

// Clone returns a copy of the conversation with its own message slice,
// safe to hand to another goroutine.
func (c *Conversation) Clone() *Conversation {
	out := *c
	out.Messages = append([]Message(nil), c.Messages...)
	return &out
}

// Summary is the list-view projection of a conversation.
type Summary struct {
	ID        string
	Title     string
	UpdatedAt time.Time
}

// Summarize returns the list-view projection of the conversation.
func (c *Conversation) Summarize() Summary {
	return Summary{ID: c.ID, Title: c.Title, UpdatedAt: c.UpdatedAt}
}

// DeriveTitle builds a conversation title from the first user message the
// same way the service does: the first 30 grapheme clusters, with "..."
// appended when the message is longer. The derived title must match what a
// later refresh returns from the service. A blank message keeps the
// default title.
func DeriveTitle(content string) string {
	if content == "" {
		return DefaultTitle
	}
	return truncateGraphemes(content, titleLimit, "...")
}
