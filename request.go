package yasmin

import (
	"fmt"
	"strings"
)

// NewChatRequest builds the outbound payload for a send. Input is
// trimmed; text that trims to nothing returns ErrEmptyMessage, which
// callers treat as a silent no-op rather than a failure.
func NewChatRequest(text, conversationID string, p Prefs) (ChatRequest, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatRequest{}, ErrEmptyMessage
	}
	t := p.Temperature
	return ChatRequest{
		Message:        text,
		ConversationID: conversationID,
		Model:          p.Model,
		MaxTokens:      p.MaxTokens,
		Temperature:    &t,
	}, nil
}

// Validate checks universal constraints on ChatRequest. The service may
// apply additional validation of its own.
func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("message is empty: %w", ErrValidation)
	}
	return validateParams(r.Temperature, r.MaxTokens)
}

// NewRegenerateRequest builds the outbound payload for regenerating the
// assistant reply the confirmed history ends with. The window is the
// confirmed history up to, but not including, that reply, with inline
// error notes dropped. Messages past the watermark — a failed send, an
// offline canned exchange — were never delivered and never travel.
// Regenerating an unsaved conversation is an invalid transition and is
// rejected before any request is issued.
func NewRegenerateRequest(c *Conversation, p Prefs) (RegenerateRequest, error) {
	if c.State != StateSaved {
		return RegenerateRequest{}, fmt.Errorf("regenerate %s conversation: %w", c.State, ErrValidation)
	}
	last := c.LastConfirmedAssistant()
	if last < 0 {
		return RegenerateRequest{}, ErrNoAssistantReply
	}
	window := make([]Message, 0, last)
	users := 0
	for _, m := range c.Committed()[:last] {
		switch m.Role {
		case RoleUser:
			users++
		case RoleAssistant:
		default:
			continue
		}
		window = append(window, m)
	}
	if users == 0 {
		return RegenerateRequest{}, ErrNoPriorExchange
	}
	t := p.Temperature
	return RegenerateRequest{
		ConversationID: c.ID,
		Messages:       window,
		Model:          p.Model,
		MaxTokens:      p.MaxTokens,
		Temperature:    &t,
	}, nil
}

// Validate checks universal constraints on RegenerateRequest.
func (r RegenerateRequest) Validate() error {
	if r.ConversationID == "" {
		return fmt.Errorf("conversation id is empty: %w", ErrValidation)
	}
	if len(r.Messages) == 0 {
		return fmt.Errorf("message window is empty: %w", ErrValidation)
	}
	return validateParams(r.Temperature, r.MaxTokens)
}

func validateParams(temperature *float64, maxTokens int) error {
	if temperature != nil {
		if *temperature < 0 || *temperature > 2 {
			return fmt.Errorf("temperature must be in [0, 2], got %g: %w", *temperature, ErrValidation)
		}
	}
	if maxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d: %w", maxTokens, ErrValidation)
	}
	return nil
}
