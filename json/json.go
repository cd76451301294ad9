// Package json persists conversation transcripts as versioned JSON
// files, for export and later re-import.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yasmin-chat/yasmin"
)

// envelope is the v1 wire format for an exported transcript.
type envelope struct {
	Version   int          `json:"version"`
	ID        string       `json:"id,omitempty"`
	Title     string       `json:"title"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Messages  []messageDTO `json:"messages"`
}

// messageDTO is the JSON representation of a Message.
type messageDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// MarshalConversation serializes a conversation to JSON in v1 envelope
// format. Only confirmed thread content is meaningful to export, but the
// whole message list is written: a transcript is a view of what the user
// saw, not of server state.
func MarshalConversation(c *yasmin.Conversation) ([]byte, error) {
	env := envelope{
		Version:   1,
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Messages:  make([]messageDTO, len(c.Messages)),
	}
	for i, m := range c.Messages {
		if !m.Role.Valid() {
			return nil, fmt.Errorf("message %d: unknown role %q: %w", i, m.Role, yasmin.ErrValidation)
		}
		env.Messages[i] = messageDTO{
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp,
		}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalConversation deserializes a conversation from JSON in v1
// envelope format. An imported transcript that carries a service id is
// restored as saved with its whole thread confirmed; one without an id
// comes back unsaved.
func UnmarshalConversation(data []byte) (*yasmin.Conversation, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return nil, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	msgs := make([]yasmin.Message, len(env.Messages))
	for i, dto := range env.Messages {
		role := yasmin.Role(dto.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("message %d: unknown role %q: %w", i, dto.Role, yasmin.ErrValidation)
		}
		msgs[i] = yasmin.Message{
			Role:      role,
			Content:   dto.Content,
			Timestamp: dto.Timestamp,
		}
	}
	title := env.Title
	if title == "" {
		title = yasmin.DefaultTitle
	}
	c := &yasmin.Conversation{
		ID:        env.ID,
		Title:     title,
		State:     yasmin.StateUnsaved,
		Messages:  msgs,
		CreatedAt: env.CreatedAt,
		UpdatedAt: env.UpdatedAt,
	}
	if c.ID != "" {
		c.State = yasmin.StateSaved
		c.Confirmed = len(msgs)
	}
	return c, nil
}

// Save writes a conversation transcript to a JSON file, creating parent
// directories as needed. The write goes through a temp file and rename
// so a crash never leaves a half-written transcript.
func Save(path string, c *yasmin.Conversation) error {
	data, err := MarshalConversation(c)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a conversation transcript from a JSON file.
func Load(path string) (*yasmin.Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalConversation(data)
}
