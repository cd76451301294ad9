package yasmin

import (
	"fmt"
	"sort"
	"sync"
)

// SessionStore is the single source of truth for which conversation is
// active and what its messages are. It is shared between the sync
// controller and the rendering layer, so every operation takes the lock:
// controller work runs on command goroutines, not the UI loop.
//
// Invariant: the active conversation is always either cached under its id
// or unsaved (empty id). The store keeps at most one unsaved thread, the
// active one.
type SessionStore struct {
	mu        sync.RWMutex
	cache     map[string]*Conversation
	active    *Conversation
	summaries []Summary
	pending   bool
	lastErr   string
}

// NewSessionStore returns an empty store with a fresh unsaved active
// conversation.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		cache:  make(map[string]*Conversation),
		active: NewConversation(),
	}
}

// Active returns a snapshot of the active conversation.
func (s *SessionStore) Active() *Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active.Clone()
}

// ActiveID returns the id of the active conversation, or "" when it is
// unsaved.
func (s *SessionStore) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active.ID
}

// SetActive switches the active conversation to a cached id. The caller
// must have fetched and upserted the conversation first.
func (s *SessionStore) SetActive(id string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cache[id]
	if !ok {
		return nil, fmt.Errorf("set active %q: %w", id, ErrConversationNotFound)
	}
	s.active = c
	return c.Clone(), nil
}

// StartNew makes a fresh unsaved conversation active and returns a
// snapshot of it. Any previous unsaved thread is discarded.
func (s *SessionStore) StartNew() *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = NewConversation()
	return s.active.Clone()
}

// Upsert inserts or replaces a cached conversation by id. If the active
// conversation has the same id, the replacement becomes active.
func (s *SessionStore) Upsert(c *Conversation) error {
	if c.ID == "" {
		return fmt.Errorf("upsert unsaved conversation: %w", ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	own := c.Clone()
	s.cache[c.ID] = own
	if s.active.ID == c.ID {
		s.active = own
	}
	return nil
}

// Lookup returns a snapshot of the cached conversation with the given id.
func (s *SessionStore) Lookup(id string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cache[id]
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", id, ErrConversationNotFound)
	}
	return c.Clone(), nil
}

// Append appends a message to the cached conversation with the given id.
func (s *SessionStore) Append(id string, m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cache[id]
	if !ok {
		return fmt.Errorf("append to %q: %w", id, ErrConversationNotFound)
	}
	c.Append(m)
	return nil
}

// AppendActive appends a message to the active conversation, saved or
// not, and returns a snapshot of the result.
func (s *SessionStore) AppendActive(m Message) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active.Append(m)
	return s.active.Clone()
}

// SaveActive assigns the server id to the active unsaved conversation and
// moves it into the cache.
func (s *SessionStore) SaveActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.active.Save(id); err != nil {
		return err
	}
	s.cache[id] = s.active
	return nil
}

// CommitActive acknowledges every message in the active conversation as
// known to the service.
func (s *SessionStore) CommitActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active.Commit()
}

// SetActiveTitle sets the active conversation's title.
func (s *SessionStore) SetActiveTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active.Title = title
}

// ReplaceLastAssistant replaces the assistant message the confirmed
// history of the given conversation ends with. The thread length and the
// watermark are unchanged: the replacement takes the slot the service
// already acknowledged, and any canned fallback past it stays put.
func (s *SessionStore) ReplaceLastAssistant(id string, m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cache[id]
	if !ok {
		return fmt.Errorf("replace in %q: %w", id, ErrConversationNotFound)
	}
	i := c.LastConfirmedAssistant()
	if i < 0 {
		return fmt.Errorf("replace in %q: %w", id, ErrNoAssistantReply)
	}
	c.Messages[i] = m
	c.UpdatedAt = m.Timestamp
	return nil
}

// RekeyActive moves the active saved conversation under a new service
// id. The service does this when it no longer recognizes the id it was
// sent: it answers from a replacement thread with a fresh id.
func (s *SessionStore) RekeyActive(id string) error {
	if id == "" {
		return fmt.Errorf("rekey with empty id: %w", ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active.State != StateSaved {
		return fmt.Errorf("rekey %s conversation: %w", s.active.State, ErrValidation)
	}
	delete(s.cache, s.active.ID)
	s.active.ID = id
	s.cache[id] = s.active
	return nil
}

// Remove evicts a conversation from the cache after the service reported
// it unknown. Evicting the active conversation transitions the store to
// a fresh unsaved thread.
func (s *SessionStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cache[id]
	if !ok {
		return fmt.Errorf("remove %q: %w", id, ErrConversationNotFound)
	}
	_ = c.Evict()
	s.drop(id, c)
	return nil
}

// Delete drops a conversation the service confirmed deleted. Deleting
// the active conversation transitions the store to a fresh unsaved
// thread.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cache[id]
	if !ok {
		return fmt.Errorf("delete %q: %w", id, ErrConversationNotFound)
	}
	_ = c.Delete()
	s.drop(id, c)
	return nil
}

// drop removes a conversation from the cache and summary list. Callers
// hold the lock.
func (s *SessionStore) drop(id string, c *Conversation) {
	delete(s.cache, id)
	for i := range s.summaries {
		if s.summaries[i].ID == id {
			s.summaries = append(s.summaries[:i], s.summaries[i+1:]...)
			break
		}
	}
	if s.active == c {
		s.active = NewConversation()
	}
}

// SetSummaries replaces the conversation list from a refresh. The slice
// is kept in the order the service returned it.
func (s *SessionStore) SetSummaries(list []Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append([]Summary(nil), list...)
}

// Summaries returns the conversation list from the last refresh, merged
// with any cached conversations the list does not know yet and sorted
// most recent first.
func (s *SessionStore) Summaries() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]Summary(nil), s.summaries...)
	seen := make(map[string]bool, len(out))
	for _, sum := range out {
		seen[sum.ID] = true
	}
	for id, c := range s.cache {
		if !seen[id] {
			out = append(out, c.Summarize())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// BeginExchange marks an outbound exchange in flight. It fails when one
// is already pending: concurrent triggers are dropped, not queued.
func (s *SessionStore) BeginExchange() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return ErrExchangePending
	}
	s.pending = true
	return nil
}

// EndExchange clears the in-flight flag.
func (s *SessionStore) EndExchange() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
}

// Pending reports whether an exchange is in flight.
func (s *SessionStore) Pending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending
}

// SetLastError records the most recent user-visible failure, or clears
// it with "".
func (s *SessionStore) SetLastError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

// LastError returns the most recent user-visible failure, or "".
func (s *SessionStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
