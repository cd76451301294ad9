package yasmin

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request or preference failed validation.
	ErrValidation = errors.New("validation error")

	// ErrEmptyMessage is returned when an outbound message trims to
	// nothing. Callers treat it as a no-op rather than surfacing it.
	ErrEmptyMessage = errors.New("empty message")

	// ErrExchangePending is returned when a send or regenerate is
	// attempted while another exchange is still in flight. The attempt
	// is dropped, not queued.
	ErrExchangePending = errors.New("exchange already pending")

	// ErrConversationNotFound is returned when the service no longer
	// knows the requested conversation id.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrNoAssistantReply is returned by regenerate when the active
	// conversation has no trailing assistant message to replace.
	ErrNoAssistantReply = errors.New("no assistant reply to regenerate")

	// ErrNoPriorExchange is returned by regenerate when the
	// conversation holds no committed user message to resend.
	ErrNoPriorExchange = errors.New("no prior exchange")

	// ErrSend wraps transport and service failures during send or
	// regenerate.
	ErrSend = errors.New("send failed")

	// ErrFetch wraps failures while loading a single conversation.
	ErrFetch = errors.New("fetch failed")

	// ErrList wraps failures while listing conversation summaries.
	ErrList = errors.New("list failed")

	// ErrDelete wraps failures while deleting a conversation.
	ErrDelete = errors.New("delete failed")

	// ErrOffline is returned when the service is unreachable and the
	// caller asked for behavior that cannot be satisfied locally.
	ErrOffline = errors.New("service offline")
)
