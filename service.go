package yasmin

import "context"

// Model identifies a generation model offered by the service.
type Model struct {
	ID   string
	Name string
}

// ChatReply is the service's answer to a send or regenerate exchange.
// Offline is set when the service answered from its own canned fallback
// instead of the model; such replies are never spoken aloud.
type ChatReply struct {
	Reply          string
	ConversationID string
	Offline        bool
}

// ChatRequest carries a single outbound user message with model selection
// and generation parameters. The service recalls prior history by
// conversation id, so only the new message travels.
type ChatRequest struct {
	Message        string
	ConversationID string   // empty = start a new conversation
	Model          string   // empty = service default
	MaxTokens      int      // 0 = service default
	Temperature    *float64 // nil = service default
}

// RegenerateRequest asks the service for a fresh completion of a thread's
// last exchange. Unlike ChatRequest it carries the message window
// explicitly: the service must not reuse the stored assistant reply being
// replaced.
type RegenerateRequest struct {
	ConversationID string
	Messages       []Message // committed history minus the trailing assistant reply
	Model          string    // empty = service default
	MaxTokens      int       // 0 = service default
	Temperature    *float64  // nil = service default
}

// ChatService is the remote conversation/chat contract the controller
// drives. The api package implements it over HTTP; mock provides a
// function-field test double.
type ChatService interface {
	ListConversations(ctx context.Context) ([]Summary, error)
	GetConversation(ctx context.Context, id string) (*Conversation, error)
	DeleteConversation(ctx context.Context, id string) error
	SendMessage(ctx context.Context, req ChatRequest) (*ChatReply, error)
	Regenerate(ctx context.Context, req RegenerateRequest) (*ChatReply, error)
	ListModels(ctx context.Context) ([]Model, error)
}
