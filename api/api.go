// Package api implements [yasmin.ChatService] over the conversation
// service's HTTP endpoints.
//
// The service recalls chat history by conversation id, so /api/chat
// carries only the new message; /api/regenerate is the exception and
// sends its message window explicitly. Failures are reported as the
// yasmin sentinel taxonomy with the service's own error text preserved.
package api

// DefaultBaseURL targets a local development server.
const DefaultBaseURL = "http://localhost:5000"

const (
	chatPath          = "/api/chat"
	regeneratePath    = "/api/regenerate"
	conversationsPath = "/api/conversations"
	modelsPath        = "/api/models"
)

// apiChatRequest is the JSON body sent to /api/chat. History is part of
// the wire contract but stays empty: the service recalls it by id.
type apiChatRequest struct {
	Message        string       `json:"message"`
	ConversationID string       `json:"conversation_id,omitempty"`
	Model          string       `json:"model,omitempty"`
	Temperature    *float64     `json:"temperature,omitempty"`
	MaxTokens      int          `json:"max_tokens,omitempty"`
	History        []apiMessage `json:"history,omitempty"`
}

// apiRegenerateRequest is the JSON body sent to /api/regenerate.
type apiRegenerateRequest struct {
	ConversationID string       `json:"conversation_id"`
	Messages       []apiMessage `json:"messages"`
	Model          string       `json:"model,omitempty"`
	Temperature    *float64     `json:"temperature,omitempty"`
	MaxTokens      int          `json:"max_tokens,omitempty"`
}

// apiChatResponse is the JSON body of /api/chat and /api/regenerate
// answers. Offline marks the service's canned fallback, which arrives
// with HTTP 503 and an error note but still carries a usable reply.
type apiChatResponse struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversation_id"`
	Offline        bool   `json:"offline"`
	Error          string `json:"error"`
}

type apiMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
}

type apiConversation struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
	Messages  []apiMessage `json:"messages"`
}

type apiConversationList struct {
	Conversations []apiConversation `json:"conversations"`
}

type apiModel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type apiModelList struct {
	Models []apiModel `json:"models"`
}

type apiDeleteResponse struct {
	Success bool `json:"success"`
}

// apiError is the JSON body returned on failures. The service writes its
// error text in Arabic.
type apiError struct {
	Error string `json:"error"`
}
