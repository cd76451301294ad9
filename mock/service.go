// Package mock provides test doubles for yasmin interfaces using
// function fields.
package mock

import (
	"context"

	"github.com/yasmin-chat/yasmin"
)

// Interface compliance checks.
var (
	_ yasmin.ChatService = (*ChatService)(nil)
	_ yasmin.Presence    = (*Presence)(nil)
	_ yasmin.Responder   = (*Responder)(nil)
	_ yasmin.Synthesizer = (*Synthesizer)(nil)
	_ yasmin.Recognizer  = (*Recognizer)(nil)
)

// ChatService is a test double for yasmin.ChatService.
// Set the function fields for the methods you need.
type ChatService struct {
	ListConversationsFn  func(ctx context.Context) ([]yasmin.Summary, error)
	GetConversationFn    func(ctx context.Context, id string) (*yasmin.Conversation, error)
	DeleteConversationFn func(ctx context.Context, id string) error
	SendMessageFn        func(ctx context.Context, req yasmin.ChatRequest) (*yasmin.ChatReply, error)
	RegenerateFn         func(ctx context.Context, req yasmin.RegenerateRequest) (*yasmin.ChatReply, error)
	ListModelsFn         func(ctx context.Context) ([]yasmin.Model, error)
}

// ListConversations delegates to ListConversationsFn.
func (s *ChatService) ListConversations(ctx context.Context) ([]yasmin.Summary, error) {
	return s.ListConversationsFn(ctx)
}

// GetConversation delegates to GetConversationFn.
func (s *ChatService) GetConversation(ctx context.Context, id string) (*yasmin.Conversation, error) {
	return s.GetConversationFn(ctx, id)
}

// DeleteConversation delegates to DeleteConversationFn.
func (s *ChatService) DeleteConversation(ctx context.Context, id string) error {
	return s.DeleteConversationFn(ctx, id)
}

// SendMessage delegates to SendMessageFn.
func (s *ChatService) SendMessage(ctx context.Context, req yasmin.ChatRequest) (*yasmin.ChatReply, error) {
	return s.SendMessageFn(ctx, req)
}

// Regenerate delegates to RegenerateFn.
func (s *ChatService) Regenerate(ctx context.Context, req yasmin.RegenerateRequest) (*yasmin.ChatReply, error) {
	return s.RegenerateFn(ctx, req)
}

// ListModels delegates to ListModelsFn.
func (s *ChatService) ListModels(ctx context.Context) ([]yasmin.Model, error) {
	return s.ListModelsFn(ctx)
}
