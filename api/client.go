package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yasmin-chat/yasmin"
)

// Interface compliance check.
var _ yasmin.ChatService = (*Client)(nil)

// Client implements [yasmin.ChatService] against a conversation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a [Client] for the service at baseURL. An empty baseURL
// targets a local development server.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SendMessage posts one user message. A 503 answer that carries the
// service's canned fallback is a successful exchange flagged Offline,
// not an error.
func (c *Client) SendMessage(ctx context.Context, req yasmin.ChatRequest) (*yasmin.ChatReply, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("api: send: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, chatPath, apiChatRequest{
		Message:        req.Message,
		ConversationID: req.ConversationID,
		Model:          req.Model,
		Temperature:    req.Temperature,
		MaxTokens:      req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("api: send: %v: %w", err, yasmin.ErrSend)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: send: HTTP %d: %v: %w", resp.StatusCode, err, yasmin.ErrSend)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		var out apiChatResponse
		if err := json.Unmarshal(body, &out); err != nil || out.Reply == "" {
			return nil, fmt.Errorf("api: send: malformed response: %w", yasmin.ErrSend)
		}
		return &yasmin.ChatReply{Reply: out.Reply, ConversationID: out.ConversationID}, nil
	case http.StatusServiceUnavailable:
		var out apiChatResponse
		if err := json.Unmarshal(body, &out); err == nil && out.Offline && out.Reply != "" {
			return &yasmin.ChatReply{Reply: out.Reply, ConversationID: out.ConversationID, Offline: true}, nil
		}
		return nil, httpError("send", resp.StatusCode, body, yasmin.ErrSend)
	case http.StatusBadRequest:
		return nil, httpError("send", resp.StatusCode, body, yasmin.ErrValidation)
	default:
		return nil, httpError("send", resp.StatusCode, body, yasmin.ErrSend)
	}
}

// Regenerate requests a fresh completion for the given message window.
func (c *Client) Regenerate(ctx context.Context, req yasmin.RegenerateRequest) (*yasmin.ChatReply, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("api: regenerate: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, regeneratePath, apiRegenerateRequest{
		ConversationID: req.ConversationID,
		Messages:       convertMessages(req.Messages),
		Model:          req.Model,
		Temperature:    req.Temperature,
		MaxTokens:      req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("api: regenerate: %v: %w", err, yasmin.ErrSend)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: regenerate: HTTP %d: %v: %w", resp.StatusCode, err, yasmin.ErrSend)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		var out apiChatResponse
		if err := json.Unmarshal(body, &out); err != nil || out.Reply == "" {
			return nil, fmt.Errorf("api: regenerate: malformed response: %w", yasmin.ErrSend)
		}
		reply := &yasmin.ChatReply{Reply: out.Reply, ConversationID: out.ConversationID, Offline: out.Offline}
		if reply.ConversationID == "" {
			reply.ConversationID = req.ConversationID
		}
		return reply, nil
	case http.StatusNotFound:
		return nil, httpError("regenerate", resp.StatusCode, body, yasmin.ErrConversationNotFound)
	default:
		return nil, httpError("regenerate", resp.StatusCode, body, yasmin.ErrSend)
	}
}

// ListConversations fetches the summary list, most recently updated
// first.
func (c *Client) ListConversations(ctx context.Context) ([]yasmin.Summary, error) {
	resp, err := c.do(ctx, http.MethodGet, conversationsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("api: list: %v: %w", err, yasmin.ErrList)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: list: HTTP %d: %v: %w", resp.StatusCode, err, yasmin.ErrList)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpError("list", resp.StatusCode, body, yasmin.ErrList)
	}
	var out apiConversationList
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("api: list: malformed response: %w", yasmin.ErrList)
	}
	summaries := make([]yasmin.Summary, len(out.Conversations))
	for i, ac := range out.Conversations {
		summaries[i] = yasmin.Summary{
			ID:        ac.ID,
			Title:     ac.Title,
			UpdatedAt: parseTime(ac.UpdatedAt),
		}
	}
	return summaries, nil
}

// GetConversation fetches a conversation with its full message history.
func (c *Client) GetConversation(ctx context.Context, id string) (*yasmin.Conversation, error) {
	resp, err := c.do(ctx, http.MethodGet, conversationsPath+"/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("api: get %q: %v: %w", id, err, yasmin.ErrFetch)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: get %q: HTTP %d: %v: %w", id, resp.StatusCode, err, yasmin.ErrFetch)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		var out apiConversation
		if err := json.Unmarshal(body, &out); err != nil || out.ID == "" {
			return nil, fmt.Errorf("api: get %q: malformed response: %w", id, yasmin.ErrFetch)
		}
		return out.toConversation(), nil
	case http.StatusNotFound:
		return nil, httpError("get", resp.StatusCode, body, yasmin.ErrConversationNotFound)
	default:
		return nil, httpError("get", resp.StatusCode, body, yasmin.ErrFetch)
	}
}

// DeleteConversation removes a conversation on the service.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, conversationsPath+"/"+id, nil)
	if err != nil {
		return fmt.Errorf("api: delete %q: %v: %w", id, err, yasmin.ErrDelete)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: delete %q: HTTP %d: %v: %w", id, resp.StatusCode, err, yasmin.ErrDelete)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		var out apiDeleteResponse
		if err := json.Unmarshal(body, &out); err != nil || !out.Success {
			return fmt.Errorf("api: delete %q: service did not confirm: %w", id, yasmin.ErrDelete)
		}
		return nil
	case http.StatusNotFound:
		return httpError("delete", resp.StatusCode, body, yasmin.ErrConversationNotFound)
	default:
		return httpError("delete", resp.StatusCode, body, yasmin.ErrDelete)
	}
}

// ListModels fetches the generation models the service offers.
func (c *Client) ListModels(ctx context.Context) ([]yasmin.Model, error) {
	resp, err := c.do(ctx, http.MethodGet, modelsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("api: models: %v: %w", err, yasmin.ErrFetch)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: models: HTTP %d: %v: %w", resp.StatusCode, err, yasmin.ErrFetch)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpError("models", resp.StatusCode, body, yasmin.ErrFetch)
	}
	var out apiModelList
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("api: models: malformed response: %w", yasmin.ErrFetch)
	}
	models := make([]yasmin.Model, len(out.Models))
	for i, m := range out.Models {
		models[i] = yasmin.Model{ID: m.ID, Name: m.Name}
	}
	return models, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

// httpError reports a non-2xx answer, preferring the service's own error
// text over the raw body.
func httpError(op string, status int, body []byte, sentinel error) error {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return fmt.Errorf("api: %s: %s: %w", op, e.Error, sentinel)
	}
	return fmt.Errorf("api: %s: HTTP %d: %w", op, status, sentinel)
}

func convertMessages(msgs []yasmin.Message) []apiMessage {
	out := make([]apiMessage, len(msgs))
	for i, m := range msgs {
		out[i] = apiMessage{Role: string(m.Role), Content: m.Content}
	}
	return out
}

func (ac apiConversation) toConversation() *yasmin.Conversation {
	msgs := make([]yasmin.Message, len(ac.Messages))
	for i, m := range ac.Messages {
		msgs[i] = yasmin.Message{
			Role:      yasmin.Role(m.Role),
			Content:   m.Content,
			Timestamp: parseTime(m.CreatedAt),
		}
	}
	title := ac.Title
	if title == "" {
		title = yasmin.DefaultTitle
	}
	return &yasmin.Conversation{
		ID:        ac.ID,
		Title:     title,
		State:     yasmin.StateSaved,
		Messages:  msgs,
		Confirmed: len(msgs),
		CreatedAt: parseTime(ac.CreatedAt),
		UpdatedAt: parseTime(ac.UpdatedAt),
	}
}

// parseTime accepts the service's isoformat timestamps, with or without
// a zone offset. Unparseable values become the zero time rather than an
// error; timestamps are advisory here.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
