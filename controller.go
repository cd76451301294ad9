package yasmin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// sendFailedNote is the inline thread note shown when an exchange fails
// before the service answers.
const sendFailedNote = "عذراً، حدث خطأ أثناء الاتصال بالخادم."

// ExchangeResult reports a completed send or regenerate.
type ExchangeResult struct {
	Conversation *Conversation // snapshot after the exchange was applied
	Reply        Message
	Offline      bool // answered from a canned table, not a model
}

// Controller orchestrates round-trips to the chat service and keeps the
// session store consistent with confirmed server state. Mutations happen
// only after the service answers; the one exception is the optimistic
// user-message append, which stays visible but uncommitted when the
// exchange fails.
//
// At most one send or regenerate may be in flight at a time. Triggers
// during a pending exchange fail with ErrExchangePending and are dropped,
// not queued.
type Controller struct {
	svc      ChatService
	store    *SessionStore
	presence Presence
	offline  Responder
	synth    Synthesizer
	log      *slog.Logger

	mu    sync.RWMutex
	prefs Prefs
}

// Option configures a Controller.
type Option func(*Controller)

// WithPresence sets the reachability probe. Without one the controller
// assumes the service is online.
func WithPresence(p Presence) Option {
	return func(c *Controller) { c.presence = p }
}

// WithResponder sets the canned-reply table used while offline.
func WithResponder(r Responder) Option {
	return func(c *Controller) { c.offline = r }
}

// WithSynthesizer sets the speech output used for replies.
func WithSynthesizer(s Synthesizer) Option {
	return func(c *Controller) { c.synth = s }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithPrefs sets the initial preferences.
func WithPrefs(p Prefs) Option {
	return func(c *Controller) { c.prefs = p }
}

// NewController returns a controller driving the given service and store.
func NewController(svc ChatService, store *SessionStore, opts ...Option) *Controller {
	c := &Controller{
		svc:   svc,
		store: store,
		prefs: DefaultPrefs(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	c.log = c.log.With("component", "controller")
	return c
}

// Prefs returns the current preferences.
func (c *Controller) Prefs() Prefs {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.prefs
}

// SetPrefs replaces the current preferences.
func (c *Controller) SetPrefs(p Prefs) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefs = p
}

// Store returns the session store the controller mutates.
func (c *Controller) Store() *SessionStore {
	return c.store
}

// Online reports whether the service is reachable.
func (c *Controller) Online() bool {
	return c.presence == nil || c.presence.Online()
}

// NewChat makes a fresh unsaved conversation active and returns a
// snapshot of it.
func (c *Controller) NewChat() *Conversation {
	c.store.SetLastError("")
	return c.store.StartNew()
}

// Send posts one user message to the active conversation. The message is
// appended optimistically before the request goes out; on failure it
// stays visible with an inline error note but is not committed. While the
// service is unreachable the exchange is answered from the canned table
// without touching the network.
func (c *Controller) Send(ctx context.Context, text string) (*ExchangeResult, error) {
	if err := c.store.BeginExchange(); err != nil {
		return nil, err
	}
	defer c.store.EndExchange()

	req, err := NewChatRequest(text, c.store.ActiveID(), c.Prefs())
	if err != nil {
		return nil, err
	}
	exchange := uuid.NewString()[:8]
	log := c.log.With("exchange", exchange)

	if !c.Online() {
		return c.sendOffline(log, req)
	}

	c.store.AppendActive(NewUserMessage(req.Message))
	log.Debug("sending message",
		"conversation", orNew(req.ConversationID),
		"model", orDefault(req.Model),
		"chars", len(req.Message))

	reply, err := c.svc.SendMessage(ctx, req)
	if err != nil {
		log.Error("send failed", "error", err)
		c.store.AppendActive(NewErrorMessage(sendFailedNote))
		c.store.SetLastError(err.Error())
		return nil, err
	}
	return c.applyReply(log, req, reply)
}

// sendOffline answers a send from the local phrase table. The thread gets
// both messages, nothing is committed, and nothing is spoken.
func (c *Controller) sendOffline(log *slog.Logger, req ChatRequest) (*ExchangeResult, error) {
	if c.offline == nil {
		c.store.SetLastError(ErrOffline.Error())
		return nil, fmt.Errorf("send: %w", ErrOffline)
	}
	log.Debug("answering from offline table", "chars", len(req.Message))
	c.store.AppendActive(NewUserMessage(req.Message))
	m := NewAssistantMessage(c.offline.Reply(req.Message))
	conv := c.store.AppendActive(m)
	return &ExchangeResult{Conversation: conv, Reply: m, Offline: true}, nil
}

// applyReply folds a confirmed service answer into the store: id adoption
// for a first exchange, title derivation, commit, and speech.
func (c *Controller) applyReply(log *slog.Logger, req ChatRequest, reply *ChatReply) (*ExchangeResult, error) {
	switch {
	case req.ConversationID == "" && reply.ConversationID != "":
		if err := c.store.SaveActive(reply.ConversationID); err != nil {
			return nil, err
		}
		c.store.SetActiveTitle(DeriveTitle(req.Message))
		log.Info("conversation saved", "conversation", reply.ConversationID)
	case reply.ConversationID != "" && reply.ConversationID != req.ConversationID:
		// The service no longer recognized the id it was sent and
		// answered from a replacement thread.
		log.Warn("service re-keyed conversation",
			"old", req.ConversationID, "new", reply.ConversationID)
		if err := c.store.RekeyActive(reply.ConversationID); err != nil {
			return nil, err
		}
	}

	m := NewAssistantMessage(reply.Reply)
	conv := c.store.AppendActive(m)
	c.store.CommitActive()
	c.store.SetLastError("")
	if reply.Offline {
		c.store.SetLastError("الخدمة تجيب من الردود الجاهزة")
	} else {
		c.speak(reply.Reply)
	}
	return &ExchangeResult{Conversation: conv, Reply: m, Offline: reply.Offline}, nil
}

// Regenerate requests a fresh completion of the active conversation's
// last exchange and replaces the trailing assistant reply in place. The
// original reply is never touched before the service confirms.
func (c *Controller) Regenerate(ctx context.Context) (*ExchangeResult, error) {
	if err := c.store.BeginExchange(); err != nil {
		return nil, err
	}
	defer c.store.EndExchange()

	if !c.Online() {
		return nil, fmt.Errorf("regenerate: %w", ErrOffline)
	}
	req, err := NewRegenerateRequest(c.store.Active(), c.Prefs())
	if err != nil {
		return nil, err
	}
	exchange := uuid.NewString()[:8]
	log := c.log.With("exchange", exchange)
	log.Debug("regenerating reply",
		"conversation", req.ConversationID,
		"window", len(req.Messages))

	reply, err := c.svc.Regenerate(ctx, req)
	if err != nil {
		log.Error("regenerate failed", "error", err)
		c.store.SetLastError(err.Error())
		return nil, err
	}

	m := NewAssistantMessage(reply.Reply)
	// The replacement lands inside the confirmed prefix, so the
	// watermark is already right; committing here would sweep in
	// messages the service never received.
	if err := c.store.ReplaceLastAssistant(req.ConversationID, m); err != nil {
		return nil, err
	}
	c.store.SetLastError("")
	if !reply.Offline {
		c.speak(reply.Reply)
	}
	conv, err := c.store.Lookup(req.ConversationID)
	if err != nil {
		return nil, err
	}
	return &ExchangeResult{Conversation: conv, Reply: m, Offline: reply.Offline}, nil
}

// Load fetches a conversation's full history, caches it, and makes it
// active. When the service reports the id unknown, the stale entry is
// evicted and a fresh unsaved conversation becomes active instead; the
// caller still sees ErrConversationNotFound.
func (c *Controller) Load(ctx context.Context, id string) (*Conversation, error) {
	conv, err := c.svc.GetConversation(ctx, id)
	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			c.log.Warn("conversation gone, starting fresh", "conversation", id)
			_ = c.store.Remove(id)
			c.store.StartNew()
			c.store.SetLastError("")
			return nil, err
		}
		c.log.Error("load failed", "conversation", id, "error", err)
		c.store.SetLastError(err.Error())
		return nil, err
	}
	if err := c.store.Upsert(conv); err != nil {
		return nil, err
	}
	if _, err := c.store.SetActive(conv.ID); err != nil {
		return nil, err
	}
	c.store.SetLastError("")
	return conv, nil
}

// Refresh fetches the conversation list and replaces the store's
// summaries. Failures are non-fatal: the previous list is kept and the
// error is surfaced for the status line.
func (c *Controller) Refresh(ctx context.Context) ([]Summary, error) {
	list, err := c.svc.ListConversations(ctx)
	if err != nil {
		c.log.Error("refresh failed", "error", err)
		c.store.SetLastError(err.Error())
		return nil, err
	}
	c.store.SetSummaries(list)
	return list, nil
}

// Delete removes a conversation on the service, then evicts it locally.
// The cache is left untouched when the service refuses, so the entry
// stays visible for retry. Deleting the active conversation transitions
// to a fresh unsaved thread.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete unsaved conversation: %w", ErrValidation)
	}
	if err := c.svc.DeleteConversation(ctx, id); err != nil {
		// A missing id means the service already forgot it; finish the
		// eviction locally instead of leaving an undeletable entry.
		if !errors.Is(err, ErrConversationNotFound) {
			c.log.Error("delete failed", "conversation", id, "error", err)
			c.store.SetLastError(err.Error())
			return err
		}
		c.log.Warn("conversation already gone", "conversation", id)
	}
	_ = c.store.Delete(id)
	c.store.SetLastError("")
	c.log.Info("conversation deleted", "conversation", id)
	return nil
}

// Models fetches the generation models the service offers.
func (c *Controller) Models(ctx context.Context) ([]Model, error) {
	models, err := c.svc.ListModels(ctx)
	if err != nil {
		c.log.Error("model listing failed", "error", err)
		return nil, err
	}
	return models, nil
}

// speak voices a reply in the background when speech is enabled. Replies
// from a canned table never reach here.
func (c *Controller) speak(text string) {
	if c.synth == nil || !c.Prefs().Speech || !c.synth.Available() {
		return
	}
	go func() {
		if err := c.synth.Speak(context.Background(), text); err != nil {
			c.log.Debug("speech failed", "error", err)
		}
	}()
}

func orNew(id string) string {
	if id == "" {
		return "new"
	}
	return id
}

func orDefault(model string) string {
	if model == "" {
		return "default"
	}
	return model
}
