package yasmin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yasmin-chat/yasmin"
)

func TestNewChatRequest(t *testing.T) {
	t.Parallel()
	t.Run("trims input and carries parameters", func(t *testing.T) {
		t.Parallel()
		p := yasmin.DefaultPrefs()
		p.Model = "gemini-pro"
		req, err := yasmin.NewChatRequest("  مرحبا  ", "c1", p)
		require.NoError(t, err)
		assert.Equal(t, "مرحبا", req.Message)
		assert.Equal(t, "c1", req.ConversationID)
		assert.Equal(t, "gemini-pro", req.Model)
		assert.Equal(t, 512, req.MaxTokens)
		require.NotNil(t, req.Temperature)
		assert.Equal(t, 0.7, *req.Temperature)
	})

	t.Run("whitespace only is a no-op", func(t *testing.T) {
		t.Parallel()
		_, err := yasmin.NewChatRequest("   \n\t ", "", yasmin.DefaultPrefs())
		assert.ErrorIs(t, err, yasmin.ErrEmptyMessage)
	})
}

func TestChatRequest_Validate(t *testing.T) {
	t.Parallel()
	temp := func(v float64) *float64 { return &v }

	req := yasmin.ChatRequest{Message: "مرحبا", Temperature: temp(0.7), MaxTokens: 512}
	assert.NoError(t, req.Validate())

	req.Temperature = temp(2.5)
	assert.ErrorIs(t, req.Validate(), yasmin.ErrValidation)

	req.Temperature = temp(0.7)
	req.MaxTokens = -1
	assert.ErrorIs(t, req.Validate(), yasmin.ErrValidation)

	req.MaxTokens = 512
	req.Message = "  "
	assert.ErrorIs(t, req.Validate(), yasmin.ErrValidation)
}

func TestNewRegenerateRequest(t *testing.T) {
	t.Parallel()
	t.Run("window excludes the trailing assistant reply", func(t *testing.T) {
		t.Parallel()
		c := savedConversation(t, "c1",
			yasmin.NewUserMessage("سؤال أول"),
			yasmin.NewAssistantMessage("جواب أول"),
			yasmin.NewUserMessage("سؤال ثان"),
			yasmin.NewAssistantMessage("جواب ثان"),
		)
		req, err := yasmin.NewRegenerateRequest(c, yasmin.DefaultPrefs())
		require.NoError(t, err)
		assert.Equal(t, "c1", req.ConversationID)
		require.Len(t, req.Messages, 3)
		assert.Equal(t, "سؤال أول", req.Messages[0].Content)
		assert.Equal(t, "جواب أول", req.Messages[1].Content)
		assert.Equal(t, "سؤال ثان", req.Messages[2].Content)
	})

	t.Run("window drops inline error notes", func(t *testing.T) {
		t.Parallel()
		c := savedConversation(t, "c1",
			yasmin.NewUserMessage("سؤال"),
			yasmin.NewErrorMessage("تعذر الاتصال"),
			yasmin.NewAssistantMessage("جواب"),
		)
		req, err := yasmin.NewRegenerateRequest(c, yasmin.DefaultPrefs())
		require.NoError(t, err)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, yasmin.RoleUser, req.Messages[0].Role)
	})

	t.Run("window carries confirmed history only", func(t *testing.T) {
		t.Parallel()
		c := savedConversation(t, "c1",
			yasmin.NewUserMessage("سؤال أول"),
			yasmin.NewAssistantMessage("جواب أول"),
		)
		// An offline exchange leaves a pair past the watermark.
		c.Append(yasmin.NewUserMessage("سؤال لم يصل"))
		c.Append(yasmin.NewAssistantMessage("رد جاهز"))

		req, err := yasmin.NewRegenerateRequest(c, yasmin.DefaultPrefs())
		require.NoError(t, err)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "سؤال أول", req.Messages[0].Content)
	})

	t.Run("rejects thread whose only assistant reply is unconfirmed", func(t *testing.T) {
		t.Parallel()
		c := savedConversation(t, "c1", yasmin.NewUserMessage("سؤال"))
		c.Append(yasmin.NewAssistantMessage("رد جاهز"))
		_, err := yasmin.NewRegenerateRequest(c, yasmin.DefaultPrefs())
		assert.ErrorIs(t, err, yasmin.ErrNoAssistantReply)
	})

	t.Run("rejects unsaved conversation", func(t *testing.T) {
		t.Parallel()
		c := yasmin.NewConversation()
		c.Append(yasmin.NewUserMessage("سؤال"))
		c.Append(yasmin.NewAssistantMessage("جواب"))
		_, err := yasmin.NewRegenerateRequest(c, yasmin.DefaultPrefs())
		assert.ErrorIs(t, err, yasmin.ErrValidation)
	})

	t.Run("rejects thread without trailing assistant", func(t *testing.T) {
		t.Parallel()
		c := savedConversation(t, "c1", yasmin.NewUserMessage("سؤال"))
		_, err := yasmin.NewRegenerateRequest(c, yasmin.DefaultPrefs())
		assert.ErrorIs(t, err, yasmin.ErrNoAssistantReply)
	})

	t.Run("rejects thread without prior user message", func(t *testing.T) {
		t.Parallel()
		c := savedConversation(t, "c1", yasmin.NewAssistantMessage("جواب"))
		_, err := yasmin.NewRegenerateRequest(c, yasmin.DefaultPrefs())
		assert.ErrorIs(t, err, yasmin.ErrNoPriorExchange)
	})
}

func TestPrefs_Validate(t *testing.T) {
	t.Parallel()
	p := yasmin.DefaultPrefs()
	assert.NoError(t, p.Validate())

	p.Theme = "solarized"
	assert.ErrorIs(t, p.Validate(), yasmin.ErrValidation)

	p = yasmin.DefaultPrefs()
	p.Temperature = -0.1
	assert.ErrorIs(t, p.Validate(), yasmin.ErrValidation)

	p = yasmin.DefaultPrefs()
	p.MaxTokens = -5
	assert.ErrorIs(t, p.Validate(), yasmin.ErrValidation)
}
