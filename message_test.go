package yasmin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yasmin-chat/yasmin"
)

func TestRole_Valid(t *testing.T) {
	t.Parallel()
	assert.True(t, yasmin.RoleUser.Valid())
	assert.True(t, yasmin.RoleAssistant.Valid())
	assert.True(t, yasmin.RoleError.Valid())
	assert.False(t, yasmin.Role("system").Valid())
}

func TestMessage_Constructors(t *testing.T) {
	t.Parallel()
	u := yasmin.NewUserMessage("مرحبا")
	assert.Equal(t, yasmin.RoleUser, u.Role)
	assert.False(t, u.Timestamp.IsZero())

	a := yasmin.NewAssistantMessage("أهلاً")
	assert.Equal(t, yasmin.RoleAssistant, a.Role)

	e := yasmin.NewErrorMessage("تعذر الاتصال")
	assert.Equal(t, yasmin.RoleError, e.Role)
}

func TestMessage_Preview(t *testing.T) {
	t.Parallel()
	t.Run("short content passes through", func(t *testing.T) {
		t.Parallel()
		m := yasmin.Message{Content: "  مرحبا  "}
		assert.Equal(t, "مرحبا", m.Preview(10))
	})

	t.Run("long content truncates by grapheme", func(t *testing.T) {
		t.Parallel()
		m := yasmin.Message{Content: "abcdefgh"}
		assert.Equal(t, "abcde…", m.Preview(5))
	})

	t.Run("zero width yields nothing", func(t *testing.T) {
		t.Parallel()
		m := yasmin.Message{Content: "abc"}
		assert.Empty(t, m.Preview(0))
	})
}
