package yasmin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yasmin-chat/yasmin"
)

func TestThemeByName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, yasmin.DarkTheme(), yasmin.ThemeByName("dark"))
	assert.Equal(t, yasmin.LightTheme(), yasmin.ThemeByName("light"))
	assert.Equal(t, yasmin.DarkTheme(), yasmin.ThemeByName("nope"))
}

func TestThemes_DifferWhereItMatters(t *testing.T) {
	t.Parallel()
	assert.NotEqual(t, yasmin.DarkTheme().CodeBg, yasmin.LightTheme().CodeBg)
}
