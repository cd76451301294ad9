package goldmark_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/yasmin-chat/yasmin"
	"github.com/yasmin-chat/yasmin/goldmark"
)

func stripANSI(s string) string {
	// Matches SGR, cursor movement, and other CSI sequences.
	re := regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	return re.ReplaceAllString(s, "")
}

// leftPadded reports whether the first non-blank line starts with
// padding, i.e. the block was pushed toward the right edge.
func leftPadded(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return strings.HasPrefix(line, " ")
	}
	return false
}

func TestMain(m *testing.M) {
	// Force ANSI color output so styled elements (headings, links) produce
	// visible escape codes that we can assert against.
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	t.Parallel()

	theme := yasmin.DarkTheme()

	t.Run("empty input returns empty string", func(t *testing.T) {
		t.Parallel()
		result := goldmark.Render("", 80, theme)
		assert.Equal(t, "", result)
	})

	t.Run("latin paragraph stays left-aligned", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(goldmark.Render("hello world", 40, theme))
		assert.Contains(t, result, "hello world")
		assert.False(t, leftPadded(result))
	})

	t.Run("arabic paragraph is right-aligned", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(goldmark.Render("مرحباً بك في ياسمين", 40, theme))
		assert.Contains(t, result, "مرحباً بك في ياسمين")
		assert.True(t, leftPadded(result))
	})

	t.Run("each paragraph picks its own direction", func(t *testing.T) {
		t.Parallel()
		src := "هذه فقرة عربية\n\nand this one is English"
		result := stripANSI(goldmark.Render(src, 40, theme))
		lines := strings.Split(result, "\n")
		assert.True(t, strings.HasPrefix(lines[0], " "), "arabic line should be padded left: %q", lines[0])
		last := lines[len(lines)-1]
		assert.True(t, strings.HasPrefix(last, "and"), "english line should start at column 0: %q", last)
	})

	t.Run("bold arabic keeps its direction", func(t *testing.T) {
		t.Parallel()
		result := goldmark.Render("**نص مهم**", 40, theme)
		assert.Contains(t, stripANSI(result), "نص مهم")
		assert.True(t, leftPadded(stripANSI(result)))
	})

	t.Run("italic text", func(t *testing.T) {
		t.Parallel()
		result := goldmark.Render("*italic*", 80, theme)
		assert.Contains(t, stripANSI(result), "italic")
	})

	t.Run("inline code", func(t *testing.T) {
		t.Parallel()
		result := goldmark.Render("`code`", 80, theme)
		assert.Contains(t, stripANSI(result), "code")
	})

	t.Run("arabic heading renders right-aligned with distinct styling", func(t *testing.T) {
		t.Parallel()
		heading := goldmark.Render("# الخلاصة", 40, theme)
		paragraph := goldmark.Render("الخلاصة", 40, theme)
		assert.Contains(t, stripANSI(heading), "الخلاصة")
		assert.True(t, leftPadded(stripANSI(heading)))
		assert.NotEqual(t, heading, paragraph)
	})

	t.Run("fenced code block preserves content without reflow", func(t *testing.T) {
		t.Parallel()
		src := "```go\nfmt.Println(\"hello world\")\n```"
		result := goldmark.Render(src, 20, theme)
		assert.Contains(t, stripANSI(result), `fmt.Println("hello world")`)
	})

	t.Run("code inside an arabic reply stays at the left edge", func(t *testing.T) {
		t.Parallel()
		src := "جرب هذا الأمر:\n\n```\nls -la\n```"
		result := stripANSI(goldmark.Render(src, 40, theme))
		var codeLine string
		for _, line := range strings.Split(result, "\n") {
			if strings.Contains(line, "ls -la") {
				codeLine = line
			}
		}
		assert.True(t, strings.HasPrefix(codeLine, "│"), "code gutter should start at column 0: %q", codeLine)
	})

	t.Run("fenced code block shows language label", func(t *testing.T) {
		t.Parallel()
		src := "```python\nprint('hi')\n```"
		result := goldmark.Render(src, 80, theme)
		assert.Contains(t, stripANSI(result), "python")
		assert.Contains(t, stripANSI(result), "print('hi')")
	})

	t.Run("arabic bullet list keeps markers and pushes text right", func(t *testing.T) {
		t.Parallel()
		src := "- العنصر الأول\n- العنصر الثاني"
		result := stripANSI(goldmark.Render(src, 40, theme))
		lines := strings.Split(strings.TrimRight(result, "\n"), "\n")
		for _, line := range lines {
			assert.True(t, strings.HasPrefix(line, "- "), "marker column survives: %q", line)
			assert.True(t, strings.HasPrefix(strings.TrimPrefix(line, "- "), " "),
				"item text should be padded toward the right edge: %q", line)
		}
		assert.Contains(t, result, "العنصر الأول")
		assert.Contains(t, result, "العنصر الثاني")
	})

	t.Run("ordered list", func(t *testing.T) {
		t.Parallel()
		src := "1. first\n2. second"
		result := goldmark.Render(src, 80, theme)
		assert.Contains(t, stripANSI(result), "first")
		assert.Contains(t, stripANSI(result), "second")
	})

	t.Run("link shows text and URL", func(t *testing.T) {
		t.Parallel()
		result := goldmark.Render("[click](https://example.com)", 80, theme)
		assert.Contains(t, stripANSI(result), "click")
		assert.Contains(t, stripANSI(result), "example.com")
	})

	t.Run("arabic paragraph wraps to width and stays right-aligned", func(t *testing.T) {
		t.Parallel()
		long := "هذه جملة طويلة جداً تتحدث عن أشياء كثيرة ومتنوعة حتى تلتف على عدة أسطر متتالية"
		result := stripANSI(goldmark.Render(long, 30, theme))
		lines := strings.Split(result, "\n")
		assert.Greater(t, len(lines), 1)
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			assert.False(t, strings.HasSuffix(line, " "), "wrapped line should be flush right: %q", line)
		}
	})

	t.Run("nested list", func(t *testing.T) {
		t.Parallel()
		src := "- outer\n  - inner one\n  - inner two"
		result := goldmark.Render(src, 80, theme)
		assert.Contains(t, stripANSI(result), "outer")
		assert.Contains(t, stripANSI(result), "inner one")
		assert.Contains(t, stripANSI(result), "inner two")
	})

	t.Run("list item continuation lines are indented", func(t *testing.T) {
		t.Parallel()
		src := "- this is a very long list item that should wrap and have continuation lines properly indented"
		result := goldmark.Render(src, 30, theme)
		lines := strings.Split(stripANSI(result), "\n")
		assert.True(t, strings.HasPrefix(lines[0], "- "))
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				assert.True(t, strings.HasPrefix(line, "  "), "continuation line should be indented: %q", line)
			}
		}
	})

	t.Run("indented code block", func(t *testing.T) {
		t.Parallel()
		src := "paragraph\n\n    indented code\n    more code"
		result := goldmark.Render(src, 80, theme)
		assert.Contains(t, stripANSI(result), "indented code")
		assert.Contains(t, stripANSI(result), "more code")
	})

	t.Run("thematic break draws a full-width rule", func(t *testing.T) {
		t.Parallel()
		src := "above\n\n---\n\nbelow"
		result := stripANSI(goldmark.Render(src, 20, theme))
		assert.Contains(t, result, strings.Repeat("─", 20))
		assert.Contains(t, result, "above")
		assert.Contains(t, result, "below")
	})

	t.Run("width zero defaults to 80", func(t *testing.T) {
		t.Parallel()
		result := goldmark.Render("hello world", 0, theme)
		assert.Contains(t, stripANSI(result), "hello world")
	})

	t.Run("light theme renders same content", func(t *testing.T) {
		t.Parallel()
		result := goldmark.Render("**مرحبا**", 80, yasmin.LightTheme())
		assert.Contains(t, stripANSI(result), "مرحبا")
	})
}
