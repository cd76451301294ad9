package yasmin

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg      int // User message accent
	AssistantMsg int // Assistant message accent
	Error        int // Inline error messages
	Offline      int // Offline badge and canned replies
	Success      int // Online indicator
	Muted        int // Status bar, placeholders, timestamps
	CodeBg       int // Code block background
	Accent       int // Titles, headings, links
}

// DarkTheme returns the ANSI mapping tuned for dark terminals. It is the
// default.
func DarkTheme() Theme {
	return Theme{
		UserMsg:      4,
		AssistantMsg: 6,
		Error:        1,
		Offline:      3,
		Success:      2,
		Muted:        8,
		CodeBg:       0,
		Accent:       5,
	}
}

// LightTheme returns the ANSI mapping tuned for light terminals. ANSI
// indices defer to the terminal palette, so only the slots that read as
// backgrounds change.
func LightTheme() Theme {
	t := DarkTheme()
	t.CodeBg = 7
	return t
}

// ThemeByName returns the named theme, defaulting to dark for unknown
// names.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}
