package yasmin

import "fmt"

// Prefs are the client-side settings that survive restarts: appearance,
// speech toggle, generation parameters, and the conversation to reopen.
type Prefs struct {
	Theme            string
	Speech           bool
	Model            string // empty = service default
	Temperature      float64
	MaxTokens        int
	LastConversation string
}

// DefaultPrefs returns the settings a fresh install starts with.
func DefaultPrefs() Prefs {
	return Prefs{
		Theme:       "dark",
		Temperature: 0.7,
		MaxTokens:   512,
	}
}

// Validate checks that the settings are usable.
func (p Prefs) Validate() error {
	switch p.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("unknown theme %q: %w", p.Theme, ErrValidation)
	}
	if p.Temperature < 0 || p.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2], got %g: %w", p.Temperature, ErrValidation)
	}
	if p.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d: %w", p.MaxTokens, ErrValidation)
	}
	return nil
}
