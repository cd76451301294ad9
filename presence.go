package yasmin

import "context"

// Presence reports whether the chat service is reachable. Implementations
// watch for transitions; the controller only ever needs the current
// answer, so recovery is event-driven with no retry machinery here.
type Presence interface {
	Online() bool
}

// Responder selects the canned reply for a message while the service is
// unreachable. It always answers: unmatched input gets the default
// apology.
type Responder interface {
	Reply(text string) string
}

// Synthesizer speaks a reply aloud. Speak blocks until the utterance
// finishes or the context is cancelled. Implementations keep at most one
// utterance active: starting a new one cancels the previous.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
	Stop()
	Available() bool
}

// Recognizer captures one spoken utterance and returns its transcript.
// Listen blocks until the capture completes or the context is cancelled.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
	Available() bool
}
