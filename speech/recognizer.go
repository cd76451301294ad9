package speech

import (
	"context"
	"fmt"
	osexec "os/exec"
	"strings"

	"github.com/yasmin-chat/yasmin"
)

// Interface compliance check.
var _ yasmin.Recognizer = (*Recognizer)(nil)

// Recognizer captures one utterance by running a user-configured shell
// command and reading the transcript from its stdout. There is no
// portable speech-to-text engine to detect, so input is opt-in: an empty
// command means the capability is off.
type Recognizer struct {
	command string
}

// NewRecognizer returns a recognizer running the given capture command
// through the shell. An empty command yields an unavailable recognizer.
func NewRecognizer(command string) *Recognizer {
	return &Recognizer{command: strings.TrimSpace(command)}
}

// Available reports whether a capture command is configured.
func (r *Recognizer) Available() bool {
	return r.command != ""
}

// Listen runs the capture command and returns its trimmed stdout,
// blocking until the command exits or the context is cancelled.
func (r *Recognizer) Listen(ctx context.Context) (string, error) {
	if !r.Available() {
		return "", ErrUnavailable
	}
	out, err := osexec.CommandContext(ctx, "sh", "-c", r.command).Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("speech: capture cancelled: %w", ctx.Err())
		}
		return "", fmt.Errorf("speech: capture command: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
