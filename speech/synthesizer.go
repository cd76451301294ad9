package speech

import (
	"context"
	"fmt"
	osexec "os/exec"
	"strings"
	"sync"

	"github.com/yasmin-chat/yasmin"
)

// Interface compliance check.
var _ yasmin.Synthesizer = (*Synthesizer)(nil)

// Synthesizer speaks text through an external engine process. At most
// one utterance is active: starting a new one cancels the previous.
type Synthesizer struct {
	path string
	args []string

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64 // bumps per utterance so a finished one only clears itself
}

// SynthOption configures a [Synthesizer].
type SynthOption func(*synthConfig)

type synthConfig struct {
	voice    string
	engine   string
	args     []string
	lookPath LookPathFunc
}

// WithVoice sets the voice passed to espeak-style engines.
func WithVoice(voice string) SynthOption {
	return func(c *synthConfig) { c.voice = voice }
}

// WithEngine pins the engine command and its fixed arguments instead of
// detecting one. The utterance text is appended as the final argument.
func WithEngine(path string, args ...string) SynthOption {
	return func(c *synthConfig) {
		c.engine = path
		c.args = args
	}
}

// WithLookPath sets the binary resolver. Useful for testing.
func WithLookPath(fn LookPathFunc) SynthOption {
	return func(c *synthConfig) { c.lookPath = fn }
}

// NewSynthesizer returns a synthesizer bound to the first installed
// engine, or an unavailable one when nothing is installed. The caller
// decides whether missing speech is an error; for the chat client it
// never is.
func NewSynthesizer(opts ...SynthOption) *Synthesizer {
	cfg := synthConfig{voice: DefaultVoice, lookPath: osexec.LookPath}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.engine != "" {
		return &Synthesizer{path: cfg.engine, args: cfg.args}
	}
	for _, cand := range candidates {
		path, err := cfg.lookPath(cand.name)
		if err != nil {
			continue
		}
		return &Synthesizer{path: path, args: cand.args(cfg.voice)}
	}
	return &Synthesizer{}
}

// Available reports whether an engine was found.
func (s *Synthesizer) Available() bool {
	return s.path != ""
}

// Speak voices text, blocking until the utterance finishes or the
// context is cancelled. Any in-progress utterance is cancelled first.
// A cancelled utterance is not a failure.
func (s *Synthesizer) Speak(ctx context.Context, text string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	args := append(append([]string(nil), s.args...), text)
	err := osexec.CommandContext(ctx, s.path, args...).Run()

	s.mu.Lock()
	// Only clear our own registration: a newer utterance may have
	// replaced it already.
	if s.gen == gen {
		s.cancel = nil
	}
	s.mu.Unlock()

	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("speech: %s: %w", s.path, err)
	}
	return nil
}

// Stop cancels the in-progress utterance, if any.
func (s *Synthesizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
