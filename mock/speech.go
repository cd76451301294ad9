package mock

import "context"

// Synthesizer is a test double for yasmin.Synthesizer.
// Set the function fields for the methods you need.
type Synthesizer struct {
	SpeakFn     func(ctx context.Context, text string) error
	StopFn      func()
	AvailableFn func() bool
}

// Speak delegates to SpeakFn.
func (s *Synthesizer) Speak(ctx context.Context, text string) error {
	return s.SpeakFn(ctx, text)
}

// Stop delegates to StopFn.
func (s *Synthesizer) Stop() {
	s.StopFn()
}

// Available delegates to AvailableFn.
func (s *Synthesizer) Available() bool {
	return s.AvailableFn()
}

// Recognizer is a test double for yasmin.Recognizer.
// Set the function fields for the methods you need.
type Recognizer struct {
	ListenFn    func(ctx context.Context) (string, error)
	AvailableFn func() bool
}

// Listen delegates to ListenFn.
func (r *Recognizer) Listen(ctx context.Context) (string, error) {
	return r.ListenFn(ctx)
}

// Available delegates to AvailableFn.
func (r *Recognizer) Available() bool {
	return r.AvailableFn()
}
