package speech_test

import (
	"context"
	"errors"
	osexec "os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yasmin-chat/yasmin/speech"
)

func TestDetectionPrefersEspeakNG(t *testing.T) {
	t.Parallel()

	var asked []string
	s := speech.NewSynthesizer(speech.WithLookPath(func(name string) (string, error) {
		asked = append(asked, name)
		if name == "espeak-ng" {
			return "/usr/bin/espeak-ng", nil
		}
		return "", osexec.ErrNotFound
	}))
	assert.True(t, s.Available())
	assert.Equal(t, []string{"espeak-ng"}, asked)
}

func TestDetectionFallsThroughCandidates(t *testing.T) {
	t.Parallel()

	s := speech.NewSynthesizer(speech.WithLookPath(func(name string) (string, error) {
		if name == "say" {
			return "/usr/bin/say", nil
		}
		return "", osexec.ErrNotFound
	}))
	assert.True(t, s.Available())
}

func TestNoEngineMeansUnavailable(t *testing.T) {
	t.Parallel()

	s := speech.NewSynthesizer(speech.WithLookPath(func(string) (string, error) {
		return "", osexec.ErrNotFound
	}))
	assert.False(t, s.Available())

	err := s.Speak(context.Background(), "مرحبا")
	assert.ErrorIs(t, err, speech.ErrUnavailable)
}

func TestSpeakRunsEngine(t *testing.T) {
	t.Parallel()

	// sh -c 'exit 0' ignores the appended utterance text.
	s := speech.NewSynthesizer(speech.WithEngine("sh", "-c", "exit 0"))
	require.True(t, s.Available())
	assert.NoError(t, s.Speak(context.Background(), "مرحبا"))
}

func TestSpeakReportsEngineFailure(t *testing.T) {
	t.Parallel()

	s := speech.NewSynthesizer(speech.WithEngine("sh", "-c", "exit 3"))
	err := s.Speak(context.Background(), "مرحبا")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, speech.ErrUnavailable)
}

func TestSpeakEmptyTextIsNoOp(t *testing.T) {
	t.Parallel()

	s := speech.NewSynthesizer(speech.WithEngine("sh", "-c", "exit 1"))
	// Engine would fail if invoked; blank text must never reach it.
	assert.NoError(t, s.Speak(context.Background(), "   "))
}

func TestStopCancelsUtterance(t *testing.T) {
	t.Parallel()

	s := speech.NewSynthesizer(speech.WithEngine("sh", "-c", "sleep 10"))
	done := make(chan error, 1)
	go func() { done <- s.Speak(context.Background(), "مرحبا") }()

	// Give the utterance a moment to start before stopping it.
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err, "cancelled utterance is not a failure")
	case <-time.After(5 * time.Second):
		t.Fatal("Speak did not return after Stop")
	}
}

func TestNewUtteranceCancelsPrevious(t *testing.T) {
	t.Parallel()

	s := speech.NewSynthesizer(speech.WithEngine("sh", "-c", "sleep 10"))
	first := make(chan error, 1)
	go func() { first <- s.Speak(context.Background(), "الأولى") }()
	time.Sleep(100 * time.Millisecond)

	second := make(chan error, 1)
	go func() { second <- s.Speak(context.Background(), "الثانية") }()

	select {
	case err := <-first:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("first utterance did not yield to the second")
	}
	s.Stop()
	<-second
}

func TestRecognizerCapturesStdout(t *testing.T) {
	t.Parallel()

	r := speech.NewRecognizer("printf 'السلام عليكم\n'")
	require.True(t, r.Available())

	text, err := r.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "السلام عليكم", text)
}

func TestRecognizerUnconfigured(t *testing.T) {
	t.Parallel()

	r := speech.NewRecognizer("  ")
	assert.False(t, r.Available())

	_, err := r.Listen(context.Background())
	assert.ErrorIs(t, err, speech.ErrUnavailable)
}

func TestRecognizerCommandFailure(t *testing.T) {
	t.Parallel()

	r := speech.NewRecognizer("exit 7")
	_, err := r.Listen(context.Background())
	assert.Error(t, err)
}

func TestRecognizerCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	r := speech.NewRecognizer("sleep 10")
	_, err := r.Listen(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
