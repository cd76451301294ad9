// Package speech binds the optional speech capabilities to installed
// command-line engines.
//
// Output goes through a text-to-speech program found on PATH (espeak-ng,
// espeak, or say), input through a user-configured capture command whose
// stdout is the transcript. Capability probing is a binary lookup: no
// engine installed means the capability reports unavailable and the rest
// of the client carries on silently.
package speech

import "errors"

// ErrUnavailable is returned when a speech operation is attempted with
// no backing engine. Callers should check Available first; the UI keeps
// the triggering controls disabled when it reports false.
var ErrUnavailable = errors.New("speech: no engine available")

// DefaultVoice is the voice handed to espeak-style engines. The client
// is Arabic-first, so Arabic is what an unconfigured install speaks.
const DefaultVoice = "ar"

// LookPathFunc resolves an engine binary. The default is exec.LookPath.
type LookPathFunc func(name string) (string, error)

// candidate is one known engine and the fixed arguments it takes before
// the text.
type candidate struct {
	name string
	args func(voice string) []string
}

// candidates in preference order. espeak-ng and espeak take a voice
// flag; macOS say picks the voice from the text's script on its own.
var candidates = []candidate{
	{"espeak-ng", func(voice string) []string { return []string{"-v", voice} }},
	{"espeak", func(voice string) []string { return []string{"-v", voice} }},
	{"say", func(string) []string { return nil }},
}
