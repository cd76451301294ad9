// Package bubbletea provides the Bubble Tea TUI for the yasmin chat
// client.
//
// The model renders the active conversation as message blocks, drives
// the controller from key events, and keeps the status line honest about
// reachability. Send and regenerate run on command goroutines; the
// controller's own in-flight guard backs the UI's running state, so a
// second trigger while one is pending is dropped.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yasmin-chat/yasmin"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits. The context is used for graceful shutdown — when
// cancelled, the program quits and in-flight service calls are
// abandoned with it.
func Run(ctx context.Context, m Model) error {
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// ExchangeDoneMsg reports a completed send or regenerate.
type ExchangeDoneMsg struct {
	Result *yasmin.ExchangeResult
	Err    error
}

// ConversationLoadedMsg reports a completed conversation load.
type ConversationLoadedMsg struct {
	Conversation *yasmin.Conversation
	Err          error
}

// SummariesMsg reports a completed conversation-list refresh.
type SummariesMsg struct {
	List []yasmin.Summary
	Err  error
}

// DeleteDoneMsg reports a completed delete.
type DeleteDoneMsg struct {
	ID  string
	Err error
}

// ExportDoneMsg reports a completed transcript export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// TranscriptMsg reports a completed voice capture.
type TranscriptMsg struct {
	Text string
	Err  error
}

// PresenceMsg carries a periodic reachability reading for the status
// line.
type PresenceMsg struct {
	Online bool
}
