package bubbletea

import "context"

// WithContext gives the model a program context, the way Run does.
func WithContext(m Model, ctx context.Context) Model {
	m.ctx = ctx
	return m
}

// SetRunning is a test helper that puts the model in a running state.
func SetRunning(m Model) Model {
	m.running = true
	return m
}

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// StatusLine exports statusLine for testing.
func StatusLine(m Model) string {
	return m.statusLine()
}

// PickerVisible reports whether the conversation picker overlay is open.
func PickerVisible(m Model) bool {
	return m.picker.visible
}
