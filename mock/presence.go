package mock

// Presence is a test double for yasmin.Presence.
// Set OnlineFn before calling Online.
type Presence struct {
	OnlineFn func() bool
}

// Online delegates to OnlineFn.
func (p *Presence) Online() bool {
	return p.OnlineFn()
}

// Responder is a test double for yasmin.Responder.
// Set ReplyFn before calling Reply.
type Responder struct {
	ReplyFn func(text string) string
}

// Reply delegates to ReplyFn.
func (r *Responder) Reply(text string) string {
	return r.ReplyFn(text)
}
