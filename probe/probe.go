// Package probe watches whether the chat service is reachable.
//
// The monitor dials the service address on a fixed interval and reports
// transitions on a channel. There is no retry or backoff machinery:
// recovery is event-driven, interested parties react to the transition.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/yasmin-chat/yasmin"
)

// Interface compliance check.
var _ yasmin.Presence = (*Monitor)(nil)

const (
	defaultInterval = 15 * time.Second
	defaultTimeout  = 3 * time.Second
)

// Event is one reachability transition.
type Event struct {
	Online bool
	At     time.Time
}

// DialFunc opens a probe connection. The default is a plain TCP dial.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Monitor implements [yasmin.Presence] by dialing the service address.
// It starts optimistic: the state is online until a probe fails.
type Monitor struct {
	target   string
	interval time.Duration
	timeout  time.Duration
	dial     DialFunc
	log      *slog.Logger

	mu     sync.RWMutex
	online bool

	events chan Event
}

// Option configures a [Monitor].
type Option func(*Monitor)

// WithInterval sets the probe interval.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) { m.interval = d }
}

// WithTimeout sets the per-probe dial timeout.
func WithTimeout(d time.Duration) Option {
	return func(m *Monitor) { m.timeout = d }
}

// WithDialer sets the dial function. Useful for testing.
func WithDialer(dial DialFunc) Option {
	return func(m *Monitor) { m.dial = dial }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) { m.log = l }
}

// New creates a monitor probing the given host:port address.
func New(target string, opts ...Option) *Monitor {
	m := &Monitor{
		target:   target,
		interval: defaultInterval,
		timeout:  defaultTimeout,
		online:   true,
		events:   make(chan Event, 8),
	}
	for _, o := range opts {
		o(m)
	}
	if m.dial == nil {
		d := &net.Dialer{}
		m.dial = d.DialContext
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	m.log = m.log.With("component", "probe", "target", target)
	return m
}

// TargetFromURL derives the probe address from a service base URL,
// filling in the scheme's default port when the URL has none.
func TargetFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("probe: parse %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("probe: %q has no host: %w", raw, yasmin.ErrValidation)
	}
	if u.Port() != "" {
		return u.Host, nil
	}
	if u.Scheme == "https" {
		return u.Host + ":443", nil
	}
	return u.Host + ":80", nil
}

// Online reports the state of the last probe.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Events returns the transition channel. Events are dropped rather than
// blocking when nobody is draining it.
func (m *Monitor) Events() <-chan Event {
	return m.events
}

// Check probes once and returns the fresh state, emitting a transition
// event when the state flipped.
func (m *Monitor) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	conn, err := m.dial(ctx, "tcp", m.target)
	online := err == nil
	if conn != nil {
		_ = conn.Close()
	}
	m.setOnline(online)
	return online
}

// Run probes on the configured interval until ctx is cancelled. An
// immediate probe runs first so callers see a real state right away.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

func (m *Monitor) setOnline(online bool) {
	m.mu.Lock()
	changed := m.online != online
	m.online = online
	m.mu.Unlock()
	if !changed {
		return
	}
	if online {
		m.log.Info("service reachable again")
	} else {
		m.log.Warn("service unreachable")
	}
	select {
	case m.events <- Event{Online: online, At: time.Now()}:
	default:
	}
}
