package probe_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasmin-chat/yasmin"
	"github.com/yasmin-chat/yasmin/probe"
)

func dialOK(ctx context.Context, network, addr string) (net.Conn, error) {
	c, _ := net.Pipe()
	return c, nil
}

func dialFail(ctx context.Context, network, addr string) (net.Conn, error) {
	return nil, errors.New("connection refused")
}

func TestTargetFromURL_ExplicitPort(t *testing.T) {
	t.Parallel()
	target, err := probe.TargetFromURL("http://localhost:5000")
	require.NoError(t, err)
	assert.Equal(t, "localhost:5000", target)
}

func TestTargetFromURL_DefaultPorts(t *testing.T) {
	t.Parallel()
	target, err := probe.TargetFromURL("http://yasmin.example")
	require.NoError(t, err)
	assert.Equal(t, "yasmin.example:80", target)

	target, err = probe.TargetFromURL("https://yasmin.example")
	require.NoError(t, err)
	assert.Equal(t, "yasmin.example:443", target)
}

func TestTargetFromURL_NoHost(t *testing.T) {
	t.Parallel()
	_, err := probe.TargetFromURL("not-a-url")
	require.Error(t, err)
	assert.ErrorIs(t, err, yasmin.ErrValidation)
}

func TestMonitor_StartsOptimistic(t *testing.T) {
	t.Parallel()
	m := probe.New("localhost:5000", probe.WithDialer(dialFail))
	assert.True(t, m.Online())
}

func TestMonitor_CheckFlipsOffline(t *testing.T) {
	t.Parallel()
	m := probe.New("localhost:5000", probe.WithDialer(dialFail))
	assert.False(t, m.Check(context.Background()))
	assert.False(t, m.Online())
}

func TestMonitor_CheckRecovers(t *testing.T) {
	t.Parallel()
	dial := dialFail
	m := probe.New("localhost:5000", probe.WithDialer(func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dial(ctx, network, addr)
	}))

	require.False(t, m.Check(context.Background()))

	dial = dialOK
	assert.True(t, m.Check(context.Background()))
	assert.True(t, m.Online())
}

func TestMonitor_TransitionEmitsEvent(t *testing.T) {
	t.Parallel()
	m := probe.New("localhost:5000", probe.WithDialer(dialFail))
	m.Check(context.Background())

	select {
	case ev := <-m.Events():
		assert.False(t, ev.Online)
		assert.False(t, ev.At.IsZero())
	default:
		t.Fatal("expected a transition event")
	}
}

func TestMonitor_NoEventWithoutTransition(t *testing.T) {
	t.Parallel()
	m := probe.New("localhost:5000", probe.WithDialer(dialOK))
	m.Check(context.Background())
	m.Check(context.Background())

	select {
	case ev := <-m.Events():
		t.Fatalf("unexpected event: %+v", ev)
	default:
	}
}

func TestMonitor_EventChannelNeverBlocks(t *testing.T) {
	t.Parallel()
	dial := dialOK
	m := probe.New("localhost:5000", probe.WithDialer(func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dial(ctx, network, addr)
	}))

	// Flip state more times than the channel buffers without draining.
	for range 16 {
		dial = dialFail
		m.Check(context.Background())
		dial = dialOK
		m.Check(context.Background())
	}
	assert.True(t, m.Online())
}
