package listener

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/momentics/hioload-ws/api"
	"github.com/momentics/hioload-ws/fake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_AcceptsAndForwardsConnections(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ep := api.BoundEndpoint{DisplayAddress: ln.Addr().String(), Listener: ln, Scheme: api.SchemeHTTP}
	l := New(ep, fake.NewLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan Accepted, 1)
	var recoverable []error
	go l.Serve(ctx, out, func(err error) { recoverable = append(recoverable, err) })

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	select {
	case acc := <-out:
		assert.Equal(t, ep.DisplayAddress, acc.Endpoint.DisplayAddress)
		assert.NotNil(t, acc.Conn)
		_ = acc.Conn.Close()
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for accepted connection")
	}
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ep := api.BoundEndpoint{DisplayAddress: ln.Addr().String(), Listener: ln, Scheme: api.SchemeHTTP}
	l := New(ep, fake.NewLogger())

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Accepted)
	done := make(chan struct{})
	go func() {
		l.Serve(ctx, out, func(error) {})
		close(done)
	}()

	cancel()
	_ = l.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after context cancellation")
	}
}

func TestClose_ReleasesSocket(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	ep := api.BoundEndpoint{DisplayAddress: addr, Listener: ln, Scheme: api.SchemeHTTP}
	l := New(ep, fake.NewLogger())

	require.NoError(t, l.Close())

	_, err = net.Listen("tcp", addr)
	assert.NoError(t, err, "the port must be free again once Close returns")
}
