// File: api/client.go
// Author: momentics <momentics@gmail.com>
//
// Client and ClientFactory are consumed, not implemented, by the
// orchestrator core: the per-connection HTTP/1 and HTTP/2 framing engine
// lives behind this boundary (see §6 of the design).

package api

import (
	"context"
	"net"
	"time"
)

// Client is a single accepted connection under orchestrator management.
// Implementations run their protocol engine and report readiness for
// closure through IsWaitingOnResponse and OnClose.
type Client interface {
	// ID returns the client's unique, monotonically increasing identifier.
	ID() int64
	RemoteAddress() net.Addr
	LocalAddress() net.Addr
	// Start hands the accepted socket to the protocol driver produced by f.
	// Start must not block the accept path; any handshake work happens on
	// its own goroutine/task.
	Start(f DriverFactory) error
	// Stop asks the client to drain within timeout, closing forcibly if it
	// cannot. Stop must always return once timeout elapses or draining
	// completes, whichever is first; it never fails on its own timeout.
	Stop(ctx context.Context, timeout time.Duration)
	Close() error
	// IsWaitingOnResponse reports whether the client is blocked on the
	// user-supplied RequestHandler producing a response. While true, the
	// idle-timeout sweep defers rather than closes the client.
	IsWaitingOnResponse() bool
	// OnClose registers cb to fire exactly once when the client closes, for
	// any reason (idle timeout, admission rejection, client EOF, shutdown).
	OnClose(cb func())
}

// ClientFactory builds a Client wrapping an accepted socket. Supplied by the
// embedder; the orchestrator never constructs a Client directly.
type ClientFactory interface {
	Create(conn net.Conn, handler RequestHandler, errorHandler ErrorHandler, logger Logger, options Options, wheel TimeoutWheelHandle) (Client, error)
}

// TimeoutWheelHandle is the narrow view of the orchestrator's shared
// TimeoutWheel exposed to clients: enough to keep their own deadline fresh
// without granting access to other clients' entries.
type TimeoutWheelHandle interface {
	Touch(id int64, deadline time.Time)
	Forget(id int64)
}
