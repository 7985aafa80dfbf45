// File: listener/listener.go
// Author: momentics <momentics@gmail.com>
//
// Listener wraps one BoundEndpoint's socket and feeds accepted connections
// to the orchestrator's single accept-dispatch context. Serve is the
// portable path: one goroutine blocked in Accept per listener, fanning
// accepted conns into a shared channel so the orchestrator's own goroutine
// remains the sole mutator of registry/admission/timeout state (§5).
//
// ServeWithReactor is the low-level path, grounded on the same epoll/IOCP
// abstraction the teacher used for its WebSocket transport: it registers
// the listening socket's file descriptor with a reactor.AcceptReactor and
// only calls Accept once that reactor reports readability, exactly
// mirroring the "non-blocking accept on readability" wording of §4.1.3.
// The orchestrator picks whichever path reactor.NewAcceptReactor succeeds
// with on the current platform and falls back to Serve otherwise — the
// same try-then-fall-back shape the teacher used for DPDK vs. native
// transport.
package listener

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/momentics/hioload-ws/api"
	"github.com/momentics/hioload-ws/reactor"
)

// Accepted pairs a freshly accepted connection with the endpoint it arrived
// on, so the orchestrator can recover the endpoint's scheme/ALPN list.
type Accepted struct {
	Endpoint *api.BoundEndpoint
	Conn     net.Conn
}

type Listener struct {
	Endpoint api.BoundEndpoint
	logger   api.Logger
}

func New(ep api.BoundEndpoint, logger api.Logger) *Listener {
	return &Listener{Endpoint: ep, logger: logger}
}

// Serve accepts connections until ctx is canceled or the listener socket is
// closed by the orchestrator's shutdown path. Transient per-accept errors
// are reported via onError and do not end the loop.
func (l *Listener) Serve(ctx context.Context, out chan<- Accepted, onError func(error)) {
	for {
		conn, err := l.Endpoint.Listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Temporary() {
				onError(&api.AcceptRecoverable{Cause: err})
				continue
			}
			return
		}
		select {
		case out <- Accepted{Endpoint: &l.Endpoint, Conn: conn}:
		case <-ctx.Done():
			_ = conn.Close()
			return
		}
	}
}

// ServeWithReactor drives accepts off reactor readiness notifications
// instead of a blocking Accept call. r is a fresh, single-listener
// AcceptReactor (server.Orchestrator opens one per bound endpoint), so
// there is only ever one socket for it to report on.
func (l *Listener) ServeWithReactor(ctx context.Context, r reactor.AcceptReactor, out chan<- Accepted, onError func(error)) error {
	fd, err := listenerFD(l.Endpoint.Listener)
	if err != nil {
		return err
	}
	if err := r.RegisterListener(fd); err != nil {
		return err
	}

	events := make([]reactor.AcceptEvent, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := r.WaitForAccept(events)
		if err != nil {
			onError(&api.AcceptRecoverable{Cause: err})
			continue
		}
		if n == 0 {
			continue
		}

		conn, aerr := l.Endpoint.Listener.Accept()
		if aerr != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			var ne net.Error
			if errors.As(aerr, &ne) && ne.Temporary() {
				onError(&api.AcceptRecoverable{Cause: aerr})
				continue
			}
			return aerr
		}

		select {
		case out <- Accepted{Endpoint: &l.Endpoint, Conn: conn}:
		case <-ctx.Done():
			_ = conn.Close()
			return nil
		}
	}
}

// Close releases the underlying socket so the port is freed promptly, per
// the BoundEndpoint lifecycle in §3.
func (l *Listener) Close() error {
	return l.Endpoint.Listener.Close()
}

func listenerFD(ln net.Listener) (uintptr, error) {
	sc, ok := ln.(syscall.Conn)
	if !ok {
		return 0, errors.New("listener: underlying net.Listener does not expose a raw file descriptor")
	}
	rc, err := sc.SyscallConn()
	if err != nil {
		return 0, err
	}
	var fd uintptr
	var ctrlErr error
	if err := rc.Control(func(f uintptr) { fd = f }); err != nil {
		ctrlErr = err
	}
	if ctrlErr != nil {
		return 0, ctrlErr
	}
	return fd, nil
}
