// File: server/accept.go
// Author: momentics <momentics@gmail.com>
//
// onAcceptable implements the per-connection critical section: admission
// checks and registry insertion happen back to back on the run loop
// goroutine with nothing in between that can suspend, so the invariants in
// the design's data-model section hold at every point another goroutine
// could observe the registry.
package server

import (
	"context"
	"time"

	"github.com/momentics/hioload-ws/api"
	"github.com/momentics/hioload-ws/listener"
	"github.com/momentics/hioload-ws/reactor"
)

// serveListener drives one bound listener's accept loop, preferring the
// reactor-backed path and falling back to a blocking Accept goroutine on
// platforms or listener types the reactor cannot register.
func (o *Orchestrator) serveListener(ctx context.Context, l *listener.Listener) {
	onErr := func(err error) {
		if o.logger != nil {
			o.logger.Debug("accept: recoverable", "err", err)
		}
	}

	if r, err := reactor.NewAcceptReactor(); err == nil {
		defer r.Close()
		if serveErr := l.ServeWithReactor(ctx, r, o.acceptCh, onErr); serveErr != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if o.logger != nil {
				o.logger.Debug("reactor accept path ended, falling back to blocking accept", "err", serveErr)
			}
			l.Serve(ctx, o.acceptCh, onErr)
		}
		return
	}

	l.Serve(ctx, o.acceptCh, onErr)
}

// onAcceptable handles one freshly accepted connection. It only ever runs
// on the run loop goroutine.
func (o *Orchestrator) onAcceptable(acc listener.Accepted) {
	if o.State() != api.Started {
		_ = acc.Conn.Close()
		return
	}

	client, err := o.clientFactory.Create(acc.Conn, o.handler, o.errorHandler, o.logger, o.options, o)
	if err != nil {
		if o.logger != nil {
			o.logger.Debug("client factory failed", "err", err)
		}
		_ = acc.Conn.Close()
		return
	}

	id := client.ID()
	netKey, loopback := o.admission.NetworkKey(client.RemoteAddress())

	client.OnClose(func() {
		select {
		case o.closedCh <- id:
		case <-o.doneCh:
		}
	})

	if !o.admission.AdmitGlobal() {
		if o.logger != nil {
			o.logger.Debug("rejecting connection: global limit reached", "remote", client.RemoteAddress())
		}
		_ = client.Close()
		return
	}
	if !o.admission.AdmitPerIP(netKey, loopback) {
		if o.logger != nil {
			o.logger.Debug("rejecting connection: per-ip limit reached", "remote", client.RemoteAddress())
		}
		_ = client.Close()
		return
	}

	o.registry.Insert(id, client, netKey)

	if err := client.Start(o.driverFactory); err != nil {
		if o.errorHandler != nil {
			o.errorHandler.HandleError(o.ctx, err)
		}
		_ = client.Close()
	}
}

// wheelOp is a request to mutate the shared timeout wheel, marshaled onto
// the run loop so clients running on their own goroutines never touch it
// directly.
type wheelOp struct {
	id       int64
	deadline int64
	forget   bool
}

// Touch implements api.TimeoutWheelHandle: it refreshes id's deadline. Safe
// to call from any goroutine.
func (o *Orchestrator) Touch(id int64, deadline time.Time) {
	select {
	case o.wheelOpCh <- wheelOp{id: id, deadline: deadline.Unix()}:
	case <-o.doneCh:
	}
}

// Forget implements api.TimeoutWheelHandle: it erases id's deadline. Safe
// to call from any goroutine.
func (o *Orchestrator) Forget(id int64) {
	select {
	case o.wheelOpCh <- wheelOp{id: id, forget: true}:
	case <-o.doneCh:
	}
}

func (o *Orchestrator) applyWheelOp(op wheelOp) {
	if op.forget {
		o.wheel.Remove(op.id)
		return
	}
	o.wheel.Insert(op.id, op.deadline)
}
