// File: server/shutdown.go
// Author: momentics <momentics@gmail.com>
//
// Stop implements the eight-step shutdown sequence. Listener cancellation
// happens from the calling goroutine (sockets are only ever touched at
// Start/Stop boundaries); client draining is delegated to the run loop via
// beginDrain so registry mutation stays confined to its one goroutine even
// while clients close from their own.
package server

import (
	"context"
	"time"

	"github.com/momentics/hioload-ws/api"
)

// stopRequest asks the run loop to drain every registered client and
// signals done once the last one has closed.
type stopRequest struct {
	timeout time.Duration
	done    chan struct{}
}

// Stop transitions Started -> Stopping -> Stopped. It is a no-op from
// Stopped and fails with PreconditionFailed from Starting or Stopping. A
// timeout of zero uses the configured ShutdownTimeout.
func (o *Orchestrator) Stop(timeout time.Duration) error {
	switch o.State() {
	case api.Stopped:
		return nil
	case api.Started:
		if timeout <= 0 {
			timeout = o.options.ShutdownTimeout
		}
		return o.shutdown(timeout)
	default:
		return api.NewPreconditionFailed("stop", o.State().String())
	}
}

func (o *Orchestrator) shutdown(timeout time.Duration) error {
	o.state.Store(int32(api.Stopping))

	o.cancel()
	for _, l := range o.listeners {
		_ = l.Close()
	}

	done := make(chan struct{})
	select {
	case o.shutdownReqCh <- stopRequest{timeout: timeout, done: done}:
		<-done
	case <-o.doneCh:
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	stopErrs := o.observers.FanOutStop(stopCtx, o)
	cancel()

	close(o.stopCh)
	<-o.doneCh

	o.state.Store(int32(api.Stopped))

	if len(stopErrs) > 0 {
		return &api.AggregateShutdownFailure{Errs: stopErrs}
	}
	return nil
}

// beginDrain snapshots the live client set and asks each to stop
// concurrently. It runs on the run loop goroutine; drain completion is
// reported back through closedCh as each client's onClose callback fires.
func (o *Orchestrator) beginDrain(req stopRequest) {
	var live []api.Client
	o.registry.Range(func(_ int64, c api.Client) { live = append(live, c) })

	if len(live) == 0 {
		close(req.done)
		return
	}

	o.draining = true
	o.drainRemaining = len(live)
	o.drainDone = req.done

	for _, c := range live {
		c := c
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), req.timeout)
			defer cancel()
			c.Stop(ctx, req.timeout)
		}()
	}
}
