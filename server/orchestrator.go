// File: server/orchestrator.go
// Author: momentics <momentics@gmail.com>
//
// Orchestrator is the exported state machine: {Stopped, Starting, Started,
// Stopping}. Configure and the setters below are valid only from Stopped,
// mirroring the precondition table in the design's component section for
// the orchestrator core.
package server

import (
	"context"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/momentics/hioload-ws/api"
	"github.com/momentics/hioload-ws/internal/admission"
	"github.com/momentics/hioload-ws/internal/observerset"
	"github.com/momentics/hioload-ws/internal/registry"
	"github.com/momentics/hioload-ws/internal/timeoutwheel"
	"github.com/momentics/hioload-ws/listener"
)

// recentClosedCap bounds the recently-closed-client ring the run loop
// maintains for debug introspection; older entries are evicted FIFO.
const recentClosedCap = 32

// Orchestrator drives connection admission, dispatch, idle timeouts, and
// coordinated shutdown across one or more bound listening endpoints.
type Orchestrator struct {
	state atomic.Int32

	bind    []api.Endpoint
	handler api.RequestHandler
	logger  api.Logger
	options api.Options

	driverFactory api.DriverFactory
	clientFactory api.ClientFactory
	errorHandler  api.ErrorHandler

	observers *observerset.Set
	registry  *registry.Registry
	wheel     *timeoutwheel.Wheel
	admission *admission.Controller

	bound     []api.BoundEndpoint
	listeners []*listener.Listener

	ctx    context.Context
	cancel context.CancelFunc

	acceptCh      chan listener.Accepted
	wheelOpCh     chan wheelOp
	closedCh      chan int64
	shutdownReqCh chan stopRequest
	countQueryCh  chan countQuery
	stopCh        chan struct{}
	doneCh        chan struct{}

	draining       bool
	drainRemaining int
	drainDone      chan struct{}

	// recentClosed is a FIFO ring of the last recentClosedCap client ids the
	// run loop has processed through closedCh, exposed to debug probes.
	// Owned exclusively by run(); never touched from another goroutine.
	recentClosed *queue.Queue
}

// New returns an unconfigured Orchestrator in the Stopped state.
func New() *Orchestrator {
	return &Orchestrator{
		observers:    observerset.New(),
		registry:     registry.New(),
		wheel:        timeoutwheel.New(),
		recentClosed: queue.New(),
	}
}

// State reports the orchestrator's current lifecycle state. Safe to call
// from any goroutine.
func (o *Orchestrator) State() api.State { return api.State(o.state.Load()) }

// Configure sets the bind list, request handler, logger, and options. It
// fails with PreconditionFailed unless the orchestrator is Stopped, and
// with ErrEmptyBindList if bind has no endpoints.
func (o *Orchestrator) Configure(bind []api.Endpoint, handler api.RequestHandler, logger api.Logger, options api.Options) error {
	if o.State() != api.Stopped {
		return api.NewPreconditionFailed("configure", o.State().String())
	}
	if len(bind) == 0 {
		return api.ErrEmptyBindList
	}
	o.bind = bind
	o.handler = handler
	o.logger = logger
	o.options = options.WithDefaults()
	o.admission = admission.New(o.options.ConnectionLimit, o.options.ConnectionsPerIPLimit, o.registry)
	return nil
}

// SetDriverFactory registers the driver factory used to negotiate ALPN and
// hand off accepted clients to their protocol engine.
func (o *Orchestrator) SetDriverFactory(f api.DriverFactory) error {
	if o.State() != api.Stopped {
		return api.NewPreconditionFailed("setDriverFactory", o.State().String())
	}
	o.driverFactory = f
	return nil
}

// SetClientFactory registers the factory used to build a Client for each
// accepted socket.
func (o *Orchestrator) SetClientFactory(f api.ClientFactory) error {
	if o.State() != api.Stopped {
		return api.NewPreconditionFailed("setClientFactory", o.State().String())
	}
	o.clientFactory = f
	return nil
}

// SetErrorHandler registers the handler notified of per-client start
// failures.
func (o *Orchestrator) SetErrorHandler(h api.ErrorHandler) error {
	if o.State() != api.Stopped {
		return api.NewPreconditionFailed("setErrorHandler", o.State().String())
	}
	o.errorHandler = h
	return nil
}

// AttachObserver adds o to the lifecycle observer set, preserving insertion
// order. Attaching the same observer twice is a no-op, not an error, per
// the design's documented idempotence choice.
func (o *Orchestrator) AttachObserver(obs api.Observer) error {
	if o.State() != api.Stopped {
		return api.NewPreconditionFailed("attachObserver", o.State().String())
	}
	o.observers.Attach(obs)
	return nil
}
