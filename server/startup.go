// File: server/startup.go
// Author: momentics <momentics@gmail.com>
//
// Start implements the nine-step startup sequence: auto-attach capable
// collaborators as observers, fan out onStart, bind endpoints and negotiate
// ALPN, register listeners, and enable the run loop that owns every
// mutation from here on.
package server

import (
	"context"

	"github.com/momentics/hioload-ws/api"
	"github.com/momentics/hioload-ws/listener"
)

// Start transitions Stopped -> Starting -> Started. On observer failure it
// attempts a best-effort shutdown of whatever already started and returns
// an AggregateStartupFailure with state left Stopped.
func (o *Orchestrator) Start() error {
	if o.State() != api.Stopped {
		return api.NewPreconditionFailed("start", o.State().String())
	}

	for _, candidate := range []any{o.driverFactory, o.clientFactory, o.handler, o.errorHandler} {
		if obs, ok := candidate.(api.Observer); ok {
			o.observers.Attach(obs)
		}
	}

	o.state.Store(int32(api.Starting))
	o.ctx, o.cancel = context.WithCancel(context.Background())

	if startErrs := o.observers.FanOutStart(o.ctx, o, o.logger, o.errorHandler); len(startErrs) > 0 {
		stopErrs := o.observers.FanOutStop(o.ctx, o)
		for _, err := range stopErrs {
			if o.logger != nil {
				o.logger.Error("best-effort shutdown after failed start", "err", err)
			}
		}
		o.cancel()
		o.state.Store(int32(api.Stopped))
		return &api.AggregateStartupFailure{Errs: startErrs}
	}

	o.state.Store(int32(api.Started))

	o.bound = make([]api.BoundEndpoint, len(o.bind))
	o.listeners = make([]*listener.Listener, len(o.bind))
	for i, ep := range o.bind {
		be := api.BoundEndpoint{DisplayAddress: ep.DisplayAddress, Listener: ep.Listener, Scheme: ep.Scheme}
		o.negotiateALPN(&be)
		o.bound[i] = be
		o.listeners[i] = listener.New(be, o.logger)
	}

	o.acceptCh = make(chan listener.Accepted, 64)
	o.wheelOpCh = make(chan wheelOp, 64)
	o.closedCh = make(chan int64, 64)
	o.shutdownReqCh = make(chan stopRequest)
	o.countQueryCh = make(chan countQuery)
	o.stopCh = make(chan struct{})
	o.doneCh = make(chan struct{})

	for _, l := range o.listeners {
		go o.serveListener(o.ctx, l)
	}

	go o.run()

	return nil
}

// negotiateALPN sets be's ALPN protocol list from the driver factory when
// the endpoint terminates TLS and its listener exposes an ALPNSetter.
func (o *Orchestrator) negotiateALPN(be *api.BoundEndpoint) {
	if be.Scheme != api.SchemeHTTPS || o.driverFactory == nil {
		return
	}
	protocols := o.driverFactory.ApplicationLayerProtocols()
	if len(protocols) == 0 {
		return
	}
	setter, ok := be.Listener.(api.ALPNSetter)
	if !ok {
		if o.logger != nil {
			o.logger.Warning("alpn requested but unsupported by listener", "endpoint", be.DisplayAddress)
		}
		return
	}
	setter.SetALPNProtocols(protocols)
	be.ALPNProtocols = protocols
}
