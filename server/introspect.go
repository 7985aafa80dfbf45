// File: server/introspect.go
// Author: momentics <momentics@gmail.com>
//
// Read-only accessors used by tests, control-plane debug probes, and
// metrics adapters. ClientCount and NetKeyCount cross into the run loop's
// owned state, so they are implemented as queries answered by the run
// loop itself rather than as direct map reads from a foreign goroutine.
package server

import "github.com/momentics/hioload-ws/api"

type countQuery struct {
	clients      chan int
	netKeys      chan int
	recentClosed chan []int64
}

// ClientCount reports the number of currently registered clients. Safe to
// call from any goroutine while the orchestrator is Started; returns 0
// once Stopped.
func (o *Orchestrator) ClientCount() int {
	if o.State() != api.Started {
		return 0
	}
	q := countQuery{clients: make(chan int, 1)}
	select {
	case o.countQueryCh <- q:
		return <-q.clients
	case <-o.doneCh:
		return 0
	}
}

// NetKeyCount reports the number of distinct network keys currently
// tracked by admission accounting.
func (o *Orchestrator) NetKeyCount() int {
	if o.State() != api.Started {
		return 0
	}
	q := countQuery{netKeys: make(chan int, 1)}
	select {
	case o.countQueryCh <- q:
		return <-q.netKeys
	case <-o.doneCh:
		return 0
	}
}

// RecentClosed returns the ids of the most recently closed clients, oldest
// first, capped at recentClosedCap entries. Intended for debug probes, not
// for correctness-sensitive logic.
func (o *Orchestrator) RecentClosed() []int64 {
	if o.State() != api.Started {
		return nil
	}
	q := countQuery{recentClosed: make(chan []int64, 1)}
	select {
	case o.countQueryCh <- q:
		return <-q.recentClosed
	case <-o.doneCh:
		return nil
	}
}

// Bound returns the live BoundEndpoint list, populated once Start
// succeeds. The slice is only ever written by Start, and Start cannot run
// again until a prior Stop has fully returned, so reading it concurrently
// with a running orchestrator is safe.
func (o *Orchestrator) Bound() []api.BoundEndpoint {
	out := make([]api.BoundEndpoint, len(o.bound))
	copy(out, o.bound)
	return out
}
