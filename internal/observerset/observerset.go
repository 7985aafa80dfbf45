// File: internal/observerset/observerset.go
// Author: momentics <momentics@gmail.com>
//
// Set is an ordered, duplicate-rejecting collection of api.Observer values.
// Insertion order is preserved with an eapache/queue ring buffer — the same
// dependency the teacher declared but never wired — because start/stop
// fan-out order is the one thing about observers that must stay
// deterministic even though the fan-out itself runs concurrently.
package observerset

import (
	"context"
	"sync"

	"github.com/eapache/queue"
	"github.com/momentics/hioload-ws/api"
	"golang.org/x/sync/errgroup"
)

type Set struct {
	q    *queue.Queue
	seen map[api.Observer]struct{}
}

func New() *Set {
	return &Set{q: queue.New(), seen: make(map[api.Observer]struct{})}
}

// Attach appends o if it has not already been attached, preserving
// insertion order. It reports whether o was newly attached.
func (s *Set) Attach(o api.Observer) bool {
	if o == nil {
		return false
	}
	if _, ok := s.seen[o]; ok {
		return false
	}
	s.seen[o] = struct{}{}
	s.q.Add(o)
	return true
}

// Len is the number of distinct attached observers.
func (s *Set) Len() int { return s.q.Length() }

func (s *Set) ordered() []api.Observer {
	out := make([]api.Observer, s.q.Length())
	for i := range out {
		out[i] = s.q.Get(i).(api.Observer)
	}
	return out
}

// FanOutStart invokes OnStart on every observer concurrently and joins on
// all of them before returning, collecting every failure — never just the
// first — per §4.4.
func (s *Set) FanOutStart(ctx context.Context, orch api.Orchestrator, logger api.Logger, eh api.ErrorHandler) []error {
	return fanOut(s.ordered(), func(o api.Observer) error {
		return o.OnStart(ctx, orch, logger, eh)
	})
}

// FanOutStop invokes OnStop on every observer concurrently and joins on all
// of them before returning, collecting every failure.
func (s *Set) FanOutStop(ctx context.Context, orch api.Orchestrator) []error {
	return fanOut(s.ordered(), func(o api.Observer) error {
		return o.OnStop(ctx, orch)
	})
}

// fanOut runs call for every observer on its own goroutine and waits for
// all of them. Each goroutine always reports nil to the errgroup so a
// failure never cancels its siblings or gets discarded in favor of the
// first error; real failures are collected separately under mu.
func fanOut(observers []api.Observer, call func(api.Observer) error) []error {
	var (
		mu   sync.Mutex
		errs []error
		g    errgroup.Group
	)
	for _, o := range observers {
		g.Go(func() error {
			if err := call(o); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}
