// File: fake/observer.go
// Author: momentics <momentics@gmail.com>

package fake

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-ws/api"
)

// Observer is a controllable fake api.Observer.
type Observer struct {
	StartErr   error
	StopErr    error
	StartDelay time.Duration
	StopDelay  time.Duration

	starts int32
	stops  int32
}

func NewObserver() *Observer { return &Observer{} }

func (o *Observer) OnStart(ctx context.Context, _ api.Orchestrator, _ api.Logger, _ api.ErrorHandler) error {
	atomic.AddInt32(&o.starts, 1)
	if o.StartDelay > 0 {
		select {
		case <-time.After(o.StartDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return o.StartErr
}

func (o *Observer) OnStop(ctx context.Context, _ api.Orchestrator) error {
	atomic.AddInt32(&o.stops, 1)
	if o.StopDelay > 0 {
		select {
		case <-time.After(o.StopDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return o.StopErr
}

func (o *Observer) Starts() int { return int(atomic.LoadInt32(&o.starts)) }
func (o *Observer) Stops() int  { return int(atomic.LoadInt32(&o.stops)) }
