// File: server/run.go
// Author: momentics <momentics@gmail.com>
//
// run is the orchestrator's single execution context: the only goroutine
// that ever calls registry.Insert/Remove, wheel.Insert/Remove, or reads
// draining state. Every other goroutine reaches it through acceptCh,
// wheelOpCh, closedCh, or shutdownReqCh.
package server

import "time"

func (o *Orchestrator) run() {
	defer close(o.doneCh)

	ticker := time.NewTicker(o.options.TimeoutTick)
	defer ticker.Stop()

	for {
		select {
		case acc, ok := <-o.acceptCh:
			if !ok {
				return
			}
			o.onAcceptable(acc)

		case op := <-o.wheelOpCh:
			o.applyWheelOp(op)

		case id := <-o.closedCh:
			o.registry.Remove(id)
			o.wheel.Remove(id)
			o.recentClosed.Add(id)
			if o.recentClosed.Length() > recentClosedCap {
				o.recentClosed.Remove()
			}
			if o.draining {
				o.drainRemaining--
				if o.drainRemaining <= 0 {
					close(o.drainDone)
					o.draining = false
				}
			}

		case now := <-ticker.C:
			if !o.draining {
				o.onTick(now)
			}

		case req := <-o.shutdownReqCh:
			o.beginDrain(req)

		case q := <-o.countQueryCh:
			if q.clients != nil {
				q.clients <- o.registry.Len()
			}
			if q.netKeys != nil {
				q.netKeys <- o.registry.NetKeyCount()
			}
			if q.recentClosed != nil {
				out := make([]int64, o.recentClosed.Length())
				for i := range out {
					out[i] = o.recentClosed.Get(i).(int64)
				}
				q.recentClosed <- out
			}

		case <-o.stopCh:
			return
		}
	}
}
