// File: server/timeouttick.go
// Author: momentics <momentics@gmail.com>
//
// onTick implements the idle-timeout sweep (§4.3): extract everything due,
// defer clients still waiting on a response by one second, close the rest.
package server

import "time"

func (o *Orchestrator) onTick(now time.Time) {
	nowUnix := now.Unix()
	for id := range o.wheel.Extract(nowUnix) {
		client, ok := o.registry.Get(id)
		if !ok {
			if o.logger != nil {
				o.logger.Debug("timeout: id absent from registry", "id", id)
			}
			continue
		}
		if client.IsWaitingOnResponse() {
			o.wheel.Insert(id, nowUnix+1)
			continue
		}
		_ = client.Close()
	}
}
