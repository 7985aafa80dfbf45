// File: server/doc.go
// Author: momentics <momentics@gmail.com>
//
// Package server implements the orchestrator: the state machine that ties
// listeners, admission control, the timeout wheel, and observer lifecycle
// into one coherent accept/serve/drain loop.
//
// The design source states its concurrency model as single-threaded
// cooperative: one execution context owns every mutation of orchestrator
// state, the client registry, and the timeout wheel. Go has no equivalent
// single-context reactor primitive, so this package earns the same
// guarantee the idiomatic way: exactly one goroutine (run, in run.go) ever
// touches that state, and every other goroutine — listener accept loops,
// client protocol engines calling back into OnClose/Touch/Forget, the
// shutdown drain — communicates with it exclusively over channels. This is
// the same channel-owns-the-state shape the teacher used for its executor
// and poller queues, just applied to connection bookkeeping instead of
// buffer pools.
package server
