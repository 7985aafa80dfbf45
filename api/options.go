// File: api/options.go
// Author: momentics <momentics@gmail.com>
//
// Options configures the orchestrator's admission and timeout policy.

package api

import "time"

// Options holds orchestrator configuration. Zero value is meaningful:
// DefaultOptions fills in the documented defaults.
type Options struct {
	// ConnectionLimit caps concurrent clients. 0 means unlimited.
	ConnectionLimit int
	// ConnectionsPerIPLimit caps concurrent clients sharing a network key.
	// Loopback remotes are exempt. 0 means unlimited.
	ConnectionsPerIPLimit int
	// CompressionEnabled requests response compression from the driver.
	CompressionEnabled bool
	// ShutdownTimeout bounds how long stop() waits on each client to drain.
	ShutdownTimeout time.Duration
	// TimeoutTick is the period of the idle-timeout sweep.
	TimeoutTick time.Duration
}

// DefaultOptions returns the documented defaults: 3s shutdown budget, 1s
// timeout tick, no admission caps, compression disabled.
func DefaultOptions() Options {
	return Options{
		ConnectionLimit:       0,
		ConnectionsPerIPLimit: 0,
		CompressionEnabled:    false,
		ShutdownTimeout:       3 * time.Second,
		TimeoutTick:           1 * time.Second,
	}
}

// WithDefaults returns a copy of o with zero-valued duration fields replaced
// by their documented defaults. Limits of 0 are left untouched since 0 is a
// meaningful "unlimited" value, not an unset one.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = d.ShutdownTimeout
	}
	if o.TimeoutTick <= 0 {
		o.TimeoutTick = d.TimeoutTick
	}
	return o
}
