// Package api
// Author: momentics <momentics@gmail.com>
//
// Debug is the narrow, probe-only slice of Control: enough for a component
// that only needs to publish diagnostics (e.g. the reactor or listener
// package registering a per-endpoint probe) without depending on the full
// config/metrics surface Control exposes.

package api

// Debug exposes on-demand runtime introspection: named probes evaluated
// fresh on every DumpState call, keyed by probe name (by convention
// namespaced, e.g. "orchestrator.clientCount", "platform.cpus").
type Debug interface {
	// DumpState evaluates every registered probe and returns its current
	// value, keyed by probe name.
	DumpState() map[string]any

	// RegisterProbe adds a named probe, replacing any probe already
	// registered under the same name.
	RegisterProbe(name string, fn func() any)
}
