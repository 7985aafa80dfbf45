// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// DebugProbes backs api.Control.RegisterDebugProbe. Probe names are
// namespaced by convention ("orchestrator.clientCount",
// "platform.cpus") so a single registry can hold both
// adapters.RegisterOrchestratorProbes' and RegisterPlatformProbes' probes
// without colliding.

package control

import "sync"

// DebugProbes holds named, on-demand debug hooks: each is called fresh on
// every DumpState, never cached, so a probe like "orchestrator.clientCount"
// always reflects the orchestrator's current state.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates an empty probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook, replacing any probe already
// registered under name. Returns true if it replaced an existing probe,
// which a caller wiring both orchestrator and platform probes into one
// registry can use to catch an accidental namespace collision.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) bool {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	_, replaced := dp.probes[name]
	dp.probes[name] = fn
	return replaced
}

// ProbeNames returns the currently registered probe names, unordered.
func (dp *DebugProbes) ProbeNames() []string {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	names := make([]string, 0, len(dp.probes))
	for name := range dp.probes {
		names = append(names, name)
	}
	return names
}

// DumpState calls every registered probe and returns its latest value,
// keyed by probe name.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any, len(dp.probes))
	for name, fn := range dp.probes {
		out[name] = fn()
	}
	return out
}
