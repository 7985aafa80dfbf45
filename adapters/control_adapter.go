// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control interface using control package primitives.

package adapters

import (
	"github.com/momentics/hioload-ws/api"
	"github.com/momentics/hioload-ws/control"
)

type ControlAdapter struct {
	config  *control.ConfigStore
	metrics *control.MetricsRegistry
	debug   *control.DebugProbes
}

func NewControlAdapter() api.Control {
	adapter := &ControlAdapter{
		config:  control.NewConfigStore(),
		metrics: control.NewMetricsRegistry(),
		debug:   control.NewDebugProbes(),
	}
	control.RegisterPlatformProbes(adapter.debug)
	return adapter
}

func (c *ControlAdapter) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}
func (c *ControlAdapter) SetConfig(cfg map[string]any) error {
	c.config.SetConfig(cfg)
	return nil
}
func (c *ControlAdapter) Stats() map[string]any {
	combined := make(map[string]any)
	for k, v := range c.config.GetSnapshot() {
		combined[k] = v
	}
	for k, v := range c.metrics.GetSnapshot() {
		combined[k] = v
	}
	for k, v := range c.debug.DumpState() {
		combined["debug."+k] = v
	}
	return combined
}
func (c *ControlAdapter) OnReload(fn func()) {
	c.config.OnReload(fn)
}
func (c *ControlAdapter) SetMetric(key string, value any) {
	c.metrics.Set(key, value)
}
func (c *ControlAdapter) IncMetric(key string, delta int64) int64 {
	return c.metrics.Inc(key, delta)
}
func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

// DumpState and RegisterProbe make ControlAdapter also satisfy api.Debug,
// for a collaborator that only needs to publish diagnostics and shouldn't
// depend on the full api.Control surface.
func (c *ControlAdapter) DumpState() map[string]any {
	return c.debug.DumpState()
}

func (c *ControlAdapter) RegisterProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

var _ api.Debug = (*ControlAdapter)(nil)

// orchestratorView is the narrow view of *server.Orchestrator needed for
// debug probes, declared locally to avoid an adapters->server dependency
// for callers that never wire one up.
type orchestratorView interface {
	State() api.State
	ClientCount() int
	NetKeyCount() int
	RecentClosed() []int64
}

// RegisterOrchestratorProbes exposes orch's state, admission counts, and
// recently-closed client ids under the "orchestrator.*" debug namespace.
func RegisterOrchestratorProbes(ctrl api.Control, orch orchestratorView) {
	ctrl.RegisterDebugProbe("orchestrator.state", func() any { return orch.State().String() })
	ctrl.RegisterDebugProbe("orchestrator.clientCount", func() any { return orch.ClientCount() })
	ctrl.RegisterDebugProbe("orchestrator.netKeyCount", func() any { return orch.NetKeyCount() })
	ctrl.RegisterDebugProbe("orchestrator.recentClosed", func() any { return orch.RecentClosed() })
}
