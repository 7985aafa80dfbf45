package adapters_test

import (
	"testing"

	"github.com/momentics/hioload-ws/adapters"
	"github.com/momentics/hioload-ws/api"
)

func TestControlAdapterConfigAndStats(t *testing.T) {
	ctrl := adapters.NewControlAdapter()

	if cfg := ctrl.GetConfig(); len(cfg) != 0 {
		t.Fatalf("expected empty config on init, got %v", cfg)
	}

	if err := ctrl.SetConfig(map[string]any{"k": 1}); err != nil {
		t.Fatal(err)
	}
	if got := ctrl.GetConfig()["k"]; got != 1 {
		t.Errorf("GetConfig()[\"k\"] = %v, want 1", got)
	}

	// Stats() merges config alongside metrics and "debug."-prefixed probe
	// output, so a config key set via SetConfig shows up unprefixed.
	stats := ctrl.Stats()
	if stats["k"] != 1 {
		t.Errorf("Stats()[\"k\"] = %v, want 1 (config not merged into Stats)", stats["k"])
	}

	called := false
	ctrl.OnReload(func() { called = true })
	ctrl.SetConfig(map[string]any{"x": 2})
	if !called {
		t.Error("reload hook not called after SetConfig")
	}
}

func TestControlAdapterMetrics(t *testing.T) {
	ctrl := adapters.NewControlAdapter()

	ctrl.SetMetric("handler.errors", int64(0))
	if got := ctrl.IncMetric("handler.processed", 1); got != 1 {
		t.Errorf("first IncMetric = %d, want 1", got)
	}
	if got := ctrl.IncMetric("handler.processed", 4); got != 5 {
		t.Errorf("second IncMetric = %d, want 5", got)
	}

	stats := ctrl.Stats()
	if stats["handler.processed"] != int64(5) {
		t.Errorf("Stats()[\"handler.processed\"] = %v, want 5", stats["handler.processed"])
	}
	if stats["handler.errors"] != int64(0) {
		t.Errorf("Stats()[\"handler.errors\"] = %v, want 0", stats["handler.errors"])
	}
}

func TestControlAdapterDebugProbes(t *testing.T) {
	ctrl := adapters.NewControlAdapter()

	ctrl.RegisterDebugProbe("orchestrator.clientCount", func() any { return 3 })

	stats := ctrl.Stats()
	if stats["debug.orchestrator.clientCount"] != 3 {
		t.Errorf("Stats()[\"debug.orchestrator.clientCount\"] = %v, want 3", stats["debug.orchestrator.clientCount"])
	}

	// RegisterPlatformProbes runs at construction time, so a "platform.*"
	// probe is already present without any explicit registration here.
	if _, ok := stats["debug.platform.cpus"]; !ok {
		t.Error("expected \"debug.platform.cpus\" probe registered by NewControlAdapter")
	}
}

func TestControlAdapterSatisfiesDebug(t *testing.T) {
	ctrl := adapters.NewControlAdapter()
	var _ api.Debug = ctrl.(api.Debug)

	dbg := ctrl.(api.Debug)
	dbg.RegisterProbe("custom.probe", func() any { return "ok" })

	state := dbg.DumpState()
	if state["custom.probe"] != "ok" {
		t.Errorf("DumpState()[\"custom.probe\"] = %v, want \"ok\"", state["custom.probe"])
	}
}
