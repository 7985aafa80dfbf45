// Package control
// Author: momentics <momentics@gmail.com>
//
// control backs adapters.ControlAdapter, the api.Control implementation
// orchestrator embedders use to read/write dynamic config, bump request
// counters, and register debug probes without touching the orchestrator
// itself. Three primitives compose into that surface:
//   - ConfigStore: dynamic key/value config plus config-reload hooks
//     (hotreload.go) an embedder's driver can watch for live changes such
//     as a toggled CompressionEnabled flag.
//   - MetricsRegistry: named counters bumped once per request by
//     adapters.MetricsMiddleware, distinct from the connection-level
//     gauges adapters.ConnectionMetrics exposes through prometheus.
//   - DebugProbes: on-demand named probes, namespaced by convention
//     ("orchestrator.*" from adapters.RegisterOrchestratorProbes,
//     "platform.*" from the build-tag-partitioned platform_*.go files).
package control
