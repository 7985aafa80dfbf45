//go:build linux
// +build linux

// control/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux platform probes, useful alongside orchestrator.clientCount when
// sizing ConnectionLimit/ConnectionsPerIPLimit for the host's actual epoll
// concurrency budget: NumCPU bounds how many epoll_wait loops make sense,
// GOMAXPROCS reports what the Go scheduler is actually using, and
// NumGoroutine tracks the per-client goroutine the reactor path spawns for
// each accepted connection.

package control

import "runtime"

// RegisterPlatformProbes registers Linux-specific "platform.*" debug
// probes on dp.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.maxProcs", func() any {
		return runtime.GOMAXPROCS(0)
	})
	dp.RegisterProbe("platform.goroutines", func() any {
		return runtime.NumGoroutine()
	})
}
