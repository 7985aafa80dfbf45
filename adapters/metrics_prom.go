// File: adapters/metrics_prom.go
// Author: momentics <momentics@gmail.com>
//
// ConnectionMetrics exposes the orchestrator's live client and network-key
// counts as prometheus gauges, computed on scrape rather than polled, so
// there is no background goroutine racing the run loop's introspection
// queries. It implements api.Observer so it registers/unregisters itself
// exactly when the orchestrator it watches is Started/Stopped.
package adapters

import (
	"context"

	"github.com/momentics/hioload-ws/api"
	"github.com/prometheus/client_golang/prometheus"
)

// countSource is the narrow view of *server.Orchestrator this package
// needs; declared locally to avoid importing the server package purely for
// a type name.
type countSource interface {
	ClientCount() int
	NetKeyCount() int
}

type ConnectionMetrics struct {
	registerer prometheus.Registerer
	source     countSource
	clients    prometheus.GaugeFunc
	netKeys    prometheus.GaugeFunc
}

// NewConnectionMetrics builds gauges backed by source, ready to be attached
// as an orchestrator observer or registered manually.
func NewConnectionMetrics(registerer prometheus.Registerer, source countSource) *ConnectionMetrics {
	m := &ConnectionMetrics{registerer: registerer, source: source}
	m.clients = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "hioload_orchestrator_clients",
		Help: "Number of clients currently registered with the orchestrator.",
	}, func() float64 { return float64(source.ClientCount()) })
	m.netKeys = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "hioload_orchestrator_network_keys",
		Help: "Number of distinct network keys currently tracked by admission accounting.",
	}, func() float64 { return float64(source.NetKeyCount()) })
	return m
}

func (m *ConnectionMetrics) OnStart(context.Context, api.Orchestrator, api.Logger, api.ErrorHandler) error {
	if err := m.registerer.Register(m.clients); err != nil {
		return err
	}
	return m.registerer.Register(m.netKeys)
}

func (m *ConnectionMetrics) OnStop(context.Context, api.Orchestrator) error {
	m.registerer.Unregister(m.clients)
	m.registerer.Unregister(m.netKeys)
	return nil
}
