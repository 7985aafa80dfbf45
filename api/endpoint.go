// File: api/endpoint.go
// Author: momentics <momentics@gmail.com>
//
// Endpoint describes a listening socket supplied to the orchestrator at
// construction time; the orchestrator never binds sockets itself.

package api

import "net"

// Scheme distinguishes plaintext from TLS-terminated endpoints.
type Scheme int

const (
	SchemeHTTP Scheme = iota
	SchemeHTTPS
)

func (s Scheme) String() string {
	if s == SchemeHTTPS {
		return "https"
	}
	return "http"
}

// Endpoint is caller-supplied input to Orchestrator.Configure: an
// already-bound listening socket plus the scheme it terminates.
type Endpoint struct {
	DisplayAddress string
	Listener       net.Listener
	Scheme         Scheme
}

// BoundEndpoint is the orchestrator's live view of an Endpoint: built by
// Start once every observer has started; its listener socket is closed on
// the transition to Stopping so the port is freed promptly.
type BoundEndpoint struct {
	DisplayAddress string
	Listener       net.Listener
	Scheme         Scheme
	ALPNProtocols  []string
}

// ALPNSetter is implemented by TLS listener wrappers that expose their live
// *tls.Config for protocol negotiation. A Listener that does not implement
// this is treated as ALPN-unsupported: the orchestrator logs a warning and
// continues without protocol negotiation rather than failing startup.
type ALPNSetter interface {
	SetALPNProtocols(protocols []string)
}
