// File: api/driver.go
// Author: momentics <momentics@gmail.com>

package api

// DriverFactory supplies the per-connection HTTP/1 or HTTP/2 protocol engine
// used by Client.Start, and advertises ALPN identifiers in preference order
// for TLS endpoints.
type DriverFactory interface {
	// ApplicationLayerProtocols lists ALPN protocol ids in preference order,
	// e.g. []string{"h2", "http/1.1"}.
	ApplicationLayerProtocols() []string
}
