// File: internal/admission/admission.go
// Author: momentics <momentics@gmail.com>
//
// Controller enforces the global connection cap and the per-network-block
// cap with loopback exemption (§4.2). It only decides; the caller (the
// orchestrator's accept path) is responsible for actually inserting or
// evicting the client so that the pre-increment comparisons in §4.1.3's
// tie-break policy line up with the registry's real counts.
package admission

import (
	"net"

	"github.com/momentics/hioload-ws/internal/netkey"
	"github.com/momentics/hioload-ws/internal/registry"
)

type Controller struct {
	connectionLimit       int
	connectionsPerIPLimit int
	reg                   *registry.Registry
}

func New(connectionLimit, connectionsPerIPLimit int, reg *registry.Registry) *Controller {
	return &Controller{
		connectionLimit:       connectionLimit,
		connectionsPerIPLimit: connectionsPerIPLimit,
		reg:                   reg,
	}
}

// NetworkKey computes the admission-table key and loopback status for addr.
func (c *Controller) NetworkKey(addr net.Addr) (key string, loopback bool) {
	return netkey.Compute(addr)
}

// AdmitGlobal reports whether one more client may be admitted under the
// global cap, comparing against the registry's current (pre-increment)
// count so the Nth client is admitted and the (N+1)th is rejected.
func (c *Controller) AdmitGlobal() bool {
	if c.connectionLimit == 0 {
		return true
	}
	return c.reg.Len() != c.connectionLimit
}

// AdmitPerIP reports whether one more client sharing key may be admitted.
// Loopback remotes always pass.
func (c *Controller) AdmitPerIP(key string, loopback bool) bool {
	if loopback || c.connectionsPerIPLimit == 0 {
		return true
	}
	return c.reg.NetCount(key) != c.connectionsPerIPLimit
}
