// File: internal/netkey/netkey.go
// Author: momentics <momentics@gmail.com>
//
// Network-key computation for the per-IP admission table (§4.2 of the
// design): IPv4 remotes key on the full /32, IPv6 remotes key on an
// approximate /56 block, and loopback/unix remotes are exempt entirely.
package netkey

import "net"

// Compute derives the admission-table key for addr and whether addr should
// be treated as loopback (exempt from the per-IP cap). Unix-domain remotes
// are always loopback. For everything else the key is meaningless when
// loopback is true.
func Compute(addr net.Addr) (key string, loopback bool) {
	if _, ok := addr.(*net.UnixAddr); ok {
		return "", true
	}

	ip := ipFromAddr(addr)
	if ip == nil {
		// Non-IP transport (or unparsable string form): treat as its own
		// bucket, never loopback-exempt.
		return addr.String(), false
	}
	return fromIP(ip)
}

func ipFromAddr(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.TCPAddr:
		return a.IP
	case *net.UDPAddr:
		return a.IP
	case *net.IPAddr:
		return a.IP
	default:
		host, _, err := net.SplitHostPort(addr.String())
		if err != nil {
			host = addr.String()
		}
		return net.ParseIP(host)
	}
}

// fromIP implements the /32-or-/56 keying rule. net.IP.To4 collapses
// IPv4-mapped IPv6 addresses (::ffff:127.0.0.1) to 4 bytes, which is also
// what makes IsLoopback correctly treat ::ffff:127.0.0.0/104 as loopback —
// the fix called for over the source's raw byte-slice comparison.
func fromIP(ip net.IP) (key string, loopback bool) {
	loopback = ip.IsLoopback()
	if ip4 := ip.To4(); ip4 != nil {
		return string(ip4), loopback
	}
	ip16 := ip.To16()
	if ip16 == nil {
		return string(ip), loopback
	}
	return string(ip16[:7]), loopback
}
