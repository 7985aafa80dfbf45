// File: internal/registry/registry.go
// Author: momentics <momentics@gmail.com>
//
// Registry owns the active Client set keyed by id plus the per-network-key
// connection counts (§3, §4.5). It is pure bookkeeping confined to the
// single reactor execution context, so unlike the session store it adapts
// from, it carries no locking: §5 guarantees exclusive access.
package registry

import "github.com/momentics/hioload-ws/api"

type entry struct {
	client api.Client
	netKey string
}

type Registry struct {
	clients map[int64]entry
	perNet  map[string]int
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		clients: make(map[int64]entry),
		perNet:  make(map[string]int),
	}
}

// Insert records client under id, attributing it to netKey. Callers must
// have already decided admission; Insert never rejects.
func (r *Registry) Insert(id int64, client api.Client, netKey string) {
	r.clients[id] = entry{client: client, netKey: netKey}
	r.perNet[netKey]++
}

// Remove erases id's entry, if present, and decrements its network-key
// count, deleting the key once it reaches zero so memory does not grow
// unbounded under churn.
func (r *Registry) Remove(id int64) {
	e, ok := r.clients[id]
	if !ok {
		return
	}
	delete(r.clients, id)
	r.perNet[e.netKey]--
	if r.perNet[e.netKey] <= 0 {
		delete(r.perNet, e.netKey)
	}
}

// Get fetches the client registered under id.
func (r *Registry) Get(id int64) (api.Client, bool) {
	e, ok := r.clients[id]
	return e.client, ok
}

// Len is the current client count.
func (r *Registry) Len() int { return len(r.clients) }

// NetCount reports how many clients are attributed to netKey.
func (r *Registry) NetCount(netKey string) int { return r.perNet[netKey] }

// Range calls fn for every registered client. fn must not mutate the
// Registry.
func (r *Registry) Range(fn func(id int64, client api.Client)) {
	for id, e := range r.clients {
		fn(id, e.client)
	}
}

// NetKeyCount returns the number of distinct network keys currently
// tracked, exposed for introspection/debug probes.
func (r *Registry) NetKeyCount() int { return len(r.perNet) }
