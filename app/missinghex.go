package app

import (
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// missingHexSet tracks hex_idents that missed both the reference store
// and the remote fallback, recently enough to be worth reporting. It is
// in-process, TTL-bounded state with no durability requirement, so
// go-cache's in-memory store is the natural fit -- distinct from the
// durable buntdb-backed stores the rest of the pipeline uses.
type missingHexSet struct {
	c *gocache.Cache
}

func newMissingHexSet(ttl time.Duration) *missingHexSet {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &missingHexSet{c: gocache.New(ttl, ttl/2)}
}

// Add records hex as missing, refreshing its TTL if already present.
func (m *missingHexSet) Add(hex string) {
	m.c.Set(hex, struct{}{}, gocache.DefaultExpiration)
}

// Sorted returns the currently-tracked hex_idents in ascending order,
// the shape the monitor task logs.
func (m *missingHexSet) Sorted() []string {
	items := m.c.Items()
	out := make([]string, 0, len(items))
	for k := range items {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
