package alert

import (
	"time"

	"github.com/skywatch-go/skywatch/cache"
)

// DefaultCooldown is the default alert dedup window.
const DefaultCooldown = 10 * time.Minute

const dedupPrefix = "alerted:"

// Dedup tracks which aircraft have alerted recently, using the same
// TTL-keyed store as the cache/backoff layer (a separate key
// namespace, not the error: namespace).
type Dedup struct {
	store    *cache.Cache
	cooldown time.Duration
}

// NewDedup wraps store with the given cooldown window (0 uses
// DefaultCooldown).
func NewDedup(store *cache.Cache, cooldown time.Duration) *Dedup {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Dedup{store: store, cooldown: cooldown}
}

// Armed reports whether hex is eligible to alert right now (no
// unexpired alerted:<hex> key).
func (d *Dedup) Armed(hex string) bool {
	_, hit := d.store.Get(dedupPrefix + hex)
	return !hit
}

// Fire marks hex as alerted for the cooldown window. Call only after
// deciding to actually send the alert.
func (d *Dedup) Fire(hex string) {
	d.store.Put(dedupPrefix+hex, "1", d.cooldown)
}
