// Package cache implements the cache-with-backoff layer: a TTL cache
// keyed by (operation, arguments) with a negative-result side that
// remembers recent failures so callers stop hammering a provider that
// just failed.
//
// Keys are always built from an explicit operation name and argument
// list passed by the caller -- never recovered by inspecting the call
// stack. That reflection trick is how the system this was modeled on
// derives its cache keys, and it is exactly the kind of thing that
// breaks the moment someone refactors an argument name.
package cache

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/buntdb"
)

// DefaultBackoffTTL is how long a negative result suppresses retries
// when the caller does not specify one.
const DefaultBackoffTTL = 30 * time.Second

// PhotoTTL is the provider-mandated retention limit for photo lookups
// (planespotters' terms of use forbid caching responses for longer).
const PhotoTTL = 24 * time.Hour

const errorPrefix = "error:"

var unsafeKeyChar = regexp.MustCompile(`[^A-Za-z0-9:._-]`)

// Arg is one declared (name, value) pair contributing to a cache key.
// Order matters: it is the declared argument order of the wrapped
// operation, not sorted.
type Arg struct {
	Name  string
	Value string
}

// Cache is a buntdb-backed cache/backoff store. One instance is shared
// by every enricher client; buntdb serializes its own transactions so
// concurrent callers are safe.
type Cache struct {
	db *buntdb.DB
}

// Open opens (creating if necessary) the cache database at path. Use
// ":memory:" for an ephemeral, test-only cache.
func Open(path string) (*Cache, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key renders the canonical cache key for an operation and its
// declared arguments: it builds "op:k=v,k=v,...", maps spaces to
// underscores, then replaces any character outside [A-Za-z0-9:._-]
// with underscore. The "=" and "," separators are outside that set
// too, so Key("aircraft", hex=4010EE) is "aircraft:hex_4010EE".
func Key(op string, args ...Arg) string {
	var b strings.Builder
	b.WriteString(op)
	b.WriteByte(':')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.Name)
		b.WriteByte('=')
		b.WriteString(a.Value)
	}
	raw := strings.ReplaceAll(b.String(), " ", "_")
	return unsafeKeyChar.ReplaceAllString(raw, "_")
}

// Get returns the positive cache entry for key, if present.
func (c *Cache) Get(key string) (string, bool) {
	var val string
	err := c.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if err != nil {
			return err
		}
		val = v
		return nil
	})
	if err != nil {
		return "", false
	}
	return val, true
}

// GetError returns the cached failure reason for key, if a negative
// entry has not yet expired.
func (c *Cache) GetError(key string) (string, bool) {
	return c.Get(errorPrefix + key)
}

// Put writes a positive entry. ttl == 0 means no expiry (unbounded
// until evicted). Store failures are logged and swallowed: a caller
// that successfully computed a value must still get that value back
// even if we fail to cache it.
func (c *Cache) Put(key, value string, ttl time.Duration) {
	err := c.db.Update(func(tx *buntdb.Tx) error {
		opts := (*buntdb.SetOptions)(nil)
		if ttl > 0 {
			opts = &buntdb.SetOptions{Expires: true, TTL: ttl}
		}
		_, _, err := tx.Set(key, value, opts)
		return err
	})
	if err != nil {
		log.Printf("cache: put failed key=%s err=%v", key, err)
	}
}

// PutError writes a negative entry with the given backoff TTL.
func (c *Cache) PutError(key, reason string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultBackoffTTL
	}
	c.Put(errorPrefix+key, reason, ttl)
}

// PutJSON marshals v and stores it as a positive entry. Marshal
// failures are logged and swallowed per the same contract as Put.
func (c *Cache) PutJSON(key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("cache: marshal failed key=%s err=%v", key, err)
		return
	}
	c.Put(key, string(data), ttl)
}

// GetJSON fetches a positive entry and unmarshals it into dst.
func (c *Cache) GetJSON(key string, dst any) bool {
	raw, ok := c.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("cache: unmarshal failed key=%s err=%v", key, err)
		return false
	}
	return true
}
