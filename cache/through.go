package cache

import "time"

// Through implements the cache/backoff contract around a remote call
// f: check the positive entry, then the negative entry (honoring
// backoff without calling f), and only then invoke f, caching whichever
// side it lands on.
//
// ok reports whether a usable payload was obtained (from cache or from
// f); when ok is false, reason explains why, and no network traffic
// occurred if the miss was a backoff hit.
func Through[T any](c *Cache, op string, args []Arg, ttl time.Duration, f func() (T, error)) (value T, ok bool, reason string) {
	key := Key(op, args...)

	if c.GetJSON(key, &value) {
		return value, true, ""
	}

	if reason, hit := c.GetError(key); hit {
		return value, false, reason
	}

	result, err := f()
	if err != nil {
		reason := err.Error()
		c.PutError(key, reason, DefaultBackoffTTL)
		return value, false, reason
	}

	c.PutJSON(key, result, ttl)
	return result, true, ""
}
