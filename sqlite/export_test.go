package sqlite

import "time"

// SetNow swaps the cache clock in tests.
func (c *GeocoderCache) SetNow(now func() time.Time) {
	c.now = now
}
