package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/sitesignal/sitesignal"
)

// DefaultMaxEntries bounds the cache size. The oldest entries by last use
// are evicted once the bound is exceeded.
const DefaultMaxEntries = 10000

// Ensure GeocoderCache implements sitesignal.Geocoder at compile time.
var _ sitesignal.Geocoder = (*GeocoderCache)(nil)

// GeocoderCache wraps a Geocoder with a bounded cache keyed by the
// lowercased raw mention. Both matches and confirmed no-matches are
// cached; transient failures (EUNAVAILABLE) are not, so a later request
// retries them.
type GeocoderCache struct {
	db         *DB
	next       sitesignal.Geocoder
	maxEntries int

	// now is swappable for eviction tests.
	now func() time.Time
}

// CacheOption configures a GeocoderCache.
type CacheOption func(*GeocoderCache)

// WithMaxEntries sets the cache size bound.
// Defaults to DefaultMaxEntries if not specified.
func WithMaxEntries(n int) CacheOption {
	return func(c *GeocoderCache) {
		c.maxEntries = n
	}
}

// NewGeocoderCache creates a new GeocoderCache over an open DB.
func NewGeocoderCache(db *DB, next sitesignal.Geocoder, opts ...CacheOption) *GeocoderCache {
	c := &GeocoderCache{
		db:         db,
		next:       next,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode returns the cached result for the mention, consulting the
// wrapped geocoder on a miss.
func (c *GeocoderCache) Geocode(ctx context.Context, place string) (*sitesignal.GeocodeResult, error) {
	key := strings.ToLower(strings.TrimSpace(place))
	if key == "" {
		return nil, sitesignal.Errorf(sitesignal.EINVALID, "empty place name")
	}

	if res, found, hit := c.lookup(ctx, key); hit {
		if !found {
			return nil, sitesignal.Errorf(sitesignal.ENOTFOUND, "no geocode match for %q", place)
		}
		return res, nil
	}

	res, err := c.next.Geocode(ctx, place)
	if err != nil {
		if sitesignal.ErrorCode(err) == sitesignal.ENOTFOUND {
			c.store(ctx, key, nil)
		}
		return nil, err
	}

	c.store(ctx, key, res)
	return res, nil
}

// Close closes the wrapped geocoder. The DB is owned by the caller that
// opened it.
func (c *GeocoderCache) Close() error {
	return c.next.Close()
}

// lookup reads a cache entry and refreshes its last-use timestamp.
// Cache read errors are treated as misses; the cache must never make a
// lookup fail that the wrapped geocoder could serve.
func (c *GeocoderCache) lookup(ctx context.Context, key string) (res *sitesignal.GeocodeResult, found, hit bool) {
	var (
		foundFlag int
		name      string
		lat, lon  sql.NullFloat64
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT found, display_name, latitude, longitude FROM geocode_cache WHERE mention = ?`,
		key,
	).Scan(&foundFlag, &name, &lat, &lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, false
	}
	if err != nil {
		return nil, false, false
	}

	_, _ = c.db.ExecContext(ctx,
		`UPDATE geocode_cache SET last_used_at = ? WHERE mention = ?`,
		c.now().UnixNano(), key,
	)

	if foundFlag == 0 {
		return nil, false, true
	}
	return &sitesignal.GeocodeResult{
		DisplayName: name,
		Latitude:    lat.Float64,
		Longitude:   lon.Float64,
	}, true, true
}

// store inserts or refreshes a cache entry (nil res records a no-match)
// and evicts the least recently used entries past the bound. Write errors
// are ignored; caching is best effort.
func (c *GeocoderCache) store(ctx context.Context, key string, res *sitesignal.GeocodeResult) {
	if res == nil {
		_, _ = c.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO geocode_cache (mention, found, display_name, latitude, longitude, last_used_at)
			 VALUES (?, 0, '', NULL, NULL, ?)`,
			key, c.now().UnixNano(),
		)
	} else {
		_, _ = c.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO geocode_cache (mention, found, display_name, latitude, longitude, last_used_at)
			 VALUES (?, 1, ?, ?, ?, ?)`,
			key, res.DisplayName, res.Latitude, res.Longitude, c.now().UnixNano(),
		)
	}

	if c.maxEntries > 0 {
		_, _ = c.db.ExecContext(ctx,
			`DELETE FROM geocode_cache WHERE mention NOT IN (
				SELECT mention FROM geocode_cache ORDER BY last_used_at DESC LIMIT ?
			)`,
			c.maxEntries,
		)
	}
}
