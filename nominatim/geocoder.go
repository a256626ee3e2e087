// Package nominatim provides a sitesignal.Geocoder backed by the
// Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sitesignal/sitesignal"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// DefaultTimeout is the per-lookup timeout, after which the candidate
// degrades without failing the request.
const DefaultTimeout = 5 * time.Second

// defaultUserAgent identifies the client; the public Nominatim instance
// rejects requests without a meaningful User-Agent.
const defaultUserAgent = "sitesignal/1.0"

// Ensure Geocoder implements sitesignal.Geocoder at compile time.
var _ sitesignal.Geocoder = (*Geocoder)(nil)

// Geocoder resolves place names via the Nominatim search endpoint.
// Lookups are rate limited to honor the public instance's usage policy
// (1 request per second by default).
type Geocoder struct {
	client    *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
}

// Option configures a Geocoder.
type Option func(*Geocoder)

// WithBaseURL points the geocoder at a different Nominatim instance.
func WithBaseURL(u string) Option {
	return func(g *Geocoder) {
		g.baseURL = u
	}
}

// WithTimeout sets the per-lookup timeout.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(g *Geocoder) {
		g.timeout = d
	}
}

// WithRateLimit sets the lookup rate limit in requests per second.
// Defaults to 1 rps with a burst of 1.
func WithRateLimit(rps float64) Option {
	return func(g *Geocoder) {
		g.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewGeocoder creates a new Geocoder.
func NewGeocoder(opts ...Option) *Geocoder {
	g := &Geocoder{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		timeout:   DefaultTimeout,
		limiter:   rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.client = &http.Client{Timeout: g.timeout}
	return g
}

// nominatimPlace is a single result from the search endpoint. Coordinates
// arrive as strings.
type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Geocode returns the best match for the place name.
// Returns ENOTFOUND when the service has no match and EUNAVAILABLE on
// network errors, timeouts, or non-200 responses.
func (g *Geocoder) Geocode(ctx context.Context, place string) (*sitesignal.GeocodeResult, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, sitesignal.Errorf(sitesignal.EUNAVAILABLE, "geocode rate limit: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, sitesignal.Errorf(sitesignal.EINVALID, "geocode request: %v", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, sitesignal.Errorf(sitesignal.EUNAVAILABLE, "geocode lookup for %q: %v", place, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, sitesignal.Errorf(sitesignal.EUNAVAILABLE, "geocode lookup for %q: HTTP %d", place, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, sitesignal.Errorf(sitesignal.EUNAVAILABLE, "geocode response: %v", err)
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, sitesignal.Errorf(sitesignal.EUNAVAILABLE, "geocode response: %v", err)
	}
	if len(places) == 0 {
		return nil, sitesignal.Errorf(sitesignal.ENOTFOUND, "no geocode match for %q", place)
	}

	best := places[0]
	lat, err := strconv.ParseFloat(best.Lat, 64)
	if err != nil {
		return nil, sitesignal.Errorf(sitesignal.EUNAVAILABLE, "geocode coordinates for %q: %v", place, err)
	}
	lon, err := strconv.ParseFloat(best.Lon, 64)
	if err != nil {
		return nil, sitesignal.Errorf(sitesignal.EUNAVAILABLE, "geocode coordinates for %q: %v", place, err)
	}

	return &sitesignal.GeocodeResult{
		DisplayName: best.DisplayName,
		Latitude:    lat,
		Longitude:   lon,
	}, nil
}

// Close releases resources. For the HTTP geocoder this is a no-op.
func (g *Geocoder) Close() error {
	return nil
}
