package sitesignal

import "context"

// ResolvedLocation is a location mention after geocoding. A mention that
// failed to resolve is retained with DisplayName equal to the raw mention
// and nil coordinates; resolution failure is never fatal.
type ResolvedLocation struct {
	RawMention  string   `json:"raw_mention"`
	DisplayName string   `json:"display_name"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// GeocodeResult is the best match returned by a geocoding lookup.
type GeocodeResult struct {
	DisplayName string
	Latitude    float64
	Longitude   float64
}

// Geocoder resolves free-text place names to canonical names and
// coordinates.
type Geocoder interface {
	// Geocode returns the best match for the place name.
	// Returns ENOTFOUND when the service has no match and EUNAVAILABLE
	// when the service cannot be reached.
	Geocode(ctx context.Context, place string) (*GeocodeResult, error)

	// Close releases any resources held by the geocoder.
	Close() error
}
