package mock

import (
	"context"

	"github.com/sitesignal/sitesignal"
)

var _ sitesignal.Geocoder = (*Geocoder)(nil)

// Geocoder is a mock implementation of sitesignal.Geocoder.
type Geocoder struct {
	GeocodeFn func(ctx context.Context, place string) (*sitesignal.GeocodeResult, error)
	CloseFn   func() error
}

func (g *Geocoder) Geocode(ctx context.Context, place string) (*sitesignal.GeocodeResult, error) {
	return g.GeocodeFn(ctx, place)
}

func (g *Geocoder) Close() error {
	if g.CloseFn == nil {
		return nil
	}
	return g.CloseFn()
}
