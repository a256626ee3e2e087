package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sitesignal/sitesignal"
)

// Ensure LoggingGeocoder implements sitesignal.Geocoder.
var _ sitesignal.Geocoder = (*LoggingGeocoder)(nil)

// LoggingGeocoder wraps a Geocoder with lookup logging.
type LoggingGeocoder struct {
	next   sitesignal.Geocoder
	logger *slog.Logger
}

// NewLoggingGeocoder creates a new LoggingGeocoder.
func NewLoggingGeocoder(next sitesignal.Geocoder, logger *slog.Logger) *LoggingGeocoder {
	return &LoggingGeocoder{next: next, logger: logger}
}

// Geocode delegates to the wrapped geocoder and logs the operation.
func (g *LoggingGeocoder) Geocode(ctx context.Context, place string) (res *sitesignal.GeocodeResult, err error) {
	defer func(begin time.Time) {
		display := ""
		if res != nil {
			display = res.DisplayName
		}
		g.logger.Info("geocode lookup",
			"place", place,
			"display_name", display,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Geocode(ctx, place)
}

// Close delegates to the wrapped geocoder.
func (g *LoggingGeocoder) Close() error {
	return g.next.Close()
}
