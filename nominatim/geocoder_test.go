package nominatim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sitesignal/sitesignal"
	"github.com/sitesignal/sitesignal/nominatim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Geocoder implements sitesignal.Geocoder at compile time.
var _ sitesignal.Geocoder = (*nominatim.Geocoder)(nil)

func TestGeocoder_Geocode(t *testing.T) {
	t.Parallel()

	t.Run("resolves a place name", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "Berlin", r.URL.Query().Get("q"))
			assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			assert.NotEmpty(t, r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"display_name": "Berlin, Germany", "lat": "52.5170365", "lon": "13.3888599"}]`))
		}))
		defer srv.Close()

		g := nominatim.NewGeocoder(nominatim.WithBaseURL(srv.URL), nominatim.WithRateLimit(1000))
		result, err := g.Geocode(context.Background(), "Berlin")

		require.NoError(t, err)
		assert.Equal(t, "Berlin, Germany", result.DisplayName)
		assert.InDelta(t, 52.5170365, result.Latitude, 1e-9)
		assert.InDelta(t, 13.3888599, result.Longitude, 1e-9)
	})

	t.Run("empty result set is not found", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		g := nominatim.NewGeocoder(nominatim.WithBaseURL(srv.URL), nominatim.WithRateLimit(1000))
		_, err := g.Geocode(context.Background(), "Nowhereville-xyz")

		require.Error(t, err)
		assert.Equal(t, sitesignal.ENOTFOUND, sitesignal.ErrorCode(err))
	})

	t.Run("non-200 response is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		g := nominatim.NewGeocoder(nominatim.WithBaseURL(srv.URL), nominatim.WithRateLimit(1000))
		_, err := g.Geocode(context.Background(), "Berlin")

		require.Error(t, err)
		assert.Equal(t, sitesignal.EUNAVAILABLE, sitesignal.ErrorCode(err))
	})

	t.Run("unreachable host is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		g := nominatim.NewGeocoder(nominatim.WithBaseURL(srv.URL), nominatim.WithRateLimit(1000))
		_, err := g.Geocode(context.Background(), "Berlin")

		require.Error(t, err)
		assert.Equal(t, sitesignal.EUNAVAILABLE, sitesignal.ErrorCode(err))
	})
}
