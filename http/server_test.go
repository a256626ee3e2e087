package http_test

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sitesignal/sitesignal"
	sitesignalhttp "github.com/sitesignal/sitesignal/http"
	"github.com/sitesignal/sitesignal/mock"
	"github.com/sitesignal/sitesignal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestServer(fetcher *mock.Fetcher, scraper *mock.Scraper) *sitesignalhttp.Server {
	return &sitesignalhttp.Server{
		Secret:  testSecret,
		Fetcher: fetcher,
		Scraper: scraper,
	}
}

func postScrape(t *testing.T, handler nethttp.Handler, secret, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodPost, "/v1/scrape", strings.NewReader(body))
	if secret != "" {
		req.Header.Set("Authorization", secret)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("returns the scrape result", func(t *testing.T) {
		t.Parallel()

		const html = "<html><body>Acme</body></html>"

		name := "Acme Corp"
		tagline := "Widgets for everyone."
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				assert.Equal(t, "https://acme.com", url)
				return html, nil
			},
		}
		scraper := &mock.Scraper{
			ScrapeFn: func(ctx context.Context, page *sitesignal.RawPage) (*sitesignal.ScrapeResult, error) {
				assert.Equal(t, html, page.HTML)
				return &sitesignal.ScrapeResult{
					CompanyName:  &name,
					Locations:    []string{"Berlin, Germany"},
					Industry:     "Technology",
					IndustrySize: sitesignal.SizeMedium,
					Tagline:      &tagline,
					ContactInfo: sitesignal.ContactInfo{
						Emails: []string{"info@acme.com"},
						Phones: []string{"+4930901820"},
					},
				}, nil
			},
		}

		rec := postScrape(t, newTestServer(fetcher, scraper).Handler(), testSecret, `{"url": "https://acme.com"}`)

		require.Equal(t, nethttp.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, pipeline.Fingerprint(html), rec.Header().Get("X-Content-Hash"))
		assert.JSONEq(t, `{
			"company_name": "Acme Corp",
			"locations": ["Berlin, Germany"],
			"industry": "Technology",
			"industry_size": "Medium",
			"tagline": "Widgets for everyone.",
			"contact_info": {
				"emails": ["info@acme.com"],
				"phones": ["+4930901820"]
			}
		}`, rec.Body.String())
	})

	t.Run("rejects a missing secret", func(t *testing.T) {
		t.Parallel()

		rec := postScrape(t, newTestServer(&mock.Fetcher{}, &mock.Scraper{}).Handler(), "", `{"url": "https://acme.com"}`)

		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a wrong secret", func(t *testing.T) {
		t.Parallel()

		rec := postScrape(t, newTestServer(&mock.Fetcher{}, &mock.Scraper{}).Handler(), "wrong", `{"url": "https://acme.com"}`)

		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	})

	t.Run("accepts nothing without a configured secret", func(t *testing.T) {
		t.Parallel()

		srv := &sitesignalhttp.Server{Fetcher: &mock.Fetcher{}, Scraper: &mock.Scraper{}}
		rec := postScrape(t, srv.Handler(), "", `{"url": "https://acme.com"}`)

		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		t.Parallel()

		rec := postScrape(t, newTestServer(&mock.Fetcher{}, &mock.Scraper{}).Handler(), testSecret, `{not json`)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"])
	})

	t.Run("rejects non-http schemes", func(t *testing.T) {
		t.Parallel()

		rec := postScrape(t, newTestServer(&mock.Fetcher{}, &mock.Scraper{}).Handler(), testSecret, `{"url": "ftp://acme.com"}`)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a missing url", func(t *testing.T) {
		t.Parallel()

		rec := postScrape(t, newTestServer(&mock.Fetcher{}, &mock.Scraper{}).Handler(), testSecret, `{}`)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})

	t.Run("fetch failure is the caller's error", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", sitesignal.Errorf(sitesignal.EUNAVAILABLE, "fetch %s: HTTP 503", url)
			},
		}

		rec := postScrape(t, newTestServer(fetcher, &mock.Scraper{}).Handler(), testSecret, `{"url": "https://down.example"}`)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})

	t.Run("unparseable content is the caller's error", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "%PDF-1.4 binary payload", nil
			},
		}
		scraper := &mock.Scraper{
			ScrapeFn: func(ctx context.Context, page *sitesignal.RawPage) (*sitesignal.ScrapeResult, error) {
				return nil, sitesignal.Errorf(sitesignal.EINVALID, "content is not parseable HTML")
			},
		}

		rec := postScrape(t, newTestServer(fetcher, scraper).Handler(), testSecret, `{"url": "https://acme.com/report.pdf"}`)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "not parseable")
	})

	t.Run("unexpected pipeline failure is internal", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}
		scraper := &mock.Scraper{
			ScrapeFn: func(ctx context.Context, page *sitesignal.RawPage) (*sitesignal.ScrapeResult, error) {
				return nil, sitesignal.Errorf(sitesignal.EINTERNAL, "stage panic recovered")
			},
		}

		rec := postScrape(t, newTestServer(fetcher, scraper).Handler(), testSecret, `{"url": "https://acme.com"}`)

		assert.Equal(t, nethttp.StatusInternalServerError, rec.Code)
	})
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newTestServer(&mock.Fetcher{}, &mock.Scraper{}).Handler().ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
