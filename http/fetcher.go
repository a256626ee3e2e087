// Package http provides the page-fetching boundary and the authenticated
// scrape endpoint.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sitesignal/sitesignal"
)

// DefaultFetchTimeout is the default timeout for page fetches.
const DefaultFetchTimeout = 10 * time.Second

// maxRedirects bounds redirect chains on the target URL.
const maxRedirects = 10

// maxBodyBytes bounds the fetched document size; homepages past this are
// truncated rather than rejected.
const maxBodyBytes = 2 << 20

// defaultUserAgent is sent with page fetches; some sites reject requests
// without a browser-like User-Agent.
const defaultUserAgent = "Mozilla/5.0 (compatible; sitesignal/1.0; +https://github.com/sitesignal/sitesignal)"

// Ensure Fetcher implements sitesignal.Fetcher at compile time.
var _ sitesignal.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw HTML from URLs with a plain GET. It does not
// execute JavaScript; dynamic rendering is out of scope.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for page fetches.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return sitesignal.Errorf(sitesignal.EUNAVAILABLE, "too many redirects for %s", req.URL)
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Returns EUNAVAILABLE on network errors and non-2xx responses.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", sitesignal.Errorf(sitesignal.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", sitesignal.Errorf(sitesignal.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", sitesignal.Errorf(sitesignal.EUNAVAILABLE, "fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", sitesignal.Errorf(sitesignal.EUNAVAILABLE, "fetch %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
