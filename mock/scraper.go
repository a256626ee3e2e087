package mock

import (
	"context"

	"github.com/sitesignal/sitesignal"
)

var _ sitesignal.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of sitesignal.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, page *sitesignal.RawPage) (*sitesignal.ScrapeResult, error)
}

func (s *Scraper) Scrape(ctx context.Context, page *sitesignal.RawPage) (*sitesignal.ScrapeResult, error) {
	return s.ScrapeFn(ctx, page)
}
