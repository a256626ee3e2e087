// Package pipeline orchestrates the content extraction and classification
// stages: normalize, then contact extraction, entity recognition, and
// classification in parallel, then capped geocoding of location mentions,
// and finally aggregation into the response record.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/sitesignal/sitesignal"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxLookups caps geocoding calls per request; candidates past the
// cap (by first occurrence) are dropped to bound external-call latency.
const DefaultMaxLookups = 5

// Ensure Pipeline implements sitesignal.Scraper at compile time.
var _ sitesignal.Scraper = (*Pipeline)(nil)

// Pipeline runs the extraction stages over a fetched page. Normalizer and
// Recognizer are required; Geocoder, Extractor, and Converter are optional
// and their absence degrades the corresponding signal.
type Pipeline struct {
	Normalizer sitesignal.Normalizer
	Recognizer sitesignal.Recognizer
	Geocoder   sitesignal.Geocoder
	Extractor  sitesignal.Extractor
	Converter  sitesignal.Converter
	MaxLookups int
	Logger     *slog.Logger
}

// Scrape derives business signals from the page. Only a normalization
// failure (EINVALID) aborts; recognizer and geocoder failures degrade to
// defaults per stage.
func (p *Pipeline) Scrape(ctx context.Context, page *sitesignal.RawPage) (*sitesignal.ScrapeResult, error) {
	content, err := p.Normalizer.Normalize(page.HTML)
	if err != nil {
		return nil, err
	}

	// The refined main-content text (boilerplate removed) is a better
	// input for classification and NER than the full visible text; the
	// full text remains authoritative for contact extraction.
	text := p.refineText(page.HTML, content.VisibleText)

	p.logger().Debug("page normalized",
		"url", page.URL,
		"content_hash", Fingerprint(page.HTML),
		"visible_chars", len(content.VisibleText),
		"links", len(content.Links),
	)

	var (
		contacts sitesignal.ContactInfo
		mentions *sitesignal.EntityMentions
		class    sitesignal.Classification
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		contacts = sitesignal.ExtractContacts(content)
		return nil
	})
	g.Go(func() error {
		m, err := p.Recognizer.Recognize(gctx, text)
		if err != nil {
			// Advisory stage: an unavailable model degrades to empty
			// mentions rather than failing the request.
			p.logger().Warn("entity recognition degraded", "url", page.URL, "err", err)
			m = &sitesignal.EntityMentions{}
		}
		mentions = m
		return nil
	})
	g.Go(func() error {
		class = sitesignal.Classify(text, content.MetaDescription)
		return nil
	})
	_ = g.Wait()

	if len(mentions.Organizations) == 0 && content.Title != "" {
		if t := sitesignal.CleanTitle(content.Title); t != "" {
			mentions.Organizations = []string{t}
		}
	}

	resolved := p.resolveLocations(ctx, mentions.Locations)

	return sitesignal.Aggregate(content, mentions, resolved, class, contacts), nil
}

// refineText returns the boilerplate-free main content as plain text, or
// the visible text when extraction is unavailable or yields nothing.
func (p *Pipeline) refineText(rawHTML, visibleText string) string {
	if p.Extractor == nil || p.Converter == nil {
		return visibleText
	}
	extracted, err := p.Extractor.Extract(rawHTML)
	if err != nil || strings.TrimSpace(extracted.ContentHTML) == "" {
		return visibleText
	}
	text, err := p.Converter.Convert(extracted.ContentHTML)
	if err != nil || strings.TrimSpace(text) == "" {
		return visibleText
	}
	return text
}

// resolveLocations geocodes up to MaxLookups deduplicated candidates in
// first-occurrence order. Each failed lookup degrades to the raw mention
// with nil coordinates; the output is deduplicated case-insensitively by
// display name with input order preserved.
func (p *Pipeline) resolveLocations(ctx context.Context, candidates []string) []sitesignal.ResolvedLocation {
	candidates = sitesignal.DedupeFold(candidates)
	max := p.MaxLookups
	if max <= 0 {
		max = DefaultMaxLookups
	}
	if len(candidates) > max {
		candidates = candidates[:max]
	}

	seen := make(map[string]struct{}, len(candidates))
	resolved := make([]sitesignal.ResolvedLocation, 0, len(candidates))
	for _, cand := range candidates {
		loc := sitesignal.ResolvedLocation{
			RawMention:  cand,
			DisplayName: cand,
		}
		if p.Geocoder != nil {
			if res, err := p.Geocoder.Geocode(ctx, cand); err == nil {
				lat, lon := res.Latitude, res.Longitude
				loc.DisplayName = res.DisplayName
				loc.Latitude = &lat
				loc.Longitude = &lon
			} else {
				p.logger().Warn("geocode degraded", "place", cand, "err", err)
			}
		}

		key := strings.ToLower(loc.DisplayName)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		resolved = append(resolved, loc)
	}
	return resolved
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Fingerprint returns a stable hash of the fetched HTML, used for request
// correlation in logs and the X-Content-Hash response header.
func Fingerprint(html string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(html))
}
