package sitesignal

import "context"

// RawPage is a fetched HTML document together with its source URL.
// It is immutable once fetched and discarded after normalization.
type RawPage struct {
	URL  string
	HTML string
}

// Link is an anchor found on a page. Relative hrefs are kept as-is;
// resolution against the page URL is out of scope.
type Link struct {
	Href string
	Text string
}

// NormalizedContent is the cleaned, analyzable form of a page. It is
// derived once per request and never mutated after creation.
type NormalizedContent struct {
	// Title is the <title> text, if any.
	Title string

	// MetaDescription is the content of the description meta tag, if any.
	MetaDescription string

	// VisibleText is the page's visible text in document order, with
	// whitespace collapsed and the total length bounded.
	VisibleText string

	// Links are the page's anchors in document order.
	Links []Link
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Normalizer strips a raw HTML document down to analyzable content.
type Normalizer interface {
	// Normalize parses the document and returns its normalized form.
	// Returns EINVALID when the input cannot be parsed as HTML at all;
	// a page that parses but has no text yields a valid result with
	// empty VisibleText.
	Normalize(html string) (*NormalizedContent, error)
}

// ExtractResult holds the main content of a page with boilerplate
// (navigation, footers, sidebars) removed.
type ExtractResult struct {
	// Title is the page title from metadata.
	Title string

	// Description is the page description from metadata, if any.
	Description string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// Its output is advisory: failures fall back to the Normalizer's text.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter transforms content HTML into plain text suitable for keyword
// scoring and entity recognition.
type Converter interface {
	Convert(html string) (string, error)
}

// Scraper runs the full extraction pipeline over a fetched page.
type Scraper interface {
	// Scrape derives business signals from the page. Only EINVALID
	// (unparseable input) aborts; every other stage failure degrades to a
	// default value in the result.
	Scrape(ctx context.Context, page *RawPage) (*ScrapeResult, error)
}
