// Package goquery provides the DOM-based implementation of
// sitesignal.Normalizer. It strips non-visible subtrees, extracts title and
// meta description, and flattens the remaining text in document order.
package goquery

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitesignal/sitesignal"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// DefaultMaxTextLen bounds VisibleText to keep downstream NLP cost bounded
// on very large pages.
const DefaultMaxTextLen = 20000

// Ensure Normalizer implements sitesignal.Normalizer at compile time.
var _ sitesignal.Normalizer = (*Normalizer)(nil)

// Normalizer turns raw HTML into sitesignal.NormalizedContent.
type Normalizer struct {
	maxTextLen int
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithMaxTextLen sets the VisibleText length bound.
// Defaults to DefaultMaxTextLen if not specified.
func WithMaxTextLen(n int) Option {
	return func(nm *Normalizer) {
		nm.maxTextLen = n
	}
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{maxTextLen: DefaultMaxTextLen}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize parses the document and returns its normalized form.
// Returns EINVALID only when the input cannot be parsed as HTML at all
// (empty, binary, or markup-free payloads); a page that parses but has no
// text yields a valid result with empty VisibleText.
func (n *Normalizer) Normalize(rawHTML string) (*sitesignal.NormalizedContent, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitesignal.Errorf(sitesignal.EINVALID, "empty HTML input")
	}

	// Decode to UTF-8 first; undecodable binary payloads are not HTML.
	data := []byte(rawHTML)
	enc, _, _ := charset.DetermineEncoding(data, "")
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return nil, sitesignal.Errorf(sitesignal.EINVALID, "input is not decodable as HTML text")
		}
		decoded = data
	}
	if !bytes.ContainsRune(decoded, '<') {
		return nil, sitesignal.Errorf(sitesignal.EINVALID, "input contains no HTML markup")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return nil, sitesignal.Errorf(sitesignal.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("script,style,noscript").Remove()

	content := &sitesignal.NormalizedContent{
		Title:           collapseWhitespace(doc.Find("title").First().Text()),
		MetaDescription: metaDescription(doc),
	}

	// Visible text is assembled from text nodes under body in document
	// order. Documents without a body (fragments) fall back to the whole
	// tree, minus head metadata which was never visible.
	root := doc.Find("body")
	var parts []string
	if root.Length() > 0 {
		for _, node := range root.Nodes {
			collectText(node, &parts)
		}
	} else {
		for _, node := range doc.Selection.Nodes {
			collectText(node, &parts)
		}
	}
	content.VisibleText = truncateAtWhitespace(collapseWhitespace(strings.Join(parts, " ")), n.maxTextLen)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}
		content.Links = append(content.Links, sitesignal.Link{
			Href: strings.TrimSpace(href),
			Text: collapseWhitespace(sel.Text()),
		})
	})

	return content, nil
}

// metaDescription returns the content of the description meta tag,
// matching the name attribute case-insensitively, with og:description as
// a fallback.
func metaDescription(doc *goquery.Document) string {
	var desc string
	doc.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		name, _ := sel.Attr("name")
		if !strings.EqualFold(name, "description") {
			return true
		}
		if c := collapseWhitespace(sel.AttrOr("content", "")); c != "" {
			desc = c
			return false
		}
		return true
	})
	if desc == "" {
		desc = collapseWhitespace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}
	return desc
}

// collectText appends non-blank text node contents in document order.
// Head metadata is skipped; it was never visible on the page.
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "head" || n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// truncateAtWhitespace bounds s to max bytes without splitting a word.
// The collapsed input only contains single ASCII spaces as whitespace, so
// cutting at a space is also rune-safe.
func truncateAtWhitespace(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := s[:max]
	i := strings.LastIndexByte(cut, ' ')
	if i < 0 {
		return ""
	}
	return strings.TrimRight(cut[:i], " ")
}
