// Package trafilatura provides a boilerplate-removing implementation of
// sitesignal.Extractor. Navigation, footers, and sidebars degrade keyword
// scoring, so the pipeline prefers this main-content view when available.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/sitesignal/sitesignal"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitesignal.Extractor at compile time.
var _ sitesignal.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content with boilerplate
// removed, along with title and description from page metadata.
func (e *Extractor) Extract(rawHTML string) (*sitesignal.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitesignal.Errorf(sitesignal.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, sitesignal.Errorf(sitesignal.EINVALID, "content extraction: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &sitesignal.ExtractResult{
		Title:       result.Metadata.Title,
		Description: result.Metadata.Description,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
