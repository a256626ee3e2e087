// Package htmltomarkdown provides the sitesignal.Converter implementation.
// Content HTML is converted to markdown and then stripped of markdown
// syntax, yielding plain text suitable for keyword scoring and entity
// recognition.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/sitesignal/sitesignal"
)

// Ensure Converter implements sitesignal.Converter at compile time.
var _ sitesignal.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to plain text.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms content HTML into plain analyzable text.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", sitesignal.Errorf(sitesignal.EINVALID, "empty HTML input")
	}

	markdown, err := c.conv.ConvertString(html)
	if err != nil {
		return "", sitesignal.Errorf(sitesignal.EINVALID, "markdown conversion: %v", err)
	}

	return PlainText(markdown), nil
}

var (
	mdLinkRe    = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	mdHeadingRe = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	mdListRe    = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	mdQuoteRe   = regexp.MustCompile(`(?m)^>\s?`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// PlainText strips markdown syntax, keeping link and image labels but
// dropping their targets, and collapses whitespace to single spaces.
func PlainText(markdown string) string {
	s := mdLinkRe.ReplaceAllString(markdown, "$1")
	s = mdHeadingRe.ReplaceAllString(s, "")
	s = mdListRe.ReplaceAllString(s, "")
	s = mdQuoteRe.ReplaceAllString(s, "")
	s = strings.NewReplacer("`", "", "**", "", "*", "").Replace(s)
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
