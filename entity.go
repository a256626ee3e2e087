package sitesignal

import (
	"context"
	"strings"
)

// EntityMentions holds named entities surfaced from a page's text.
// Both lists are in first-occurrence order, deduplicated case-insensitively
// with the original casing of the first occurrence kept.
type EntityMentions struct {
	Organizations []string
	Locations     []string
}

// Recognizer runs named-entity recognition over text. This stage is
// advisory-quality: false positives and negatives are expected. When the
// underlying model is unavailable the implementation returns EUNAVAILABLE,
// which callers absorb by treating the mentions as empty.
type Recognizer interface {
	Recognize(ctx context.Context, text string) (*EntityMentions, error)
}

// DedupeFold removes case-insensitive duplicates from values, preserving
// first-occurrence order and the casing of the first occurrence. Blank
// entries are dropped.
func DedupeFold(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// titleSuffixes are trailing segments commonly appended to homepage titles.
var titleSuffixes = []string{
	"home",
	"homepage",
	"welcome",
	"official site",
	"official website",
}

// CleanTitle trims site-name decoration from a page title so it can serve
// as an organization-name fallback: everything after the first pipe or
// dash-like separator is dropped when it is a common boilerplate suffix,
// and pipe-separated titles keep only their first segment.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)
	for _, sep := range []string{"|", "–", "—"} {
		if i := strings.Index(title, sep); i >= 0 {
			title = strings.TrimSpace(title[:i])
		}
	}
	if i := strings.Index(title, " - "); i >= 0 {
		rest := strings.ToLower(strings.TrimSpace(title[i+3:]))
		for _, suffix := range titleSuffixes {
			if rest == suffix {
				title = strings.TrimSpace(title[:i])
				break
			}
		}
	}
	return title
}
