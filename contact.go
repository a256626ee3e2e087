package sitesignal

import (
	"regexp"
	"sort"
	"strings"
)

// ContactInfo holds contact details extracted from a page. Both fields are
// sets: deduplicated, sorted for deterministic output, and never nil.
type ContactInfo struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
}

var (
	emailRe = regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`)

	// phoneRe is deliberately loose; candidates are validated by digit
	// count afterwards so bare numbers in prose ("50 employees", years)
	// don't survive.
	phoneRe = regexp.MustCompile(`\+?\(?\d[\d\s().-]{5,18}\d`)
)

// ExtractContacts pattern-matches emails and phone numbers from the
// normalized text and from mailto:/tel: links. It never fails: absence of
// matches yields empty sets.
func ExtractContacts(content *NormalizedContent) ContactInfo {
	emails := make(map[string]struct{})
	phones := make(map[string]struct{})

	for _, m := range emailRe.FindAllString(content.VisibleText, -1) {
		emails[strings.ToLower(m)] = struct{}{}
	}
	for _, m := range phoneRe.FindAllString(content.VisibleText, -1) {
		if p, ok := canonicalPhone(m); ok {
			phones[p] = struct{}{}
		}
	}

	for _, link := range content.Links {
		href := strings.TrimSpace(link.Href)
		lower := strings.ToLower(href)
		switch {
		case strings.HasPrefix(lower, "mailto:"):
			addr := href[len("mailto:"):]
			if i := strings.IndexByte(addr, '?'); i >= 0 {
				addr = addr[:i]
			}
			addr = strings.ToLower(strings.TrimSpace(addr))
			if emailRe.MatchString(addr) {
				emails[addr] = struct{}{}
			}
		case strings.HasPrefix(lower, "tel:"):
			if p, ok := canonicalPhone(href[len("tel:"):]); ok {
				phones[p] = struct{}{}
			}
		}
	}

	return ContactInfo{
		Emails: sortedKeys(emails),
		Phones: sortedKeys(phones),
	}
}

// canonicalPhone reduces a phone candidate to its digits with an optional
// leading +, and reports whether the digit count is plausible (7-15, per
// E.164).
func canonicalPhone(s string) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	p := b.String()
	digits := len(p)
	if strings.HasPrefix(p, "+") {
		digits--
	}
	if digits < 7 || digits > 15 {
		return "", false
	}
	return p, true
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
