package sitesignal

// ScrapeResult is the response record exposed to callers. It is built
// exactly once per request by Aggregate and is immutable thereafter.
// Every field has a JSON-representable default (null, empty list,
// "Unknown"): a request never fails merely because a signal is missing.
type ScrapeResult struct {
	CompanyName  *string     `json:"company_name"`
	Locations    []string    `json:"locations"`
	Industry     string      `json:"industry"`
	IndustrySize SizeTier    `json:"industry_size"`
	Tagline      *string     `json:"tagline"`
	ContactInfo  ContactInfo `json:"contact_info"`
}

// Aggregate merges the pipeline stage outputs into the final result,
// applying fallback rules for missing signals. It performs no I/O and
// cannot fail.
//
// Fallbacks: the company name is the first organization candidate, else
// the page title, else null; the tagline is the meta description when
// non-empty, else null.
func Aggregate(content *NormalizedContent, mentions *EntityMentions, resolved []ResolvedLocation, class Classification, contacts ContactInfo) *ScrapeResult {
	result := &ScrapeResult{
		Locations:    make([]string, 0, len(resolved)),
		Industry:     class.Industry,
		IndustrySize: class.CompanySize,
		ContactInfo:  contacts,
	}

	if mentions != nil && len(mentions.Organizations) > 0 {
		name := mentions.Organizations[0]
		result.CompanyName = &name
	} else if content.Title != "" {
		title := content.Title
		result.CompanyName = &title
	}

	if content.MetaDescription != "" {
		tagline := content.MetaDescription
		result.Tagline = &tagline
	}

	for _, loc := range resolved {
		result.Locations = append(result.Locations, loc.DisplayName)
	}

	if result.Industry == "" {
		result.Industry = IndustryUnknown
	}
	if result.IndustrySize == "" {
		result.IndustrySize = SizeUnknown
	}
	if result.ContactInfo.Emails == nil {
		result.ContactInfo.Emails = []string{}
	}
	if result.ContactInfo.Phones == nil {
		result.ContactInfo.Phones = []string{}
	}

	return result
}
