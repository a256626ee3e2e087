package sitesignal

import (
	"regexp"
	"strconv"
	"strings"
)

// SizeTier is an ordinal company-size bucket.
type SizeTier string

// SizeTier values.
const (
	SizeSmall   SizeTier = "Small"
	SizeMedium  SizeTier = "Medium"
	SizeLarge   SizeTier = "Large"
	SizeUnknown SizeTier = "Unknown"
)

// Classification is the industry and company-size estimate for a page.
type Classification struct {
	Industry    string
	CompanySize SizeTier
}

// IndustryUnknown is the industry label when no keywords match.
const IndustryUnknown = "Unknown"

// IndustryRule maps an industry label to its indicator keywords.
// Keywords are matched case-insensitively on word boundaries.
type IndustryRule struct {
	Label    string
	Keywords []string
}

// IndustryTable is the static industry scoring table. Order is
// significant: on equal match counts the first-listed industry wins.
var IndustryTable = []IndustryRule{
	{"Technology", []string{
		"software", "saas", "software as a service", "technology", "platform",
		"cloud", "api", "app", "digital", "developer", "data", "ai", "machine learning",
	}},
	{"Finance", []string{
		"bank", "banking", "finance", "financial", "investment", "insurance",
		"fintech", "trading", "loans", "wealth",
	}},
	{"Healthcare", []string{
		"health", "healthcare", "medical", "clinic", "hospital", "patients",
		"pharmaceutical", "wellness", "dental",
	}},
	{"Retail & E-commerce", []string{
		"shop", "store", "retail", "ecommerce", "e-commerce", "cart",
		"checkout", "wholesale", "marketplace", "fashion",
	}},
	{"Manufacturing", []string{
		"manufacturing", "factory", "industrial", "machinery", "production",
		"engineering", "supplier",
	}},
	{"Education", []string{
		"education", "school", "university", "courses", "students",
		"learning", "training", "academy",
	}},
	{"Hospitality & Travel", []string{
		"hotel", "restaurant", "travel", "tourism", "booking", "menu",
		"catering", "resort",
	}},
	{"Real Estate", []string{
		"real estate", "property", "properties", "realty", "housing",
		"apartments", "mortgage",
	}},
	{"Marketing & Media", []string{
		"marketing", "advertising", "agency", "media", "branding", "seo",
		"public relations",
	}},
	{"Legal", []string{
		"law firm", "legal", "attorney", "attorneys", "lawyer", "lawyers",
		"litigation",
	}},
}

// SizeRule maps a size tier to its indicator keywords.
type SizeRule struct {
	Tier     SizeTier
	Keywords []string
}

// SizeTable is the static company-size scoring table, same ordering and
// tie-break semantics as IndustryTable.
var SizeTable = []SizeRule{
	{SizeSmall, []string{
		"startup", "small team", "boutique", "founder", "founders",
		"family-owned", "family owned", "independent",
	}},
	{SizeMedium, []string{
		"growing team", "mid-size", "midsize", "regional", "offices in",
		"expanding", "scale-up",
	}},
	{SizeLarge, []string{
		"enterprise", "global", "worldwide", "multinational", "fortune 500",
		"corporation", "industry leader", "thousands of employees",
	}},
}

var headcountRe = regexp.MustCompile(`(?i)\b([0-9][0-9,]*)\s*\+?\s*employees\b`)

type compiledRule struct {
	label    string
	patterns []*regexp.Regexp
}

var (
	industryMatchers = compileIndustryTable()
	sizeMatchers     = compileSizeTable()
)

func compileIndustryTable() []compiledRule {
	rules := make([]compiledRule, len(IndustryTable))
	for i, r := range IndustryTable {
		rules[i] = compiledRule{label: r.Label, patterns: compileKeywords(r.Keywords)}
	}
	return rules
}

func compileSizeTable() []compiledRule {
	rules := make([]compiledRule, len(SizeTable))
	for i, r := range SizeTable {
		rules[i] = compiledRule{label: string(r.Tier), patterns: compileKeywords(r.Keywords)}
	}
	return rules
}

func compileKeywords(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`)
	}
	return patterns
}

// Classify buckets a page into an industry and a company-size tier by
// scoring its text against the static keyword tables. It is a pure
// function of its inputs: no network, no NLP model, fully deterministic.
// Zero matches yield Unknown for the respective field.
func Classify(visibleText, metaDescription string) Classification {
	text := strings.ToLower(visibleText + " " + metaDescription)

	c := Classification{
		Industry:    IndustryUnknown,
		CompanySize: SizeUnknown,
	}

	if label, ok := bestMatch(industryMatchers, text); ok {
		c.Industry = label
	}

	// An explicit headcount mention is a stronger size signal than any
	// keyword, so it takes precedence when present.
	if tier, ok := headcountTier(text); ok {
		c.CompanySize = tier
	} else if label, ok := bestMatch(sizeMatchers, text); ok {
		c.CompanySize = SizeTier(label)
	}

	return c
}

// bestMatch returns the label with the most matching keywords. Ties break
// to the first-listed rule; zero matches report no winner.
func bestMatch(rules []compiledRule, text string) (string, bool) {
	best := ""
	bestCount := 0
	for _, rule := range rules {
		count := 0
		for _, p := range rule.patterns {
			if p.MatchString(text) {
				count++
			}
		}
		if count > bestCount {
			best = rule.label
			bestCount = count
		}
	}
	return best, bestCount > 0
}

// headcountTier maps an explicit "N employees" mention to a size tier.
func headcountTier(text string) (SizeTier, bool) {
	m := headcountRe.FindStringSubmatch(text)
	if m == nil {
		return SizeUnknown, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return SizeUnknown, false
	}
	switch {
	case n < 50:
		return SizeSmall, true
	case n < 1000:
		return SizeMedium, true
	default:
		return SizeLarge, true
	}
}
