package sitesignal_test

import (
	"testing"

	"github.com/sitesignal/sitesignal"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("buckets technology pages", func(t *testing.T) {
		t.Parallel()

		c := sitesignal.Classify("We build software as a service on a cloud platform with a public API.", "")

		assert.Equal(t, "Technology", c.Industry)
	})

	t.Run("scores meta description too", func(t *testing.T) {
		t.Parallel()

		c := sitesignal.Classify("Welcome.", "Independent law firm handling litigation for attorneys nationwide")

		assert.Equal(t, "Legal", c.Industry)
	})

	t.Run("unknown text yields Unknown for both fields", func(t *testing.T) {
		t.Parallel()

		c := sitesignal.Classify("lorem ipsum dolor sit amet", "")

		assert.Equal(t, sitesignal.IndustryUnknown, c.Industry)
		assert.Equal(t, sitesignal.SizeUnknown, c.CompanySize)
	})

	t.Run("ties break to the first-listed industry", func(t *testing.T) {
		t.Parallel()

		// One keyword each from Technology ("software") and Finance
		// ("bank"); Technology is listed first.
		c := sitesignal.Classify("Banking software.", "")
		c2 := sitesignal.Classify("software bank", "")

		assert.Equal(t, "Technology", c.Industry)
		assert.Equal(t, c.Industry, c2.Industry)
	})

	t.Run("headcount mention sets the size tier", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, sitesignal.SizeSmall, sitesignal.Classify("a team of 12 employees", "").CompanySize)
		assert.Equal(t, sitesignal.SizeMedium, sitesignal.Classify("we have 50 employees", "").CompanySize)
		assert.Equal(t, sitesignal.SizeLarge, sitesignal.Classify("over 12,000 employees worldwide", "").CompanySize)
	})

	t.Run("headcount outranks size keywords", func(t *testing.T) {
		t.Parallel()

		c := sitesignal.Classify("A global enterprise of 30 employees.", "")

		assert.Equal(t, sitesignal.SizeSmall, c.CompanySize)
	})

	t.Run("size keywords apply without headcount", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, sitesignal.SizeSmall, sitesignal.Classify("A boutique startup founded last year.", "").CompanySize)
		assert.Equal(t, sitesignal.SizeLarge, sitesignal.Classify("A global enterprise, worldwide leader.", "").CompanySize)
	})

	t.Run("matches on word boundaries only", func(t *testing.T) {
		t.Parallel()

		// "apple" contains "app" but not on a word boundary.
		c := sitesignal.Classify("apple orchard tours", "")

		assert.Equal(t, sitesignal.IndustryUnknown, c.Industry)
	})

	t.Run("is a pure function of its inputs", func(t *testing.T) {
		t.Parallel()

		text := "Enterprise healthcare software for hospital patients."
		first := sitesignal.Classify(text, "")
		second := sitesignal.Classify(text, "")

		assert.Equal(t, first, second)
	})
}

func TestIndustryTable_UniqueLabels(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, rule := range sitesignal.IndustryTable {
		assert.False(t, seen[rule.Label], "duplicate label %q", rule.Label)
		assert.NotEmpty(t, rule.Keywords, "empty keyword set for %q", rule.Label)
		seen[rule.Label] = true
	}
}
