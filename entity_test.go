package sitesignal_test

import (
	"testing"

	"github.com/sitesignal/sitesignal"
	"github.com/stretchr/testify/assert"
)

func TestDedupeFold(t *testing.T) {
	t.Parallel()

	t.Run("keeps first-occurrence order and casing", func(t *testing.T) {
		t.Parallel()

		out := sitesignal.DedupeFold([]string{"Berlin", "London", "BERLIN", "berlin", "Paris"})

		assert.Equal(t, []string{"Berlin", "London", "Paris"}, out)
	})

	t.Run("drops blank entries", func(t *testing.T) {
		t.Parallel()

		out := sitesignal.DedupeFold([]string{"", "  ", "Acme"})

		assert.Equal(t, []string{"Acme"}, out)
	})

	t.Run("handles empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, sitesignal.DedupeFold(nil))
	})
}

func TestCleanTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain title untouched", "Acme Corp", "Acme Corp"},
		{"pipe suffix dropped", "Acme Corp | Home", "Acme Corp"},
		{"en dash suffix dropped", "Acme Corp – Welcome", "Acme Corp"},
		{"dash with boilerplate suffix dropped", "Acme Corp - Home", "Acme Corp"},
		{"dash with meaningful suffix kept", "Acme Corp - Industrial Pumps", "Acme Corp - Industrial Pumps"},
		{"only first pipe segment kept", "Acme | Products | Home", "Acme"},
		{"whitespace trimmed", "  Acme Corp  ", "Acme Corp"},
		{"empty title stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sitesignal.CleanTitle(tt.title))
		})
	}
}
