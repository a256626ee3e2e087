package prose_test

import (
	"context"
	"testing"

	"github.com/sitesignal/sitesignal"
	"github.com/sitesignal/sitesignal/prose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Recognizer implements sitesignal.Recognizer at compile time.
var _ sitesignal.Recognizer = (*prose.Recognizer)(nil)

func TestRecognizer_Recognize(t *testing.T) {
	t.Parallel()

	t.Run("empty text yields empty mentions", func(t *testing.T) {
		t.Parallel()

		r := prose.NewRecognizer()
		mentions, err := r.Recognize(context.Background(), "   ")

		require.NoError(t, err)
		assert.Empty(t, mentions.Organizations)
		assert.Empty(t, mentions.Locations)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r := prose.NewRecognizer()
		_, err := r.Recognize(ctx, "Acme Corp is based in Berlin.")

		require.Error(t, err)
	})

	t.Run("output is deduplicated and ordered", func(t *testing.T) {
		t.Parallel()

		// The model's exact labels are advisory; whatever it returns must
		// be free of case-insensitive duplicates.
		r := prose.NewRecognizer()
		mentions, err := r.Recognize(context.Background(), "Berlin is lovely. Berlin has great food. We also like Munich.")

		require.NoError(t, err)
		seen := map[string]bool{}
		for _, loc := range mentions.Locations {
			key := loc
			assert.False(t, seen[key], "duplicate mention %q", loc)
			seen[key] = true
		}
	})
}
