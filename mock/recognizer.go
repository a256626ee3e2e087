package mock

import (
	"context"

	"github.com/sitesignal/sitesignal"
)

var _ sitesignal.Recognizer = (*Recognizer)(nil)

// Recognizer is a mock implementation of sitesignal.Recognizer.
type Recognizer struct {
	RecognizeFn func(ctx context.Context, text string) (*sitesignal.EntityMentions, error)
}

func (r *Recognizer) Recognize(ctx context.Context, text string) (*sitesignal.EntityMentions, error) {
	return r.RecognizeFn(ctx, text)
}
