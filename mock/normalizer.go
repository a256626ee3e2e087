package mock

import "github.com/sitesignal/sitesignal"

var _ sitesignal.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of sitesignal.Normalizer.
type Normalizer struct {
	NormalizeFn func(html string) (*sitesignal.NormalizedContent, error)
}

func (n *Normalizer) Normalize(html string) (*sitesignal.NormalizedContent, error) {
	return n.NormalizeFn(html)
}
