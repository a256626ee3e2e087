package mock

import "github.com/sitesignal/sitesignal"

var _ sitesignal.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitesignal.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*sitesignal.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*sitesignal.ExtractResult, error) {
	return e.ExtractFn(html)
}
