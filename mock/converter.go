package mock

import "github.com/sitesignal/sitesignal"

var _ sitesignal.Converter = (*Converter)(nil)

// Converter is a mock implementation of sitesignal.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
