// Package prose provides a local, model-free-deployment implementation of
// sitesignal.Recognizer on top of the prose NLP library.
package prose

import (
	"context"
	"strings"

	prose "github.com/jdkato/prose/v2"
	"github.com/sitesignal/sitesignal"
)

// maxInputLen bounds the text handed to the tagger; NER cost grows with
// input size and signals past this point add little.
const maxInputLen = 10000

// Ensure Recognizer implements sitesignal.Recognizer at compile time.
var _ sitesignal.Recognizer = (*Recognizer)(nil)

// Recognizer runs named-entity recognition using prose's built-in model.
// The model distinguishes organizations from geo-political entities on a
// best-effort basis; output is advisory.
type Recognizer struct{}

// NewRecognizer creates a new Recognizer.
func NewRecognizer() *Recognizer {
	return &Recognizer{}
}

// Recognize extracts organization and location mentions from text in
// first-occurrence order, deduplicated case-insensitively.
func (r *Recognizer) Recognize(ctx context.Context, text string) (*sitesignal.EntityMentions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return &sitesignal.EntityMentions{}, nil
	}
	if len(text) > maxInputLen {
		cut := text[:maxInputLen]
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
		text = cut
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(true))
	if err != nil {
		return nil, sitesignal.Errorf(sitesignal.EUNAVAILABLE, "ner model: %v", err)
	}

	var orgs, locs []string
	for _, ent := range doc.Entities() {
		switch ent.Label {
		case "ORG", "ORGANIZATION":
			orgs = append(orgs, ent.Text)
		case "GPE", "LOC", "FAC", "LOCATION":
			locs = append(locs, ent.Text)
		}
	}

	return &sitesignal.EntityMentions{
		Organizations: sitesignal.DedupeFold(orgs),
		Locations:     sitesignal.DedupeFold(locs),
	}, nil
}
