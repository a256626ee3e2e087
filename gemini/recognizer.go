// Package gemini provides an LLM-backed implementation of
// sitesignal.Recognizer using Google Gemini. It is an alternative to the
// local prose model, selected by configuration when an API key is present.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sitesignal/sitesignal"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// maxInputLen bounds the text sent to the model.
const maxInputLen = 8000

// Ensure Recognizer implements sitesignal.Recognizer at compile time.
var _ sitesignal.Recognizer = (*Recognizer)(nil)

// Recognizer extracts named entities using Google Gemini.
type Recognizer struct {
	client *genai.Client
}

// NewRecognizer creates a new Recognizer.
func NewRecognizer(client *genai.Client) *Recognizer {
	return &Recognizer{client: client}
}

// Recognize extracts organization and location mentions from text.
// Returns EUNAVAILABLE when the client is not configured or the model
// cannot be reached; callers degrade to empty mentions.
func (r *Recognizer) Recognize(ctx context.Context, text string) (*sitesignal.EntityMentions, error) {
	if r.client == nil {
		return nil, sitesignal.Errorf(sitesignal.EUNAVAILABLE, "gemini client not configured")
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

	result, err := r.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(text)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, sitesignal.Errorf(sitesignal.EUNAVAILABLE, "gemini: %v", err)
	}
	if result == nil {
		return nil, sitesignal.Errorf(sitesignal.EINTERNAL, "gemini returned nil result")
	}

	return ParseEntities(result.Text())
}

// BuildConfig returns the GenerateContentConfig for entity extraction.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a named-entity recognition system. Extract company/organization names and geographic place names mentioned in the provided web page text. Respond with JSON only, in the shape {\"organizations\": [...], \"locations\": [...]}, listing each entity once in order of first appearance. Do not invent entities.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt builds the user prompt containing the page text.
func BuildUserPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("<page_text>\n")
	sb.WriteString(text)
	sb.WriteString("\n</page_text>\n\n")
	fmt.Fprintf(&sb, "Extract organizations and locations from the page text above.")
	return sb.String()
}

// ParseEntities decodes the model's JSON response into entity mentions.
func ParseEntities(raw string) (*sitesignal.EntityMentions, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var payload struct {
		Organizations []string `json:"organizations"`
		Locations     []string `json:"locations"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return nil, sitesignal.Errorf(sitesignal.EINTERNAL, "malformed entity response: %v", err)
	}

	return &sitesignal.EntityMentions{
		Organizations: sitesignal.DedupeFold(payload.Organizations),
		Locations:     sitesignal.DedupeFold(payload.Locations),
	}, nil
}
