package gemini

import (
	"net/url"

	"github.com/nulzo/summary-gateway/internal/llm"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"
)

func init() {
	llm.Register(llm.Descriptor{
		Name:           llm.Gemini,
		Label:          "Gemini",
		DefaultModel:   DefaultModel,
		DefaultBaseURL: DefaultBaseURL,
		Endpoint:       endpoint,
		Body:           body,
	})
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

// Gemini authenticates through the key query parameter, not a header.
func endpoint(baseURL, model, apiKey string) string {
	return baseURL + "/models/" + url.PathEscape(model) + ":generateContent?key=" + url.QueryEscape(apiKey)
}

func body(_, prompt string) interface{} {
	return generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
}
