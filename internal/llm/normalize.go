package llm

import "github.com/tidwall/gjson"

// Strategy pulls answer text out of one known response envelope.
type Strategy struct {
	Name    string
	Extract func(doc gjson.Result) (string, bool)
}

// Strategies is the extraction priority list. Earlier entries win when a
// body matches more than one shape.
var Strategies = []Strategy{
	{Name: "string", Extract: bareString},
	{Name: "text", Extract: path("text")},
	{Name: "output", Extract: path("output")},
	{Name: "response.text", Extract: path("response.text")},
	{Name: "gemini", Extract: path("candidates.0.content.parts.0.text")},
	{Name: "openai", Extract: path("choices.0.message.content")},
	{Name: "anthropic", Extract: path("content.0.text")},
}

// Normalize returns the first non-empty text any strategy can find, or "".
func Normalize(raw RawResponse) string {
	text, _ := NormalizeWith(raw)
	return text
}

// NormalizeWith also reports which strategy matched.
func NormalizeWith(raw RawResponse) (string, string) {
	if len(raw) == 0 {
		return "", ""
	}
	doc := gjson.ParseBytes(raw)
	for _, s := range Strategies {
		if text, ok := s.Extract(doc); ok {
			return text, s.Name
		}
	}
	return "", ""
}

func bareString(doc gjson.Result) (string, bool) {
	if doc.Type != gjson.String || doc.Str == "" {
		return "", false
	}
	return doc.Str, true
}

func path(p string) func(gjson.Result) (string, bool) {
	return func(doc gjson.Result) (string, bool) {
		if !doc.IsObject() {
			return "", false
		}
		return bareString(doc.Get(p))
	}
}
