package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_ProviderShapes(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		strategy string
	}{
		{
			name:     "gemini",
			raw:      `{"candidates":[{"content":{"parts":[{"text":"resumen gemini"},{"text":"ignored"}],"role":"model"},"finishReason":"STOP"}]}`,
			want:     "resumen gemini",
			strategy: "gemini",
		},
		{
			name:     "openai compatible",
			raw:      `{"id":"chatcmpl-1","choices":[{"index":0,"message":{"role":"assistant","content":"resumen groq"},"finish_reason":"stop"}]}`,
			want:     "resumen groq",
			strategy: "openai",
		},
		{
			name:     "anthropic",
			raw:      `{"id":"msg_1","type":"message","content":[{"type":"text","text":"resumen claude"}],"stop_reason":"end_turn"}`,
			want:     "resumen claude",
			strategy: "anthropic",
		},
		{name: "direct text", raw: `{"text":"plain"}`, want: "plain", strategy: "text"},
		{name: "output", raw: `{"output":"generated"}`, want: "generated", strategy: "output"},
		{name: "nested response", raw: `{"response":{"text":"nested"}}`, want: "nested", strategy: "response.text"},
		{name: "bare string", raw: `"just text"`, want: "just text", strategy: "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, strategy := NormalizeWith(RawResponse(tt.raw))
			assert.Equal(t, tt.want, text)
			assert.Equal(t, tt.strategy, strategy)
		})
	}
}

func TestNormalize_PriorityOrder(t *testing.T) {
	raw := RawResponse(`{
		"content":[{"type":"text","text":"anthropic"}],
		"choices":[{"message":{"content":"openai"}}],
		"output":"output",
		"text":"direct"
	}`)
	assert.Equal(t, "direct", Normalize(raw))

	raw = RawResponse(`{"content":[{"text":"anthropic"}],"choices":[{"message":{"content":"openai"}}]}`)
	assert.Equal(t, "openai", Normalize(raw))
}

func TestNormalize_SkipsEmptyAndNonStringValues(t *testing.T) {
	// empty and non-string matches fall through to later strategies
	raw := RawResponse(`{"text":"","output":42,"choices":[{"message":{"content":"fallthrough"}}]}`)
	assert.Equal(t, "fallthrough", Normalize(raw))
}

func TestNormalize_NoMatch(t *testing.T) {
	for _, raw := range []string{``, `null`, `{}`, `[]`, `""`, `{"candidates":[]}`, `{"choices":[{"message":{"content":null}}]}`} {
		assert.Empty(t, Normalize(RawResponse(raw)), raw)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := RawResponse(`{"choices":[{"message":{"content":"same"}}]}`)
	assert.Equal(t, Normalize(raw), Normalize(raw))
}
