package gateway

import (
	"testing"
	"time"

	"github.com/nulzo/summary-gateway/internal/config"
	"github.com/nulzo/summary-gateway/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	_ "github.com/nulzo/summary-gateway/internal/llm/anthropic"
	_ "github.com/nulzo/summary-gateway/internal/llm/gemini"
	_ "github.com/nulzo/summary-gateway/internal/llm/groq"
	_ "github.com/nulzo/summary-gateway/internal/llm/openai"
	_ "github.com/nulzo/summary-gateway/internal/llm/openrouter"
)

func TestParseOrder(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []llm.ProviderName
	}{
		{"blank uses default", "", llm.DefaultOrder()},
		{"whitespace uses default", "  ", llm.DefaultOrder()},
		{"only commas uses default", ",,", llm.DefaultOrder()},
		{"trims tokens", " groq , gemini ", []llm.ProviderName{llm.Groq, llm.Gemini}},
		{"drops empty tokens", "openai,,anthropic", []llm.ProviderName{llm.OpenAI, llm.Anthropic}},
		{"keeps unknown tokens", "mistral,gemini", []llm.ProviderName{"mistral", llm.Gemini}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOrder(tt.raw))
		})
	}
}

func TestNewSettings(t *testing.T) {
	cfg := &config.Config{
		Gateway: config.GatewayConfig{
			ProviderOrder: "openrouter",
			AppURL:        "https://tourify.cl",
			AppTitle:      "Tourify Remote",
		},
		Providers: map[string]config.ProviderConfig{
			"openrouter": {APIKey: "k", Config: map[string]string{"app_title": "Custom"}},
			"gemini":     {},
		},
	}

	s := NewSettings(cfg)
	assert.Equal(t, []llm.ProviderName{llm.OpenRouter}, s.Order)
	assert.Equal(t, DefaultProviderTimeout, s.ProviderTimeout)
	assert.Equal(t, "https://tourify.cl", s.Providers[llm.OpenRouter].Config["app_url"])
	assert.Equal(t, "Custom", s.Providers[llm.OpenRouter].Config["app_title"])
	assert.Equal(t, "gemini", s.Providers[llm.Gemini].Name)
	assert.Equal(t, 0, s.Position(llm.OpenRouter))
	assert.Equal(t, -1, s.Position(llm.Gemini))
}

func TestBootstrapProviders_BuildsEveryRegisteredProvider(t *testing.T) {
	s := &Settings{
		Order: llm.DefaultOrder(),
		Providers: map[llm.ProviderName]config.ProviderConfig{
			llm.Groq: {Name: "groq", APIKey: "gsk", Model: "llama-3.3-70b"},
		},
		ProviderTimeout: time.Second,
	}

	adapters := BootstrapProviders(s, nil, zap.NewNop())
	require.Len(t, adapters, 5)

	assert.True(t, adapters[llm.Groq].Configured())
	assert.Equal(t, "llama-3.3-70b", adapters[llm.Groq].Model())
	assert.False(t, adapters[llm.Gemini].Configured())
	assert.Equal(t, "gemini-1.5-flash", adapters[llm.Gemini].Model())
	assert.Equal(t, "meta-llama/llama-3.1-70b-instruct", adapters[llm.OpenRouter].Model())
}
