// Package openrouter registers OpenRouter. It is OpenAI-compatible but wants
// attribution headers identifying the calling application.
package openrouter

import (
	"github.com/nulzo/summary-gateway/internal/config"
	"github.com/nulzo/summary-gateway/internal/llm"
	"github.com/nulzo/summary-gateway/internal/llm/openai"
)

const (
	DefaultBaseURL  = "https://openrouter.ai/api/v1"
	DefaultModel    = "meta-llama/llama-3.1-70b-instruct"
	DefaultAppURL   = "https://example.com"
	DefaultAppTitle = "Tourify Remote"
)

func init() {
	llm.Register(llm.Descriptor{
		Name:           llm.OpenRouter,
		Label:          "OpenRouter",
		DefaultModel:   DefaultModel,
		DefaultBaseURL: DefaultBaseURL,
		Endpoint:       openai.ChatCompletionsURL,
		Headers:        headers,
		Body:           openai.ChatBody,
	})
}

func headers(cfg config.ProviderConfig) map[string]string {
	h := openai.BearerHeaders(cfg)
	h["HTTP-Referer"] = valueOr(cfg.Config["app_url"], DefaultAppURL)
	h["X-Title"] = valueOr(cfg.Config["app_title"], DefaultAppTitle)
	return h
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
