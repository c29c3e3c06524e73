package anthropic

import (
	"github.com/nulzo/summary-gateway/internal/config"
	"github.com/nulzo/summary-gateway/internal/llm"
)

const (
	DefaultBaseURL = "https://api.anthropic.com/v1"
	DefaultModel   = "claude-3-5-haiku-20241022"
	DefaultVersion = "2023-06-01"

	maxTokens = 800
)

func init() {
	llm.Register(llm.Descriptor{
		Name:           llm.Anthropic,
		Label:          "Anthropic",
		DefaultModel:   DefaultModel,
		DefaultBaseURL: DefaultBaseURL,
		Endpoint: func(baseURL, _, _ string) string {
			return baseURL + "/messages"
		},
		Headers: headers,
		Body:    body,
	})
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

func headers(cfg config.ProviderConfig) map[string]string {
	version := cfg.Config["version"]
	if version == "" {
		version = DefaultVersion
	}
	return map[string]string{
		"x-api-key":         cfg.APIKey,
		"anthropic-version": version,
	}
}

func body(model, prompt string) interface{} {
	return messagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}
}
