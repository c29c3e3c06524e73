package openai

import (
	"github.com/nulzo/summary-gateway/internal/config"
	"github.com/nulzo/summary-gateway/internal/llm"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

func init() {
	llm.Register(llm.Descriptor{
		Name:           llm.OpenAI,
		Label:          "OpenAI",
		DefaultModel:   DefaultModel,
		DefaultBaseURL: DefaultBaseURL,
		Endpoint:       ChatCompletionsURL,
		Headers:        headers,
		Body:           ChatBody,
	})
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

// ChatBody is the chat-completions request shared by every
// OpenAI-compatible provider: one user message carrying the prompt.
func ChatBody(model, prompt string) interface{} {
	return chatRequest{
		Model:    model,
		Messages: []message{{Role: "user", Content: prompt}},
	}
}

func ChatCompletionsURL(baseURL, _, _ string) string {
	return baseURL + "/chat/completions"
}

// BearerHeaders authenticates with the API key as a bearer token.
func BearerHeaders(cfg config.ProviderConfig) map[string]string {
	return map[string]string{"Authorization": "Bearer " + cfg.APIKey}
}

func headers(cfg config.ProviderConfig) map[string]string {
	h := BearerHeaders(cfg)
	if org := cfg.Config["organization"]; org != "" {
		h["OpenAI-Organization"] = org
	}
	return h
}
