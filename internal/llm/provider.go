package llm

import (
	"context"
	"strings"
)

type ProviderName string

const (
	Gemini     ProviderName = "gemini"
	OpenAI     ProviderName = "openai"
	Anthropic  ProviderName = "anthropic"
	Groq       ProviderName = "groq"
	OpenRouter ProviderName = "openrouter"
)

// CredentialEnv is the environment variable holding the provider's API key.
func (p ProviderName) CredentialEnv() string {
	return strings.ToUpper(string(p)) + "_API_KEY"
}

// DefaultOrder is the fallback chain used when none is configured.
// OpenRouter is deliberately absent: it is only reached when pinned or listed.
func DefaultOrder() []ProviderName {
	return []ProviderName{Gemini, Groq, OpenAI, Anthropic}
}

// RawResponse is an upstream body exactly as received. Only the normalizer
// looks inside it.
type RawResponse []byte

// Adapter performs one completion call against one provider.
// Implementations never retry; falling back is the caller's job.
type Adapter interface {
	Name() ProviderName
	Model() string
	Configured() bool
	Complete(ctx context.Context, sessionData string) (RawResponse, error)
}
