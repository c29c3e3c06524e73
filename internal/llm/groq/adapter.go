// Package groq registers Groq, which speaks the OpenAI chat-completions dialect.
package groq

import (
	"github.com/nulzo/summary-gateway/internal/llm"
	"github.com/nulzo/summary-gateway/internal/llm/openai"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.1-70b-versatile"
)

func init() {
	llm.Register(llm.Descriptor{
		Name:           llm.Groq,
		Label:          "Groq",
		DefaultModel:   DefaultModel,
		DefaultBaseURL: DefaultBaseURL,
		Endpoint:       openai.ChatCompletionsURL,
		Headers:        openai.BearerHeaders,
		Body:           openai.ChatBody,
	})
}
