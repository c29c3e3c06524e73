package groq_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nulzo/summary-gateway/internal/config"
	"github.com/nulzo/summary-gateway/internal/llm"
	_ "github.com/nulzo/summary-gateway/internal/llm/groq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroqComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("OpenAI-Organization"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Q"}}]}`))
	}))
	defer server.Close()

	desc, err := llm.Get(llm.Groq)
	require.NoError(t, err)

	adapter := llm.NewClient(desc, config.ProviderConfig{APIKey: "gsk", BaseURL: server.URL + "/openai/v1"}, server.Client())
	assert.Equal(t, "llama-3.1-70b-versatile", adapter.Model())

	raw, err := adapter.Complete(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Q", llm.Normalize(raw))
}
