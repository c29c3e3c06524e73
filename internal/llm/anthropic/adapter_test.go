package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nulzo/summary-gateway/internal/config"
	"github.com/nulzo/summary-gateway/internal/llm"
	_ "github.com/nulzo/summary-gateway/internal/llm/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-3-5-haiku-20241022", body["model"])
		assert.Equal(t, float64(800), body["max_tokens"])

		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","content":[{"type":"text","text":"A"}]}`))
	}))
	defer server.Close()

	desc, err := llm.Get(llm.Anthropic)
	require.NoError(t, err)

	adapter := llm.NewClient(desc, config.ProviderConfig{APIKey: "sk-ant", BaseURL: server.URL + "/v1"}, server.Client())

	raw, err := adapter.Complete(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "A", llm.Normalize(raw))
}

func TestAnthropicVersionOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-01-01", r.Header.Get("anthropic-version"))
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	desc, err := llm.Get(llm.Anthropic)
	require.NoError(t, err)

	adapter := llm.NewClient(desc, config.ProviderConfig{
		APIKey:  "sk-ant",
		BaseURL: server.URL,
		Config:  map[string]string{"version": "2024-01-01"},
	}, server.Client())

	_, err = adapter.Complete(context.Background(), "abc")
	assert.EqualError(t, err, "Anthropic 500")
}
