package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nulzo/summary-gateway/internal/config"
	"github.com/nulzo/summary-gateway/internal/llm"
	_ "github.com/nulzo/summary-gateway/internal/llm/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter(t *testing.T, baseURL string, client *http.Client) llm.Adapter {
	t.Helper()
	desc, err := llm.Get(llm.Gemini)
	require.NoError(t, err)
	return llm.NewClient(desc, config.ProviderConfig{APIKey: "k&y", BaseURL: baseURL}, client)
}

func TestGeminiComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "k&y", r.URL.Query().Get("key"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		require.Len(t, body.Contents[0].Parts, 1)
		assert.Contains(t, body.Contents[0].Parts[0].Text, "bajo 150 palabras")

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"G"}],"role":"model"}}]}`))
	}))
	defer server.Close()

	raw, err := newAdapter(t, server.URL+"/v1beta", server.Client()).Complete(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "G", llm.Normalize(raw))
}

func TestGeminiStatusErrorDoesNotLeakKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newAdapter(t, server.URL, server.Client()).Complete(context.Background(), "abc")
	require.Error(t, err)
	assert.Equal(t, "Gemini 500", err.Error())
	assert.NotContains(t, err.Error(), "k&y")
}

func TestGeminiMissingKey(t *testing.T) {
	desc, err := llm.Get(llm.Gemini)
	require.NoError(t, err)

	_, err = llm.NewClient(desc, config.ProviderConfig{}, nil).Complete(context.Background(), "abc")
	assert.EqualError(t, err, "Missing GEMINI_API_KEY")
}
