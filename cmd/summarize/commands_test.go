package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nulzo/summary-gateway/internal/cli"
	"github.com/nulzo/summary-gateway/internal/client"
	"github.com/nulzo/summary-gateway/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, url, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cli.SetEnabled(false)

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--url", url}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSessionCmd_ReadsStdin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.SummaryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "bitácora de la sesión", req.SessionData)
		assert.Equal(t, "groq", req.Provider)
		assert.Equal(t, "summarize-cli", r.Header.Get("X-App-Name"))
		_, _ = w.Write([]byte(`{"provider":"groq","text":"Resumen listo"}`))
	}))
	defer server.Close()

	out, errOut, err := run(t, server.URL, "bitácora de la sesión", "session", "-p", "groq")
	require.NoError(t, err)
	assert.Equal(t, "Resumen listo\n", out)
	assert.Contains(t, errOut, "groq")
}

func TestSessionCmd_PrintsFallbackOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"All providers failed","detail":"Gemini 500"}`))
	}))
	defer server.Close()

	out, errOut, err := run(t, server.URL, "", "session", "-d", "abc")
	require.Error(t, err)
	assert.Equal(t, client.FallbackMessage+"\n", out)
	assert.Contains(t, errOut, "Gemini 500")
}

func TestRecommendCmd_RequiresFlags(t *testing.T) {
	_, _, err := run(t, "http://127.0.0.1:1", "", "recommend", "-e", "Escalera 3")
	assert.EqualError(t, err, "--equipment and --issue are required")
}

func TestProvidersCmd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"object":"list","order":["gemini","groq"],"data":[
			{"name":"gemini","model":"gemini-1.5-flash","configured":true,"position":0},
			{"name":"openrouter","model":"meta-llama/llama-3.1-70b-instruct","configured":false,"position":-1}]}`))
	}))
	defer server.Close()

	out, _, err := run(t, server.URL, "", "providers")
	require.NoError(t, err)
	assert.Contains(t, out, "gemini → groq")
	assert.Contains(t, out, "1st")
	assert.Contains(t, out, "pin only")
}

func TestStatsCmd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "30", r.URL.Query().Get("days"))
		_, _ = w.Write([]byte(`{"object":"list","data":[
			{"date":"2026-10-19","provider":"gemini","total_attempts":1200,"successes":600,"failures":600,"avg_latency":250}]}`))
	}))
	defer server.Close()

	out, _, err := run(t, server.URL, "", "stats", "--days", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "250ms")
}
