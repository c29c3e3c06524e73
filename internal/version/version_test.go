package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(tag string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name":"` + tag + `"}`))
	}))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		latest   string
		outdated bool
	}{
		{"older", "v0.1.0", "v0.2.0", true},
		{"same", "v1.0.0", "1.0.0", false},
		{"newer", "v1.1.0", "v1.0.9", false},
		{"prerelease is older", "v1.0.0-rc1", "v1.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := releaseServer(tt.latest)
			defer server.Close()

			latest, outdated, err := Check(context.Background(), server.Client(), server.URL, tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.latest, latest)
			assert.Equal(t, tt.outdated, outdated)
		})
	}
}

func TestCheck_BadTag(t *testing.T) {
	server := releaseServer("nightly")
	defer server.Close()

	_, _, err := Check(context.Background(), server.Client(), server.URL, Version)
	assert.Error(t, err)
}
