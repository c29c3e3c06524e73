package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// MaxResponseBytes caps how much of an upstream body is read.
var MaxResponseBytes int64 = 8 << 20

// HTTPClient defines the interface for an HTTP client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SendRequest handles the common logic of creating a request, sending it, and checking the status code.
// The response body is returned as-is so callers decide how to interpret it.
func SendRequest(ctx context.Context, client HTTPClient, method, url string, headers map[string]string, body interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(respBody)) > MaxResponseBytes {
		return nil, fmt.Errorf("%w: more than %d bytes from %s", ErrResponseTooLarge, MaxResponseBytes, redact(req))
	}

	// Check for non-2xx status codes
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			URL:        redact(req),
		}
	}

	return respBody, nil
}

// redact drops the query string, some providers carry the API key there.
func redact(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""
	return u.Redacted()
}
