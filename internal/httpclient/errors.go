package httpclient

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrResponseTooLarge is returned when an upstream body exceeds MaxResponseBytes.
var ErrResponseTooLarge = errors.New("upstream response too large")

const snippetLen = 200

// UpstreamError is a non-2xx answer. URL never carries the query string.
type UpstreamError struct {
	StatusCode int
	Body       []byte
	URL        string
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("upstream returned %d from %s", e.StatusCode, e.URL)
	if s := e.Snippet(); s != "" {
		msg += ": " + s
	}
	return msg
}

// Snippet is the start of the body on a single line, for logs and error text.
func (e *UpstreamError) Snippet() string {
	s := strings.Join(strings.Fields(string(e.Body)), " ")
	if len(s) <= snippetLen {
		return s
	}
	cut := snippetLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
