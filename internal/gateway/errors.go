package gateway

import (
	"time"

	"github.com/nulzo/summary-gateway/internal/llm"
)

const allProvidersFailed = "All providers failed"

// Attempt is the outcome of calling one provider.
type Attempt struct {
	Provider llm.ProviderName
	Err      error
	Latency  time.Duration
}

// AllProvidersFailedError is returned once every provider in the order has
// failed or produced empty text.
type AllProvidersFailedError struct {
	Attempts []Attempt
	Last     error
}

func (e *AllProvidersFailedError) Error() string {
	return allProvidersFailed
}

// Detail is the last error seen, the only diagnostic sent to callers.
func (e *AllProvidersFailedError) Detail() string {
	if e.Last == nil {
		return ""
	}
	return e.Last.Error()
}

func (e *AllProvidersFailedError) Unwrap() error {
	return e.Last
}
