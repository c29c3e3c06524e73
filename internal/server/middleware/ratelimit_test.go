package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRateLimiter_RetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(0.5, 1, zap.NewNop())

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/api/ai/providers", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/ai/providers", nil)
		req.RemoteAddr = "10.0.0.7:4321"
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)

	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))

	// the rejected request did not push the next token further out
	w = send()
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1, zap.NewNop())
	rl.now = func() time.Time { return now }
	rl.lastSweep = now

	assert.Zero(t, rl.reserve("10.0.0.1"))
	assert.Zero(t, rl.reserve("10.0.0.2"))
	assert.Len(t, rl.clients, 2)

	now = now.Add(clientIdleTTL / 2)
	assert.Zero(t, rl.reserve("10.0.0.2"))

	now = now.Add(clientIdleTTL / 2)
	assert.Zero(t, rl.reserve("10.0.0.3"))

	assert.NotContains(t, rl.clients, "10.0.0.1")
	assert.Contains(t, rl.clients, "10.0.0.2")
	assert.Contains(t, rl.clients, "10.0.0.3")
}
