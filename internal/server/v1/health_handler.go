package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	startTime time.Time
	version   string
}

func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		version:   version,
	}
}

// Health returns the health status, uptime and version of the gateway.
//
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": h.version,
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
