package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/summary-gateway/internal/analytics"
	"github.com/nulzo/summary-gateway/pkg/api"
)

type AnalyticsHandler struct {
	service analytics.Service
}

// NewAnalyticsHandler accepts a nil service when persistence is disabled.
func NewAnalyticsHandler(service analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
	}
}

// GetUsage returns per-provider attempt stats for the last N days. A missing
// days means DefaultDays; any integer is clamped to [1, MaxDays].
//
// GET /api/ai/stats?days=7
func (h *AnalyticsHandler) GetUsage(c *gin.Context) {
	if h.service == nil {
		_ = c.Error(api.ServiceUnavailableError("Attempt analytics are disabled (DATABASE_ENABLED=false)"))
		return
	}

	days := analytics.DefaultDays
	if raw, ok := c.GetQuery("days"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			_ = c.Error(api.BadRequestError("Invalid 'days' parameter"))
			return
		}
		days = n
	}

	stats, err := h.service.GetUsageOverview(c.Request.Context(), days)
	if err != nil {
		_ = c.Error(api.InternalError("Failed to fetch analytics", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   stats,
	})
}

// GetRequest returns the attempts made for one gateway request.
//
// GET /api/ai/stats/requests/:id
func (h *AnalyticsHandler) GetRequest(c *gin.Context) {
	if h.service == nil {
		_ = c.Error(api.ServiceUnavailableError("Attempt analytics are disabled (DATABASE_ENABLED=false)"))
		return
	}

	attempts, err := h.service.GetRequestAttempts(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(api.InternalError("Failed to fetch request attempts", err))
		return
	}
	if len(attempts) == 0 {
		_ = c.Error(api.NewError(http.StatusNotFound, "Not Found", "No attempts recorded for this request"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   attempts,
	})
}
