package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/summary-gateway/internal/server/middleware"
	v1 "github.com/nulzo/summary-gateway/internal/server/v1"
	"github.com/nulzo/summary-gateway/internal/server/validator"
)

func (s *Server) SetupRoutes() {
	if s.config.Tracing.Enabled {
		s.router.Use(middleware.Tracing(s.config.Tracing.ServiceName))
	}
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.Identity())
	s.router.Use(middleware.ErrorHandler(s.logger))

	// only POST (and the CORS preflight) are valid on the summary routes
	s.router.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	healthHandler := v1.NewHealthHandler(s.version)
	s.router.GET("/health", healthHandler.Health)

	limiter := middleware.NewRateLimiter(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst, s.logger)

	api := s.router.Group("/api/ai")
	api.Use(limiter.Middleware())
	{
		summaryHandler := v1.NewSummaryHandler(s.service, validator.New())
		api.POST("", summaryHandler.Summarize)
		api.POST("/report", summaryHandler.Report)
		api.POST("/recommendations", summaryHandler.Recommendations)
		api.GET("/providers", summaryHandler.Providers)

		analyticsHandler := v1.NewAnalyticsHandler(s.analytics)
		api.GET("/stats", analyticsHandler.GetUsage)
		api.GET("/stats/requests/:id", analyticsHandler.GetRequest)
	}
}
