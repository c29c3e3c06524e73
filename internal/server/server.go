package server

import (
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/nulzo/summary-gateway/internal/analytics"
	"github.com/nulzo/summary-gateway/internal/config"
	"github.com/nulzo/summary-gateway/internal/gateway"
	"github.com/nulzo/summary-gateway/internal/server/middleware"
	"go.uber.org/zap"
)

type Server struct {
	router    *gin.Engine
	config    *config.Config
	logger    *zap.Logger
	service   gateway.Service
	analytics analytics.Service
	version   string
}

// New builds the HTTP server. analyticsService may be nil when attempt
// persistence is disabled.
func New(cfg *config.Config, logger *zap.Logger, service gateway.Service, analyticsService analytics.Service, version string) *Server {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	engine.Use(ginzap.RecoveryWithZap(logger, true))
	engine.Use(middleware.Logger(logger, "/health"))

	s := &Server{
		router:    engine,
		config:    cfg,
		logger:    logger,
		service:   service,
		analytics: analyticsService,
		version:   version,
	}

	s.SetupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
