package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/summary-gateway/pkg/api"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error attached by a handler as an RFC 9457 problem.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var problem *api.Problem
		if errors.As(err, &problem) {
			if problem.Log != nil {
				logger.Error("Request failed",
					zap.Int("status", problem.Status),
					zap.String("path", c.Request.URL.Path),
					zap.Error(problem.Log))
			}
			c.JSON(problem.Status, problem)
			c.Abort()
			return
		}

		logger.Error("Unhandled error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.NewError(
			http.StatusInternalServerError,
			"Internal Server Error",
			"An unexpected error occurred.",
		))
		c.Abort()
	}
}
