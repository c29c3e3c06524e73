package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nulzo/summary-gateway/internal/store"
)

const RequestIDHeader = "X-Request-ID"

// Identity tags the request context with the calling app (X-App-Name) and a
// request ID, echoing the ID back so clients can correlate attempt logs.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if appName := c.GetHeader("X-App-Name"); appName != "" {
			ctx = context.WithValue(ctx, store.ContextKeyAppName, appName)
		}

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = context.WithValue(ctx, store.ContextKeyRequestID, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Set("request_id", requestID)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
