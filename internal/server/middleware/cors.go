package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS opens the API to browser callers on any origin. Preflight requests
// are answered here and never reach a handler.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, X-App-Name, X-Request-ID")
		h.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
