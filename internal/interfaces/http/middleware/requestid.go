// Package middleware holds the gin middleware chain: request identity,
// structured request logging, CORS and metrics.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the request id header, honored inbound and always set
// outbound.
const HeaderRequestID = "X-Request-ID"

// ContextKeyRequestID is the gin context key the request id is stored under.
const ContextKeyRequestID = "request_id"

// RequestID assigns every request an id, reusing the caller's when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID returns the request id set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get(ContextKeyRequestID); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
