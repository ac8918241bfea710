package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/logging"
)

// Logging emits one structured entry per completed request.
func Logging(logger logging.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("elapsed", time.Since(start)),
			logging.String("request_id", GetRequestID(c)),
			logging.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("request completed", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("request completed", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
