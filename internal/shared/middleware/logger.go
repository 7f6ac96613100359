package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Logger emits one structured line per request. The principal is resolved
// after the handler chain ran, so authenticated writes log who made them.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		event := log.Info().
			Str("request_id", c.GetString(ContextRequestID)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Int("bytes", c.Writer.Size()).
			Dur("latency_ms", time.Since(start)).
			Str("ip", c.ClientIP())

		if query != "" {
			event = event.Str("query", query)
		}
		if userID, ok := PrincipalID(c); ok {
			event = event.Int64("user_id", userID)
		}

		event.Msg("HTTP Request")
	}
}
