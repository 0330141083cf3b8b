package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/medical-staff/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger records each request as a security event. Events are persisted
// to security_logs once util.SetSecurityLoggerDB has been called at startup.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}

		event := util.SecurityEvent{
			EventType: util.EventEndpointCall,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		}
		if claims, ok := GetAccountClaims(c); ok {
			event.AccountID = claims.Subject
			event.Kind = claims.Kind
			event.CPF = claims.CPF
		}
		util.LogSecurityEvent(event)
	}
}
