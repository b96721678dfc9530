package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"guest-response-agent/pkg/response"
)

const apiKeyHeader = "X-API-Key"

// Auth validates the X-API-Key header against the configured keys.
// With no keys configured, authentication is disabled (development mode).
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(m.apiKeys) == 0 {
			c.Next()
			return
		}

		provided := c.GetHeader(apiKeyHeader)
		if provided == "" || !m.keyMatches(provided) {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// keyMatches compares in constant time against every configured key so
// timing does not reveal which key prefix was close.
func (m Middleware) keyMatches(provided string) bool {
	matched := false
	for _, key := range m.apiKeys {
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) == 1 {
			matched = true
		}
	}
	return matched
}
