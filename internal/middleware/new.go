package middleware

import (
	"guest-response-agent/config"
	"guest-response-agent/pkg/log"
)

// Middleware bundles the HTTP middleware used by delivery routes.
type Middleware struct {
	l       log.Logger
	apiKeys []string
	limiter *rateLimiter
}

// New creates the middleware set from the API surface configuration.
func New(l log.Logger, cfg config.APIConfig) Middleware {
	return Middleware{
		l:       l,
		apiKeys: cfg.Keys,
		limiter: newRateLimiter(cfg.RateLimitPerMinute),
	}
}
