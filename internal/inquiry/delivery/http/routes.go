package http

import (
	"github.com/gin-gonic/gin"

	"guest-response-agent/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// All routes are authenticated and rate limited.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	inquiries := rg.Group("/inquiries")
	{
		inquiries.POST("/respond", mw.RequestID(), mw.Auth(), mw.RateLimit(), h.Respond)
	}
}
