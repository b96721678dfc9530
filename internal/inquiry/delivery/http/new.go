package http

import (
	"github.com/gin-gonic/gin"

	"guest-response-agent/internal/inquiry"
	"guest-response-agent/pkg/log"
)

// Handler is the public interface for the inquiry HTTP delivery layer.
type Handler interface {
	Respond(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc inquiry.UseCase
}

// New creates a new HTTP handler for the inquiry domain.
func New(l log.Logger, uc inquiry.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
