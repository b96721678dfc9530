package httpserver

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	inquiryHTTP "guest-response-agent/internal/inquiry/delivery/http"
	"guest-response-agent/internal/middleware"
	"guest-response-agent/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Inquiry domain
	inquiryHandler inquiryHTTP.Handler

	mw middleware.Middleware
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	InquiryHandler inquiryHTTP.Handler
	Middleware     middleware.Middleware
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.Default(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		inquiryHandler: cfg.InquiryHandler,
		mw:             cfg.Middleware,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.inquiryHandler == nil {
		return errors.New("inquiry handler is required")
	}
	return nil
}

// Run maps all handlers and starts listening on the configured port.
// It blocks until the server exits.
func (srv HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return err
	}

	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}
