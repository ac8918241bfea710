package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/innovatlas/country-innovation/internal/config"
	"github.com/innovatlas/country-innovation/internal/infrastructure/monitoring/logging"
)

// Server wraps the standard http.Server with the service's lifecycle
// conventions.
type Server struct {
	srv    *http.Server
	logger logging.Logger
}

// NewServer binds the router to the configured port and timeouts.
func NewServer(cfg config.ServerConfig, handler *gin.Engine, logger logging.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: logger.Named("server"),
	}
}

// Start serves until Shutdown is called.  It returns nil on graceful close.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.srv.Shutdown(ctx)
}
