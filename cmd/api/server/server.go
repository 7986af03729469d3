package server

import (
	"context"
	"net/http"
	"time"

	"farm-gateway/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the HTTP server and its dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance wrapping the configured router
func New(cfg *config.Config, l *zap.Logger, router *gin.Engine) *Server {
	addr := ":" + cfg.App.Port

	l.Info("HTTP gateway configured", zap.String("address", addr))

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start binds the listening socket and serves until shutdown. A bind
// failure is the only fatal error class in the gateway.
func (s *Server) Start() error {
	s.Logger.Info("HTTP gateway running", zap.String("address", s.HTTP.Addr))
	return s.HTTP.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTP.Shutdown(ctx)
}
