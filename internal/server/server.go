package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/osa911/contactrelay/internal/api/handlers"
	"github.com/osa911/contactrelay/internal/api/middleware"
	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/contact"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/mail"
	"github.com/osa911/contactrelay/internal/server/routes"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "contactrelay"

// Relay is what the contact and health handlers need from the mail relay
type Relay interface {
	handlers.Sender
	handlers.RelayStatus
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *logging.Logger
}

// NewServer wires the router, middleware and handlers around relay
func NewServer(cfg *config.Config, logger *logging.Logger, relay Relay) *Server {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Request logging goes through our logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()
	if cfg.Telemetry.Enabled {
		router.Use(otelgin.Middleware(serviceName))
	}
	routes.SetupGlobalMiddleware(router, logger, cfg.LogRequests)

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(relay, logger),
		Health:  handlers.NewHealthHandler(relay),
	}
	m := &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(contact.NewValidator(), logger),
	}
	routes.Setup(router, h, m)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}
}

// NewFromConfig builds a server backed by an SMTP relay using cfg.SMTP
func NewFromConfig(cfg *config.Config, logger *logging.Logger) *Server {
	return NewServer(cfg, logger, mail.NewRelay(cfg.SMTP))
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.ListenAddr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddr(), err)
	}
	return s.Serve(ctx, l)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.cfg.SMTP.Timeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", l.Addr())
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
