// Package server provides the HTTP + WebSocket API for congresswatch.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mholloway/congresswatch/internal/server/handler"
	"github.com/mholloway/congresswatch/internal/server/middleware"
	"github.com/mholloway/congresswatch/internal/server/ws"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port        int
	CORSOrigins []string
}

// Handlers aggregates all HTTP handlers the server registers. Stats may be
// nil when no store is wired.
type Handlers struct {
	Health *handler.HealthHandler
	Sync   *handler.SyncHandler
	Stats  *handler.StatsHandler
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a Server with all routes registered and the middleware
// chain (CORS, logging) applied.
func NewServer(cfg Config, handlers Handlers, wsHub *ws.Hub, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", handlers.Health.HealthCheck)

	// The sync trigger accepts both GET and POST invocation.
	mux.HandleFunc("GET /api/sync", handlers.Sync.TriggerSync)
	mux.HandleFunc("POST /api/sync", handlers.Sync.TriggerSync)
	mux.HandleFunc("GET /api/sync/last", handlers.Sync.LastReport)

	if handlers.Stats != nil {
		mux.HandleFunc("GET /api/stats", handlers.Stats.GetStats)
	}

	if wsHub != nil {
		mux.HandleFunc("GET /ws", wsHub.HandleWS)
	}

	var h http.Handler = mux
	h = middleware.Logging(logger)(h)
	h = middleware.CORS(cfg.CORSOrigins)(h)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: h,
		// The sync trigger blocks for up to the orchestrator deadline, so the
		// write timeout must comfortably exceed it.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
	}
}

// Start begins listening for HTTP requests. It blocks until the server
// encounters an error or is shut down.
func (s *Server) Start() error {
	s.logger.Info("server: starting", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// to complete within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server: shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
