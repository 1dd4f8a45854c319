// Package server hosts the BoardReviews HTTP API. It owns the listener and
// middleware chain, writes RFC 7807 problem responses, and serves the routes
// that exist regardless of domain handlers: health, metrics and the 404
// catch-all.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/HerbHall/boardreviews/internal/version"
)

// RouteRegistrar mounts a group of handlers on the server's mux.
type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// RateLimit is the sustained requests per second across all clients.
	// Zero or negative disables rate limiting.
	RateLimit float64
	Burst     int
}

// Server is the main BoardReviews server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	metrics    *metrics
	registry   *prometheus.Registry
}

// New creates a new Server with routes from each registrar mounted.
func New(opts Options, logger *zap.Logger, routes ...RouteRegistrar) *Server {
	if opts.Addr == "" {
		opts.Addr = "0.0.0.0:9090"
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 15 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 15 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := http.NewServeMux()
	s := &Server{
		logger:   logger,
		mux:      mux,
		metrics:  newMetrics(reg),
		registry: reg,
	}

	s.registerCoreRoutes()
	for _, r := range routes {
		r.RegisterRoutes(mux)
	}

	var handler http.Handler = mux
	handler = rateLimitMiddleware(opts.RateLimit, opts.Burst)(handler)
	handler = recoverMiddleware(logger)(handler)
	handler = corsMiddleware(handler)
	handler = s.observeMiddleware(handler)
	handler = requestIDMiddleware(handler)

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      handler,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
	}
	return s
}

// registerCoreRoutes sets up routes that are always available.
func (s *Server) registerCoreRoutes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.mux.HandleFunc("/", s.handleRouteNotFound)
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// handleHealth returns the server health status.
//
//	@Summary		Health check
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Router			/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-BoardReviews-Version", version.Short())
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"service": "boardreviews",
		"version": version.Map(),
	})
}

// handleRouteNotFound answers any request no other pattern matched,
// including a known path with an unsupported method.
func (s *Server) handleRouteNotFound(w http.ResponseWriter, r *http.Request) {
	NotFound(w, DetailRouteNotFound, r.URL.Path)
}
