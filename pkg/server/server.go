// Package server exposes the vectorization pipeline as an HTTP API.
//
// # Routes
//
//   - GET  /healthz: liveness probe with build version
//   - GET  /v1/presets: available parameter presets
//   - POST /v1/vectorize: mask image in the body, artifact bytes out
//
// Vectorize accepts the same knobs as the CLI as query parameters
// (format, preset, filters, min_points, bridge_gap, traversal, threshold,
// invert, merge_tolerance, stroke_width, refresh) and answers with the
// rendered artifact under its content type. Errors come back as
// {code, message} JSON with a status derived from the error code.
//
// Each request is tagged with a job id that appears in the X-Job-ID
// response header and the request log.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/linetrace/pkg/cache"
	"github.com/matzehuels/linetrace/pkg/pipeline"
	"github.com/matzehuels/linetrace/pkg/preset"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultRequestTimeout bounds a single request end to end.
	DefaultRequestTimeout = 60 * time.Second

	// maxMaskBytes caps the uploaded mask size.
	maxMaskBytes = 32 << 20 // 32 MiB

	// shutdownGrace is how long in-flight requests get to finish.
	shutdownGrace = 5 * time.Second
)

// Config holds server settings.
type Config struct {
	// Addr is the listen address. Empty means DefaultAddr.
	Addr string

	// Cache backs pipeline stage caching. Nil disables caching.
	Cache cache.Cache

	// Logger receives request logs. Nil means the default logger.
	Logger *log.Logger

	// Timeout bounds each request. Zero means DefaultRequestTimeout.
	Timeout time.Duration
}

// Server hosts the vectorization API.
type Server struct {
	runner  *pipeline.Runner
	presets *preset.Library
	logger  *log.Logger
	http    *http.Server
}

// New creates a Server. The preset library is loaded once at startup so a
// broken user preset fails here rather than on the first request.
func New(cfg Config) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRequestTimeout
	}

	lib, err := preset.LoadLibrary()
	if err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}

	s := &Server{
		runner:  pipeline.NewRunner(cfg.Cache, nil, cfg.Logger),
		presets: lib,
		logger:  cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Timeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/presets", s.handlePresets)
	r.Post("/v1/vectorize", s.handleVectorize)

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests and shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
