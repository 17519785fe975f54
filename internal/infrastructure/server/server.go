// Package server implements the demo users backend on chi.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/reglet-dev/userprofiles/internal/application/ports"
	"github.com/reglet-dev/userprofiles/internal/domain/repositories"
	"github.com/reglet-dev/userprofiles/internal/infrastructure/audit"
)

const shutdownTimeout = 5 * time.Second

// Options configures the backend.
type Options struct {
	// Registry receives the HTTP metrics. Defaults to a fresh registry.
	Registry *prometheus.Registry
	Logger   *slog.Logger

	Addr           string
	BasePath       string
	AllowedOrigins []string

	// RateLimit is the per-client request rate in requests per second; 0 disables limiting.
	RateLimit float64
	Burst     int
}

// Server serves the users API from a repository.
type Server struct {
	repo      repositories.UserRepository
	validator ports.RequestValidator
	logger    *slog.Logger
	registry  *prometheus.Registry
	handler   http.Handler
	opts      Options
}

// New builds the router. Nothing listens until ListenAndServe.
func New(repo repositories.UserRepository, validator ports.RequestValidator, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		repo:      repo,
		validator: validator,
		logger:    opts.Logger,
		registry:  opts.Registry,
		opts:      opts,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	m := newMetrics(s.registry)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", audit.SessionHeader, audit.ViewHeader},
		ExposedHeaders: []string{apiVersionHeader},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	api := chi.NewRouter()
	api.Use(m.instrument)
	if s.opts.RateLimit > 0 {
		api.Use(rateLimit(newClientLimiter(rate.Limit(s.opts.RateLimit), s.opts.Burst)))
	}
	api.Get("/hello", s.handleHello)
	api.Route("/users", func(r chi.Router) {
		r.Get("/", s.handleListUsers)
		r.Post("/", s.handleCreateUser)
		r.Get("/{id}", s.handleGetUser)
		r.Put("/{id}", s.handleUpdateUser)
		r.Delete("/{id}", s.handleDeleteUser)
	})

	if s.opts.BasePath == "/" {
		r.Mount("/", api)
	} else {
		r.Mount(s.opts.BasePath, api)
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.opts.Addr, "base_path", s.opts.BasePath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
