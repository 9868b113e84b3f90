// Package server wires the HTTP server for the dosage API: middleware
// stack, routes and graceful lifecycle.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pediadose/dosage-api/config"
	"github.com/pediadose/dosage-api/handlers"
	"github.com/pediadose/dosage-api/health"
	"github.com/pediadose/dosage-api/interfaces"
	"github.com/pediadose/dosage-api/logging"
	"github.com/pediadose/dosage-api/metrics"
)

// Server is the HTTP server for the dosage API.
type Server struct {
	server    *http.Server
	router    chi.Router
	store     interfaces.FormularyStore
	validator interfaces.Validator
	config    *config.Config
	limiter   *RateLimiter
}

// NewServer creates a fully wired server.
func NewServer(cfg *config.Config, store interfaces.FormularyStore, validator interfaces.Validator) *Server {
	router := chi.NewRouter()

	s := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:    router,
		store:     store,
		validator: validator,
		config:    cfg,
		limiter:   NewRateLimiter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.Logger()))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(s.limiter.Handler)
	s.router.Use(metrics.Metrics)
}

func (s *Server) setupRoutes() {
	checker := health.NewHealthChecker(s.store)

	s.router.Post("/api/calculate-dosage", handlers.CalculateDosage(s.store, s.validator))
	s.router.Get("/api/medications", handlers.ListMedications(s.store))
	s.router.Post("/api/convert-weight", handlers.ConvertWeight())
	s.router.Get("/health", handlers.HealthCheck(checker))
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Documentation page with caching.
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeFile(w, r, "html/index.html")
	})
}

// Router exposes the chi router, mainly for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// Start runs the server until Shutdown or a listener error.
func (s *Server) Start() error {
	logging.Info("Starting server", "addr", s.server.Addr, "env", s.config.Env)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		return s.server.Close()
	}

	logging.Info("Server exited gracefully")
	return nil
}
