// Package server provides the HTTP API that runs the outreach pipeline for
// browser clients: one-shot and streamed reply generation plus compensation research.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/autoreply/internal/compensation"
	"github.com/jonathan/autoreply/internal/config"
	"github.com/jonathan/autoreply/internal/pipeline"
	"github.com/jonathan/autoreply/internal/server/middleware"
	"github.com/jonathan/autoreply/internal/server/ratelimit"
)

// maxBodyBytes caps request bodies; page snapshots are the largest payloads.
const maxBodyBytes = 6 << 20

// Config holds server configuration. A nil RateLimit disables rate limiting;
// a JWT config without a secret leaves the API unauthenticated.
type Config struct {
	Addr           string
	AllowedOrigins []string
	RateLimit      *ratelimit.Config
	JWT            config.JWTConfig
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	orchestrator *pipeline.Orchestrator
	estimator    *compensation.Estimator
	rateLimiter  *ratelimit.Limiter
	jwtService   *JWTService
	validate     *validator.Validate
}

// New creates a new server instance. A nil estimator gets a heuristic-only one.
func New(cfg Config, orchestrator *pipeline.Orchestrator, estimator *compensation.Estimator) *Server {
	if estimator == nil {
		estimator = compensation.NewEstimator(compensation.Options{})
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	s := &Server{
		orchestrator: orchestrator,
		estimator:    estimator,
		validate:     validate,
	}
	if cfg.RateLimit != nil {
		s.rateLimiter = ratelimit.NewLimiter(cfg.RateLimit)
	}
	if cfg.JWT.Enabled() {
		s.jwtService = NewJWTService(cfg.JWT)
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      180 * time.Second, // generation makes several model calls
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(middleware.CORS(allowedOrigins)))
	if s.rateLimiter != nil {
		r.Use(s.rateLimiter.Middleware)
	}

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if s.jwtService != nil {
			r.Use(middleware.AuthMiddleware(s.jwtService.AsTokenValidator()))
		}
		r.Post("/generate", s.handleGenerate)
		r.Post("/generate/stream", s.handleGenerateStream)
		r.Post("/research", s.handleResearch)
	})

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", s.httpServer.Addr, "auth", s.jwtService != nil)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.stopLimiter()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.stopLimiter()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func (s *Server) stopLimiter() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads and validates a JSON request body into dst.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := s.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
