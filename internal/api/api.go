// Package api implements the HTTP API server for bugalert.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sprite-ai/bugalert/internal/scoring"
)

// Options configures a Server. Zero values fall back to sensible defaults.
type Options struct {
	Addr     string
	Scorer   *scoring.Scorer
	Logger   *slog.Logger
	MaxBytes int64 // per-input cap, 0 disables it

	// Delay is waited on the WebSocket between "analyzing" and "result" to
	// simulate a slow backend. Zero in production.
	Delay time.Duration
}

// Server is the bugalert HTTP API server.
type Server struct {
	addr     string
	scorer   *scoring.Scorer
	logger   *slog.Logger
	maxBytes int64
	delay    time.Duration

	registry *prometheus.Registry
	metrics  *metrics

	mux    *http.ServeMux
	server *http.Server
}

// New creates a new API server.
func New(opts Options) *Server {
	s := &Server{
		addr:     opts.Addr,
		scorer:   opts.Scorer,
		logger:   opts.Logger,
		maxBytes: opts.MaxBytes,
		delay:    opts.Delay,
		registry: prometheus.NewRegistry(),
	}
	if s.scorer == nil {
		s.scorer = scoring.New()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.metrics = newMetrics(s.registry)

	s.mux = http.NewServeMux()
	s.registerRoutes()
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /api/upload", s.handleUpload)
	s.mux.HandleFunc("GET /api/sample", s.handleSample)
	s.mux.HandleFunc("GET /api/ws", s.handleWebSocket)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

// ListenAndServe starts the HTTP server. It returns nil after Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("bugalert API server listening", "addr", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving %s: %w", s.addr, err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Error("json encode", "err", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes a JSON request body into v.
func readJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

// bodyLimit bounds a request body: JSON escaping can double the input and the
// envelope needs some room.
func (s *Server) bodyLimit() int64 {
	if s.maxBytes <= 0 {
		return 0
	}
	return 2*s.maxBytes + 64<<10
}
