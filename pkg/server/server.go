// Package server exposes the chordwheel pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz        liveness probe
//	POST /v1/layout      dataset → layout JSON
//	POST /v1/render      dataset → artifact (?format=svg|png|pdf|json)
//	POST /v1/visualize   layout JSON → artifact
//	GET  /metrics        Prometheus metrics, when configured
//
// Dataset bodies may be JSON, YAML, TOML or CSV, selected by the
// Content-Type header or the "input" query parameter. Rendering options are
// read from the query string (style, viz, engine, width, height, seed, title,
// scale, interactive, detailed, refresh, positive, neutral, negative).
//
// Errors are answered as JSON with the status from [errors.HTTPStatus]:
//
//	{"error": "invalid style: \"neon\"", "code": "INVALID_STYLE", "request_id": "..."}
//
// Every response carries an X-Request-ID header; a sane client-supplied ID is
// echoed back, otherwise a UUID is generated.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chordwheel/pkg/pipeline"
)

const (
	// DefaultMaxBodySize bounds request bodies.
	DefaultMaxBodySize int64 = 4 << 20

	// DefaultReadTimeout bounds reading a request.
	DefaultReadTimeout = 30 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Server serves the pipeline over HTTP.
type Server struct {
	runner      *pipeline.Runner
	logger      *log.Logger
	metrics     http.Handler
	defaults    pipeline.Options
	maxBodySize int64
	readTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option { return func(s *Server) { s.metrics = h } }

// WithDefaults sets the options used for anything the query string leaves unset.
func WithDefaults(opts pipeline.Options) Option { return func(s *Server) { s.defaults = opts } }

// WithMaxBodySize bounds request bodies. Non-positive values keep the default.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodySize = n
		}
	}
}

// WithReadTimeout bounds reading a request. Non-positive values keep the default.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.readTimeout = d
		}
	}
}

// New creates a server around runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:      runner,
		logger:      log.Default(),
		maxBodySize: DefaultMaxBodySize,
		readTimeout: DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(s.recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.bodyLimit(s.maxBodySize))
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Post("/visualize", s.handleVisualize)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeErrorStatus(w, r, http.StatusMethodNotAllowed, errMethod(r.Method, r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.readTimeout,
		ReadTimeout:       s.readTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
