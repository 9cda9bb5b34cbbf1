package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nao1215/pagescore/internal/log"
	"github.com/nao1215/pagescore/internal/metrics"
	"github.com/nao1215/pagescore/internal/model"
)

// Evaluator scores one URL. *aggregator.Aggregator implements it.
type Evaluator interface {
	Evaluate(ctx context.Context, url string) (*model.ScoreResult, error)
}

// Server is the aggregator service HTTP front end.
type Server struct {
	router            *chi.Mux
	server            *http.Server
	evaluator         Evaluator
	logger            *slog.Logger
	metrics           *metrics.Registry
	host              string
	port              int
	readHeaderTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithAddress sets the listen host and port.
func WithAddress(host string, port int) Option {
	return func(s *Server) {
		s.host = host
		s.port = port
	}
}

// WithLogger sets the logger for requests and lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the registry served on /metrics.
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.metrics = reg
		}
	}
}

// WithReadHeaderTimeout bounds how long a client may take to send headers.
func WithReadHeaderTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.readHeaderTimeout = d
	}
}

// New creates a server answering with evaluator.
func New(evaluator Evaluator, opts ...Option) *Server {
	s := &Server{
		evaluator:         evaluator,
		logger:            log.Discard(),
		metrics:           metrics.NewRegistry(),
		port:              8000,
		readHeaderTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5, "application/json", "text/plain"))

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	r.Get("/", s.handleHealth)
	r.Post("/sendUrl", s.handleSendURL)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router = r
	s.server = &http.Server{
		Addr:              s.Addr(),
		Handler:           r,
		ReadHeaderTimeout: s.readHeaderTimeout,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.host, strconv.Itoa(s.port))
}

// Start listens and serves until Shutdown is called. A clean shutdown
// returns nil.
func (s *Server) Start() error {
	s.logger.Info("starting aggregator service", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "failed to serve on %s", s.server.Addr)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight evaluations
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down aggregator service")
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}
