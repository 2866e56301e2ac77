package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibfixed/internal/config"
	apperrors "github.com/agbru/fibfixed/internal/errors"
	"github.com/agbru/fibfixed/internal/fibonacci"
	"github.com/agbru/fibfixed/internal/logging"
	"github.com/agbru/fibfixed/internal/service"
)

// Server represents the HTTP server for the Fibonacci calculator API.
// It wraps the standard http.Server and adds application-specific configuration
// and graceful shutdown capabilities.
type Server struct {
	factory        fibonacci.CalculatorFactory
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer creates a new Server instance with the given calculator registry and configuration.
// Unless WithService is given, requests are served by a service.CalculatorService
// honoring cfg.MaxN and cfg.CacheSize.
//
// Parameters:
//   - factory: The calculator factory to retrieve implementations from.
//   - cfg: The application configuration (port, cache size, limits).
//   - opts: Optional functional options for customizing the server (e.g., WithLogger).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
//   - error: An error if the default service cannot be built.
func NewServer(factory fibonacci.CalculatorFactory, cfg config.AppConfig, opts ...Option) (*Server, error) {
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stderr, "server"),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		svc, err := service.NewCalculatorService(s.factory, s.cfg.MaxN, s.cfg.CacheSize, s.logger)
		if err != nil {
			return nil, apperrors.NewServerError("failed to create calculation service", err)
		}
		s.service = svc
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/calculate", s.wrapWithMiddleware(s.handleCalculate))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/modes", s.wrapWithMiddleware(s.handleModes))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s, nil
}

// Handler returns the root handler with every route and middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// wrapWithMiddleware applies the full middleware chain to a handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	// Applied in reverse: Security -> RequestID -> Logging -> Metrics -> Handler
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RequestIDMiddleware(wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Start listens on the configured port and serves until ctx is canceled,
// then shuts down gracefully within the configured shutdown timeout.
//
// Returns:
//   - error: A ServerError if listening fails or shutdown does not complete.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return apperrors.NewServerError("server failed to start", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting server",
			logging.String("addr", ln.Addr().String()),
			logging.Int("cache_size", s.cfg.CacheSize),
			logging.Uint32("max_n", s.cfg.MaxN))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return apperrors.NewServerError("server failed", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutdown requested, draining connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return apperrors.NewServerError("failed to gracefully shutdown server", err)
		}
		s.logger.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
