package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string
}

// DefaultServerConfig returns a config listening on :8080.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{Address: ":8080"}
}

// NewRouter builds the API router over store.
func NewRouter(store ScoreSource, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	NewScoresHandler(store, logger).RegisterRoutes(r)
	return r
}

// requestLogger logs one line per request through logger.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"took", time.Since(start),
				"id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// Server serves the API until its context is cancelled.
type Server struct {
	config ServerConfig
	http   *http.Server
	logger *log.Logger
}

// NewServer creates a server for store.
func NewServer(cfg ServerConfig, store ScoreSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		config: cfg,
		logger: logger,
		http: &http.Server{
			Addr:              cfg.Address,
			Handler:           NewRouter(store, logger),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// ListenAndServe blocks until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.config.Address)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
