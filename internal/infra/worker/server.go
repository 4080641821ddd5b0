// Package worker hosts the HTTP surface of the stats worker.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger checks the database connection. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server serves the worker's probes and Prometheus metrics:
//   - GET /health: liveness, always 200
//   - GET /health/ready: 200 once SetReady(true) was called and the database answers
//   - GET /metrics: Prometheus exposition
type Server struct {
	addr    string
	logger  *slog.Logger
	db      Pinger
	isReady atomic.Bool
	server  *http.Server
}

type healthResponse struct {
	Status string `json:"status"`
}

// NewServer creates a worker server. db may be nil, in which case readiness
// depends on the ready flag alone. The server starts as not ready.
func NewServer(addr string, db Pinger, logger *slog.Logger) *Server {
	return &Server{addr: addr, db: db, logger: logger}
}

// Handler returns the routes served by Start.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleLiveness)
	mux.HandleFunc("GET /health/ready", s.handleReadiness)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Start blocks serving until ctx is cancelled, then shuts down gracefully
// within 5 seconds. It returns http.ErrServerClosed after a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("worker server starting", slog.String("addr", s.addr))
		if err := s.server.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("worker server shutdown failed", slog.Any("error", err))
			return err
		}
		s.logger.Info("worker server stopped")
		return http.ErrServerClosed

	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("worker server failed", slog.Any("error", err))
		}
		return err
	}
}

// SetReady flips the readiness probe.
func (s *Server) SetReady(ready bool) {
	s.isReady.Store(ready)
	s.logger.Info("worker readiness changed", slog.Bool("ready", ready))
}

// Ready reports the readiness flag.
func (s *Server) Ready() bool {
	return s.isReady.Load()
}

func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	s.writeStatus(w, http.StatusOK, "ok")
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if !s.isReady.Load() {
		s.writeStatus(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness ping failed", slog.Any("error", err))
			s.writeStatus(w, http.StatusServiceUnavailable, "database not ready")
			return
		}
	}
	s.writeStatus(w, http.StatusOK, "ok")
}

func (s *Server) writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(healthResponse{Status: status}); err != nil {
		s.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
