package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/logfields"
	"git.home.luguber.info/inful/aoc2020/internal/metrics"
)

// HTTPServer exposes the daemon's health, status and metrics endpoints.
type HTTPServer struct {
	addr      string
	daemon    *Daemon
	server    *http.Server
	boundAddr string
}

// NewHTTPServer creates the daemon HTTP server. The listener is not bound
// until Start.
func NewHTTPServer(addr string, daemon *Daemon) *HTTPServer {
	return &HTTPServer{
		addr:   addr,
		daemon: daemon,
	}
}

// Start binds the listener and begins serving. Binding happens up front so a
// taken port fails daemon startup instead of logging from a goroutine later.
func (s *HTTPServer) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.boundAddr = ln.Addr().String()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.daemon.HealthHandler)
	mux.HandleFunc("/status", s.daemon.StatusHandler)
	mux.HandleFunc("/targets", s.daemon.TargetsHandler)
	mux.Handle("/metrics", metrics.HTTPHandler(s.daemon.registry))

	s.server = &http.Server{Handler: mux, ReadTimeout: 30 * time.Second, WriteTimeout: 30 * time.Second, IdleTimeout: 120 * time.Second}
	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("Daemon HTTP server error", logfields.Error(err))
		}
	}()

	slog.Info("Daemon HTTP server listening", logfields.Addr(s.boundAddr))
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *HTTPServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	slog.Info("Daemon HTTP server stopped")
	return nil
}

// Addr returns the bound address, useful when the configured port is 0.
func (s *HTTPServer) Addr() string {
	return s.boundAddr
}
