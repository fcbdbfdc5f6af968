package engine

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/getmockd/reflectd/pkg/logging"
)

// Server serves mock traffic under the /mock/ prefix.
type Server struct {
	addr       string
	handler    *Handler
	log        *slog.Logger
	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener
	running  bool
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewServer creates a mock server bound to addr, serving requests through
// the given handler.
func NewServer(addr string, handler *Handler, opts ...ServerOption) *Server {
	s := &Server{
		addr:    addr,
		handler: handler,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.Handle("/mock/", http.StripPrefix("/mock", handler))
	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the request handler behind the server.
func (s *Server) Handler() *Handler {
	return s.handler
}

// Start binds the listen address and begins serving in a background
// goroutine. It returns once the listener is bound.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("server already running")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.running = true

	s.log.Info("mock server listening", "addr", ln.Addr().String())
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("mock server stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound listen address, useful when the configured
// address picks an ephemeral port.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully stops the server, waiting for in-flight requests up
// to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	return s.httpServer.Shutdown(ctx)
}
