// Package admin provides the administrative HTTP API: endpoint CRUD,
// health and status, session store reset, and configuration export.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/getmockd/reflectd/internal/storage"
	"github.com/getmockd/reflectd/pkg/config"
	"github.com/getmockd/reflectd/pkg/logging"
	"github.com/getmockd/reflectd/pkg/session"
)

// AdminAPI serves the admin surface on its own listener, separate from
// mock traffic.
type AdminAPI struct {
	store    storage.EndpointStore
	sessions *session.Store
	settings config.Settings
	version  string
	log      *slog.Logger

	httpServer *http.Server
	startTime  time.Time

	mu       sync.Mutex
	listener net.Listener
	running  bool
}

// Config wires an AdminAPI's collaborators.
type Config struct {
	Store    storage.EndpointStore
	Sessions *session.Store
	Settings config.Settings
	Version  string
	Logger   *slog.Logger
}

// New creates the admin API. Store and Sessions are required.
func New(cfg Config) *AdminAPI {
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	a := &AdminAPI{
		store:    cfg.Store,
		sessions: cfg.Sessions,
		settings: cfg.Settings,
		version:  cfg.Version,
		log:      log,
	}

	mux := http.NewServeMux()
	a.registerRoutes(mux)
	a.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a
}

// Handler returns the admin mux, for tests and embedding.
func (a *AdminAPI) Handler() http.Handler {
	return a.httpServer.Handler
}

// Start binds the admin listen address and begins serving in a background
// goroutine.
func (a *AdminAPI) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return errors.New("admin API already running")
	}

	ln, err := net.Listen("tcp", a.settings.AdminListen)
	if err != nil {
		return err
	}
	a.listener = ln
	a.running = true
	a.startTime = time.Now()

	a.log.Info("admin API listening", "addr", ln.Addr().String())
	go func() {
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("admin API stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound admin address.
func (a *AdminAPI) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return a.settings.AdminListen
	}
	return a.listener.Addr().String()
}

// Shutdown gracefully stops the admin API.
func (a *AdminAPI) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return nil
	}
	a.running = false
	a.mu.Unlock()

	return a.httpServer.Shutdown(ctx)
}

// Uptime returns how long the admin API has been running, as a string.
func (a *AdminAPI) Uptime() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.startTime.IsZero() {
		return "0s"
	}
	return time.Since(a.startTime).Round(time.Second).String()
}
