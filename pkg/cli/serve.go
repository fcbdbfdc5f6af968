package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/reflectd/internal/storage"
	"github.com/getmockd/reflectd/pkg/actions"
	"github.com/getmockd/reflectd/pkg/admin"
	"github.com/getmockd/reflectd/pkg/config"
	"github.com/getmockd/reflectd/pkg/endpoint"
	"github.com/getmockd/reflectd/pkg/engine"
	"github.com/getmockd/reflectd/pkg/logging"
	"github.com/getmockd/reflectd/pkg/session"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

// serveFlags holds the parsed command-line flags for the serve command.
type serveFlags struct {
	configFile  string
	listen      string
	adminListen string
	logLevel    string
	logFormat   string
}

var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock server (foreground)",
	Example: `  # Start with defaults
  reflectd serve

  # Start from a configuration file
  reflectd serve --config endpoints.yaml

  # Custom ports and JSON logs
  reflectd serve --listen :8080 --admin-listen :8081 --log-format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(&serveFlagVals)
	},
}

func initServeCmd() {
	rootCmd.AddCommand(serveCmd)

	f := &serveFlagVals
	serveCmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to configuration file (JSON or YAML)")
	serveCmd.Flags().StringVar(&f.listen, "listen", "", "Mock server listen address")
	serveCmd.Flags().StringVar(&f.adminListen, "admin-listen", "", "Admin API listen address")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format (text, json)")
}

func init() {
	initServeCmd()
}

func runServe(f *serveFlags) error {
	settings, endpoints, err := loadConfiguration(f)
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(settings.LogLevel),
		Format: logging.ParseFormat(settings.LogFormat),
		Output: os.Stderr,
	})

	store := storage.NewInMemoryEndpointStore()
	for _, ep := range endpoints {
		if err := store.Create(ep); err != nil {
			return fmt.Errorf("endpoint %s %s: %w", ep.Method, ep.Path, err)
		}
	}

	sessions := session.New()
	executor := actions.NewExecutor(actions.Config{
		MaxDelay:   settings.MaxDelay(),
		SessionTTL: settings.SessionTTL(),
		Store:      sessions,
		Logger:     log,
	})

	handler := engine.NewHandler(engine.HandlerConfig{
		Store:    store,
		Sessions: sessions,
		Executor: executor,
		Logger:   log,
	})

	srv := engine.NewServer(settings.Listen, handler, engine.WithLogger(log))
	if err := srv.Start(); err != nil {
		return fmt.Errorf("start mock server: %w", err)
	}

	adminAPI := admin.New(admin.Config{
		Store:    store,
		Sessions: sessions,
		Settings: settings,
		Version:  Version,
		Logger:   log,
	})
	if err := adminAPI.Start(); err != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return fmt.Errorf("start admin API: %w", err)
	}

	log.Info("reflectd started",
		"version", Version,
		"endpoints", store.Count(),
		"mock", srv.Addr(),
		"admin", adminAPI.Addr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("mock server shutdown failed", "error", err)
	}
	if err := adminAPI.Shutdown(shutdownCtx); err != nil {
		log.Error("admin API shutdown failed", "error", err)
	}
	return nil
}

// loadConfiguration resolves settings and endpoints from the config file
// and flags. Flags win over the file, the file wins over defaults.
func loadConfiguration(f *serveFlags) (config.Settings, []*endpoint.Endpoint, error) {
	settings := config.DefaultSettings()
	var endpoints []*endpoint.Endpoint

	if f.configFile != "" {
		file, err := config.LoadFromFile(f.configFile)
		if err != nil {
			return settings, nil, err
		}
		settings = file.Settings
		endpoints = file.Endpoints
	}

	if f.listen != "" {
		settings.Listen = f.listen
	}
	if f.adminListen != "" {
		settings.AdminListen = f.adminListen
	}
	if f.logLevel != "" {
		settings.LogLevel = f.logLevel
	}
	if f.logFormat != "" {
		settings.LogFormat = f.logFormat
	}
	return settings, endpoints, nil
}
