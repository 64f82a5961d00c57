// Package main implements the entry point for the taskboard server, which
// renders the task dashboard, list and form in front of a task API.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/redact"
)

// main is the entry point for the taskboard server.
func main() {
	cfg, err := loadAppConfig()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	ctx := context.Background()
	app, err := newApplication(cfg, l)
	if err != nil {
		l.Error("Failed to initialize application", "error", err)
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		l.Error("Server stopped with error", "error", err)
		log.Fatalf("Server error: %v", err)
	}
}

// loadAppConfig loads the application configuration from environment
// variables or a config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"backend", redact.URL(cfg.Backend.BaseURL),
		"notify_store", cfg.Notify.Store)

	if cfg.Backend.JWTSecret != "" {
		slog.Debug("Backend auth configuration", "jwt_secret_present", true)
	}

	return cfg, nil
}
