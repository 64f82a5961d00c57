package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/taskboard/internal/auth"
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/i18n"
	"github.com/phrazzld/taskboard/internal/notify"
	"github.com/phrazzld/taskboard/internal/redact"
	"github.com/phrazzld/taskboard/internal/taskapi"
	"github.com/phrazzld/taskboard/internal/web"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	tasks   taskapi.Service
	store   notify.Store
	catalog *i18n.Catalog
	handler *web.Handler

	// closers run in order during cleanup.
	closers []io.Closer
}

// newApplication creates a new application instance with all dependencies initialized.
// Resources acquired before a failing step are released before it returns.
func newApplication(cfg *config.Config, logger *slog.Logger) (_ *application, err error) {
	app := &application{
		config: cfg,
		logger: logger,
	}
	defer func() {
		if err != nil {
			app.cleanup()
		}
	}()

	httpClient, err := auth.HTTPClient(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend auth: %w", err)
	}
	logger.Info("Backend client initialized",
		"base_url", redact.URL(cfg.Backend.BaseURL),
		"bearer_auth", cfg.Backend.JWTSecret != "",
		"timeout_seconds", cfg.Backend.TimeoutSeconds)

	app.tasks, err = taskapi.New(cfg.Backend.BaseURL, httpClient, logger.With("component", "task_api"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize task API client: %w", err)
	}

	app.store, err = app.notificationStore()
	if err != nil {
		return nil, err
	}

	app.catalog, err = i18n.NewCatalog(cfg.Server.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize message catalog: %w", err)
	}

	app.handler, err = web.NewHandler(app.tasks, app.store, app.catalog, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize web handler: %w", err)
	}

	return app, nil
}

// notificationStore builds the configured toast store.
func (app *application) notificationStore() (notify.Store, error) {
	cfg := app.config.Notify
	switch cfg.Store {
	case "redis":
		s, err := notify.NewRedisStoreFromURL(cfg.RedisURL, time.Duration(cfg.TTLSeconds)*time.Second)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis notification store: %w", err)
		}
		app.closers = append(app.closers, s)
		app.logger.Info("Notification store initialized", "store", "redis", "url", redact.URL(cfg.RedisURL))
		return s, nil
	default:
		app.logger.Info("Notification store initialized", "store", "memory")
		return notify.NewMemoryStore(), nil
	}
}

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	return web.NewRouter(app.handler, app.config.CORS, app.logger)
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if len(app.closers) == 0 {
		return
	}
	for _, c := range app.closers {
		if err := c.Close(); err != nil {
			app.logger.Error("Failed to release resource", "error", redact.Error(err))
		}
	}
	app.logger.Info("Application resources released", "count", len(app.closers))
	app.closers = nil
}
