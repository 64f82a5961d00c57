package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/rs/cors"
)

// NewRouter creates the application router with all routes and middleware.
func NewRouter(h *Handler, corsCfg config.CORSConfig, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(TraceMiddleware(log))
	r.Use(SessionMiddleware)

	r.Get(h.nav.Dashboard(), h.Dashboard)
	r.Get(h.nav.TaskList(), h.TaskList)
	r.Get("/tasks/createOrUpdate/{id}", h.TaskForm)
	r.Post("/tasks/createOrUpdate/{id}", h.SubmitTaskForm)
	r.Post("/tasks/{id}/delete", h.DeleteTask)

	// The summary is the only endpoint meant for cross-origin callers.
	summaryCORS := cors.New(cors.Options{
		AllowedOrigins: corsCfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	})
	r.Method(http.MethodGet, "/api/summary", summaryCORS.Handler(http.HandlerFunc(h.Summary)))
	r.Method(http.MethodOptions, "/api/summary", summaryCORS.Handler(http.HandlerFunc(h.Summary)))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
