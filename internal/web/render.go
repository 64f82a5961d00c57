package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard/internal/i18n"
	"github.com/phrazzld/taskboard/internal/notify"
	"github.com/phrazzld/taskboard/internal/platform/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names, one per content template.
const (
	pageDashboard = "dashboard"
	pageTasks     = "tasks"
	pageForm      = "form"
)

// renderer holds one template set per page, each sharing the layout.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageDashboard, pageTasks, pageForm} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// pageData is what the layout template renders.
type pageData struct {
	Title  string
	L      *i18n.Localizer
	Nav    Navigator
	Toasts []notify.Notification
	Body   any
}

// render executes page into a buffer first so that a template error never
// produces a half-written response.
func (r *renderer) render(w http.ResponseWriter, req *http.Request, status int, page string, data pageData) {
	log := logger.FromContext(req.Context())

	t, ok := r.pages[page]
	if !ok {
		log.Error("unknown page template", slog.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error("failed to render page", slog.String("page", page), slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Debug("failed to write page", slog.String("error", err.Error()))
	}
}

// ErrorResponse defines the JSON error response structure.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response carrying the request's trace ID.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, ErrorResponse{Error: message, TraceID: TraceID(r.Context())})
}
