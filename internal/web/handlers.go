package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard/internal/dashboard"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/form"
	"github.com/phrazzld/taskboard/internal/i18n"
	"github.com/phrazzld/taskboard/internal/notify"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/redact"
	"github.com/phrazzld/taskboard/internal/taskapi"
)

// Handler serves the browser routes.
type Handler struct {
	tasks    taskapi.Service
	store    notify.Store
	catalog  *i18n.Catalog
	nav      Navigator
	renderer *renderer
	logger   *slog.Logger
}

// NewHandler creates a Handler. It fails only when the embedded templates do
// not parse.
func NewHandler(tasks taskapi.Service, store notify.Store, catalog *i18n.Catalog, log *slog.Logger) (*Handler, error) {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for Handler")
	}
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &Handler{
		tasks:    tasks,
		store:    store,
		catalog:  catalog,
		renderer: r,
		logger:   log.With(slog.String("component", "web_handler")),
	}, nil
}

// requestServices are the per-request collaborators of a handler.
type requestServices struct {
	localizer *i18n.Localizer
	notifier  notify.Notifier
	log       *slog.Logger
}

func (h *Handler) services(r *http.Request) requestServices {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	return requestServices{
		localizer: h.catalog.Localizer(r.Header.Get("Accept-Language")),
		notifier:  notify.NewSessionNotifier(h.store, SessionID(r.Context()), log),
		log:       log,
	}
}

// page assembles layout data, draining the session's pending toasts.
func (h *Handler) page(r *http.Request, s requestServices, title string, body any) pageData {
	toasts, err := h.store.Drain(r.Context(), SessionID(r.Context()))
	if err != nil {
		s.log.Warn("failed to load notifications", slog.String("error", redact.Error(err)))
	}
	return pageData{
		Title:  title,
		L:      s.localizer,
		Nav:    h.nav,
		Toasts: toasts,
		Body:   body,
	}
}

// dashboardBody is the dashboard content template data.
type dashboardBody struct {
	dashboard.View
	L *i18n.Localizer
}

// Dashboard handles GET / requests.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s := h.services(r)

	agg := dashboard.New(dashboard.Deps{
		Lister:    h.tasks,
		Notifier:  s.notifier,
		Localizer: s.localizer,
		Routes:    h.nav,
	})
	agg.Load(r.Context())

	body := dashboardBody{View: agg.View(), L: s.localizer}
	h.renderer.render(w, r, http.StatusOK, pageDashboard,
		h.page(r, s, s.localizer.T(i18n.Dashboard), body))
}

// SummaryResponse is the JSON body of the summary endpoint.
type SummaryResponse struct {
	State  string           `json:"state"`
	Total  int              `json:"total"`
	Counts dashboard.Counts `json:"counts"`
}

// Summary handles GET /api/summary requests.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	s := h.services(r)

	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		s.log.Warn("failed to fetch tasks for summary", slog.String("error", redact.Error(err)))
		RespondWithError(w, r, http.StatusBadGateway, s.localizer.T(i18n.FetchTasksFailed))
		return
	}

	state := dashboard.StateSummary
	if len(tasks) == 0 {
		state = dashboard.StateEmpty
	}
	RespondWithJSON(w, r, http.StatusOK, SummaryResponse{
		State:  state.String(),
		Total:  len(tasks),
		Counts: dashboard.Count(tasks),
	})
}

// taskRow is one line of the task list.
type taskRow struct {
	Title      string
	Keywords   []string
	Status     string
	Created    string
	Updated    string
	EditPath   string
	DeletePath string
}

type tasksBody struct {
	Rows       []taskRow
	CreatePath string
	L          *i18n.Localizer
}

// TaskList handles GET /tasks requests.
func (h *Handler) TaskList(w http.ResponseWriter, r *http.Request) {
	s := h.services(r)

	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		s.log.Warn("failed to fetch task list", slog.String("error", redact.Error(err)))
		notify.Error(r.Context(), s.notifier, s.localizer.T(i18n.FetchTasksFailed))
		tasks = nil
	}

	rows := make([]taskRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, taskRow{
			Title:      t.Title,
			Keywords:   t.Keywords,
			Status:     statusLabel(s.localizer, t.Status),
			Created:    domain.FormatDate(t.CreationDate),
			Updated:    domain.FormatDate(t.UpdatedDate),
			EditPath:   h.nav.CreateOrUpdate(t.ID),
			DeletePath: h.nav.DeleteTask(t.ID),
		})
	}

	body := tasksBody{Rows: rows, CreatePath: h.nav.CreateTask(), L: s.localizer}
	h.renderer.render(w, r, http.StatusOK, pageTasks,
		h.page(r, s, s.localizer.T(i18n.TaskList), body))
}

// DeleteTask handles POST /tasks/{id}/delete requests.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	s := h.services(r)
	id := chi.URLParam(r, "id")

	status, err := h.tasks.Delete(r.Context(), id)
	if err != nil {
		s.log.Warn("failed to delete task", slog.String("task_id", id), slog.String("error", redact.Error(err)))
		notify.Warning(r.Context(), s.notifier, s.localizer.T(i18n.ErrorPrefix)+err.Error())
	} else {
		s.log.Debug("task deleted", slog.String("task_id", id), slog.Int("status_code", status))
		notify.Success(r.Context(), s.notifier, s.localizer.T(i18n.TaskDeleted))
	}
	h.nav.Redirect(w, r, h.nav.TaskList())
}

// TaskForm handles GET /tasks/createOrUpdate/{id} requests.
func (h *Handler) TaskForm(w http.ResponseWriter, r *http.Request) {
	s := h.services(r)
	id := chi.URLParam(r, "id")

	var task *domain.Task
	if id != NewTaskID {
		loaded, err := h.tasks.Get(r.Context(), id)
		if err != nil {
			s.log.Warn("failed to fetch task", slog.String("task_id", id), slog.String("error", redact.Error(err)))
			notify.Error(r.Context(), s.notifier, s.localizer.T(i18n.FetchTaskFailed))
			h.nav.Redirect(w, r, h.nav.TaskList())
			return
		}
		if loaded.ID == "" {
			loaded.ID = id
		}
		task = loaded
	}

	c := form.New(task, h.formDeps(s))
	h.renderForm(w, r, s, http.StatusOK, id, c)
}

// SubmitTaskForm handles POST /tasks/createOrUpdate/{id} requests: keyword
// edits re-render the form, anything else submits it.
func (h *Handler) SubmitTaskForm(w http.ResponseWriter, r *http.Request) {
	s := h.services(r)
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		s.log.Warn("invalid form body", slog.String("error", redact.Error(err)))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var source *domain.Task
	if id != NewTaskID {
		source = &domain.Task{ID: id}
	}
	c := form.New(source, h.formDeps(s))
	applyPostedForm(c, r)

	if raw := r.PostForm.Get("remove"); raw != "" {
		if i, err := strconv.Atoi(raw); err == nil {
			c.RemoveKeyword(i)
			c.Touch(form.FieldKeywords)
		}
		h.renderForm(w, r, s, http.StatusOK, id, c)
		return
	}

	if key := r.PostForm.Get("key"); key != "" && c.KeyDown(key) {
		c.Touch(form.FieldKeywords)
		h.renderForm(w, r, s, http.StatusOK, id, c)
		return
	}

	err := c.Submit(r.Context())
	switch {
	case err == nil:
		h.nav.Redirect(w, r, h.nav.TaskList())
	case errors.Is(err, form.ErrValidation):
		h.renderForm(w, r, s, http.StatusUnprocessableEntity, id, c)
	default:
		// The failure was notified; keep the user's input on screen.
		h.renderForm(w, r, s, http.StatusOK, id, c)
	}
}

func (h *Handler) formDeps(s requestServices) form.Deps {
	return form.Deps{Writer: h.tasks, Notifier: s.notifier, Localizer: s.localizer}
}

// applyPostedForm rebuilds the controller from the rendered state carried in
// hidden inputs, then applies what the user changed. Changed fields count
// as touched.
func applyPostedForm(c *form.Controller, r *http.Request) {
	p := r.PostForm

	renderedStatus, err := domain.ParseStatus(p.Get("rendered_status"))
	if err != nil {
		renderedStatus = domain.StatusPending
	}
	c.Restore(form.State{
		Values: form.Values{
			ID:           p.Get("id"),
			Title:        p.Get("rendered_title"),
			Keywords:     p["keywords"],
			Status:       renderedStatus,
			CreationDate: p.Get("creationDate_iso"),
			UpdatedDate:  p.Get("updatedDate_iso"),
		},
		Touched: p["touched"],
	})

	if title := p.Get("title"); title != p.Get("rendered_title") {
		c.SetTitle(title)
		c.Touch(form.FieldTitle)
	}
	if status := p.Get("status"); status != "" && status != p.Get("rendered_status") {
		c.SetStatusRaw(status)
		c.Touch(form.FieldStatus)
	}
	for _, field := range []string{form.FieldCreationDate, form.FieldUpdatedDate} {
		before := dateValue(c.Values(), field)
		c.SetDate(field, p.Get(field))
		if dateValue(c.Values(), field) != before {
			c.Touch(field)
		}
	}
	c.SetKeywordInput(p.Get("keywordInput"))
}

func dateValue(v form.Values, field string) string {
	if field == form.FieldCreationDate {
		return v.CreationDate
	}
	return v.UpdatedDate
}

type statusOption struct {
	Value    string
	Label    string
	Selected bool
}

type formBody struct {
	Action        string
	Heading       string
	Values        form.Values
	KeywordInput  string
	CreationDate  string
	UpdatedDate   string
	StatusOptions []statusOption
	Errors        map[string]string
	Touched       []string
	L             *i18n.Localizer
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, s requestServices, status int, id string, c *form.Controller) {
	values := c.Values()

	options := make([]statusOption, 0, len(domain.Statuses))
	for _, st := range domain.Statuses {
		options = append(options, statusOption{
			Value:    strconv.Itoa(int(st)),
			Label:    statusLabel(s.localizer, st),
			Selected: st == values.Status,
		})
	}

	heading := s.localizer.T(c.Intent().Heading())
	body := formBody{
		Action:        h.nav.CreateOrUpdate(id),
		Heading:       heading,
		Values:        values,
		KeywordInput:  c.KeywordInput(),
		CreationDate:  domain.FormatDate(values.CreationDate),
		UpdatedDate:   domain.FormatDate(values.UpdatedDate),
		StatusOptions: options,
		Errors:        c.VisibleErrors(),
		Touched:       c.State().Touched,
		L:             s.localizer,
	}
	h.renderer.render(w, r, status, pageForm, h.page(r, s, heading, body))
}

func statusLabel(l *i18n.Localizer, s domain.Status) string {
	switch s {
	case domain.StatusPending:
		return l.T(i18n.StatusPending)
	case domain.StatusInProgress:
		return l.T(i18n.StatusInProgress)
	case domain.StatusCompleted:
		return l.T(i18n.StatusCompleted)
	default:
		return fmt.Sprint(int(s))
	}
}
