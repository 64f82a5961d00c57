// Package dashboard loads the task collection and derives the per-status
// counts shown on the dashboard view.
package dashboard

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/i18n"
	"github.com/phrazzld/taskboard/internal/notify"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/redact"
)

// Lister fetches the full task collection.
type Lister interface {
	List(ctx context.Context) ([]domain.Task, error)
}

// Routes builds the paths of the dashboard's calls to action.
type Routes interface {
	TaskList() string
	CreateTask() string
}

// State selects which branch of the dashboard is displayed.
type State int

const (
	StateLoading State = iota
	StateEmpty
	StateSummary
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StateSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Counts are the number of tasks in each status.
type Counts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

// Total is the sum of all counts.
func (c Counts) Total() int {
	return c.Pending + c.InProgress + c.Completed
}

// Count tallies tasks by status. Tasks with a status outside the
// enumeration are not counted.
func Count(tasks []domain.Task) Counts {
	var c Counts
	for _, t := range tasks {
		switch t.Status {
		case domain.StatusPending:
			c.Pending++
		case domain.StatusInProgress:
			c.InProgress++
		case domain.StatusCompleted:
			c.Completed++
		}
	}
	return c
}

// View is the data a dashboard render needs.
type View struct {
	State  State
	Counts Counts
	// Action is the path of the single call to action: create the first
	// task when empty, view all tasks otherwise. Empty while loading.
	Action string
}

// Deps are the services an Aggregator talks to.
type Deps struct {
	Lister    Lister
	Notifier  notify.Notifier
	Localizer *i18n.Localizer
	Routes    Routes
}

// Aggregator owns the task list and loading flag of one dashboard display.
type Aggregator struct {
	deps    Deps
	loading bool
	tasks   []domain.Task
}

// New creates an Aggregator that has not loaded yet.
func New(deps Deps) *Aggregator {
	return &Aggregator{deps: deps}
}

// Loading reports whether a fetch is in flight.
func (a *Aggregator) Loading() bool { return a.loading }

// Tasks returns the current task list.
func (a *Aggregator) Tasks() []domain.Task { return a.tasks }

// Load fetches the task collection and replaces the current list with it.
// The loading flag is cleared whatever the outcome. A failed fetch leaves
// the list empty and notifies the user; it is not returned.
func (a *Aggregator) Load(ctx context.Context) {
	log := logger.FromContext(ctx)

	a.loading = true
	defer func() { a.loading = false }()

	tasks, err := a.deps.Lister.List(ctx)
	if err != nil {
		log.Warn("failed to fetch tasks for dashboard", slog.String("error", redact.Error(err)))
		a.tasks = nil
		notify.Error(ctx, a.deps.Notifier, a.translate(i18n.FetchTasksFailed))
		return
	}
	a.tasks = tasks
}

// View derives the display branch and counts from the current list.
func (a *Aggregator) View() View {
	if a.loading {
		return View{State: StateLoading}
	}
	if len(a.tasks) == 0 {
		return View{State: StateEmpty, Action: a.deps.Routes.CreateTask()}
	}
	return View{
		State:  StateSummary,
		Counts: Count(a.tasks),
		Action: a.deps.Routes.TaskList(),
	}
}

// translate falls back to the raw key when no localizer is configured.
func (a *Aggregator) translate(key i18n.Key) string {
	if a.deps.Localizer == nil {
		return string(key)
	}
	return a.deps.Localizer.T(key)
}
