package web

import (
	"net/http"
	"net/url"
)

// NewTaskID is the route id that opens the form in create mode.
const NewTaskID = "0"

// Navigator builds application routes and redirects to them.
type Navigator struct{}

// Dashboard is the path of the dashboard view.
func (Navigator) Dashboard() string { return "/" }

// TaskList is the path of the task list view.
func (Navigator) TaskList() string { return "/tasks" }

// CreateTask is the path of the form in create mode.
func (n Navigator) CreateTask() string { return n.CreateOrUpdate(NewTaskID) }

// CreateOrUpdate is the path of the form for id.
func (Navigator) CreateOrUpdate(id string) string {
	return "/tasks/createOrUpdate/" + url.PathEscape(id)
}

// DeleteTask is the path the delete button posts to.
func (Navigator) DeleteTask(id string) string {
	return "/tasks/" + url.PathEscape(id) + "/delete"
}

// Redirect sends the browser to path with a GET.
func (Navigator) Redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
