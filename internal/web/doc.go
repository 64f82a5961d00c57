// Package web serves the taskboard browser interface: the dashboard, the task
// list, and the create-or-update form. It adapts HTTP requests to the form
// and dashboard components and renders their state as HTML.
package web
