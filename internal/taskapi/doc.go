// Package taskapi is the HTTP client for the backend task API. It exposes the
// conventional CRUD operations on the Task resource and maps non-2xx
// responses to *APIError.
package taskapi
