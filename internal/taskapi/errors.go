package taskapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches an *APIError carrying a 404 status.
var ErrNotFound = errors.New("task not found")

// APIError is returned for any non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
}

// Error returns the backend's message when it sent one.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
