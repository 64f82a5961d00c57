package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidStatus is returned when a status value is outside the enumeration.
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrEmptyTitle is returned when a task title is empty or whitespace.
	ErrEmptyTitle = errors.New("task title cannot be empty")
)
