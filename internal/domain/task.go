package domain

import "strings"

// Task is the record managed by the backend task API.
// Dates are kept as the ISO-8601 strings the backend sends so that an update
// submits them back unchanged.
type Task struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Keywords     []string `json:"keywords"`
	Status       Status   `json:"status"`
	CreationDate string   `json:"creationDate,omitempty"`
	UpdatedDate  string   `json:"updatedDate,omitempty"`
}

// Validate reports whether the task has a title and a known status.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Clone returns a copy of t whose keyword slice is not shared.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.Keywords != nil {
		c.Keywords = append([]string(nil), t.Keywords...)
	}
	return &c
}
