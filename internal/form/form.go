// Package form implements the task form: editable field state, the dynamic
// keyword list, touched-field tracking, and validation-gated submission
// through a create or update intent.
package form

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/i18n"
	"github.com/phrazzld/taskboard/internal/notify"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/redact"
)

// Field names, shared with the HTML inputs.
const (
	FieldID           = "id"
	FieldTitle        = "title"
	FieldKeywords     = "keywords"
	FieldStatus       = "status"
	FieldCreationDate = "creationDate"
	FieldUpdatedDate  = "updatedDate"
)

// Fields lists every field in display order.
var Fields = []string{FieldTitle, FieldKeywords, FieldStatus, FieldCreationDate, FieldUpdatedDate}

// AddKeywordKey is the key that commits the keyword input buffer.
const AddKeywordKey = "Enter"

// ErrValidation is returned by Submit when the schema reports any error.
var ErrValidation = errors.New("form validation failed")

// Values are the editable fields of a task.
type Values struct {
	ID           string
	Title        string
	Keywords     []string
	Status       domain.Status
	CreationDate string
	UpdatedDate  string
}

// Task converts the values into the record submitted to the backend.
func (v Values) Task() domain.Task {
	return domain.Task{
		ID:           v.ID,
		Title:        v.Title,
		Keywords:     append([]string{}, v.Keywords...),
		Status:       v.Status,
		CreationDate: v.CreationDate,
		UpdatedDate:  v.UpdatedDate,
	}
}

// State is everything a form needs to survive a request round trip.
type State struct {
	Values       Values
	KeywordInput string
	Touched      []string
}

// Deps are the services a Controller talks to.
type Deps struct {
	Writer    TaskWriter
	Notifier  notify.Notifier
	Localizer *i18n.Localizer
}

// Controller owns the state of one task form.
type Controller struct {
	deps Deps

	source       *domain.Task
	intent       Intent
	values       Values
	keywordInput string
	touched      map[string]bool
}

// New creates a controller for task. A nil task opens the form in create
// mode; otherwise it edits task.
func New(task *domain.Task, deps Deps) *Controller {
	c := &Controller{deps: deps}
	c.init(task)
	return c
}

func (c *Controller) init(task *domain.Task) {
	c.source = task
	c.keywordInput = ""
	c.touched = make(map[string]bool)

	if task == nil {
		c.intent = CreateIntent{}
		c.values = Values{Keywords: []string{}, Status: domain.StatusPending}
		return
	}

	c.intent = UpdateIntent{ID: task.ID}
	status := task.Status
	if !status.Valid() {
		status = domain.StatusPending
	}
	c.values = Values{
		ID:           task.ID,
		Title:        task.Title,
		Keywords:     append([]string{}, task.Keywords...),
		Status:       status,
		CreationDate: task.CreationDate,
		UpdatedDate:  task.UpdatedDate,
	}
}

// SetTask reinitializes the form when task is a different reference from
// the one the form was built from. It reports whether it reinitialized.
func (c *Controller) SetTask(task *domain.Task) bool {
	if task == c.source {
		return false
	}
	c.init(task)
	return true
}

// Restore replaces the field state with s, keeping the intent.
func (c *Controller) Restore(s State) {
	c.values = s.Values
	c.values.Keywords = append([]string{}, s.Values.Keywords...)
	c.keywordInput = s.KeywordInput
	c.touched = make(map[string]bool, len(s.Touched))
	for _, f := range s.Touched {
		c.touched[f] = true
	}
}

// State returns a snapshot of the field state.
func (c *Controller) State() State {
	s := State{
		Values:       c.values,
		KeywordInput: c.keywordInput,
	}
	s.Values.Keywords = append([]string{}, c.values.Keywords...)
	for _, f := range Fields {
		if c.touched[f] {
			s.Touched = append(s.Touched, f)
		}
	}
	return s
}

// Intent returns the submit mode of the form.
func (c *Controller) Intent() Intent { return c.intent }

// Values returns a copy of the current field values.
func (c *Controller) Values() Values {
	v := c.values
	v.Keywords = append([]string{}, c.values.Keywords...)
	return v
}

// KeywordInput returns the pending keyword text.
func (c *Controller) KeywordInput() string { return c.keywordInput }

// SetTitle sets the title field.
func (c *Controller) SetTitle(title string) { c.values.Title = title }

// SetStatus sets the status field.
func (c *Controller) SetStatus(s domain.Status) { c.values.Status = s }

// SetStatusRaw parses a submitted status value. Unparseable input is kept
// as an invalid status so that validation reports it.
func (c *Controller) SetStatusRaw(raw string) {
	s, err := domain.ParseStatus(raw)
	if err != nil {
		s = domain.StatusUnknown
	}
	c.values.Status = s
}

// SetDate sets a date field from a YYYY-MM-DD input. When the input still
// shows the current value's day, the full timestamp is kept.
func (c *Controller) SetDate(field, value string) {
	var target *string
	switch field {
	case FieldCreationDate:
		target = &c.values.CreationDate
	case FieldUpdatedDate:
		target = &c.values.UpdatedDate
	default:
		return
	}
	if domain.FormatDate(*target) == value {
		return
	}
	*target = value
}

// SetKeywordInput replaces the keyword input buffer.
func (c *Controller) SetKeywordInput(s string) { c.keywordInput = s }

// KeyDown handles a key event in the keyword input. It reports whether the
// key was consumed, in which case the default action must be suppressed.
func (c *Controller) KeyDown(key string) bool {
	if key != AddKeywordKey {
		return false
	}
	return c.AddKeyword()
}

// AddKeyword appends the trimmed keyword buffer and clears it. Blank input
// is a no-op. Duplicates are accepted.
func (c *Controller) AddKeyword() bool {
	kw := strings.TrimSpace(c.keywordInput)
	if kw == "" {
		return false
	}
	c.values.Keywords = append(c.values.Keywords, kw)
	c.keywordInput = ""
	return true
}

// RemoveKeyword drops the keyword at index i, keeping the order of the rest.
// Out-of-range indexes are ignored.
func (c *Controller) RemoveKeyword(i int) {
	kws := c.values.Keywords
	if i < 0 || i >= len(kws) {
		return
	}
	out := make([]string, 0, len(kws)-1)
	out = append(out, kws[:i]...)
	c.values.Keywords = append(out, kws[i+1:]...)
}

// Touch marks field as interacted with.
func (c *Controller) Touch(field string) { c.touched[field] = true }

// Touched reports whether field was interacted with.
func (c *Controller) Touched(field string) bool { return c.touched[field] }

// Errors validates the current values against the intent's schema.
func (c *Controller) Errors() FieldErrors {
	return runSchema(c.intent.Schema(c.values))
}

// VisibleErrors returns localized messages for touched fields only.
func (c *Controller) VisibleErrors() map[string]string {
	out := make(map[string]string)
	for field, key := range c.Errors() {
		if c.touched[field] {
			out[field] = c.translate(key)
		}
	}
	return out
}

// Valid reports whether the schema accepts the current values.
func (c *Controller) Valid() bool {
	return len(c.Errors()) == 0
}

// Submit marks every field touched and validates. Invalid values return
// ErrValidation without any backend call. Otherwise the intent's call is
// made; success and failure are both reported through the notifier, and a
// failed call's error is returned unchanged.
func (c *Controller) Submit(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for _, f := range Fields {
		c.touched[f] = true
	}
	c.touched[FieldID] = true

	if errs := c.Errors(); len(errs) > 0 {
		log.Debug("task form rejected by validation", slog.Int("error_count", len(errs)))
		return ErrValidation
	}

	msg, err := c.intent.Submit(ctx, c.deps.Writer, c.values)
	if err != nil {
		log.Warn("task form submission failed", slog.String("error", redact.Error(err)))
		notify.Warning(ctx, c.deps.Notifier, c.translate(i18n.ErrorPrefix)+err.Error())
		return err
	}

	notify.Success(ctx, c.deps.Notifier, c.translate(msg))
	return nil
}

func (c *Controller) translate(key i18n.Key) string {
	if c.deps.Localizer == nil {
		return string(key)
	}
	return c.deps.Localizer.T(key)
}
