package form

import (
	"context"
	"strings"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/i18n"
)

// TaskWriter is the part of the backend API a form submits to.
type TaskWriter interface {
	Create(ctx context.Context, task domain.Task) (int, error)
	Update(ctx context.Context, id string, task domain.Task) error
}

// Intent is the submit mode of a form. Each intent carries its own
// validation schema and the call it dispatches.
type Intent interface {
	// Schema returns the struct the validator checks for v.
	Schema(v Values) any

	// Submit sends v to w and returns the key of the success message.
	Submit(ctx context.Context, w TaskWriter, v Values) (i18n.Key, error)

	// Heading is the key of the form title and submit button label.
	Heading() i18n.Key
}

// CreateIntent submits a new task.
type CreateIntent struct{}

// UpdateIntent replaces the task identified by ID.
type UpdateIntent struct {
	ID string
}

var (
	_ Intent = CreateIntent{}
	_ Intent = UpdateIntent{}
)

type createSchema struct {
	Title        string        `form:"title"        validate:"required"`
	Keywords     []string      `form:"keywords"     validate:"dive,required"`
	Status       domain.Status `form:"status"       validate:"oneof=0 1 2"`
	CreationDate string        `form:"creationDate" validate:"omitempty,isodate"`
	UpdatedDate  string        `form:"updatedDate"  validate:"omitempty,isodate"`
}

type updateSchema struct {
	ID     string `form:"id" validate:"required"`
	Fields createSchema
}

func newCreateSchema(v Values) createSchema {
	return createSchema{
		Title:        strings.TrimSpace(v.Title),
		Keywords:     v.Keywords,
		Status:       v.Status,
		CreationDate: v.CreationDate,
		UpdatedDate:  v.UpdatedDate,
	}
}

// Schema implements Intent.
func (CreateIntent) Schema(v Values) any {
	return newCreateSchema(v)
}

// Submit implements Intent. The identifier is never sent.
func (CreateIntent) Submit(ctx context.Context, w TaskWriter, v Values) (i18n.Key, error) {
	task := v.Task()
	task.ID = ""
	if _, err := w.Create(ctx, task); err != nil {
		return "", err
	}
	return i18n.TaskCreated, nil
}

// Heading implements Intent.
func (CreateIntent) Heading() i18n.Key { return i18n.CreateTask }

// Schema implements Intent.
func (UpdateIntent) Schema(v Values) any {
	return updateSchema{ID: strings.TrimSpace(v.ID), Fields: newCreateSchema(v)}
}

// Submit implements Intent.
func (u UpdateIntent) Submit(ctx context.Context, w TaskWriter, v Values) (i18n.Key, error) {
	if err := w.Update(ctx, u.ID, v.Task()); err != nil {
		return "", err
	}
	return i18n.TaskUpdated, nil
}

// Heading implements Intent.
func (UpdateIntent) Heading() i18n.Key { return i18n.UpdateTask }
