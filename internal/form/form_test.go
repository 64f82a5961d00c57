package form

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/i18n"
	"github.com/phrazzld/taskboard/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWriter is a mock implementation of the TaskWriter interface
type mockWriter struct {
	createFn func(ctx context.Context, task domain.Task) (int, error)
	updateFn func(ctx context.Context, id string, task domain.Task) error

	created []domain.Task
	updated []domain.Task
	ids     []string
}

func (m *mockWriter) Create(ctx context.Context, task domain.Task) (int, error) {
	m.created = append(m.created, task)
	if m.createFn != nil {
		return m.createFn(ctx, task)
	}
	return 201, nil
}

func (m *mockWriter) Update(ctx context.Context, id string, task domain.Task) error {
	m.ids = append(m.ids, id)
	m.updated = append(m.updated, task)
	if m.updateFn != nil {
		return m.updateFn(ctx, id, task)
	}
	return nil
}

func newTestController(t *testing.T, task *domain.Task) (*Controller, *mockWriter, *notify.Recorder) {
	t.Helper()
	catalog, err := i18n.NewCatalog("pt-BR")
	require.NoError(t, err)

	w := &mockWriter{}
	rec := &notify.Recorder{}
	c := New(task, Deps{Writer: w, Notifier: rec, Localizer: catalog.Localizer("")})
	return c, w, rec
}

func TestNewCreateMode(t *testing.T) {
	c, _, _ := newTestController(t, nil)

	assert.Equal(t, CreateIntent{}, c.Intent())
	v := c.Values()
	assert.Empty(t, v.ID)
	assert.Empty(t, v.Title)
	assert.Empty(t, v.Keywords)
	assert.Equal(t, domain.StatusPending, v.Status, "status defaults to pending")
	assert.Equal(t, i18n.CreateTask, c.Intent().Heading())
}

func TestNewUpdateModeCopiesTask(t *testing.T) {
	task := &domain.Task{
		ID:           "17",
		Title:        "Buy milk",
		Keywords:     []string{"home", "shop"},
		Status:       domain.StatusPending,
		CreationDate: "2024-01-02T03:04:05Z",
		UpdatedDate:  "2024-01-03T03:04:05Z",
	}
	c, _, _ := newTestController(t, task)

	assert.Equal(t, UpdateIntent{ID: "17"}, c.Intent())
	assert.Equal(t, i18n.UpdateTask, c.Intent().Heading())
	v := c.Values()
	assert.Equal(t, "Buy milk", v.Title)
	assert.Equal(t, domain.StatusPending, v.Status)
	assert.Equal(t, task.Keywords, v.Keywords)
	assert.Equal(t, task.CreationDate, v.CreationDate)
	assert.Equal(t, task.UpdatedDate, v.UpdatedDate)
	assert.Equal(t, "17", v.ID)

	typeKeyword(c, "extra")
	assert.Len(t, task.Keywords, 2, "editing must not mutate the source task")
}

func TestSetTaskReinitializesOnNewReference(t *testing.T) {
	first := &domain.Task{ID: "1", Title: "First"}
	c, _, _ := newTestController(t, first)
	c.SetTitle("edited")
	c.Touch(FieldTitle)

	assert.False(t, c.SetTask(first), "same reference keeps state")
	assert.Equal(t, "edited", c.Values().Title)

	second := &domain.Task{ID: "2", Title: "Buy milk", Status: domain.StatusPending}
	assert.True(t, c.SetTask(second))
	assert.Equal(t, "Buy milk", c.Values().Title)
	assert.Equal(t, domain.StatusPending, c.Values().Status)
	assert.False(t, c.Touched(FieldTitle), "touched state resets")
	assert.Equal(t, UpdateIntent{ID: "2"}, c.Intent())

	assert.True(t, c.SetTask(nil))
	assert.Equal(t, CreateIntent{}, c.Intent())
}

func TestAddKeyword(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		key       string
		consumed  bool
		wantKWs   []string
		wantInput string
	}{
		{name: "enter appends trimmed", input: "  urgent ", key: "Enter", consumed: true, wantKWs: []string{"a", "urgent"}, wantInput: ""},
		{name: "whitespace is a no-op", input: "   ", key: "Enter", consumed: false, wantKWs: []string{"a"}, wantInput: "   "},
		{name: "empty is a no-op", input: "", key: "Enter", consumed: false, wantKWs: []string{"a"}, wantInput: ""},
		{name: "other key ignored", input: "b", key: "Tab", consumed: false, wantKWs: []string{"a"}, wantInput: "b"},
		{name: "duplicates accepted", input: "a", key: "Enter", consumed: true, wantKWs: []string{"a", "a"}, wantInput: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _, _ := newTestController(t, &domain.Task{ID: "1", Title: "t", Keywords: []string{"a"}})
			c.SetKeywordInput(tc.input)

			assert.Equal(t, tc.consumed, c.KeyDown(tc.key))
			assert.Equal(t, tc.wantKWs, c.Values().Keywords)
			assert.Equal(t, tc.wantInput, c.KeywordInput())
		})
	}
}

func TestRemoveKeyword(t *testing.T) {
	base := []string{"a", "b", "c", "b"}

	for i := range base {
		c, _, _ := newTestController(t, &domain.Task{ID: "1", Title: "t", Keywords: base})
		c.RemoveKeyword(i)

		want := append(append([]string{}, base[:i]...), base[i+1:]...)
		assert.Equal(t, want, c.Values().Keywords, "removing index %d", i)
	}

	c, _, _ := newTestController(t, &domain.Task{ID: "1", Title: "t", Keywords: base})
	c.RemoveKeyword(-1)
	c.RemoveKeyword(len(base))
	assert.Equal(t, base, c.Values().Keywords, "out of range is a no-op")
}

func TestSubmitEmptyTitleMakesNoCall(t *testing.T) {
	c, w, rec := newTestController(t, nil)
	c.SetTitle("   ")

	err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, w.created)
	assert.Empty(t, w.updated)
	assert.Empty(t, rec.Notifications(), "validation failures are not notified")
	assert.Equal(t, "Campo obrigatório", c.VisibleErrors()[FieldTitle])
}

func TestVisibleErrorsOnlyForTouchedFields(t *testing.T) {
	c, _, _ := newTestController(t, nil)
	c.SetStatusRaw("9")

	errs := c.Errors()
	assert.Contains(t, errs, FieldTitle)
	assert.Contains(t, errs, FieldStatus)
	assert.Empty(t, c.VisibleErrors())

	c.Touch(FieldStatus)
	visible := c.VisibleErrors()
	assert.Equal(t, map[string]string{FieldStatus: "Status inválido"}, visible)
	assert.False(t, c.Valid())
}

func TestSchemaRules(t *testing.T) {
	tests := []struct {
		name      string
		task      *domain.Task
		mutate    func(c *Controller)
		wantField string
		wantKey   i18n.Key
	}{
		{
			name:      "empty keyword element",
			mutate:    func(c *Controller) { c.Restore(State{Values: Values{Title: "t", Keywords: []string{"ok", ""}}}) },
			wantField: FieldKeywords,
			wantKey:   i18n.ErrEmptyKeyword,
		},
		{
			name:      "bad date",
			mutate:    func(c *Controller) { c.SetTitle("t"); c.SetDate(FieldCreationDate, "31/12/2024") },
			wantField: FieldCreationDate,
			wantKey:   i18n.ErrInvalid,
		},
		{
			name:      "update requires id",
			task:      &domain.Task{Title: "no id"},
			wantField: FieldID,
			wantKey:   i18n.ErrRequired,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _, _ := newTestController(t, tc.task)
			if tc.mutate != nil {
				tc.mutate(c)
			}
			errs := c.Errors()
			assert.Equal(t, tc.wantKey, errs[tc.wantField], "errors: %v", errs)
		})
	}

	t.Run("create does not require id", func(t *testing.T) {
		c, _, _ := newTestController(t, nil)
		c.SetTitle("t")
		assert.True(t, c.Valid())
	})
}

func TestSubmitCreate(t *testing.T) {
	c, w, rec := newTestController(t, nil)
	c.SetTitle("Buy milk")
	typeKeyword(c, "home")
	c.SetStatus(domain.StatusInProgress)

	require.NoError(t, c.Submit(context.Background()))

	require.Len(t, w.created, 1)
	assert.Empty(t, w.updated)
	got := w.created[0]
	assert.Empty(t, got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, []string{"home"}, got.Keywords)
	assert.Equal(t, domain.StatusInProgress, got.Status)

	assert.Equal(t, []notify.Notification{
		{Level: notify.LevelSuccess, Message: "Tarefa criada com sucesso"},
	}, rec.Notifications())
}

func TestSubmitWithoutLocalizer(t *testing.T) {
	rec := &notify.Recorder{}
	c := New(nil, Deps{Writer: &mockWriter{}, Notifier: rec})
	c.SetTitle("Buy milk")

	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, []notify.Notification{
		{Level: notify.LevelSuccess, Message: string(i18n.TaskCreated)},
	}, rec.Notifications())
	assert.Equal(t, map[string]string{}, c.VisibleErrors())
}

func TestSubmitUpdate(t *testing.T) {
	task := &domain.Task{ID: "9", Title: "Old", Keywords: []string{"x"}, Status: domain.StatusPending, CreationDate: "2024-05-01T10:00:00Z"}
	c, w, rec := newTestController(t, task)
	c.SetTitle("New")
	c.SetStatus(domain.StatusCompleted)

	require.NoError(t, c.Submit(context.Background()))

	assert.Empty(t, w.created)
	require.Len(t, w.updated, 1)
	assert.Equal(t, []string{"9"}, w.ids)
	assert.Equal(t, domain.Task{
		ID:           "9",
		Title:        "New",
		Keywords:     []string{"x"},
		Status:       domain.StatusCompleted,
		CreationDate: "2024-05-01T10:00:00Z",
	}, w.updated[0])
	assert.Equal(t, "Tarefa atualizada com sucesso", rec.Notifications()[0].Message)
}

func TestSubmitFailureNotifiesWarning(t *testing.T) {
	c, w, rec := newTestController(t, nil)
	w.createFn = func(context.Context, domain.Task) (int, error) {
		return 0, errors.New("Network Error")
	}
	c.SetTitle("t")

	err := c.Submit(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)

	assert.Equal(t, []notify.Notification{
		{Level: notify.LevelWarning, Message: "Erro: Network Error"},
	}, rec.Notifications())

	// The form stays usable: a second attempt goes through.
	w.createFn = nil
	require.NoError(t, c.Submit(context.Background()))
	assert.Len(t, w.created, 2)
}

func TestSetDateKeepsTimestampWhenUnchanged(t *testing.T) {
	c, _, _ := newTestController(t, &domain.Task{ID: "1", Title: "t", CreationDate: "2024-05-01T10:00:00Z"})

	c.SetDate(FieldCreationDate, "2024-05-01")
	assert.Equal(t, "2024-05-01T10:00:00Z", c.Values().CreationDate)

	c.SetDate(FieldCreationDate, "2024-06-01")
	assert.Equal(t, "2024-06-01", c.Values().CreationDate)

	c.SetDate("unknown", "2024-06-01")
	assert.Equal(t, "2024-06-01", c.Values().CreationDate)
}

func TestStateRoundTrip(t *testing.T) {
	c, _, _ := newTestController(t, &domain.Task{ID: "1", Title: "t", Keywords: []string{"a"}})
	c.SetKeywordInput("pending")
	c.Touch(FieldTitle)

	s := c.State()
	assert.Equal(t, []string{FieldTitle}, s.Touched)

	other, _, _ := newTestController(t, &domain.Task{ID: "1"})
	other.Restore(s)
	assert.Equal(t, c.Values(), other.Values())
	assert.Equal(t, "pending", other.KeywordInput())
	assert.True(t, other.Touched(FieldTitle))
}

// typeKeyword types s into the keyword input and presses Enter.
func typeKeyword(c *Controller, s string) {
	c.SetKeywordInput(s)
	c.KeyDown(AddKeywordKey)
}
