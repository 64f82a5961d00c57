// Package i18n holds the user-facing message catalog and selects a locale for
// each request from its Accept-Language header.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// Key identifies a translatable message.
type Key string

// Message keys shown to users, either as notifications or page text.
const (
	TaskCreated      Key = "task_created"
	TaskUpdated      Key = "task_updated"
	TaskDeleted      Key = "task_deleted"
	ErrorPrefix      Key = "error_prefix"
	FetchTasksFailed Key = "fetch_tasks_failed"
	FetchTaskFailed  Key = "fetch_task_failed"

	Dashboard       Key = "dashboard"
	TaskList        Key = "task_list"
	LoadingTasks    Key = "loading_tasks"
	NoTasksFound    Key = "no_tasks_found"
	AddFirstTask    Key = "add_first_task"
	PendingTasks    Key = "pending_tasks"
	InProgressTasks Key = "in_progress_tasks"
	CompletedTasks  Key = "completed_tasks"
	ViewAllTasks    Key = "view_all_tasks"
	NewTask         Key = "new_task"
	CreateTask      Key = "create_task"
	UpdateTask      Key = "update_task"
	DeleteTask      Key = "delete_task"
	EditTask        Key = "edit_task"

	FieldTitle        Key = "field_title"
	FieldKeywords     Key = "field_keywords"
	FieldStatus       Key = "field_status"
	FieldCreationDate Key = "field_creation_date"
	FieldUpdatedDate  Key = "field_updated_date"
	TitlePlaceholder  Key = "title_placeholder"
	KeywordHint       Key = "keyword_hint"

	StatusPending    Key = "status_pending"
	StatusInProgress Key = "status_in_progress"
	StatusCompleted  Key = "status_completed"

	ErrRequired      Key = "err_required"
	ErrInvalidStatus Key = "err_invalid_status"
	ErrEmptyKeyword  Key = "err_empty_keyword"
	ErrInvalid       Key = "err_invalid"
)

var tables = map[language.Tag]map[Key]string{
	language.BrazilianPortuguese: {
		TaskCreated:      "Tarefa criada com sucesso",
		TaskUpdated:      "Tarefa atualizada com sucesso",
		TaskDeleted:      "Tarefa excluída com sucesso",
		ErrorPrefix:      "Erro: ",
		FetchTasksFailed: "Falha ao buscar tarefas",
		FetchTaskFailed:  "Falha ao buscar tarefa",

		Dashboard:       "Dashboard",
		TaskList:        "Tarefas",
		LoadingTasks:    "Carregando tarefas...",
		NoTasksFound:    "Não foram encontradas tarefas",
		AddFirstTask:    "Adicionar 1ª tarefa",
		PendingTasks:    "Tarefas Pendentes",
		InProgressTasks: "Tarefas em Progresso",
		CompletedTasks:  "Tarefas Concluídas",
		ViewAllTasks:    "Ver todas as tarefas",
		NewTask:         "Nova tarefa",
		CreateTask:      "Criar Tarefa",
		UpdateTask:      "Atualizar Tarefa",
		DeleteTask:      "Excluir",
		EditTask:        "Editar",

		FieldTitle:        "Título",
		FieldKeywords:     "Palavras-chave",
		FieldStatus:       "Status",
		FieldCreationDate: "Data Criação",
		FieldUpdatedDate:  "Data Atualização",
		TitlePlaceholder:  "Título da tarefa",
		KeywordHint:       "Digite e pressione Enter",

		StatusPending:    "Pendente",
		StatusInProgress: "Em Progresso",
		StatusCompleted:  "Concluída",

		ErrRequired:      "Campo obrigatório",
		ErrInvalidStatus: "Status inválido",
		ErrEmptyKeyword:  "Palavras-chave não podem ser vazias",
		ErrInvalid:       "Valor inválido",
	},
	language.English: {
		TaskCreated:      "Task created successfully",
		TaskUpdated:      "Task updated successfully",
		TaskDeleted:      "Task deleted successfully",
		ErrorPrefix:      "Error: ",
		FetchTasksFailed: "Failed to fetch tasks",
		FetchTaskFailed:  "Failed to fetch task",

		Dashboard:       "Dashboard",
		TaskList:        "Tasks",
		LoadingTasks:    "Loading tasks...",
		NoTasksFound:    "No tasks found",
		AddFirstTask:    "Add your first task",
		PendingTasks:    "Pending Tasks",
		InProgressTasks: "Tasks in Progress",
		CompletedTasks:  "Completed Tasks",
		ViewAllTasks:    "View all tasks",
		NewTask:         "New task",
		CreateTask:      "Create Task",
		UpdateTask:      "Update Task",
		DeleteTask:      "Delete",
		EditTask:        "Edit",

		FieldTitle:        "Title",
		FieldKeywords:     "Keywords",
		FieldStatus:       "Status",
		FieldCreationDate: "Created",
		FieldUpdatedDate:  "Updated",
		TitlePlaceholder:  "Task title",
		KeywordHint:       "Type and press Enter",

		StatusPending:    "Pending",
		StatusInProgress: "In Progress",
		StatusCompleted:  "Completed",

		ErrRequired:      "Required field",
		ErrInvalidStatus: "Invalid status",
		ErrEmptyKeyword:  "Keywords cannot be empty",
		ErrInvalid:       "Invalid value",
	},
}

// Catalog matches request locales against the supported translations.
type Catalog struct {
	supported []language.Tag
	matcher   language.Matcher
}

// NewCatalog builds a catalog whose fallback is defaultLocale.
// defaultLocale must name a supported language (e.g. "pt-BR", "en").
func NewCatalog(defaultLocale string) (*Catalog, error) {
	parsed, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", defaultLocale, err)
	}
	var def language.Tag
	found := false
	for tag := range tables {
		if tag.String() == parsed.String() {
			def, found = tag, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("unsupported default locale %q", defaultLocale)
	}

	// The matcher falls back to the first supported tag.
	supported := []language.Tag{def}
	for tag := range tables {
		if tag != def {
			supported = append(supported, tag)
		}
	}

	return &Catalog{
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}, nil
}

// Localizer returns a localizer for the given Accept-Language header value.
// An empty or malformed header selects the default locale.
func (c *Catalog) Localizer(acceptLanguage string) *Localizer {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.forTag(c.supported[0])
	}
	_, idx, _ := c.matcher.Match(tags...)
	return c.forTag(c.supported[idx])
}

func (c *Catalog) forTag(tag language.Tag) *Localizer {
	return &Localizer{tag: tag, table: tables[tag]}
}

// Localizer translates message keys for one locale.
type Localizer struct {
	tag   language.Tag
	table map[Key]string
}

// T returns the translation of key, or the key itself when it is missing.
func (l *Localizer) T(key Key) string {
	if s, ok := l.table[key]; ok {
		return s
	}
	return string(key)
}

// Lang returns the BCP 47 tag of the localizer, for the html lang attribute.
func (l *Localizer) Lang() string {
	return l.tag.String()
}
