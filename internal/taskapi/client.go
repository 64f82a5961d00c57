package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/redact"
)

// maxErrorBody bounds how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// Service defines the backend task operations the web layer depends on.
type Service interface {
	// List returns every task in backend order.
	List(ctx context.Context) ([]domain.Task, error)

	// Get returns the task with the given id.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// Create stores a new task. The id of task is never sent.
	// Returns the HTTP status code of the response.
	Create(ctx context.Context, task domain.Task) (int, error)

	// Update replaces the task with the given id by task.
	Update(ctx context.Context, id string, task domain.Task) error

	// Delete removes the task with the given id.
	// Returns the HTTP status code of the response.
	Delete(ctx context.Context, id string) (int, error)
}

// Client implements Service over HTTP+JSON.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

var _ Service = (*Client)(nil)

// New creates a client for the API rooted at baseURL.
func New(baseURL string, httpClient *http.Client, log *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q: scheme and host are required", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: u,
		http:    httpClient,
		logger:  log.With(slog.String("component", "task_api_client")),
	}, nil
}

// List implements Service.
func (c *Client) List(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if _, err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// Get implements Service.
func (c *Client) Get(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if _, err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Create implements Service.
func (c *Client) Create(ctx context.Context, task domain.Task) (int, error) {
	task.ID = ""
	return c.do(ctx, http.MethodPost, "/tasks", task, nil)
}

// Update implements Service.
func (c *Client) Update(ctx context.Context, id string, task domain.Task) error {
	_, err := c.do(ctx, http.MethodPut, taskPath(id), task, nil)
	return err
}

// Delete implements Service.
func (c *Client) Delete(ctx context.Context, id string) (int, error) {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

// do sends one request and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	var reqBody io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reqBody)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", redact.Error(err)))
		return 0, err
	}
	defer resp.Body.Close()

	log.Debug("backend request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, readAPIError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// readAPIError builds an APIError from a JSON {"message"} or {"error"} body.
func readAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		switch {
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.Error != "":
			apiErr.Message = payload.Error
		}
	}
	return apiErr
}
