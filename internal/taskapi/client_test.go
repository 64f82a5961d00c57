package taskapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the fake backend received.
type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

func newBackend(t *testing.T, status int, response string) (*Client, *[]recordedRequest) {
	t.Helper()
	var got []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.EscapedPath()}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			assert.NoError(t, json.Unmarshal(data, &rec.Body))
		}
		got = append(got, rec)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	client, err := New(srv.URL+"/", srv.Client(), nil)
	require.NoError(t, err)
	return client, &got
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("not a url", nil, nil)
	assert.Error(t, err)

	_, err = New("http://[::1", nil, nil)
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	client, reqs := newBackend(t, http.StatusOK, `[
		{"id":"1","title":"Buy milk","keywords":["home"],"status":0,"creationDate":"2024-01-01T00:00:00Z"},
		{"id":"2","title":"Ship","keywords":[],"status":"2"}
	]`)

	tasks, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, []string{"home"}, tasks[0].Keywords)
	assert.Equal(t, domain.StatusCompleted, tasks[1].Status)

	require.Len(t, *reqs, 1)
	assert.Equal(t, http.MethodGet, (*reqs)[0].Method)
	assert.Equal(t, "/tasks", (*reqs)[0].Path)
}

func TestListKeepsRecordsWithUnknownStatus(t *testing.T) {
	client, _ := newBackend(t, http.StatusOK, `[
		{"id":"1","title":"a","status":0},
		{"id":"2","title":"b","status":1},
		{"id":"3","title":"c","status":3}
	]`)

	tasks, err := client.List(context.Background())
	require.NoError(t, err, "an out-of-range status must not fail the whole list")
	require.Len(t, tasks, 3)
	assert.Equal(t, domain.Status(3), tasks[2].Status)
	assert.False(t, tasks[2].Status.Valid())
}

func TestListNullBody(t *testing.T) {
	client, _ := newBackend(t, http.StatusOK, `null`)
	tasks, err := client.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestGet(t *testing.T) {
	client, reqs := newBackend(t, http.StatusOK, `{"id":"a b","title":"T","keywords":null,"status":1}`)

	task, err := client.Get(context.Background(), "a b")
	require.NoError(t, err)
	assert.Equal(t, "T", task.Title)
	assert.Equal(t, domain.StatusInProgress, task.Status)
	assert.Equal(t, "/tasks/a%20b", (*reqs)[0].Path, "ids are path-escaped")
}

func TestCreateOmitsID(t *testing.T) {
	client, reqs := newBackend(t, http.StatusCreated, `{}`)

	status, err := client.Create(context.Background(), domain.Task{
		ID:       "should-not-be-sent",
		Title:    "New",
		Keywords: []string{"x"},
		Status:   domain.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)

	req := (*reqs)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/tasks", req.Path)
	assert.NotContains(t, req.Body, "id")
	assert.Equal(t, "New", req.Body["title"])
	assert.Equal(t, float64(0), req.Body["status"])
}

func TestUpdateSendsFullRecord(t *testing.T) {
	client, reqs := newBackend(t, http.StatusNoContent, ``)

	err := client.Update(context.Background(), "42", domain.Task{
		ID:           "42",
		Title:        "Edited",
		Keywords:     []string{"a", "a"},
		Status:       domain.StatusCompleted,
		CreationDate: "2024-01-01T00:00:00Z",
		UpdatedDate:  "2024-02-01T00:00:00Z",
	})
	require.NoError(t, err)

	req := (*reqs)[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/tasks/42", req.Path)
	assert.Equal(t, "42", req.Body["id"])
	assert.Equal(t, []any{"a", "a"}, req.Body["keywords"])
	assert.Equal(t, float64(2), req.Body["status"])
	assert.Equal(t, "2024-02-01T00:00:00Z", req.Body["updatedDate"])
}

func TestDeleteReturnsStatus(t *testing.T) {
	client, reqs := newBackend(t, http.StatusNoContent, ``)

	status, err := client.Delete(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, http.MethodDelete, (*reqs)[0].Method)
	assert.Equal(t, "/tasks/7", (*reqs)[0].Path)
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		notFound    bool
	}{
		{name: "message field", status: http.StatusBadRequest, body: `{"message":"title is required"}`, wantMessage: "title is required"},
		{name: "error field", status: http.StatusConflict, body: `{"error":"conflict"}`, wantMessage: "conflict"},
		{name: "no body", status: http.StatusInternalServerError, body: ``, wantMessage: "request failed with status code 500"},
		{name: "non-json body", status: http.StatusBadGateway, body: `<html>`, wantMessage: "request failed with status code 502"},
		{name: "not found", status: http.StatusNotFound, body: `{}`, wantMessage: "request failed with status code 404", notFound: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newBackend(t, tc.status, tc.body)

			_, err := client.Get(context.Background(), "1")
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.wantMessage, err.Error())
			assert.Equal(t, tc.notFound, errors.Is(err, ErrNotFound))
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := New(url, nil, nil)
	require.NoError(t, err)

	_, err = client.List(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport errors are not API errors")
}

func TestCanceledContext(t *testing.T) {
	client, _ := newBackend(t, http.StatusOK, `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMalformedResponse(t *testing.T) {
	client, _ := newBackend(t, http.StatusOK, `{"title":`)
	_, err := client.Get(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
