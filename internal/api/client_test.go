package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwang/apiforge/internal/api"
	"github.com/lwang/apiforge/internal/model"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, staticToken("tok-123"), 0)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"tasks": []any{}, "total": 0})
	}))

	_, err := c.GetTasks(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestErrorDetailExtracted(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "任务不存在"})
	}))

	_, err := c.GetTask(context.Background(), "99")
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "任务不存在", apiErr.Error())
}

func TestErrorMessageFallback(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid request body"})
	}))

	_, err := c.CreateTask(context.Background(), model.TaskSpec{Name: "x"})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid request body", apiErr.Detail)
}

func TestUnauthorizedSentinel(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestUpdateUserStatusRequestShape(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"message": "ok", "success": true})
	}))

	err := c.UpdateUserStatus(context.Background(), "12", false)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/admin/users/12/status", gotPath)
	active, present := gotBody["is_active"]
	assert.True(t, present)
	assert.False(t, active)
}

func TestUpdateTaskStatusCarriesComment(t *testing.T) {
	var gotBody map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"id": 5, "title": "t", "status": "rejected",
			"admin_comment": gotBody["admin_comment"],
		})
	}))

	task, err := c.UpdateTaskStatus(context.Background(), "5", api.ReviewDecision{
		Status:  "rejected",
		Comment: "需要修改",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", gotBody["status"])
	assert.Equal(t, "需要修改", gotBody["admin_comment"])
	assert.Equal(t, "需要修改", task.AdminComment)
}

func TestTaskListNormalization(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"tasks": []map[string]any{
				{"id": 1, "name": "orders-api", "status": "deployed"},
				{"id": "2", "title": "users-api", "status": "submitted"},
			},
			"total": 2, "page": 1, "size": 20,
		})
	}))

	page, err := c.GetTasks(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Tasks, 2)

	assert.Equal(t, "1", page.Tasks[0].ID)
	assert.Equal(t, "orders-api", page.Tasks[0].Title)
	assert.Equal(t, "2", page.Tasks[1].ID)
	assert.Equal(t, "users-api", page.Tasks[1].Title)
	assert.Equal(t, model.DefaultLanguage, page.Tasks[0].Language)
}

func TestRetryOn429(t *testing.T) {
	attempts := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"tasks": []any{}, "total": 0})
	}))

	_, err := c.GetTasks(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestBreakerOpensAfterServerFailures(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	ctx := context.Background()
	var lastErr error
	for i := 0; i < 8; i++ {
		_, lastErr = c.GetTasks(ctx, 0, 0)
		require.Error(t, lastErr)
	}

	// After repeated 5xx the breaker is open and requests fail fast
	// with an unavailability error instead of an HTTP error.
	var apiErr *api.Error
	assert.False(t, errors.As(lastErr, &apiErr))
	assert.Contains(t, lastErr.Error(), "backend unavailable")
}

func TestDownloadCode(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks/7/download", r.URL.Path)
		w.Write([]byte{0x50, 0x4b, 0x03, 0x04})
	}))

	blob, err := c.DownloadCode(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x50, 0x4b, 0x03, 0x04}, blob)
}

func TestAdvanceAndCompleteActionPaths(t *testing.T) {
	var paths []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	ctx := context.Background()
	require.NoError(t, c.AdvanceTask(ctx, "3"))
	require.NoError(t, c.CompleteTaskAction(ctx, "3", "push_code"))

	assert.Equal(t, []string{
		"POST /api/tasks/3/advance",
		"POST /api/tasks/3/actions/push_code/complete",
	}, paths)
}
