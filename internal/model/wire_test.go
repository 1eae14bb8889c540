package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwang/apiforge/internal/model"
)

func TestFlexIDAcceptsStringAndNumber(t *testing.T) {
	var p model.TaskPayload
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "user_id": "7"}`), &p))
	assert.Equal(t, "42", p.ID.String())
	assert.Equal(t, "7", p.UserID.String())
}

func TestFlexTimeAcceptsBackendTimestamps(t *testing.T) {
	// The backend serializes datetime columns without a UTC offset;
	// other endpoints emit full RFC 3339. Both must decode.
	var p model.TaskPayload
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 1,
		"created_at": "2025-01-01T00:00:00",
		"updated_at": "2025-01-01T08:30:00.123456",
		"logs": [{"id": 9, "status": "deployed", "created_at": "2025-01-02T10:00:00Z"}]
	}`), &p))

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), p.CreatedAt.Time)
	assert.Equal(t, time.Date(2025, 1, 1, 8, 30, 0, 123456000, time.UTC), p.UpdatedAt.Time)
	require.Len(t, p.Logs, 1)
	assert.Equal(t, time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC), p.Logs[0].CreatedAt.Time)

	var n model.NotificationPayload
	require.NoError(t, json.Unmarshal([]byte(`{"id": 2, "created_at": null}`), &n))
	assert.True(t, n.CreatedAt.IsZero())

	var u model.UserPayload
	err := json.Unmarshal([]byte(`{"id": 3, "created_at": "not a time"}`), &u)
	require.Error(t, err)
}

func TestTaskNormalizePrefersName(t *testing.T) {
	now := time.Now()

	p := model.TaskPayload{Name: "orders-api", Title: "old title"}
	assert.Equal(t, "orders-api", p.Normalize(now).Title)

	p = model.TaskPayload{Title: "only title"}
	assert.Equal(t, "only title", p.Normalize(now).Title)
}

func TestTaskNormalizeAppliesStackDefaults(t *testing.T) {
	now := time.Now()
	task := model.TaskPayload{}.Normalize(now)

	assert.Equal(t, model.DefaultLanguage, task.Language)
	assert.Equal(t, model.DefaultFramework, task.Framework)
	assert.Equal(t, model.DefaultDatabase, task.Database)
	assert.Equal(t, now, task.FetchedAt)

	task = model.TaskPayload{Language: "go", Framework: "chi", Database: "postgres"}.Normalize(now)
	assert.Equal(t, "go", task.Language)
	assert.Equal(t, "chi", task.Framework)
	assert.Equal(t, "postgres", task.Database)
}

func TestTaskNormalizeKeepsProgressOverride(t *testing.T) {
	p := 73
	task := model.TaskPayload{Status: "testing", Progress: &p}.Normalize(time.Now())
	require.NotNil(t, task.Progress)
	assert.Equal(t, 73, *task.Progress)
}

func TestNotificationNormalizePrefersContent(t *testing.T) {
	n := model.NotificationPayload{Content: "body", Message: "fallback"}.Normalize()
	assert.Equal(t, "body", n.Content)

	n = model.NotificationPayload{Message: "fallback"}.Normalize()
	assert.Equal(t, "fallback", n.Content)

	n = model.NotificationPayload{}.Normalize()
	assert.Equal(t, model.NotifyInfo, n.Type)
}

func TestUserNormalize(t *testing.T) {
	joined := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	u := model.UserPayload{Name: "wang", JoinedAt: model.FlexTime{Time: joined}}.Normalize()
	assert.Equal(t, "wang", u.Username)
	assert.Equal(t, joined, u.CreatedAt)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.True(t, u.IsActive, "absent is_active defaults to usable")

	inactive := false
	u = model.UserPayload{Username: "admin", Role: "admin", IsActive: &inactive}.Normalize()
	assert.Equal(t, "admin", u.Username)
	assert.False(t, u.IsActive)
}
