package realtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwang/apiforge/internal/realtime"
)

func TestDecodeTaskStatusUpdate(t *testing.T) {
	raw := []byte(`{
		"type": "task_status_update",
		"data": {"task_id": 12, "status": "under_review"},
		"timestamp": "2026-08-24T10:00:00Z"
	}`)

	msg, err := realtime.Decode(raw)
	require.NoError(t, err)

	update, ok := msg.(realtime.TaskStatusMsg)
	require.True(t, ok)
	assert.Equal(t, "12", update.TaskID)
	assert.Equal(t, "under_review", update.Status)
	assert.Nil(t, update.Progress)
}

func TestDecodeTaskStatusUpdateWithProgress(t *testing.T) {
	raw := []byte(`{"type":"task_status_update","data":{"task_id":"3","status":"testing","progress":45}}`)

	msg, err := realtime.Decode(raw)
	require.NoError(t, err)

	update := msg.(realtime.TaskStatusMsg)
	require.NotNil(t, update.Progress)
	assert.Equal(t, 45, *update.Progress)
}

func TestDecodeNotification(t *testing.T) {
	raw := []byte(`{
		"type": "notification",
		"data": {"id": 9, "user_id": 2, "type": "success", "title": "部署完成", "message": "任务已部署"}
	}`)

	msg, err := realtime.Decode(raw)
	require.NoError(t, err)

	n, ok := msg.(realtime.NotificationMsg)
	require.True(t, ok)
	assert.Equal(t, "9", n.Notification.ID)
	assert.Equal(t, "success", n.Notification.Type)
	assert.Equal(t, "任务已部署", n.Notification.Content, "message collapses into Content")
}

func TestDecodeHeartbeat(t *testing.T) {
	for _, raw := range []string{`{"type":"ping"}`, `{"type":"pong"}`} {
		msg, err := realtime.Decode([]byte(raw))
		require.NoError(t, err)
		assert.Nil(t, msg)
	}
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := realtime.Decode([]byte(`{"type":"surprise","data":{}}`))
	assert.Error(t, err)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := realtime.Decode([]byte(`{{{`))
	assert.Error(t, err)
}

func TestDeriveWSURL(t *testing.T) {
	assert.Equal(t,
		"ws://localhost:8000/ws?token=abc",
		realtime.DeriveWSURL("http://localhost:8000", "abc"))
	assert.Equal(t,
		"wss://api.example.com/ws?token=a%2Bb",
		realtime.DeriveWSURL("https://api.example.com/", "a+b"))
}
