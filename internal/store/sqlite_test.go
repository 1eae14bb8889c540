package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwang/apiforge/internal/model"
	"github.com/lwang/apiforge/internal/store"
	"github.com/lwang/apiforge/tests/testutil"
)

func sampleTask(id, title, taskStatus string) model.Task {
	now := time.Now().Truncate(time.Second)
	return model.Task{
		ID:        id,
		UserID:    "1",
		Title:     title,
		Status:    taskStatus,
		Language:  "python",
		Framework: "fastapi",
		Database:  "mysql",
		Priority:  model.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
		FetchedAt: now,
	}
}

func TestUpsertAndGetTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertTasks(ctx, []model.Task{
		sampleTask("1", "orders-api", "submitted"),
		sampleTask("2", "users-api", "deployed"),
	}))

	tasks, err := s.GetTasks(ctx, store.TaskFilter{SortBy: "title"})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "orders-api", tasks[0].Title)

	// Upsert with the same ID replaces the snapshot.
	updated := sampleTask("1", "orders-api-v2", "ai_generating")
	require.NoError(t, s.UpsertTasks(ctx, []model.Task{updated}))

	got, err := s.GetTaskByID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "orders-api-v2", got.Title)
	assert.Equal(t, "ai_generating", got.Status)
}

func TestGetTaskByIDMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	got, err := s.GetTaskByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetTasksFilter(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertTasks(ctx, []model.Task{
		sampleTask("1", "orders-api", "submitted"),
		sampleTask("2", "users-api", "deployed"),
		sampleTask("3", "billing-api", "deployed"),
	}))

	deployed := "deployed"
	tasks, err := s.GetTasks(ctx, store.TaskFilter{Status: &deployed, SortBy: "title"})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	q := "orders"
	tasks, err = s.GetTasks(ctx, store.TaskFilter{Query: &q})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "1", tasks[0].ID)
}

func TestPatchTaskStatus(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertTasks(ctx, []model.Task{
		sampleTask("5", "orders-api", "code_submitted"),
	}))

	require.NoError(t, s.PatchTaskStatus(ctx, "5", "under_review"))

	got, err := s.GetTaskByID(ctx, "5")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "under_review", got.Status)
}

func TestWizardStepRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetStepCompleted(ctx, "task-1", "step-1", true))
	require.NoError(t, s.SetStepCompleted(ctx, "task-1", "step-3", true))
	require.NoError(t, s.SetStepCompleted(ctx, "task-1", "step-2", false))

	completed, err := s.GetCompletedSteps(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"step-1": true, "step-3": true}, completed)

	// A different task must not see another task's completed steps.
	other, err := s.GetCompletedSteps(ctx, "task-2")
	require.NoError(t, err)
	assert.Empty(t, other)

	// Un-attesting a step removes it from the completed set.
	require.NoError(t, s.SetStepCompleted(ctx, "task-1", "step-1", false))
	completed, err = s.GetCompletedSteps(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"step-3": true}, completed)
}

func TestClearWizardProgress(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetStepCompleted(ctx, "task-1", "step-1", true))
	require.NoError(t, s.SetStepCompleted(ctx, "task-2", "step-1", true))

	require.NoError(t, s.ClearWizardProgress(ctx, "task-1"))

	completed, err := s.GetCompletedSteps(ctx, "task-1")
	require.NoError(t, err)
	assert.Empty(t, completed)

	completed, err = s.GetCompletedSteps(ctx, "task-2")
	require.NoError(t, err)
	assert.Len(t, completed, 1)
}

func TestNotificationTombstones(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.TombstoneNotification(ctx, "n1"))
	require.NoError(t, s.TombstoneNotification(ctx, "n2"))
	// Tombstoning twice is a no-op, not an error.
	require.NoError(t, s.TombstoneNotification(ctx, "n1"))

	read, err := s.ReadNotificationIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"n1": true, "n2": true}, read)
}
