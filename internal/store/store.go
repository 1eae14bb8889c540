package store

import (
	"context"

	"github.com/lwang/apiforge/internal/model"
)

// TaskFilter controls filtering, sorting, and pagination for cached
// task queries.
type TaskFilter struct {
	Status   *string
	Query    *string
	SortBy   string // "updated_at", "created_at", "title", "status", "priority"
	SortDesc bool
	Limit    int
	Offset   int
}

// Store is the local persistence layer: a disposable snapshot cache of
// backend tasks plus the only state the client truly owns, the guided
// deployment wizard's per-task completion flags.
type Store interface {
	// Task snapshot cache. The backend remains authoritative; the
	// cache exists so lists render instantly between fetches and the
	// realtime channel has something to patch.
	UpsertTasks(ctx context.Context, tasks []model.Task) error
	GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	PatchTaskStatus(ctx context.Context, id, status string) error

	// Guided deployment wizard completion, keyed by task ID. This is
	// manual attestation state and never touches the task's status.
	SetStepCompleted(ctx context.Context, taskID, stepID string, completed bool) error
	GetCompletedSteps(ctx context.Context, taskID string) (map[string]bool, error)
	ClearWizardProgress(ctx context.Context, taskID string) error

	// Read-notification tombstones. The backend owns read state; the
	// tombstones keep already-read notifications from flickering back
	// to unread when a fetch races a mark-as-read call.
	TombstoneNotification(ctx context.Context, notificationID string) error
	ReadNotificationIDs(ctx context.Context) (map[string]bool, error)

	Close() error
}
