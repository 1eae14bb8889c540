package model

import "time"

// Notification severity levels.
const (
	NotifyInfo    = "info"
	NotifySuccess = "success"
	NotifyWarning = "warning"
	NotifyError   = "error"
)

// Notification is an alert surfaced to the user about activity on a
// tracked task or a system broadcast.
type Notification struct {
	ID string `json:"id"`

	// UserID is the recipient.
	UserID string `json:"user_id"`

	// TaskID links the notification to a task, when task-scoped.
	TaskID string `json:"task_id,omitempty"`

	// Type is one of info, success, warning, error.
	Type string `json:"type"`

	// Title is the short headline.
	Title string `json:"title"`

	// Content is the canonical body text. Wire payloads carry it in
	// either "content" or "message"; normalization happens at the
	// fetch boundary.
	Content string `json:"content"`

	// IsRead is mutable via mark-as-read / mark-all / delete actions.
	IsRead bool `json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
