package model

import "time"

// Task priority constants (lower number = higher priority).
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Task is a unit of API-generation work tracked through the backend
// pipeline. Every field is server-owned; the client only caches the
// latest fetched snapshot and derives display attributes from Status.
type Task struct {
	// ID is the task identifier, normalized to a string (some
	// endpoints return it numeric).
	ID string `json:"id" db:"id"`

	// UserID identifies the owning user.
	UserID string `json:"user_id" db:"user_id"`

	// Title is the canonical display name. The wire payload carries it
	// in either "name" or "title"; normalization happens once at the
	// fetch boundary, never at render sites.
	Title string `json:"title" db:"title"`

	// Description is the natural-language API description.
	Description string `json:"description" db:"description"`

	// Status is one value of the closed status vocabulary and the
	// single source of truth for progress and categorization.
	Status string `json:"status" db:"status"`

	// Language, Framework, and Database are the chosen tech stack with
	// defaults applied when absent.
	Language  string `json:"language" db:"language"`
	Framework string `json:"framework" db:"framework"`
	Database  string `json:"database" db:"db_engine"`

	// Features lists requested add-on capabilities.
	Features []string `json:"features,omitempty" db:"-"`

	// Priority is the normalized priority level (use Priority* constants).
	Priority int `json:"priority" db:"priority"`

	// BranchName is the git branch created for this task, if any.
	BranchName string `json:"branch_name,omitempty" db:"branch_name"`

	// GeneratedCode is the AI-produced code blob, when available.
	GeneratedCode string `json:"generated_code,omitempty" db:"generated_code"`

	// TestURL points at the disposable test deployment, when one exists.
	TestURL string `json:"test_url,omitempty" db:"test_url"`

	// AdminComment carries the reviewer's remark, set on rejection.
	AdminComment string `json:"admin_comment,omitempty" db:"admin_comment"`

	// Progress is an optional server-supplied override. When nil the
	// client derives progress from Status.
	Progress *int `json:"progress,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// FetchedAt is when this snapshot was retrieved from the backend.
	FetchedAt time.Time `json:"fetched_at" db:"fetched_at"`

	// Logs holds the append-only pipeline log, oldest first.
	Logs []TaskLog `json:"logs,omitempty" db:"-"`
}

// TaskLog is one entry in a task's append-only pipeline log.
type TaskLog struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskSpec is the client-side input for creating a task.
type TaskSpec struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language,omitempty"`
	Framework   string   `json:"framework,omitempty"`
	Database    string   `json:"database,omitempty"`
	Features    []string `json:"features,omitempty"`
	Priority    int      `json:"priority,omitempty"`
}

// Tech-stack defaults applied when the server omits a field.
const (
	DefaultLanguage  = "python"
	DefaultFramework = "fastapi"
	DefaultDatabase  = "mysql"
)
