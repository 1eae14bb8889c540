package model

import "time"

// WorkflowStep is one pipeline step as reported by
// GET /api/tasks/{id}/workflow. The backend owns the step order and
// all completion decisions; the client only renders them.
type WorkflowStep struct {
	Status          string   `json:"status"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Auto            bool     `json:"auto"`
	RequiredActions []string `json:"required_actions"`
	Completed       bool     `json:"completed"`
	Current         bool     `json:"current"`
	CanAdvance      bool     `json:"can_advance"`
}

// Workflow is the full pipeline progress report for a task.
type Workflow struct {
	TaskID        string         `json:"task_id"`
	CurrentStatus string         `json:"current_status"`
	Steps         []WorkflowStep `json:"steps"`
}

// DeploymentStep is one unit in the guided deployment sequence.
// Command, when present, is a shell command template; placeholders are
// substituted client-side by the wizard package.
type DeploymentStep struct {
	ID            string `json:"id"`
	StepNumber    int    `json:"step_number"`
	Title         string `json:"step_name"`
	Description   string `json:"step_description"`
	Command       string `json:"command,omitempty"`
	RequiresInput bool   `json:"requires_input"`
}

// DeploymentSession groups the steps generated for one task's guided
// deployment.
type DeploymentSession struct {
	ID        string           `json:"id"`
	TaskID    string           `json:"task_id"`
	CreatedAt time.Time        `json:"created_at"`
	Steps     []DeploymentStep `json:"steps"`
}
