// Package wizard holds the client-side state of the guided deployment
// flow: a linear sequence of steps fetched from the backend, a cursor,
// and per-step manual attestation. Marking a step complete is an
// honor-system action recorded locally per task; it never mutates the
// task's authoritative pipeline status.
package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/lwang/apiforge/internal/model"
	"github.com/lwang/apiforge/internal/store"
)

// Vars are the user-supplied values substituted into step command
// templates.
type Vars struct {
	ProjectPath   string
	FilePath      string
	FileName      string
	CommitMessage string
	GitRepoURL    string
}

// placeholders maps template tokens to Vars fields.
func (v Vars) replacer() *strings.Replacer {
	return strings.NewReplacer(
		"{{project_path}}", v.ProjectPath,
		"{{file_path}}", v.FilePath,
		"{{file_name}}", v.FileName,
		"{{commit_message}}", v.CommitMessage,
		"{{git_repo_url}}", v.GitRepoURL,
	)
}

// Render substitutes the variables into a command template. Tokens
// with empty values substitute to empty strings; unknown tokens pass
// through untouched so the user can see what is still missing.
func (v Vars) Render(command string) string {
	return v.replacer().Replace(command)
}

// Session is the wizard state for one task.
type Session struct {
	taskID    string
	steps     []model.DeploymentStep
	completed map[string]bool
	current   int
	store     store.Store
}

// NewSession creates a wizard session over the given steps and loads
// any previously persisted attestation for the task.
func NewSession(ctx context.Context, s store.Store, taskID string, steps []model.DeploymentStep) (*Session, error) {
	completed, err := s.GetCompletedSteps(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("loading wizard progress: %w", err)
	}

	return &Session{
		taskID:    taskID,
		steps:     steps,
		completed: completed,
		store:     s,
	}, nil
}

// TaskID returns the task this session belongs to.
func (s *Session) TaskID() string { return s.taskID }

// Steps returns the ordered step list.
func (s *Session) Steps() []model.DeploymentStep { return s.steps }

// Len returns the number of steps.
func (s *Session) Len() int { return len(s.steps) }

// Index returns the current cursor position.
func (s *Session) Index() int { return s.current }

// Current returns the step under the cursor, or nil for an empty plan.
func (s *Session) Current() *model.DeploymentStep {
	if len(s.steps) == 0 {
		return nil
	}
	return &s.steps[s.current]
}

// Next moves the cursor forward by one. It reports whether the cursor
// moved.
func (s *Session) Next() bool {
	if s.current+1 >= len(s.steps) {
		return false
	}
	s.current++
	return true
}

// Prev moves the cursor backward by one. It reports whether the cursor
// moved.
func (s *Session) Prev() bool {
	if s.current == 0 {
		return false
	}
	s.current--
	return true
}

// Jump moves the cursor directly to index i.
func (s *Session) Jump(i int) bool {
	if i < 0 || i >= len(s.steps) {
		return false
	}
	s.current = i
	return true
}

// IsCompleted reports the attestation flag for a step.
func (s *Session) IsCompleted(stepID string) bool {
	return s.completed[stepID]
}

// MarkComplete records manual attestation for the current step and
// persists it keyed by task ID.
func (s *Session) MarkComplete(ctx context.Context) error {
	step := s.Current()
	if step == nil {
		return nil
	}
	if err := s.store.SetStepCompleted(ctx, s.taskID, step.ID, true); err != nil {
		return err
	}
	s.completed[step.ID] = true
	return nil
}

// Unmark clears the attestation flag for the current step.
func (s *Session) Unmark(ctx context.Context) error {
	step := s.Current()
	if step == nil {
		return nil
	}
	if err := s.store.SetStepCompleted(ctx, s.taskID, step.ID, false); err != nil {
		return err
	}
	delete(s.completed, step.ID)
	return nil
}

// CompletedCount returns how many steps of the plan carry attestation.
func (s *Session) CompletedCount() int {
	n := 0
	for _, step := range s.steps {
		if s.completed[step.ID] {
			n++
		}
	}
	return n
}

// AllCompleted reports whether every step is attested.
func (s *Session) AllCompleted() bool {
	return len(s.steps) > 0 && s.CompletedCount() == len(s.steps)
}
