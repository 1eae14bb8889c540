package api

import (
	"context"
	"net/url"

	"github.com/lwang/apiforge/internal/model"
)

// deploymentStepsPayload is the wire shape of the guided-deployment
// step list.
type deploymentStepsPayload struct {
	SessionID model.FlexID `json:"session_id"`
	TaskID    model.FlexID `json:"task_id"`
	Steps     []struct {
		ID            model.FlexID `json:"id"`
		StepNumber    int          `json:"step_number"`
		StepName      string       `json:"step_name"`
		StepDesc      string       `json:"step_description"`
		Command       string       `json:"command"`
		RequiresInput bool         `json:"requires_input"`
	} `json:"steps"`
}

// CreateDeploymentSession asks the backend to generate a guided
// deployment plan for the task's generated code.
func (c *Client) CreateDeploymentSession(ctx context.Context, taskID string) (model.DeploymentSession, error) {
	var p deploymentStepsPayload
	path := "/api/tasks/" + url.PathEscape(taskID) + "/deployment/session"
	if err := c.post(ctx, path, nil, &p); err != nil {
		return model.DeploymentSession{}, err
	}
	return p.normalize(), nil
}

// GetDeploymentSteps fetches the dynamically generated guided
// deployment steps for a task.
func (c *Client) GetDeploymentSteps(ctx context.Context, taskID string) (model.DeploymentSession, error) {
	var p deploymentStepsPayload
	path := "/api/tasks/" + url.PathEscape(taskID) + "/deployment/steps"
	if err := c.get(ctx, path, &p); err != nil {
		return model.DeploymentSession{}, err
	}
	return p.normalize(), nil
}

func (p deploymentStepsPayload) normalize() model.DeploymentSession {
	session := model.DeploymentSession{
		ID:     p.SessionID.String(),
		TaskID: p.TaskID.String(),
	}
	for _, s := range p.Steps {
		session.Steps = append(session.Steps, model.DeploymentStep{
			ID:            s.ID.String(),
			StepNumber:    s.StepNumber,
			Title:         s.StepName,
			Description:   s.StepDesc,
			Command:       s.Command,
			RequiresInput: s.RequiresInput,
		})
	}
	return session
}
