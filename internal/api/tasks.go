package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/lwang/apiforge/internal/model"
)

// taskListPayload is the paginated list envelope.
type taskListPayload struct {
	Tasks []model.TaskPayload `json:"tasks"`
	Total int                 `json:"total"`
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
}

// TaskPage is one page of the task list.
type TaskPage struct {
	Tasks []model.Task
	Total int
	Page  int
	Size  int
}

func (p taskListPayload) normalize(fetchedAt time.Time) TaskPage {
	page := TaskPage{Total: p.Total, Page: p.Page, Size: p.Size}
	for _, t := range p.Tasks {
		page.Tasks = append(page.Tasks, t.Normalize(fetchedAt))
	}
	return page
}

// CreateTask submits a new API-generation task.
func (c *Client) CreateTask(ctx context.Context, spec model.TaskSpec) (model.Task, error) {
	var p model.TaskPayload
	if err := c.post(ctx, "/api/tasks/", spec, &p); err != nil {
		return model.Task{}, err
	}
	return p.Normalize(time.Now()), nil
}

// GetTasks fetches a page of the caller's tasks.
func (c *Client) GetTasks(ctx context.Context, page, size int) (TaskPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if size > 0 {
		q.Set("size", fmt.Sprint(size))
	}
	path := "/api/tasks/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var p taskListPayload
	if err := c.get(ctx, path, &p); err != nil {
		return TaskPage{}, err
	}
	return p.normalize(time.Now()), nil
}

// GetTask fetches a single task by ID.
func (c *Client) GetTask(ctx context.Context, id string) (model.Task, error) {
	var p model.TaskPayload
	if err := c.get(ctx, "/api/tasks/"+url.PathEscape(id), &p); err != nil {
		return model.Task{}, err
	}
	return p.Normalize(time.Now()), nil
}

// GetTaskLogs fetches the append-only pipeline log for a task.
func (c *Client) GetTaskLogs(ctx context.Context, id string) ([]model.TaskLog, error) {
	var payloads []model.TaskLogPayload
	if err := c.get(ctx, "/api/tasks/"+url.PathEscape(id)+"/logs", &payloads); err != nil {
		return nil, err
	}

	logs := make([]model.TaskLog, 0, len(payloads))
	for _, p := range payloads {
		logs = append(logs, model.TaskLog{
			ID:        p.ID.String(),
			TaskID:    p.TaskID.String(),
			Status:    p.Status,
			Message:   p.Message,
			CreatedAt: p.CreatedAt.Time,
		})
	}
	return logs, nil
}

// workflowPayload is the wire shape of the workflow progress report.
type workflowPayload struct {
	TaskID        model.FlexID `json:"task_id"`
	CurrentStatus string       `json:"current_status"`
	Workflow      struct {
		Steps []model.WorkflowStep `json:"steps"`
	} `json:"workflow"`
}

// GetTaskWorkflow fetches the backend-owned pipeline progress report.
func (c *Client) GetTaskWorkflow(ctx context.Context, id string) (model.Workflow, error) {
	var p workflowPayload
	if err := c.get(ctx, "/api/tasks/"+url.PathEscape(id)+"/workflow", &p); err != nil {
		return model.Workflow{}, err
	}
	return model.Workflow{
		TaskID:        p.TaskID.String(),
		CurrentStatus: p.CurrentStatus,
		Steps:         p.Workflow.Steps,
	}, nil
}

// AdvanceTask asks the backend to move the task to its next pipeline
// step. The backend decides whether the transition is allowed.
func (c *Client) AdvanceTask(ctx context.Context, id string) error {
	return c.post(ctx, "/api/tasks/"+url.PathEscape(id)+"/advance", nil, nil)
}

// CompleteTaskAction marks a named required action of the current
// pipeline step as done.
func (c *Client) CompleteTaskAction(ctx context.Context, id, action string) error {
	path := "/api/tasks/" + url.PathEscape(id) + "/actions/" + url.PathEscape(action) + "/complete"
	return c.post(ctx, path, nil, nil)
}

// DeleteTask removes a task. The backend only allows this for tasks
// that have not started processing.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/tasks/"+url.PathEscape(id), nil)
}

// DownloadCode fetches the generated code archive as a raw blob.
func (c *Client) DownloadCode(ctx context.Context, id string) ([]byte, error) {
	return c.download(ctx, "/api/tasks/"+url.PathEscape(id)+"/download")
}

// RegenerateCode asks the backend to rerun code generation for a task.
func (c *Client) RegenerateCode(ctx context.Context, id string) error {
	return c.post(ctx, "/api/tasks/"+url.PathEscape(id)+"/regenerate", nil, nil)
}
