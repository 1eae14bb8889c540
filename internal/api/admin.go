package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/lwang/apiforge/internal/model"
)

// GetAdminStats fetches the aggregate dashboard numbers.
func (c *Client) GetAdminStats(ctx context.Context) (model.AdminStats, error) {
	var stats model.AdminStats
	if err := c.get(ctx, "/api/admin/stats", &stats); err != nil {
		return model.AdminStats{}, err
	}
	return stats, nil
}

// GetAllTasks fetches a page of every user's tasks (admin only).
func (c *Client) GetAllTasks(ctx context.Context, page, size int) (TaskPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	path := "/api/admin/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var p taskListPayload
	if err := c.get(ctx, path, &p); err != nil {
		return TaskPage{}, err
	}
	return p.normalize(time.Now()), nil
}

// GetTaskAsAdmin fetches any user's task by ID.
func (c *Client) GetTaskAsAdmin(ctx context.Context, id string) (model.Task, error) {
	var p model.TaskPayload
	if err := c.get(ctx, "/api/admin/tasks/"+url.PathEscape(id), &p); err != nil {
		return model.Task{}, err
	}
	return p.Normalize(time.Now()), nil
}

// ReviewDecision is an admin's verdict on a task under review.
type ReviewDecision struct {
	Status  string `json:"status"`
	Comment string `json:"admin_comment,omitempty"`
}

// UpdateTaskStatus sets a task's status, typically approving or
// rejecting it with a comment.
func (c *Client) UpdateTaskStatus(ctx context.Context, id string, decision ReviewDecision) (model.Task, error) {
	var p model.TaskPayload
	if err := c.put(ctx, "/api/admin/tasks/"+url.PathEscape(id), decision, &p); err != nil {
		return model.Task{}, err
	}
	return p.Normalize(time.Now()), nil
}

// GetUsers lists all accounts (admin only).
func (c *Client) GetUsers(ctx context.Context) ([]model.User, error) {
	var payloads []model.UserPayload
	if err := c.get(ctx, "/api/admin/users", &payloads); err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(payloads))
	for _, p := range payloads {
		users = append(users, p.Normalize())
	}
	return users, nil
}

// UpdateUserStatus enables or disables an account.
func (c *Client) UpdateUserStatus(ctx context.Context, id string, isActive bool) error {
	body := map[string]bool{"is_active": isActive}
	return c.put(ctx, "/api/admin/users/"+url.PathEscape(id)+"/status", body, nil)
}

// BroadcastNotification sends a system notification to every user.
func (c *Client) BroadcastNotification(ctx context.Context, title, content, notifyType string) error {
	body := map[string]string{
		"title":   title,
		"content": content,
		"type":    notifyType,
	}
	return c.post(ctx, "/api/admin/notifications", body, nil)
}

