package api

import (
	"context"
	"net/url"

	"github.com/lwang/apiforge/internal/model"
)

// GetNotifications fetches the caller's notifications, newest first.
func (c *Client) GetNotifications(ctx context.Context) ([]model.Notification, error) {
	var payloads []model.NotificationPayload
	if err := c.get(ctx, "/api/notifications/", &payloads); err != nil {
		return nil, err
	}

	out := make([]model.Notification, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.Normalize())
	}
	return out, nil
}

// GetUnreadCount fetches the number of unread notifications.
func (c *Client) GetUnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"unread_count"`
	}
	if err := c.get(ctx, "/api/notifications/unread-count", &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.put(ctx, "/api/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.put(ctx, "/api/notifications/mark-all-read", nil, nil)
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/notifications/"+url.PathEscape(id), nil)
}

// ClearReadNotifications removes every already-read notification.
func (c *Client) ClearReadNotifications(ctx context.Context) error {
	return c.delete(ctx, "/api/notifications/clear-read", nil)
}
