package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// The backend grew organically and some resources expose duplicate or
// loosely typed fields: task IDs are numeric on some endpoints and
// strings on others, tasks carry both "name" and "title", and
// notifications both "content" and "message". The wire types below
// absorb all of that once, at the fetch boundary, so the rest of the
// client works with one canonical shape.

// FlexID unmarshals from either a JSON string or number.
type FlexID string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// String returns the normalized string form.
func (f FlexID) String() string { return string(f) }

// FlexTime unmarshals timestamps in either RFC 3339 form or the
// offset-less ISO-8601 form the backend emits for datetime columns
// (e.g. "2025-01-01T00:00:00" or with fractional seconds). Offset-less
// values are taken as UTC.
type FlexTime struct {
	time.Time
}

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, layout := range flexTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			f.Time = t
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

// TaskPayload is the raw task shape accepted from the backend.
type TaskPayload struct {
	ID            FlexID          `json:"id"`
	UserID        FlexID          `json:"user_id"`
	Name          string          `json:"name"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	Language      string          `json:"language"`
	Framework     string          `json:"framework"`
	Database      string          `json:"database"`
	Features      []string        `json:"features"`
	Priority      int             `json:"priority"`
	BranchName    string          `json:"branch_name"`
	GeneratedCode string          `json:"generated_code"`
	TestURL       string          `json:"test_url"`
	AdminComment  string          `json:"admin_comment"`
	Progress      *int            `json:"progress"`
	CreatedAt     FlexTime        `json:"created_at"`
	UpdatedAt     FlexTime        `json:"updated_at"`
	Logs          []TaskLogPayload `json:"logs"`
}

// TaskLogPayload is the raw task log entry shape.
type TaskLogPayload struct {
	ID        FlexID   `json:"id"`
	TaskID    FlexID   `json:"task_id"`
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	CreatedAt FlexTime `json:"created_at"`
}

// Normalize converts the wire payload to the canonical Task:
// name||title collapses to Title, tech-stack defaults are applied, and
// IDs become strings.
func (p TaskPayload) Normalize(fetchedAt time.Time) Task {
	title := p.Name
	if title == "" {
		title = p.Title
	}

	t := Task{
		ID:            p.ID.String(),
		UserID:        p.UserID.String(),
		Title:         title,
		Description:   p.Description,
		Status:        p.Status,
		Language:      withDefault(p.Language, DefaultLanguage),
		Framework:     withDefault(p.Framework, DefaultFramework),
		Database:      withDefault(p.Database, DefaultDatabase),
		Features:      p.Features,
		Priority:      p.Priority,
		BranchName:    p.BranchName,
		GeneratedCode: p.GeneratedCode,
		TestURL:       p.TestURL,
		AdminComment:  p.AdminComment,
		Progress:      p.Progress,
		CreatedAt:     p.CreatedAt.Time,
		UpdatedAt:     p.UpdatedAt.Time,
		FetchedAt:     fetchedAt,
	}

	for _, l := range p.Logs {
		t.Logs = append(t.Logs, TaskLog{
			ID:        l.ID.String(),
			TaskID:    l.TaskID.String(),
			Status:    l.Status,
			Message:   l.Message,
			CreatedAt: l.CreatedAt.Time,
		})
	}

	return t
}

// NotificationPayload is the raw notification shape.
type NotificationPayload struct {
	ID        FlexID   `json:"id"`
	UserID    FlexID   `json:"user_id"`
	TaskID    *FlexID  `json:"task_id"`
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Message   string   `json:"message"`
	IsRead    bool     `json:"is_read"`
	CreatedAt FlexTime `json:"created_at"`
}

// Normalize collapses content||message into Content.
func (p NotificationPayload) Normalize() Notification {
	content := p.Content
	if content == "" {
		content = p.Message
	}

	n := Notification{
		ID:        p.ID.String(),
		UserID:    p.UserID.String(),
		Type:      withDefault(p.Type, NotifyInfo),
		Title:     p.Title,
		Content:   content,
		IsRead:    p.IsRead,
		CreatedAt: p.CreatedAt.Time,
	}
	if p.TaskID != nil {
		n.TaskID = p.TaskID.String()
	}
	return n
}

// UserPayload is the raw user shape.
type UserPayload struct {
	ID         FlexID   `json:"id"`
	Username   string   `json:"username"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	IsActive   *bool    `json:"is_active"`
	CreatedAt  FlexTime `json:"created_at"`
	JoinedAt   FlexTime `json:"joinedAt"`
	LastActive FlexTime `json:"lastActive"`
}

// Normalize collapses username||name and joinedAt||created_at.
func (p UserPayload) Normalize() User {
	username := p.Username
	if username == "" {
		username = p.Name
	}

	createdAt := p.CreatedAt.Time
	if createdAt.IsZero() {
		createdAt = p.JoinedAt.Time
	}

	// Absent is_active means the account is usable.
	isActive := true
	if p.IsActive != nil {
		isActive = *p.IsActive
	}

	return User{
		ID:         p.ID.String(),
		Username:   username,
		Email:      p.Email,
		Role:       withDefault(p.Role, RoleUser),
		IsActive:   isActive,
		CreatedAt:  createdAt,
		LastActive: p.LastActive.Time,
	}
}

func withDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// ParseNumericID converts a normalized string ID back to the numeric
// form some endpoints require in their path.
func ParseNumericID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}
