package model

import "time"

// User roles recognized by the backend.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account as seen through the admin console and the auth
// endpoints.
type User struct {
	ID string `json:"id"`

	// Username is the canonical login/display name. Wire payloads
	// carry it in either "username" or "name".
	Username string `json:"username"`

	Email string `json:"email"`

	// Role is "user" or "admin".
	Role string `json:"role"`

	// IsActive is togglable by an administrator; inactive users cannot
	// log in.
	IsActive bool `json:"is_active"`

	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active,omitempty"`
}

// Session is the authenticated client session returned by login and
// register.
type Session struct {
	Token string `json:"access_token"`
	User  User   `json:"user_info"`
}

// AdminStats is the aggregate view rendered on the admin dashboard.
type AdminStats struct {
	TotalUsers     int     `json:"total_users"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	PendingTasks   int     `json:"pending_tasks"`
	SuccessRate    float64 `json:"success_rate"`
}
