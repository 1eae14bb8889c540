// Package feedback implements the toast queue surfaced in the status
// area. It is an explicitly injected service: page models receive a
// *Center from the root model instead of reaching for package-level
// state, which keeps tests hermetic.
package feedback

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the visual severity of a toast.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Toast is one transient feedback message.
type Toast struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
}

// maxToasts bounds the queue; the oldest entries fall off.
const maxToasts = 5

// TTL is how long a toast stays visible.
const TTL = 5 * time.Second

// Center is a bounded queue of toasts.
type Center struct {
	mu     sync.Mutex
	toasts []Toast
	now    func() time.Time
}

// NewCenter creates an empty feedback center.
func NewCenter() *Center {
	return &Center{now: time.Now}
}

// Push appends a toast, evicting the oldest beyond the bound.
func (c *Center) Push(level Level, message string) Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := Toast{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: c.now(),
	}
	c.toasts = append(c.toasts, t)
	if len(c.toasts) > maxToasts {
		c.toasts = c.toasts[len(c.toasts)-maxToasts:]
	}
	return t
}

// Info pushes an informational toast.
func (c *Center) Info(message string) Toast { return c.Push(LevelInfo, message) }

// Success pushes a success toast.
func (c *Center) Success(message string) Toast { return c.Push(LevelSuccess, message) }

// Warning pushes a warning toast.
func (c *Center) Warning(message string) Toast { return c.Push(LevelWarning, message) }

// Error pushes an error toast.
func (c *Center) Error(message string) Toast { return c.Push(LevelError, message) }

// Active returns the toasts still within their TTL, oldest first.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-TTL)
	var live []Toast
	for _, t := range c.toasts {
		if t.CreatedAt.After(cutoff) {
			live = append(live, t)
		}
	}
	c.toasts = live

	out := make([]Toast, len(live))
	copy(out, live)
	return out
}

// Dismiss removes a toast by ID before its TTL runs out.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}
