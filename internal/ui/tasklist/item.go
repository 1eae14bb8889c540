package tasklist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lwang/apiforge/internal/model"
	"github.com/lwang/apiforge/internal/status"
	"github.com/lwang/apiforge/internal/theme"
)

// StalenessThreshold defines how old FetchedAt can be before a cached
// task row gets a staleness dot. Defaults to 5 minutes.
var StalenessThreshold = 5 * time.Minute

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	return i.Task.Status + " | " + relativeTime(i.Task.UpdatedAt)
}

// ItemDelegate implements list.ItemDelegate for rendering task rows.
type ItemDelegate struct {
	// Vocab picks which status vocabulary labels the badge.
	Vocab status.Vocabulary
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}

	task := ti.Task
	derived := d.Vocab.Map(task.Status)
	isSelected := index == m.Index()

	icon := theme.CategoryStyle(derived.Category).Render(theme.IconGlyph(derived.Icon))
	badge := theme.BadgeStyle(derived.Badge).Render(derived.Badge.Label)
	priBadge := priorityLabel(task.Priority)

	progress := derived.Progress
	if task.Progress != nil {
		progress = *task.Progress
	}
	bar := theme.ProgressBar(progress, 10)

	staleIndicator := ""
	if !task.FetchedAt.IsZero() && time.Since(task.FetchedAt) > StalenessThreshold {
		staleIndicator = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(" ●")
	}

	timeStr := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(relativeTime(task.UpdatedAt))

	line := fmt.Sprintf(
		"%s %s %s %s %s%s  %s",
		icon, badge, priBadge, task.Title, bar, staleIndicator, timeStr,
	)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}

// priorityLabel returns a short label for the given priority level.
func priorityLabel(p int) string {
	switch p {
	case model.PriorityHigh:
		return "P1"
	case model.PriorityMedium:
		return "P2"
	case model.PriorityLow:
		return "P3"
	default:
		return "P?"
	}
}
