package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lwang/apiforge/internal/keys"
	"github.com/lwang/apiforge/internal/model"
	"github.com/lwang/apiforge/internal/status"
	"github.com/lwang/apiforge/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// TaskLoadedMsg carries a freshly fetched task, logs included.
type TaskLoadedMsg struct {
	Task *model.Task
}

// ActionMsg signals the parent to execute an action on the current task.
type ActionMsg struct {
	Action string // "deploy", "download", "regenerate", "delete", "approve", "reject"
	TaskID string
}

// Model is the task detail view component.
type Model struct {
	task     *model.Task
	viewport viewport.Model
	keys     *keys.KeyMap
	vocab    status.Vocabulary
	admin    bool
	width    int
	height   int
	loading  bool
}

// New creates a new detail view model.
func New(k *keys.KeyMap, vocab status.Vocabulary, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		vocab:    vocab,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TaskLoadedMsg:
		m.task = msg.Task
		m.loading = false
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(msg, m.keys.Deploy):
			return m, m.action("deploy")

		case key.Matches(msg, m.keys.Download):
			return m, m.action("download")

		case key.Matches(msg, m.keys.Regenerate):
			return m, m.action("regenerate")

		case key.Matches(msg, m.keys.Delete):
			return m, m.action("delete")

		case key.Matches(msg, m.keys.Approve):
			if m.admin {
				return m, m.action("approve")
			}

		case key.Matches(msg, m.keys.Reject):
			if m.admin {
				return m, m.action("reject")
			}

		case key.Matches(msg, m.keys.CycleVocabulary):
			if m.vocab == status.VocabularySimplified {
				m.vocab = status.VocabularyLegacy
			} else {
				m.vocab = status.VocabularySimplified
			}
			m.viewport.SetContent(m.renderContent())
			return m, nil

		default:
			switch msg.String() {
			case "t":
				return m, m.action("advance")
			case "m":
				return m, m.action("complete_action")
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) action(name string) tea.Cmd {
	if m.task == nil {
		return nil
	}
	id := m.task.ID
	return func() tea.Msg {
		return ActionMsg{Action: name, TaskID: id}
	}
}

// View renders the detail view.
func (m Model) View() string {
	if m.loading {
		loadingStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return loadingStyle.Render("Loading task details...")
	}

	if m.task == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No task selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.task == nil {
		return ""
	}

	task := m.task
	derived := m.vocab.Map(task.Status)
	var sections []string

	// Title
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(task.Title))

	// Badges line: status icon + badge + priority
	icon := theme.CategoryStyle(derived.Category).Render(theme.IconGlyph(derived.Icon))
	statusBadge := theme.BadgeStyle(derived.Badge).Render(derived.Badge.Label)
	priBadge := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(priorityName(task.Priority))

	badgeLine := lipgloss.JoinHorizontal(
		lipgloss.Top, icon, " ", statusBadge, "  ", priBadge,
	)
	sections = append(sections, badgeLine)

	// Progress bar with the long status description.
	progress := derived.Progress
	if task.Progress != nil {
		progress = *task.Progress
	}
	progressLine := fmt.Sprintf(
		"%s %3d%%  %s",
		theme.ProgressBar(progress, 20),
		progress,
		lipgloss.NewStyle().Foreground(theme.ColorGray).Render(derived.Text),
	)
	sections = append(sections, progressLine)
	sections = append(sections, "")

	// Metadata table
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	meta := func(label, value string) {
		if value == "" {
			return
		}
		sections = append(sections, fmt.Sprintf(
			"%s %s",
			metaStyle.Render(fmt.Sprintf("%-11s", label+":")),
			valStyle.Render(value),
		))
	}

	meta("Stack", fmt.Sprintf("%s / %s / %s", task.Language, task.Framework, task.Database))
	if len(task.Features) > 0 {
		meta("Features", strings.Join(task.Features, ", "))
	}
	meta("Branch", task.BranchName)
	meta("Test URL", task.TestURL)
	if !task.CreatedAt.IsZero() {
		meta("Created", task.CreatedAt.Format("2006-01-02 15:04"))
	}
	if !task.UpdatedAt.IsZero() {
		meta("Updated", task.UpdatedAt.Format("2006-01-02 15:04"))
	}

	// Separator
	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")

	// Description
	descHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections = append(sections, descHeaderStyle.Render("Description"))

	body := task.Description
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No description")
	}
	sections = append(sections, body)

	// Reviewer comment, shown prominently on rejection.
	if task.AdminComment != "" {
		sections = append(sections, "")
		commentStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorRed)
		sections = append(sections, commentStyle.Render("审核意见"))
		sections = append(sections, task.AdminComment)
	}

	// Pipeline log
	if len(task.Logs) > 0 {
		sections = append(sections, "")
		sections = append(sections, separator)
		sections = append(sections, "")

		logHeaderStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite)

		sections = append(sections, logHeaderStyle.Render(
			fmt.Sprintf("Pipeline Log (%d)", len(task.Logs)),
		))
		sections = append(sections, "")

		timeStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
		for _, entry := range task.Logs {
			label := m.vocab.Map(entry.Status).Badge.Label
			sections = append(sections, fmt.Sprintf(
				"%s  %s  %s",
				timeStyle.Render(entry.CreatedAt.Format("01-02 15:04")),
				theme.BadgeStyle(m.vocab.Map(entry.Status).Badge).Render(label),
				entry.Message,
			))
		}
	}

	// Generated code preview
	if task.GeneratedCode != "" {
		sections = append(sections, "")
		sections = append(sections, separator)
		sections = append(sections, "")

		codeHeaderStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite)
		sections = append(sections, codeHeaderStyle.Render("Generated Code"))
		sections = append(sections, "")
		sections = append(sections, task.GeneratedCode)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetTask updates the task being displayed and re-renders the content.
func (m *Model) SetTask(task *model.Task) {
	m.task = task
	m.loading = false
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Task returns the currently displayed task, if any.
func (m Model) Task() *model.Task {
	return m.task
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SetAdmin toggles availability of the review actions.
func (m *Model) SetAdmin(admin bool) {
	m.admin = admin
}

// SetVocabulary swaps the status vocabulary and re-renders.
func (m *Model) SetVocabulary(v status.Vocabulary) {
	m.vocab = v
	if m.task != nil {
		m.viewport.SetContent(m.renderContent())
	}
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}

// priorityName returns a human-readable name for the priority level.
func priorityName(p int) string {
	switch p {
	case model.PriorityHigh:
		return "High"
	case model.PriorityMedium:
		return "Medium"
	case model.PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}
