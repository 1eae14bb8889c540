package admin

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lwang/apiforge/internal/model"
	"github.com/lwang/apiforge/internal/status"
	"github.com/lwang/apiforge/internal/theme"
)

// Tabs of the admin console.
const (
	TabStats = iota
	TabReview
	TabUsers
	TabBroadcast
	tabCount
)

// StatsLoadedMsg carries the aggregate numbers.
type StatsLoadedMsg struct {
	Stats *model.AdminStats
}

// TasksLoadedMsg carries the full task list for the review queue.
type TasksLoadedMsg struct {
	Tasks []model.Task
}

// UsersLoadedMsg carries the user roster.
type UsersLoadedMsg struct {
	Users []model.User
}

// ReviewMsg asks the parent to submit a review decision.
type ReviewMsg struct {
	TaskID  string
	Approve bool
	Comment string
}

// ToggleUserMsg asks the parent to flip a user's active flag.
type ToggleUserMsg struct {
	UserID string
	Active bool
}

// BroadcastMsg asks the parent to send a system-wide notification.
type BroadcastMsg struct {
	Title   string
	Content string
	Type    string
}

// BackMsg signals the parent to leave the admin console.
type BackMsg struct{}

// rejectBindings and broadcastBindings keep huh form values on the heap.
type rejectBindings struct {
	comment string
}

type broadcastBindings struct {
	title   string
	content string
	level   string
}

// Model is the admin console view.
type Model struct {
	tab    int
	vocab  status.Vocabulary
	stats  *model.AdminStats
	tasks  []model.Task
	users  []model.User
	cursor int

	rejectForm   *huh.Form
	rejectFB     *rejectBindings
	rejectTaskID string

	broadcastForm *huh.Form
	broadcastFB   *broadcastBindings

	width  int
	height int
}

// New creates an admin console model.
func New(vocab status.Vocabulary, width, height int) Model {
	return Model{
		vocab:       vocab,
		rejectFB:    &rejectBindings{},
		broadcastFB: &broadcastBindings{level: model.NotifyInfo},
		width:       width,
		height:      height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the admin console.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatsLoadedMsg:
		m.stats = msg.Stats
		return m, nil

	case TasksLoadedMsg:
		m.tasks = msg.Tasks
		m.clampCursor()
		return m, nil

	case UsersLoadedMsg:
		m.users = msg.Users
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.rejectForm != nil {
			return m.updateRejectForm(msg)
		}
		if m.tab == TabBroadcast && m.broadcastForm != nil {
			return m.updateBroadcastForm(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.tab = (m.tab + 1) % tabCount
		m.cursor = 0
		if m.tab == TabBroadcast {
			return m.startBroadcastForm()
		}
		return m, nil

	case "shift+tab":
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.cursor = 0
		if m.tab == TabBroadcast {
			return m.startBroadcastForm()
		}
		return m, nil

	case "j", "down":
		m.cursor++
		m.clampCursor()
		return m, nil

	case "k", "up":
		m.cursor--
		m.clampCursor()
		return m, nil

	case "p":
		if m.tab == TabReview {
			if t := m.selectedTask(); t != nil {
				id := t.ID
				return m, func() tea.Msg {
					return ReviewMsg{TaskID: id, Approve: true}
				}
			}
		}
		return m, nil

	case "P":
		if m.tab == TabReview {
			if t := m.selectedTask(); t != nil {
				return m.startRejectForm(t.ID)
			}
		}
		return m, nil

	case "enter", " ":
		if m.tab == TabUsers {
			if u := m.selectedUser(); u != nil {
				id := u.ID
				next := !u.IsActive
				return m, func() tea.Msg {
					return ToggleUserMsg{UserID: id, Active: next}
				}
			}
		}
		return m, nil

	case "esc":
		return m, func() tea.Msg { return BackMsg{} }
	}

	return m, nil
}

func (m *Model) clampCursor() {
	max := 0
	switch m.tab {
	case TabReview:
		max = len(m.tasks) - 1
	case TabUsers:
		max = len(m.users) - 1
	}
	if m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selectedTask() *model.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.cursor]
}

func (m Model) selectedUser() *model.User {
	if m.cursor < 0 || m.cursor >= len(m.users) {
		return nil
	}
	return &m.users[m.cursor]
}

// startRejectForm opens the comment form shown before a rejection. The
// backend requires a reviewer remark on reject.
func (m Model) startRejectForm(taskID string) (Model, tea.Cmd) {
	m.rejectTaskID = taskID
	m.rejectFB.comment = ""
	m.rejectForm = huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("审核意见").
			Placeholder("说明拒绝原因...").
			Value(&m.rejectFB.comment).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("rejection requires a comment")
				}
				return nil
			}),
	)).WithWidth(60)
	return m, m.rejectForm.Init()
}

func (m Model) updateRejectForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.rejectForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.rejectForm = f
	}

	if m.rejectForm.State == huh.StateCompleted {
		review := ReviewMsg{
			TaskID:  m.rejectTaskID,
			Approve: false,
			Comment: strings.TrimSpace(m.rejectFB.comment),
		}
		m.rejectForm = nil
		m.rejectTaskID = ""
		return m, func() tea.Msg { return review }
	}
	if m.rejectForm.State == huh.StateAborted {
		m.rejectForm = nil
		m.rejectTaskID = ""
		return m, nil
	}

	return m, cmd
}

func (m Model) startBroadcastForm() (Model, tea.Cmd) {
	m.broadcastFB.title = ""
	m.broadcastFB.content = ""
	m.broadcastFB.level = model.NotifyInfo
	m.broadcastForm = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(&m.broadcastFB.title).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}),
		huh.NewText().
			Title("Content").
			Value(&m.broadcastFB.content),
		huh.NewSelect[string]().
			Title("Severity").
			Options(
				huh.NewOption("信息", model.NotifyInfo),
				huh.NewOption("成功", model.NotifySuccess),
				huh.NewOption("警告", model.NotifyWarning),
				huh.NewOption("错误", model.NotifyError),
			).
			Value(&m.broadcastFB.level),
	)).WithWidth(60)
	return m, m.broadcastForm.Init()
}

func (m Model) updateBroadcastForm(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "tab" && m.broadcastForm.State == huh.StateNormal {
		// Leave the form when tabbing to the next console tab.
		m.broadcastForm = nil
		m.tab = TabStats
		m.cursor = 0
		return m, nil
	}

	mdl, cmd := m.broadcastForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.broadcastForm = f
	}

	if m.broadcastForm.State == huh.StateCompleted {
		broadcast := BroadcastMsg{
			Title:   strings.TrimSpace(m.broadcastFB.title),
			Content: strings.TrimSpace(m.broadcastFB.content),
			Type:    m.broadcastFB.level,
		}
		m.broadcastForm = nil
		m.tab = TabStats
		return m, func() tea.Msg { return broadcast }
	}
	if m.broadcastForm.State == huh.StateAborted {
		m.broadcastForm = nil
		m.tab = TabStats
		return m, nil
	}

	return m, cmd
}

// View renders the admin console.
func (m Model) View() string {
	sections := []string{m.renderTabs(), ""}

	if m.rejectForm != nil {
		sections = append(sections, m.rejectForm.View())
		return m.frame(sections)
	}

	switch m.tab {
	case TabStats:
		sections = append(sections, m.renderStats())
	case TabReview:
		sections = append(sections, m.renderReview())
	case TabUsers:
		sections = append(sections, m.renderUsers())
	case TabBroadcast:
		if m.broadcastForm != nil {
			sections = append(sections, m.broadcastForm.View())
		}
	}

	return m.frame(sections)
}

func (m Model) frame(sections []string) string {
	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderTabs() string {
	names := []string{"Stats", "Review", "Users", "Broadcast"}
	rendered := make([]string, len(names))
	for i, name := range names {
		style := lipgloss.NewStyle().Foreground(theme.ColorGray).Padding(0, 1)
		if i == m.tab {
			style = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.ColorWhite).
				Background(theme.ColorBlue).
				Padding(0, 1)
		}
		rendered[i] = style.Render(name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderStats() string {
	if m.stats == nil {
		return theme.DimmedStyle.Render("Loading stats...")
	}

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	rows := []string{
		fmt.Sprintf("%s %s", metaStyle.Render("Users:       "), valStyle.Render(fmt.Sprintf("%d", m.stats.TotalUsers))),
		fmt.Sprintf("%s %s", metaStyle.Render("Tasks:       "), valStyle.Render(fmt.Sprintf("%d", m.stats.TotalTasks))),
		fmt.Sprintf("%s %s", metaStyle.Render("Completed:   "), valStyle.Render(fmt.Sprintf("%d", m.stats.CompletedTasks))),
		fmt.Sprintf("%s %s", metaStyle.Render("Pending:     "), valStyle.Render(fmt.Sprintf("%d", m.stats.PendingTasks))),
		fmt.Sprintf("%s %s", metaStyle.Render("Success rate:"), valStyle.Render(fmt.Sprintf("%.1f%%", m.stats.SuccessRate))),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderReview() string {
	if len(m.tasks) == 0 {
		return theme.DimmedStyle.Render("No tasks.")
	}

	rows := make([]string, 0, len(m.tasks)+2)
	for i, t := range m.tasks {
		derived := m.vocab.Map(t.Status)
		line := fmt.Sprintf(
			"%s %s %s  %s",
			theme.CategoryStyle(derived.Category).Render(theme.IconGlyph(derived.Icon)),
			theme.BadgeStyle(derived.Badge).Render(derived.Badge.Label),
			t.Title,
			theme.DimmedStyle.Render(t.UserID),
		)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		rows = append(rows, line)
	}
	rows = append(rows, "")
	rows = append(rows, theme.HelpStyle.Render("p approve · P reject with comment · tab next panel"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderUsers() string {
	if len(m.users) == 0 {
		return theme.DimmedStyle.Render("No users.")
	}

	rows := make([]string, 0, len(m.users)+2)
	for i, u := range m.users {
		state := lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("active")
		if !u.IsActive {
			state = lipgloss.NewStyle().Foreground(theme.ColorRed).Render("disabled")
		}
		role := theme.DimmedStyle.Render(u.Role)
		line := fmt.Sprintf("%-20s %s  %s  %s", u.Username, role, u.Email, state)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		rows = append(rows, line)
	}
	rows = append(rows, "")
	rows = append(rows, theme.HelpStyle.Render("enter toggle active · tab next panel"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Typing reports whether one of the console's forms owns the keyboard.
func (m Model) Typing() bool {
	return m.rejectForm != nil || m.broadcastForm != nil
}

// StartReject opens the rejection comment form for a task from outside
// the console, e.g. the detail view.
func (m *Model) StartReject(taskID string) tea.Cmd {
	m.tab = TabReview
	var cmd tea.Cmd
	*m, cmd = m.startRejectForm(taskID)
	return cmd
}

// SetVocabulary swaps the status vocabulary used in the review queue.
func (m *Model) SetVocabulary(v status.Vocabulary) {
	m.vocab = v
}

// SetSize updates the console dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
