package dashboard

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lwang/apiforge/internal/model"
	"github.com/lwang/apiforge/internal/status"
	"github.com/lwang/apiforge/internal/store"
	"github.com/lwang/apiforge/internal/theme"
)

// StatsLoadedMsg carries the recomputed dashboard numbers.
type StatsLoadedMsg struct {
	Tasks  []model.Task
	Counts map[status.Category]int
}

// Model is the dashboard view: category counters over the cached tasks
// plus the most recently updated ones.
type Model struct {
	store  store.Store
	vocab  status.Vocabulary
	user   *model.User
	tasks  []model.Task
	counts map[status.Category]int
	width  int
	height int
}

// New creates a dashboard model.
func New(s store.Store, vocab status.Vocabulary, width, height int) Model {
	return Model{
		store:  s,
		vocab:  vocab,
		counts: map[status.Category]int{},
		width:  width,
		height: height,
	}
}

// Init loads the initial numbers.
func (m Model) Init() tea.Cmd {
	return m.LoadStats()
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(StatsLoadedMsg); ok {
		m.tasks = loaded.Tasks
		m.counts = loaded.Counts
	}
	return m, nil
}

// LoadStats recomputes the category tallies from the cache.
func (m Model) LoadStats() tea.Cmd {
	s := m.store
	vocab := m.vocab
	return func() tea.Msg {
		tasks, err := s.GetTasks(context.Background(), store.TaskFilter{
			SortBy:   "updated_at",
			SortDesc: true,
		})
		if err != nil {
			return StatsLoadedMsg{Counts: map[status.Category]int{}}
		}
		statuses := make([]string, len(tasks))
		for i, t := range tasks {
			statuses[i] = t.Status
		}
		return StatsLoadedMsg{Tasks: tasks, Counts: vocab.Tally(statuses)}
	}
}

// View renders the dashboard.
func (m Model) View() string {
	var sections []string

	greeting := "Dashboard"
	if m.user != nil {
		greeting = fmt.Sprintf("Dashboard · %s", m.user.Username)
	}
	sections = append(sections, lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render(greeting))

	sections = append(sections, m.renderCards())
	sections = append(sections, "")
	sections = append(sections, m.renderRecent())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// renderCards draws one counter card per status category. Unrecognized
// statuses surface as their own card instead of vanishing.
func (m Model) renderCards() string {
	type card struct {
		cat   status.Category
		label string
	}
	cards := []card{
		{status.CategoryPending, "待处理"},
		{status.CategoryInProgress, "进行中"},
		{status.CategoryCompleted, "已完成"},
		{status.CategoryFailed, "失败"},
	}
	if m.counts[status.CategoryNone] > 0 {
		cards = append(cards, card{status.CategoryNone, "未知"})
	}

	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		count := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite).
			Render(fmt.Sprintf("%d", m.counts[c.cat]))
		label := theme.CategoryStyle(c.cat).Render(c.label)
		body := lipgloss.JoinVertical(lipgloss.Center, count, label)
		rendered = append(rendered, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorBorder).
			Padding(0, 3).
			Render(body))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderRecent lists the five most recently updated tasks.
func (m Model) renderRecent() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render("Recent Tasks")

	if len(m.tasks) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No tasks yet. Press n to describe the API you need.")
		return lipgloss.JoinVertical(lipgloss.Left, header, "", empty)
	}

	rows := []string{header, ""}
	limit := 5
	if len(m.tasks) < limit {
		limit = len(m.tasks)
	}
	for _, t := range m.tasks[:limit] {
		derived := m.vocab.Map(t.Status)
		icon := theme.CategoryStyle(derived.Category).Render(theme.IconGlyph(derived.Icon))
		badge := theme.BadgeStyle(derived.Badge).Render(derived.Badge.Label)
		rows = append(rows, fmt.Sprintf("%s %s %s", icon, badge, t.Title))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// SetUser records who is signed in for the greeting line.
func (m *Model) SetUser(u *model.User) {
	m.user = u
}

// SetVocabulary swaps the status vocabulary.
func (m *Model) SetVocabulary(v status.Vocabulary) {
	m.vocab = v
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
