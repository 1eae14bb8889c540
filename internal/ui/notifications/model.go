package notifications

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lwang/apiforge/internal/model"
	"github.com/lwang/apiforge/internal/theme"
)

// LoadedMsg carries the fetched notification list.
type LoadedMsg struct {
	Notifications []model.Notification
}

// ActionMsg asks the parent to run a notification operation against the
// backend.
type ActionMsg struct {
	Action string // "mark_read", "mark_all_read", "delete", "clear_read"
	ID     string
}

// BackMsg signals the parent to leave the notification center.
type BackMsg struct{}

// Model is the notification center view.
type Model struct {
	items  []model.Notification
	cursor int
	width  int
	height int
}

// New creates a notification center model.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the notification center.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.items = msg.Notifications
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if n := m.selected(); n != nil && !n.IsRead {
				id := n.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: "mark_read", ID: id}
				}
			}
		case "a":
			return m, func() tea.Msg {
				return ActionMsg{Action: "mark_all_read"}
			}
		case "x":
			if n := m.selected(); n != nil {
				id := n.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: "delete", ID: id}
				}
			}
		case "c":
			return m, func() tea.Msg {
				return ActionMsg{Action: "clear_read"}
			}
		case "esc":
			return m, func() tea.Msg { return BackMsg{} }
		}
	}
	return m, nil
}

func (m Model) selected() *model.Notification {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return &m.items[m.cursor]
}

// UnreadCount returns how many loaded notifications are unread.
func (m Model) UnreadCount() int {
	n := 0
	for _, item := range m.items {
		if !item.IsRead {
			n++
		}
	}
	return n
}

// View renders the notification center.
func (m Model) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render(fmt.Sprintf("Notifications (%d unread)", m.UnreadCount()))

	if len(m.items) == 0 {
		empty := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height - 2).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("暂无通知")
		return lipgloss.JoinVertical(lipgloss.Left, header, empty)
	}

	rows := []string{header}
	for i, n := range m.items {
		marker := "●"
		if n.IsRead {
			marker = " "
		}
		line := fmt.Sprintf(
			"%s %s %s  %s",
			marker,
			levelStyle(n.Type).Render(levelLabel(n.Type)),
			n.Title,
			lipgloss.NewStyle().Foreground(theme.ColorGray).Render(n.Content),
		)
		if n.IsRead {
			line = theme.DimmedStyle.Render(line)
		}
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		rows = append(rows, line)
	}

	rows = append(rows, "")
	rows = append(rows, theme.HelpStyle.Render(
		"enter mark read · a mark all · x delete · c clear read · esc back",
	))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func levelLabel(t string) string {
	switch t {
	case model.NotifySuccess:
		return "成功"
	case model.NotifyWarning:
		return "警告"
	case model.NotifyError:
		return "错误"
	default:
		return "信息"
	}
}

func levelStyle(t string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch t {
	case model.NotifySuccess:
		return base.Foreground(theme.ColorGreen)
	case model.NotifyWarning:
		return base.Foreground(theme.ColorOrange)
	case model.NotifyError:
		return base.Foreground(theme.ColorRed)
	default:
		return base.Foreground(theme.ColorBlue)
	}
}
