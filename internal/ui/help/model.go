package help

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lwang/apiforge/internal/keys"
	"github.com/lwang/apiforge/internal/theme"
)

// entry is one key/description row. Rows either come from the global
// keymap or describe a key that only exists inside one view.
type entry struct {
	key  string
	desc string
}

// section groups entries under a heading.
type section struct {
	title     string
	entries   []entry
	adminOnly bool
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	admin  bool
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   keys,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func bindingEntry(b key.Binding) entry {
	h := b.Help()
	return entry{key: h.Key, desc: h.Desc}
}

// sections lays out the full key reference. View-scoped keys (pipeline
// actions in the detail view, attestation in the wizard, read-state
// keys in the notification center) are listed here explicitly since
// they are not part of the global keymap.
func (m Model) sections() []section {
	k := m.keys
	return []section{
		{
			title: "Navigation",
			entries: []entry{
				bindingEntry(k.Up), bindingEntry(k.Down),
				bindingEntry(k.Select), bindingEntry(k.Back),
				bindingEntry(k.Search), bindingEntry(k.Command),
				bindingEntry(k.Refresh), bindingEntry(k.Quit),
			},
		},
		{
			title: "Pages",
			entries: []entry{
				bindingEntry(k.Dashboard), bindingEntry(k.Tasks),
				bindingEntry(k.Notifications), bindingEntry(k.Admin),
			},
		},
		{
			title: "Tasks",
			entries: []entry{
				bindingEntry(k.New),
				{key: "t", desc: "advance pipeline (detail)"},
				{key: "m", desc: "confirm manual action (detail)"},
				bindingEntry(k.Regenerate), bindingEntry(k.Download),
				bindingEntry(k.Delete), bindingEntry(k.CycleSort),
			},
		},
		{
			title: "Deployment wizard",
			entries: []entry{
				{key: "h/l", desc: "previous / next step"},
				{key: "enter", desc: "attest step done / undo"},
				{key: "r", desc: "retry fetching steps"},
				bindingEntry(k.Deploy),
			},
		},
		{
			title: "Notifications",
			entries: []entry{
				{key: "enter", desc: "mark read"},
				{key: "a", desc: "mark all read"},
				{key: "x", desc: "delete"},
				{key: "c", desc: "clear read"},
			},
		},
		{
			title:     "Review (admin)",
			adminOnly: true,
			entries: []entry{
				bindingEntry(k.Approve), bindingEntry(k.Reject),
				{key: "tab", desc: "switch console tab"},
				{key: "enter", desc: "enable / disable user"},
			},
		},
		{
			title: "Display",
			entries: []entry{
				bindingEntry(k.CycleVocabulary),
				{key: ":vocab legacy", desc: "fine-grained pipeline statuses"},
				{key: ":status <s>", desc: "filter task list by status"},
			},
		},
	}
}

// View renders the key reference.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue)
	keyStyle := lipgloss.NewStyle().
		Foreground(theme.ColorYellow).
		Width(16)
	descStyle := lipgloss.NewStyle().
		Foreground(theme.ColorGray)

	blocks := []string{titleStyle.Render("apiforge key reference")}
	for _, s := range m.sections() {
		if s.adminOnly && !m.admin {
			continue
		}
		rows := []string{sectionStyle.Render(s.title)}
		for _, e := range s.entries {
			rows = append(rows, lipgloss.JoinHorizontal(
				lipgloss.Top,
				keyStyle.Render(e.key),
				descStyle.Render(e.desc),
			))
		}
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left, rows...))
	}
	blocks = append(blocks, descStyle.Render("? close"))

	content := lipgloss.JoinVertical(lipgloss.Left, blocks...)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetAdmin toggles visibility of the review section.
func (m *Model) SetAdmin(admin bool) {
	m.admin = admin
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
