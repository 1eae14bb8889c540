// Package deploy renders the guided deployment wizard page on top of a
// wizard.Session.
package deploy

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lwang/apiforge/internal/theme"
	"github.com/lwang/apiforge/internal/wizard"
)

// SessionReadyMsg carries a loaded wizard session into the page.
type SessionReadyMsg struct {
	Session *wizard.Session
	Vars    wizard.Vars
}

// StepsErrorMsg reports that the deployment plan could not be fetched.
type StepsErrorMsg struct {
	TaskID string
	Err    error
}

// RetryMsg asks the parent to fetch the deployment plan again.
type RetryMsg struct {
	TaskID string
}

// BackMsg signals the parent to leave the wizard.
type BackMsg struct{}

// AttestErrMsg surfaces a persistence failure for an attestation flag.
type AttestErrMsg struct {
	Err error
}

// Model is the deployment wizard page.
type Model struct {
	session *wizard.Session
	vars    wizard.Vars
	loadErr error
	taskID  string
	width   int
	height  int
}

// New creates the wizard page.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the wizard page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SessionReadyMsg:
		m.session = msg.Session
		m.vars = msg.Vars
		m.loadErr = nil
		if m.session != nil {
			m.taskID = m.session.TaskID()
		}
		return m, nil

	case StepsErrorMsg:
		m.session = nil
		m.loadErr = msg.Err
		m.taskID = msg.TaskID
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.loadErr != nil {
		switch msg.String() {
		case "r":
			taskID := m.taskID
			return m, func() tea.Msg { return RetryMsg{TaskID: taskID} }
		case "esc":
			return m, func() tea.Msg { return BackMsg{} }
		}
		return m, nil
	}

	if m.session == nil {
		if msg.String() == "esc" {
			return m, func() tea.Msg { return BackMsg{} }
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down", "l", "right":
		m.session.Next()
	case "k", "up", "h", "left":
		m.session.Prev()
	case "enter", " ":
		return m, m.toggleAttestation()
	case "esc":
		return m, func() tea.Msg { return BackMsg{} }
	}
	return m, nil
}

// toggleAttestation flips the manual attestation flag on the current
// step. This is local bookkeeping only; the task's pipeline status is
// untouched.
func (m Model) toggleAttestation() tea.Cmd {
	sess := m.session
	step := sess.Current()
	if step == nil {
		return nil
	}

	var err error
	if sess.IsCompleted(step.ID) {
		err = sess.Unmark(context.Background())
	} else {
		err = sess.MarkComplete(context.Background())
	}
	if err != nil {
		return func() tea.Msg { return AttestErrMsg{Err: err} }
	}
	return nil
}

// View renders the wizard page.
func (m Model) View() string {
	if m.loadErr != nil {
		return m.renderError()
	}
	if m.session == nil || m.session.Len() == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Loading deployment plan...")
	}

	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render(fmt.Sprintf(
			"部署向导  %d/%d 已完成",
			m.session.CompletedCount(), m.session.Len(),
		)))
	sections = append(sections, "")
	sections = append(sections, m.renderSteps())
	sections = append(sections, "")
	sections = append(sections, m.renderCurrent())
	sections = append(sections, "")

	if m.session.AllCompleted() {
		sections = append(sections, lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorGreen).
			Render("全部步骤已确认完成"))
		sections = append(sections, "")
	}

	sections = append(sections, theme.HelpStyle.Render(
		"j/k navigate · enter mark done / undo · esc back",
	))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderSteps draws the step checklist with the cursor marker.
func (m Model) renderSteps() string {
	rows := make([]string, 0, m.session.Len())
	for i, step := range m.session.Steps() {
		marker := "○"
		style := lipgloss.NewStyle().Foreground(theme.ColorGray)
		if m.session.IsCompleted(step.ID) {
			marker = "✓"
			style = lipgloss.NewStyle().Foreground(theme.ColorGreen)
		}

		line := style.Render(fmt.Sprintf("%s %2d. %s", marker, step.StepNumber, step.Title))
		if i == m.session.Index() {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		rows = append(rows, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCurrent draws the focused step's description and rendered
// command.
func (m Model) renderCurrent() string {
	step := m.session.Current()
	if step == nil {
		return ""
	}

	var rows []string
	if step.Description != "" {
		rows = append(rows, step.Description)
	}
	if step.Command != "" {
		cmdStyle := lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Padding(0, 1)
		rows = append(rows, "")
		rows = append(rows, cmdStyle.Render("$ "+m.vars.Render(step.Command)))
	}
	if step.RequiresInput {
		rows = append(rows, "")
		rows = append(rows, theme.HelpStyle.Render("此步骤需要手动输入"))
	}

	return theme.DetailPanelStyle.
		Width(min(m.width-6, 90)).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderError() string {
	msg := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(theme.ColorRed).
			Render("获取部署步骤失败"),
		"",
		theme.DimmedStyle.Render(m.loadErr.Error()),
		"",
		theme.HelpStyle.Render("r retry · esc back"),
	)
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.DetailPanelStyle.Render(msg))
}

// Session exposes the active session, if any.
func (m Model) Session() *wizard.Session {
	return m.session
}

// SetSize updates the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
