package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lwang/apiforge/internal/theme"
)

// SubmitMsg carries completed credentials to the parent, which performs
// the API call.
type SubmitMsg struct {
	Register bool
	Username string
	Email    string
	Password string
}

// formBindings holds field values on the heap so huh's Value() pointers
// remain valid across Bubble Tea model copies.
type formBindings struct {
	username string
	email    string
	password string
}

// Model is the login / registration screen.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	register bool
	errText  string
	width    int
	height   int
}

// New creates the login screen model.
func New(width, height int) Model {
	m := Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the login screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+r" {
		m.register = !m.register
		m.errText = ""
		m.fb.password = ""
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		submit := SubmitMsg{
			Register: m.register,
			Username: strings.TrimSpace(m.fb.username),
			Email:    strings.TrimSpace(m.fb.email),
			Password: m.fb.password,
		}
		// Rebuild so a failed attempt returns to an editable form.
		m.form = m.buildForm()
		return m, tea.Batch(m.form.Init(), func() tea.Msg { return submit })
	}
	if m.form.State == huh.StateAborted {
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the login screen.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := "Sign In"
	if m.register {
		title = "Create Account"
	}

	sections := []string{titleStyle.Render(title)}

	if m.errText != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(m.errText))
	}

	sections = append(sections, m.form.View())
	sections = append(sections, theme.HelpStyle.Render(
		"ctrl+r switch sign in / register · esc quit",
	))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.DetailPanelStyle.Render(content))
}

// SetError surfaces an authentication failure above the form.
func (m *Model) SetError(text string) {
	m.errText = text
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Username").
			Value(&m.fb.username).
			Validate(validateRequired("Username")),
	}
	if m.register {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(&m.fb.email).
			Validate(validateEmail))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&m.fb.password).
		Validate(validateRequired("Password")))

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(48)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("Email is required")
	}
	if !strings.Contains(s, "@") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}
