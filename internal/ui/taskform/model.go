package taskform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lwang/apiforge/internal/model"
	"github.com/lwang/apiforge/internal/theme"
)

// TaskSubmittedMsg is dispatched when the user submits the form.
type TaskSubmittedMsg struct {
	Spec model.TaskSpec
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name        string
	description string
	language    string
	framework   string
	database    string
	features    []string
	priority    int
}

// Model is the Bubble Tea model for the new-task form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb: &formBindings{
			language:  model.DefaultLanguage,
			framework: model.DefaultFramework,
			database:  model.DefaultDatabase,
			priority:  model.PriorityMedium,
		},
		width:  width,
		height: height,
	}
}

// Start initializes the form for a fresh task.
func (m *Model) Start() tea.Cmd {
	m.fb.name = ""
	m.fb.description = ""
	m.fb.language = model.DefaultLanguage
	m.fb.framework = model.DefaultFramework
	m.fb.database = model.DefaultDatabase
	m.fb.features = nil
	m.fb.priority = model.PriorityMedium
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New API Task") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API Name").
				Placeholder("orders-api").
				Value(&m.fb.name).
				Validate(validateRequired("API name")),
			huh.NewText().
				Title("Description").
				Placeholder("Describe the API you need, e.g. CRUD endpoints for customer orders...").
				Value(&m.fb.description).
				Validate(validateRequired("Description")),
			huh.NewSelect[string]().
				Title("Language").
				Options(
					huh.NewOption("Python", "python"),
					huh.NewOption("Go", "go"),
					huh.NewOption("Java", "java"),
					huh.NewOption("Node.js", "nodejs"),
				).
				Value(&m.fb.language),
			huh.NewSelect[string]().
				Title("Framework").
				Options(
					huh.NewOption("FastAPI", "fastapi"),
					huh.NewOption("Flask", "flask"),
					huh.NewOption("Gin", "gin"),
					huh.NewOption("Spring Boot", "spring"),
					huh.NewOption("Express", "express"),
				).
				Value(&m.fb.framework),
			huh.NewSelect[string]().
				Title("Database").
				Options(
					huh.NewOption("MySQL", "mysql"),
					huh.NewOption("PostgreSQL", "postgresql"),
					huh.NewOption("MongoDB", "mongodb"),
					huh.NewOption("SQLite", "sqlite"),
				).
				Value(&m.fb.database),
			huh.NewMultiSelect[string]().
				Title("Features").
				Options(
					huh.NewOption("Authentication", "auth"),
					huh.NewOption("Pagination", "pagination"),
					huh.NewOption("Rate limiting", "rate_limit"),
					huh.NewOption("OpenAPI docs", "openapi"),
					huh.NewOption("Caching", "cache"),
				).
				Value(&m.fb.features),
			huh.NewSelect[int]().
				Title("Priority").
				Options(
					huh.NewOption("P1 - High", model.PriorityHigh),
					huh.NewOption("P2 - Medium", model.PriorityMedium),
					huh.NewOption("P3 - Low", model.PriorityLow),
				).
				Value(&m.fb.priority),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	spec := model.TaskSpec{
		Name:        strings.TrimSpace(m.fb.name),
		Description: strings.TrimSpace(m.fb.description),
		Language:    m.fb.language,
		Framework:   m.fb.framework,
		Database:    m.fb.database,
		Features:    m.fb.features,
		Priority:    m.fb.priority,
	}
	return func() tea.Msg { return TaskSubmittedMsg{Spec: spec} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
