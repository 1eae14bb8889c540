package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lwang/apiforge/internal/api"
	"github.com/lwang/apiforge/internal/model"
	"github.com/lwang/apiforge/internal/ui/deploy"
	"github.com/lwang/apiforge/internal/wizard"
)

// fetchTimeout bounds every backend call issued from the UI.
const fetchTimeout = 10 * time.Second

// Result messages for backend calls. Each carries the error so the
// update loop can turn failures into feedback toasts.
type (
	sessionResultMsg struct {
		session  model.Session
		register bool
		err      error
	}

	meResultMsg struct {
		user model.User
		err  error
	}

	tasksFetchedMsg struct {
		page api.TaskPage
		err  error
	}

	taskDetailMsg struct {
		task *model.Task
		err  error
	}

	taskCreatedMsg struct {
		task model.Task
		err  error
	}

	actionResultMsg struct {
		action string
		taskID string
		err    error
	}

	downloadResultMsg struct {
		taskID string
		path   string
		err    error
	}

	notificationsFetchedMsg struct {
		items []model.Notification
		err   error
	}

	unreadCountMsg struct {
		count int
		err   error
	}

	adminStatsMsg struct {
		stats model.AdminStats
		err   error
	}

	adminTasksMsg struct {
		tasks []model.Task
		err   error
	}

	adminUsersMsg struct {
		users []model.User
		err   error
	}

	cacheRefreshedMsg struct{}
)

func callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), fetchTimeout)
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		session, err := client.Login(ctx, username, password)
		return sessionResultMsg{session: session, err: err}
	}
}

func (m Model) registerCmd(username, email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		session, err := client.Register(ctx, email, password, username)
		return sessionResultMsg{session: session, register: true, err: err}
	}
}

func (m Model) meCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		user, err := client.Me(ctx)
		return meResultMsg{user: user, err: err}
	}
}

// refreshTasksCmd fetches the first page of tasks and upserts them into
// the local cache so views render from one consistent source.
func (m Model) refreshTasksCmd() tea.Cmd {
	client := m.client
	s := m.store
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		page, err := client.GetTasks(ctx, 1, 100)
		if err != nil {
			return tasksFetchedMsg{err: err}
		}
		if err := s.UpsertTasks(ctx, page.Tasks); err != nil {
			return tasksFetchedMsg{err: err}
		}
		return tasksFetchedMsg{page: page}
	}
}

// loadTaskDetailCmd fetches a fresh task snapshot plus its pipeline
// log. The cache copy serves as fallback when the backend is down.
func (m Model) loadTaskDetailCmd(taskID string) tea.Cmd {
	client := m.client
	s := m.store
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		task, err := client.GetTask(ctx, taskID)
		if err != nil {
			cached, cacheErr := s.GetTaskByID(ctx, taskID)
			if cacheErr == nil && cached != nil {
				return taskDetailMsg{task: cached, err: err}
			}
			return taskDetailMsg{err: err}
		}

		if logs, logErr := client.GetTaskLogs(ctx, taskID); logErr == nil {
			task.Logs = logs
		}

		_ = s.UpsertTasks(ctx, []model.Task{task})
		return taskDetailMsg{task: &task}
	}
}

func (m Model) createTaskCmd(spec model.TaskSpec) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		task, err := client.CreateTask(ctx, spec)
		return taskCreatedMsg{task: task, err: err}
	}
}

// taskActionCmd runs one of the simple task operations.
func (m Model) taskActionCmd(action, taskID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		var err error
		switch action {
		case "advance":
			err = client.AdvanceTask(ctx, taskID)
		case "complete_action":
			err = m.completeFirstAction(ctx, taskID)
		case "regenerate":
			err = client.RegenerateCode(ctx, taskID)
		case "delete":
			err = client.DeleteTask(ctx, taskID)
		default:
			err = fmt.Errorf("unknown task action %q", action)
		}
		return actionResultMsg{action: action, taskID: taskID, err: err}
	}
}

// completeFirstAction reports the first outstanding required action of
// the current workflow step as done.
func (m Model) completeFirstAction(ctx context.Context, taskID string) error {
	wf, err := m.client.GetTaskWorkflow(ctx, taskID)
	if err != nil {
		return err
	}
	for _, step := range wf.Steps {
		if !step.Current {
			continue
		}
		if len(step.RequiredActions) == 0 {
			return fmt.Errorf("current step has no pending actions")
		}
		return m.client.CompleteTaskAction(ctx, taskID, step.RequiredActions[0])
	}
	return fmt.Errorf("task has no current workflow step")
}

// downloadCodeCmd fetches the generated code blob and writes it under
// the config directory.
func (m Model) downloadCodeCmd(taskID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		data, err := client.DownloadCode(ctx, taskID)
		if err != nil {
			return downloadResultMsg{taskID: taskID, err: err}
		}

		dir := filepath.Join(model.ConfigDir(), "downloads")
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return downloadResultMsg{taskID: taskID, err: err}
		}
		path := filepath.Join(dir, fmt.Sprintf("task-%s-main.py", taskID))
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return downloadResultMsg{taskID: taskID, err: err}
		}
		return downloadResultMsg{taskID: taskID, path: path}
	}
}

func (m Model) reviewCmd(taskID string, approve bool, comment string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		decision := api.ReviewDecision{Status: "approved"}
		if !approve {
			decision = api.ReviewDecision{Status: "rejected", Comment: comment}
		}
		_, err := client.UpdateTaskStatus(ctx, taskID, decision)
		action := "approve"
		if !approve {
			action = "reject"
		}
		return actionResultMsg{action: action, taskID: taskID, err: err}
	}
}

// fetchNotificationsCmd pulls the notification list and overlays the
// local read tombstones so a racing fetch cannot resurrect unread dots.
func (m Model) fetchNotificationsCmd() tea.Cmd {
	client := m.client
	s := m.store
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		items, err := client.GetNotifications(ctx)
		if err != nil {
			return notificationsFetchedMsg{err: err}
		}
		if read, tombErr := s.ReadNotificationIDs(ctx); tombErr == nil {
			for i := range items {
				if read[items[i].ID] {
					items[i].IsRead = true
				}
			}
		}
		return notificationsFetchedMsg{items: items}
	}
}

func (m Model) fetchUnreadCountCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		count, err := client.GetUnreadCount(ctx)
		return unreadCountMsg{count: count, err: err}
	}
}

// notificationActionCmd runs one notification-center operation, then
// refetches the list.
func (m Model) notificationActionCmd(action, id string) tea.Cmd {
	client := m.client
	s := m.store
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		var err error
		switch action {
		case "mark_read":
			if err = client.MarkNotificationRead(ctx, id); err == nil {
				_ = s.TombstoneNotification(ctx, id)
			}
		case "mark_all_read":
			err = client.MarkAllNotificationsRead(ctx)
		case "delete":
			err = client.DeleteNotification(ctx, id)
		case "clear_read":
			err = client.ClearReadNotifications(ctx)
		default:
			err = fmt.Errorf("unknown notification action %q", action)
		}
		return actionResultMsg{action: "notification/" + action, err: err}
	}
}

func (m Model) fetchAdminStatsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		stats, err := client.GetAdminStats(ctx)
		return adminStatsMsg{stats: stats, err: err}
	}
}

func (m Model) fetchAdminTasksCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		page, err := client.GetAllTasks(ctx, 1, 100)
		return adminTasksMsg{tasks: page.Tasks, err: err}
	}
}

func (m Model) fetchAdminUsersCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		users, err := client.GetUsers(ctx)
		return adminUsersMsg{users: users, err: err}
	}
}

func (m Model) toggleUserCmd(userID string, active bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		err := client.UpdateUserStatus(ctx, userID, active)
		return actionResultMsg{action: "toggle_user", err: err}
	}
}

func (m Model) broadcastCmd(title, content, notifyType string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		err := client.BroadcastNotification(ctx, title, content, notifyType)
		return actionResultMsg{action: "broadcast", err: err}
	}
}

// patchTaskStatusCmd applies a realtime status push to the cache and
// asks the list to re-render.
func (m Model) patchTaskStatusCmd(taskID, taskStatus string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		_ = s.PatchTaskStatus(ctx, taskID, taskStatus)
		return cacheRefreshedMsg{}
	}
}

// loadWizardCmd fetches the deployment plan for a task and builds a
// wizard session over it. When the backend cannot serve a plan and the
// static fallback is enabled, the built-in plan is used instead.
func (m Model) loadWizardCmd(taskID string) tea.Cmd {
	client := m.client
	s := m.store
	fallback := m.cfg.Wizard.FallbackToStatic
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()

		// The backend materializes a deployment session on first request;
		// steps are then readable until the task leaves the approved state.
		var steps []model.DeploymentStep
		session, err := client.CreateDeploymentSession(ctx, taskID)
		if err != nil || len(session.Steps) == 0 {
			session, err = client.GetDeploymentSteps(ctx, taskID)
		}
		switch {
		case err == nil && len(session.Steps) > 0:
			steps = session.Steps
		case fallback:
			steps = wizard.FallbackSteps()
		default:
			if err == nil {
				err = fmt.Errorf("deployment plan for task %s is empty", taskID)
			}
			return deploy.StepsErrorMsg{TaskID: taskID, Err: err}
		}

		sess, err := wizard.NewSession(ctx, s, taskID, steps)
		if err != nil {
			return deploy.StepsErrorMsg{TaskID: taskID, Err: err}
		}

		vars := wizard.Vars{FileName: "main.py"}
		if task, err := s.GetTaskByID(ctx, taskID); err == nil && task != nil {
			vars.ProjectPath = "/srv/" + task.Title
			vars.FilePath = filepath.Join(model.ConfigDir(), "downloads", fmt.Sprintf("task-%s-main.py", taskID))
			vars.CommitMessage = "deploy " + task.Title
			if task.BranchName != "" {
				vars.GitRepoURL = task.BranchName
			}
		}

		return deploy.SessionReadyMsg{Session: sess, Vars: vars}
	}
}
