// Package app wires the pages, the API client, the realtime channel,
// and the local cache into the root Bubble Tea model.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/lwang/apiforge/internal/api"
	"github.com/lwang/apiforge/internal/credential"
	"github.com/lwang/apiforge/internal/feedback"
	"github.com/lwang/apiforge/internal/keys"
	"github.com/lwang/apiforge/internal/model"
	"github.com/lwang/apiforge/internal/realtime"
	"github.com/lwang/apiforge/internal/status"
	"github.com/lwang/apiforge/internal/store"
	"github.com/lwang/apiforge/internal/theme"
	"github.com/lwang/apiforge/internal/ui"
	adminview "github.com/lwang/apiforge/internal/ui/admin"
	"github.com/lwang/apiforge/internal/ui/command"
	"github.com/lwang/apiforge/internal/ui/dashboard"
	"github.com/lwang/apiforge/internal/ui/deploy"
	"github.com/lwang/apiforge/internal/ui/detail"
	helpview "github.com/lwang/apiforge/internal/ui/help"
	"github.com/lwang/apiforge/internal/ui/login"
	"github.com/lwang/apiforge/internal/ui/notifications"
	"github.com/lwang/apiforge/internal/ui/taskform"
	"github.com/lwang/apiforge/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewDashboard
	ViewList
	ViewDetail
	ViewTaskForm
	ViewAdmin
	ViewNotifications
	ViewWizard
	ViewHelp
	ViewCommand
)

// Model is the root Bubble Tea model that manages authentication, view
// routing, the realtime channel, and access to the persistence layer.
type Model struct {
	cfg    *model.AppConfig
	log    *logrus.Logger
	client *api.Client
	tokens *credential.Store
	store  store.Store
	center *feedback.Center

	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	vocab        status.Vocabulary

	loginView   login.Model
	dashView    dashboard.Model
	taskList    tasklist.Model
	detail      detail.Model
	taskForm    taskform.Model
	adminView   adminview.Model
	notifView   notifications.Model
	wizardView  deploy.Model
	helpView    helpview.Model
	commandView command.Model

	channel     *realtime.Channel
	user        *model.User
	unreadCount int
	connected   bool
	ready       bool
}

// New creates the root application model.
func New(cfg *model.AppConfig, log *logrus.Logger, client *api.Client, tokens *credential.Store, s store.Store) Model {
	k := keys.DefaultKeyMap()
	vocab := status.ParseVocabulary(cfg.Display.StatusVocabulary)

	m := Model{
		cfg:         cfg,
		log:         log,
		client:      client,
		tokens:      tokens,
		store:       s,
		center:      feedback.NewCenter(),
		currentView: ViewLogin,
		keys:        k,
		vocab:       vocab,
		loginView:   login.New(80, 24),
		dashView:    dashboard.New(s, vocab, 80, 24),
		taskList:    tasklist.New(s, k, vocab, 80, 24),
		detail:      detail.New(k, vocab, 80, 24),
		taskForm:    taskform.New(80, 24),
		adminView:   adminview.New(vocab, 80, 24),
		notifView:   notifications.New(80, 24),
		wizardView:  deploy.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
	}

	return m
}

// Init resumes a stored session when the token is still valid,
// otherwise lands on the login screen.
func (m Model) Init() tea.Cmd {
	token := m.tokens.Token()
	if token == "" {
		return m.loginView.Init()
	}
	if claims, err := credential.InspectToken(token); err != nil || claims.Expired(time.Now()) {
		return m.loginView.Init()
	}
	// A live token; confirm it against the backend.
	return tea.Batch(m.loginView.Init(), m.meCmd())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.dashView.SetSize(w, h)
		m.taskList.SetSize(w, h)
		m.detail.SetSize(w, h)
		m.taskForm.SetSize(w, h)
		m.adminView.SetSize(w, h)
		m.notifView.SetSize(w, h)
		m.wizardView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		return m.updateActiveView(msg)

	// Authentication.

	case login.SubmitMsg:
		if msg.Register {
			return m, m.registerCmd(msg.Username, msg.Email, msg.Password)
		}
		return m, m.loginCmd(msg.Username, msg.Password)

	case sessionResultMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("authentication failed")
			m.loginView.SetError(errorText(msg.err))
			return m, nil
		}
		if err := m.tokens.SetToken(msg.session.Token); err != nil {
			m.log.WithError(err).Warn("storing token")
		}
		user := msg.session.User
		m.user = &user
		if msg.register {
			m.center.Success("账号创建成功")
		}
		return m.enterSignedIn()

	case meResultMsg:
		if msg.err != nil {
			// Stored token rejected; fall back to the login screen.
			return m, nil
		}
		user := msg.user
		m.user = &user
		return m.enterSignedIn()

	// Realtime pushes.

	case realtime.TaskStatusMsg:
		m.log.WithFields(logrus.Fields{
			"task":   msg.TaskID,
			"status": msg.Status,
		}).Debug("realtime status update")
		cmds := []tea.Cmd{
			m.patchTaskStatusCmd(msg.TaskID, msg.Status),
			m.channel.WaitForNext(),
		}
		if m.currentView == ViewDetail && m.detail.Task() != nil && m.detail.Task().ID == msg.TaskID {
			cmds = append(cmds, m.loadTaskDetailCmd(msg.TaskID))
		}
		return m, tea.Batch(cmds...)

	case realtime.NotificationMsg:
		m.unreadCount++
		m.center.Info(msg.Notification.Title)
		cmds := []tea.Cmd{m.channel.WaitForNext()}
		if m.currentView == ViewNotifications {
			cmds = append(cmds, m.fetchNotificationsCmd())
		}
		return m, tea.Batch(cmds...)

	case realtime.ConnStateMsg:
		m.connected = msg.Connected
		if msg.Err != nil {
			m.log.WithError(msg.Err).Debug("realtime connection state")
		}
		return m, m.channel.WaitForNext()

	// Backend call results.

	case tasksFetchedMsg:
		if msg.err != nil {
			return m.reportError("获取任务列表失败", msg.err)
		}
		return m, tea.Batch(m.taskList.LoadTasks(), m.dashView.LoadStats())

	case cacheRefreshedMsg:
		return m, tea.Batch(m.taskList.LoadTasks(), m.dashView.LoadStats())

	case taskDetailMsg:
		if msg.err != nil && msg.task == nil {
			return m.reportError("获取任务详情失败", msg.err)
		}
		if msg.err != nil {
			m.center.Warning("后端不可达，显示缓存快照")
		}
		m.detail.SetTask(msg.task)
		return m, nil

	case taskCreatedMsg:
		if msg.err != nil {
			return m.reportError("创建任务失败", msg.err)
		}
		m.center.Success(fmt.Sprintf("任务 %s 已提交", msg.task.Title))
		m.currentView = ViewList
		return m, m.refreshTasksCmd()

	case actionResultMsg:
		return m.handleActionResult(msg)

	case downloadResultMsg:
		if msg.err != nil {
			return m.reportError("下载代码失败", msg.err)
		}
		m.center.Success("代码已保存到 " + msg.path)
		return m, nil

	case notificationsFetchedMsg:
		if msg.err != nil {
			return m.reportError("获取通知失败", msg.err)
		}
		var cmd tea.Cmd
		m.notifView, cmd = m.notifView.Update(notifications.LoadedMsg{Notifications: msg.items})
		m.unreadCount = m.notifView.UnreadCount()
		return m, cmd

	case unreadCountMsg:
		if msg.err == nil {
			m.unreadCount = msg.count
		}
		return m, nil

	case adminStatsMsg:
		if msg.err != nil {
			return m.reportError("获取统计失败", msg.err)
		}
		stats := msg.stats
		var cmd tea.Cmd
		m.adminView, cmd = m.adminView.Update(adminview.StatsLoadedMsg{Stats: &stats})
		return m, cmd

	case adminTasksMsg:
		if msg.err != nil {
			return m.reportError("获取任务失败", msg.err)
		}
		var cmd tea.Cmd
		m.adminView, cmd = m.adminView.Update(adminview.TasksLoadedMsg{Tasks: msg.tasks})
		return m, cmd

	case adminUsersMsg:
		if msg.err != nil {
			return m.reportError("获取用户失败", msg.err)
		}
		var cmd tea.Cmd
		m.adminView, cmd = m.adminView.Update(adminview.UsersLoadedMsg{Users: msg.users})
		return m, cmd

	// Page-emitted navigation and actions.

	case tasklist.SelectedTaskMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.SetLoading(true)
		return m, m.loadTaskDetailCmd(msg.TaskID)

	case detail.BackMsg:
		m.currentView = ViewList
		return m, m.taskList.LoadTasks()

	case detail.ActionMsg:
		return m.handleDetailAction(msg)

	case taskform.TaskSubmittedMsg:
		return m, m.createTaskCmd(msg.Spec)

	case taskform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case notifications.ActionMsg:
		return m, tea.Sequence(
			m.notificationActionCmd(msg.Action, msg.ID),
			m.fetchNotificationsCmd(),
			m.fetchUnreadCountCmd(),
		)

	case notifications.BackMsg:
		m.currentView = ViewDashboard
		return m, m.dashView.LoadStats()

	case adminview.ReviewMsg:
		return m, tea.Sequence(
			m.reviewCmd(msg.TaskID, msg.Approve, msg.Comment),
			m.fetchAdminTasksCmd(),
			m.refreshTasksCmd(),
		)

	case adminview.ToggleUserMsg:
		return m, tea.Sequence(
			m.toggleUserCmd(msg.UserID, msg.Active),
			m.fetchAdminUsersCmd(),
		)

	case adminview.BroadcastMsg:
		return m, m.broadcastCmd(msg.Title, msg.Content, msg.Type)

	case adminview.BackMsg:
		m.currentView = ViewDashboard
		return m, m.dashView.LoadStats()

	case deploy.RetryMsg:
		return m, m.loadWizardCmd(msg.TaskID)

	case deploy.BackMsg:
		m.currentView = ViewDetail
		return m, nil

	case deploy.AttestErrMsg:
		return m.reportError("保存部署进度失败", msg.Err)

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		if handled, mdl, cmd := m.handleGlobalKeys(msg); handled {
			return mdl, cmd
		}
	}

	return m.updateActiveView(msg)
}

// enterSignedIn transitions from the login screen into the app proper:
// dashboard, first fetch, realtime channel.
func (m Model) enterSignedIn() (tea.Model, tea.Cmd) {
	m.currentView = ViewDashboard
	m.detail.SetAdmin(m.user != nil && m.user.Role == model.RoleAdmin)
	m.helpView.SetAdmin(m.user != nil && m.user.Role == model.RoleAdmin)
	m.dashView.SetUser(m.user)

	wsURL := realtime.DeriveWSURL(m.client.BaseURL(), m.tokens.Token())
	if m.cfg.Server.WSURL != "" {
		wsURL = realtime.DeriveWSURL(m.cfg.Server.WSURL, m.tokens.Token())
	}
	m.channel = realtime.New(wsURL, m.log)

	return m, tea.Batch(
		m.refreshTasksCmd(),
		m.fetchUnreadCountCmd(),
		m.channel.Start(),
	)
}

// handleDetailAction routes the actions emitted by the detail page.
func (m Model) handleDetailAction(msg detail.ActionMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case "deploy":
		m.previousView = m.currentView
		m.currentView = ViewWizard
		return m, m.loadWizardCmd(msg.TaskID)
	case "download":
		return m, m.downloadCodeCmd(msg.TaskID)
	case "approve":
		return m, tea.Sequence(
			m.reviewCmd(msg.TaskID, true, ""),
			m.loadTaskDetailCmd(msg.TaskID),
		)
	case "reject":
		m.previousView = m.currentView
		m.currentView = ViewAdmin
		return m, tea.Batch(m.adminView.StartReject(msg.TaskID), m.fetchAdminTasksCmd())
	default:
		// advance, complete_action, regenerate, delete
		cmds := []tea.Cmd{m.taskActionCmd(msg.Action, msg.TaskID)}
		if msg.Action == "delete" {
			m.currentView = ViewList
			cmds = append(cmds, m.refreshTasksCmd())
		} else {
			cmds = append(cmds, m.loadTaskDetailCmd(msg.TaskID))
		}
		return m, tea.Sequence(cmds...)
	}
}

// handleActionResult surfaces the outcome of a backend operation.
func (m Model) handleActionResult(msg actionResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.reportError("操作失败", msg.err)
	}

	switch msg.action {
	case "advance":
		m.center.Success("已推进到下一阶段")
	case "complete_action":
		m.center.Success("已确认当前操作完成")
	case "regenerate":
		m.center.Info("已触发重新生成")
	case "delete":
		m.center.Success("任务已删除")
	case "approve":
		m.center.Success("已批准")
	case "reject":
		m.center.Success("已拒绝")
	case "toggle_user":
		m.center.Success("用户状态已更新")
	case "broadcast":
		m.center.Success("通知已广播")
	}
	return m, nil
}

// handleGlobalKeys processes keys that work regardless of the focused
// page. Returns handled=false to fall through to the active view.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	// Text-entry views own the keyboard.
	typing := m.currentView == ViewLogin ||
		m.currentView == ViewTaskForm ||
		m.currentView == ViewCommand ||
		(m.currentView == ViewList && m.taskList.Typing()) ||
		(m.currentView == ViewAdmin && m.adminView.Typing())

	switch msg.String() {
	case "ctrl+c":
		m.stopChannel()
		return true, m, tea.Quit

	case "q":
		if !typing && (m.currentView == ViewDashboard || m.currentView == ViewList) {
			m.stopChannel()
			return true, m, tea.Quit
		}

	case "?":
		if typing {
			break
		}
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case ":":
		if typing {
			break
		}
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return true, m, m.commandView.Focus()

	case "1":
		if !typing && m.signedIn() && m.currentView != ViewDashboard {
			m.currentView = ViewDashboard
			return true, m, m.dashView.LoadStats()
		}

	case "2":
		if !typing && m.signedIn() && m.currentView != ViewList {
			m.currentView = ViewList
			return true, m, m.taskList.LoadTasks()
		}

	case "3":
		if !typing && m.signedIn() && m.currentView != ViewNotifications {
			m.currentView = ViewNotifications
			return true, m, m.fetchNotificationsCmd()
		}

	case "4":
		if !typing && m.isAdmin() && m.currentView != ViewAdmin {
			m.currentView = ViewAdmin
			return true, m, tea.Batch(
				m.fetchAdminStatsCmd(),
				m.fetchAdminTasksCmd(),
				m.fetchAdminUsersCmd(),
			)
		}

	case "n":
		if !typing && m.signedIn() && (m.currentView == ViewDashboard || m.currentView == ViewList) {
			m.previousView = m.currentView
			m.currentView = ViewTaskForm
			return true, m, m.taskForm.Start()
		}

	case "r":
		if !typing && m.signedIn() && (m.currentView == ViewDashboard || m.currentView == ViewList) {
			m.center.Info("刷新中...")
			return true, m, m.refreshTasksCmd()
		}

	case "v":
		if !typing && m.signedIn() && m.currentView != ViewDetail {
			m.toggleVocabulary()
			return true, m, tea.Batch(m.taskList.LoadTasks(), m.dashView.LoadStats())
		}

	case "esc":
		if m.currentView == ViewHelp || m.currentView == ViewCommand {
			m.currentView = m.previousView
			return true, m, nil
		}
	}

	return false, m, nil
}

// toggleVocabulary flips between the simplified and legacy status
// vocabularies across every page.
func (m *Model) toggleVocabulary() {
	if m.vocab == status.VocabularySimplified {
		m.vocab = status.VocabularyLegacy
	} else {
		m.vocab = status.VocabularySimplified
	}
	m.cfg.Display.StatusVocabulary = m.vocab.String()
	m.taskList.SetVocabulary(m.vocab)
	m.detail.SetVocabulary(m.vocab)
	m.dashView.SetVocabulary(m.vocab)
	m.adminView.SetVocabulary(m.vocab)
	if err := model.SaveConfig(model.DefaultConfigPath(), m.cfg); err != nil {
		m.log.WithError(err).Warn("saving config")
	}
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return m, nil
	}

	switch fields[0] {
	case "quit", "q":
		m.stopChannel()
		return m, tea.Quit

	case "logout":
		return m.logout()

	case "refresh", "sync":
		return m, m.refreshTasksCmd()

	case "dashboard":
		m.currentView = ViewDashboard
		return m, m.dashView.LoadStats()

	case "tasks":
		m.currentView = ViewList
		return m, m.taskList.LoadTasks()

	case "notifications":
		m.currentView = ViewNotifications
		return m, m.fetchNotificationsCmd()

	case "admin":
		if !m.isAdmin() {
			m.center.Warning("需要管理员权限")
			return m, nil
		}
		m.currentView = ViewAdmin
		return m, tea.Batch(
			m.fetchAdminStatsCmd(),
			m.fetchAdminTasksCmd(),
			m.fetchAdminUsersCmd(),
		)

	case "vocab":
		if len(fields) > 1 {
			m.vocab = status.ParseVocabulary(fields[1])
			m.cfg.Display.StatusVocabulary = m.vocab.String()
			if err := model.SaveConfig(model.DefaultConfigPath(), m.cfg); err != nil {
				m.log.WithError(err).Warn("saving config")
			}
		} else {
			m.toggleVocabulary()
			return m, tea.Batch(m.taskList.LoadTasks(), m.dashView.LoadStats())
		}
		m.taskList.SetVocabulary(m.vocab)
		m.detail.SetVocabulary(m.vocab)
		m.dashView.SetVocabulary(m.vocab)
		m.adminView.SetVocabulary(m.vocab)
		return m, tea.Batch(m.taskList.LoadTasks(), m.dashView.LoadStats())

	case "status":
		if len(fields) > 1 {
			return m, m.taskList.SetStatusFilter(fields[1])
		}
		return m, m.taskList.SetStatusFilter("")

	default:
		m.center.Warning("未知命令: " + cmd)
		return m, nil
	}
}

// logout drops the session and returns to the login screen.
func (m Model) logout() (tea.Model, tea.Cmd) {
	m.stopChannel()
	if err := m.tokens.Clear(); err != nil {
		m.log.WithError(err).Warn("clearing token")
	}
	m.user = nil
	m.unreadCount = 0
	m.connected = false
	m.currentView = ViewLogin
	m.loginView = login.New(m.layout.ContentWidth(), m.layout.ContentHeight())
	return m, m.loginView.Init()
}

func (m *Model) stopChannel() {
	if m.channel != nil {
		m.channel.Stop()
	}
}

func (m Model) signedIn() bool { return m.user != nil }

func (m Model) isAdmin() bool {
	return m.user != nil && m.user.Role == model.RoleAdmin
}

// reportError logs a failure, surfaces it as a toast, and bounces to
// the login screen on expired credentials.
func (m Model) reportError(prefix string, err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, api.ErrUnauthorized) {
		m.log.Info("session expired")
		mdl, cmd := m.logout()
		if root, ok := mdl.(Model); ok {
			root.loginView.SetError("会话已过期，请重新登录")
			return root, cmd
		}
		return mdl, cmd
	}

	m.log.WithError(err).Warn(prefix)
	m.center.Error(prefix + ": " + errorText(err))
	return m, nil
}

// errorText trims API error prose to something toast-sized.
func errorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	text := err.Error()
	if len(text) > 120 {
		text = text[:117] + "..."
	}
	return text
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewTaskForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewAdmin:
		m.adminView, cmd = m.adminView.Update(msg)
	case ViewNotifications:
		m.notifView, cmd = m.notifView.Update(msg)
	case ViewWizard:
		m.wizardView, cmd = m.wizardView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewLogin {
		return m.loginView.View()
	}

	header := m.layout.RenderHeader("API Forge", m.headerRight())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashView.View()
	case ViewList:
		return m.taskList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewTaskForm:
		return m.taskForm.View()
	case ViewAdmin:
		return m.adminView.View()
	case ViewNotifications:
		return m.notifView.View()
	case ViewWizard:
		return m.wizardView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// headerRight builds the right side of the header: connection dot,
// unread badge, signed-in user.
func (m Model) headerRight() string {
	parts := make([]string, 0, 3)

	if m.connected {
		parts = append(parts, "● live")
	} else {
		parts = append(parts, "○ offline")
	}
	if m.unreadCount > 0 {
		parts = append(parts, fmt.Sprintf("[%d new]", m.unreadCount))
	}
	if m.user != nil {
		parts = append(parts, m.user.Username)
	}

	return strings.Join(parts, "  ")
}

// statusLine shows the freshest toast when one is live, else key hints.
func (m Model) statusLine() string {
	toasts := m.center.Active()
	if len(toasts) > 0 {
		latest := toasts[len(toasts)-1]
		return theme.ToastStyle(string(latest.Level)).Render(latest.Message)
	}
	return m.keyHints()
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewDetail:
		return "d deploy | w download | g regenerate | t advance | m action done | x delete | v vocab | esc back"
	case ViewTaskForm:
		return "enter submit | esc cancel"
	case ViewAdmin:
		return "tab panel | p approve | P reject | enter toggle user | esc back"
	case ViewNotifications:
		return "enter mark read | a mark all | x delete | c clear read | esc back"
	case ViewWizard:
		return "j/k step | enter mark done | esc back"
	case ViewDashboard:
		return "2 tasks | 3 notifications | n new | r refresh | ? help | q quit"
	default:
		return "enter detail | n new | / search | tab sort | 1 dashboard | ? help | q quit"
	}
}
