package realtime

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/lwang/apiforge/internal/model"
)

// Message types of the websocket envelope.
const (
	TypeNotification     = "notification"
	TypeTaskStatusUpdate = "task_status_update"
	TypePing             = "ping"
	TypePong             = "pong"
)

// Fixed reconnect delay after abnormal closure and keep-alive period.
const (
	reconnectDelay = 5 * time.Second
	pingInterval   = 30 * time.Second
)

// Envelope is the wire format of every push message.
type Envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// TaskStatusMsg is a tea.Msg delivered when the backend pushes a task
// status change. Views patch their cached copy of the task in place
// rather than re-fetching.
type TaskStatusMsg struct {
	TaskID   string
	Status   string
	Progress *int
}

// NotificationMsg is a tea.Msg delivered when a new notification is
// pushed.
type NotificationMsg struct {
	Notification model.Notification
}

// ConnStateMsg reports connection lifecycle changes for the header
// indicator.
type ConnStateMsg struct {
	Connected bool
	Err       error
}

// DeriveWSURL converts the backend base URL into the websocket
// endpoint, carrying the bearer token as a query parameter.
func DeriveWSURL(baseURL, token string) string {
	ws := strings.TrimRight(baseURL, "/")
	ws = strings.Replace(ws, "https://", "wss://", 1)
	ws = strings.Replace(ws, "http://", "ws://", 1)
	return ws + "/ws?token=" + url.QueryEscape(token)
}

// Channel maintains the single push connection for an authenticated
// session: it decodes envelopes into tea.Msg values, answers with
// keep-alive pings, and reconnects with a fixed delay after abnormal
// closure. Messages reach the UI through the same
// channel-plus-WaitForNext subscription pattern the rest of the app
// uses for async work.
type Channel struct {
	wsURL  string
	log    *logrus.Logger
	msgCh  chan tea.Msg
	stopCh chan struct{}

	mu      gosync.Mutex
	running bool
}

// New creates a Channel for the given websocket URL.
func New(wsURL string, log *logrus.Logger) *Channel {
	return &Channel{
		wsURL:  wsURL,
		log:    log,
		msgCh:  make(chan tea.Msg, 32),
		stopCh: make(chan struct{}),
	}
}

// Start launches the connection loop and returns the first
// subscription command. Calling Start twice is a no-op.
func (c *Channel) Start() tea.Cmd {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return c.WaitForNext()
	}
	c.running = true
	c.mu.Unlock()

	go c.run()

	return c.WaitForNext()
}

// Stop terminates the connection loop.
func (c *Channel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}
	close(c.stopCh)
	c.running = false
}

// WaitForNext returns a tea.Cmd that blocks for the next push message.
// Call it again after each received message to keep listening.
func (c *Channel) WaitForNext() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg, ok := <-c.msgCh:
			if !ok {
				return nil
			}
			return msg
		case <-c.stopCh:
			return nil
		}
	}
}

// run is the reconnect loop: one session per iteration, fixed delay
// between attempts.
func (c *Channel) run() {
	for {
		select {
		case <-c.stopCh:
			return
		default:
		}

		if err := c.session(); err != nil {
			c.log.WithError(err).Warn("websocket session ended")
			c.send(ConnStateMsg{Connected: false, Err: err})
		}

		select {
		case <-c.stopCh:
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// session dials the endpoint and pumps messages until the connection
// drops or the channel is stopped.
func (c *Channel) session() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.wsURL, nil)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", c.wsURL, err)
	}
	defer conn.Close()

	c.send(ConnStateMsg{Connected: true})
	c.log.Info("websocket connected")

	done := make(chan struct{})
	defer close(done)

	// Keep-alive pinger.
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-c.stopCh:
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				conn.Close()
				return
			case <-ticker.C:
				ping, _ := json.Marshal(Envelope{Type: TypePing})
				if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.stopCh:
				return nil
			default:
			}
			return fmt.Errorf("reading message: %w", err)
		}

		msg, err := Decode(raw)
		if err != nil {
			c.log.WithError(err).Debug("dropping undecodable push message")
			continue
		}
		if msg != nil {
			c.send(msg)
		}
	}
}

// send delivers a message to the UI without blocking the read loop.
func (c *Channel) send(msg tea.Msg) {
	select {
	case c.msgCh <- msg:
	default:
		// Drop if the UI is not draining; the next full fetch catches up.
	}
}

// Decode parses one wire envelope into its tea.Msg. Heartbeat frames
// decode to nil. Unknown envelope types are an error so callers can
// log them.
func Decode(raw []byte) (tea.Msg, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unmarshaling envelope: %w", err)
	}

	switch env.Type {
	case TypePing, TypePong:
		return nil, nil

	case TypeTaskStatusUpdate:
		var data struct {
			TaskID   model.FlexID `json:"task_id"`
			Status   string       `json:"status"`
			Progress *int         `json:"progress"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("unmarshaling task_status_update: %w", err)
		}
		return TaskStatusMsg{
			TaskID:   data.TaskID.String(),
			Status:   data.Status,
			Progress: data.Progress,
		}, nil

	case TypeNotification:
		var p model.NotificationPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("unmarshaling notification: %w", err)
		}
		return NotificationMsg{Notification: p.Normalize()}, nil

	default:
		return nil, fmt.Errorf("unknown envelope type %q", env.Type)
	}
}
