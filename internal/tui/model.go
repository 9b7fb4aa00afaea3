package tui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/danprtma/watchparty/internal/client"
	"github.com/danprtma/watchparty/internal/domain"
)

// focus selects which surface the keyboard drives
type focus int

const (
	focusChat focus = iota
	focusPlayer
)

// skipStep is how far the arrow keys jump, in seconds
const skipStep = 10.0

// Messages bridged from the session's read loop into the tea runtime
type (
	chatMsg struct {
		username string
		message  string
	}

	playbackMsg struct {
		kind domain.EventType
		time float64
	}

	disconnectedMsg struct{}

	tickMsg time.Time
)

// Model is the interactive watch-party screen: a chat log, an input
// line, and a shared playback clock driven by the reconciler.
type Model struct {
	session    *client.Session
	reconciler *client.Reconciler
	player     *client.ClockPlayer
	roomID     string
	username   string

	viewport viewport.Model
	input    textinput.Model
	lines    []string
	focus    focus

	events chan tea.Msg

	width  int
	height int
	ready  bool
	gone   bool
	err    error
}

// NewModel wires a model to a connected session. The session reference
// is held for the lifetime of the program and released by Close.
func NewModel(session *client.Session, roomID, username string) *Model {
	input := textinput.New()
	input.Placeholder = "Say something..."
	input.CharLimit = 512
	input.Focus()

	if username == "" {
		username = "you"
	}

	player := client.NewClockPlayer()

	m := &Model{
		session:  session.Acquire(),
		player:   player,
		roomID:   roomID,
		username: username,
		input:    input,
		events:   make(chan tea.Msg, 64),
	}
	m.reconciler = client.NewReconciler(player, session.Playback(roomID))

	session.On(domain.EventRoomMessage, func(evt domain.Event) {
		var p domain.RoomMessagePayload
		if err := json.Unmarshal(evt.Payload, &p); err != nil {
			return
		}
		m.events <- chatMsg{username: p.Username, message: p.Message}
	})

	for _, t := range []domain.EventType{domain.EventVideoPlay, domain.EventVideoPause, domain.EventVideoSeek} {
		eventType := t
		session.On(eventType, func(evt domain.Event) {
			var p domain.VideoSyncPayload
			if err := json.Unmarshal(evt.Payload, &p); err != nil {
				return
			}
			m.events <- playbackMsg{kind: eventType, time: p.CurrentTime}
		})
	}

	go func() {
		<-session.Done()
		m.events <- disconnectedMsg{}
	}()

	return m
}

// Close releases the model's session reference
func (m *Model) Close() {
	m.session.Release()
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent(), tick())
}

// waitForEvent pulls one bridged session event into the tea loop
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.toggleFocus()
			return m, nil
		}

		if m.focus == focusPlayer {
			m.handlePlayerKey(msg)
			return m, nil
		}

		if msg.String() == "enter" {
			m.submitChat()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case chatMsg:
		m.appendLine(renderChatLine(msg.username, msg.message))
		cmds = append(cmds, m.waitForEvent())

	case playbackMsg:
		m.applyRemote(msg)
		cmds = append(cmds, m.waitForEvent())

	case disconnectedMsg:
		m.gone = true
		m.appendLine(ErrorStyle.Render("Connection to the relay lost"))

	case tickMsg:
		cmds = append(cmds, tick())
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) toggleFocus() {
	if m.focus == focusChat {
		m.focus = focusPlayer
		m.input.Blur()
	} else {
		m.focus = focusChat
		m.input.Focus()
	}
}

func (m *Model) handlePlayerKey(msg tea.KeyMsg) {
	if m.gone {
		return
	}

	switch msg.String() {
	case " ":
		if m.player.Playing() {
			m.err = m.reconciler.LocalPause()
		} else {
			m.err = m.reconciler.LocalPlay()
		}
	case "left":
		m.err = m.reconciler.LocalSkip(-skipStep)
	case "right":
		m.err = m.reconciler.LocalSkip(skipStep)
	}
}

func (m *Model) submitChat() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.gone {
		return
	}

	// The relay echoes the message back to everyone, sender included,
	// so the local log is filled by the chatMsg handler
	m.err = m.session.SendChat(m.roomID, text)
	m.input.Reset()
}

func (m *Model) applyRemote(msg playbackMsg) {
	switch msg.kind {
	case domain.EventVideoPlay:
		m.reconciler.ApplyRemotePlay(msg.time)
		m.appendLine(AnnouncementStyle.Render(fmt.Sprintf("▶ playback started at %s", formatPosition(msg.time))))
	case domain.EventVideoPause:
		m.reconciler.ApplyRemotePause(msg.time)
		m.appendLine(AnnouncementStyle.Render(fmt.Sprintf("⏸ playback paused at %s", formatPosition(msg.time))))
	case domain.EventVideoSeek:
		m.reconciler.ApplyRemoteSeek(msg.time)
		m.appendLine(AnnouncementStyle.Render(fmt.Sprintf("⏩ jumped to %s", formatPosition(msg.time))))
	}
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if m.ready {
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		m.viewport.GotoBottom()
	}
}

func (m *Model) layout() {
	// Title, status, input, and help each take one line
	vpHeight := m.height - 6
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(m.width-4, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width - 4
		m.viewport.Height = vpHeight
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()

	m.input.Width = m.width - 4
}

func (m *Model) View() string {
	if !m.ready {
		return "Connecting..."
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("watchparty") + "  " + AnnouncementStyle.Render("room "+m.roomID))
	b.WriteString("\n")
	b.WriteString(LogStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.viewHelp())

	return b.String()
}

func (m *Model) viewStatus() string {
	var state string
	if m.player.Playing() {
		state = PlayingStyle.Render("playing")
	} else {
		state = PausedStyle.Render("paused")
	}

	status := fmt.Sprintf("%s  %s  %s", m.username, state, formatPosition(m.player.Position()))
	if m.err != nil {
		status += "  " + ErrorStyle.Render(m.err.Error())
	}
	return StatusStyle.Render(status)
}

func (m *Model) viewHelp() string {
	if m.focus == focusPlayer {
		return HelpStyle.Render("space play/pause • ←/→ skip 10s • tab chat • esc quit")
	}
	return HelpStyle.Render("enter send • tab player controls • esc quit")
}

func renderChatLine(username, message string) string {
	if message == domain.JoinAnnouncement || message == domain.LeaveAnnouncement {
		return AnnouncementStyle.Render(fmt.Sprintf("%s %s", username, message))
	}
	return fmt.Sprintf("%s %s", UsernameStyle.Render(username+":"), message)
}

func formatPosition(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	d := time.Duration(seconds * float64(time.Second))
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
