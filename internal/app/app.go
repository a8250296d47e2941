// Package app contains the root application model: the input editor, the
// transcript pane, the poll loop, and the send pipeline.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/hankchat/hanktui/internal/config"
	"github.com/hankchat/hanktui/internal/editor"
	"github.com/hankchat/hanktui/internal/keys"
	"github.com/hankchat/hanktui/internal/log"
	"github.com/hankchat/hanktui/internal/remote"
	"github.com/hankchat/hanktui/internal/transcript"
	"github.com/hankchat/hanktui/internal/ui/chatview"
	"github.com/hankchat/hanktui/internal/ui/inputview"
	"github.com/hankchat/hanktui/internal/ui/styles"
)

// focusArea identifies which pane receives keystrokes.
type focusArea int

const (
	focusInput focusArea = iota
	focusChat
)

// connState tracks server reachability across poll cycles. The unknown
// state exists so startup failures do not emit a "lost connection" notice
// for a connection that never existed.
type connState int

const (
	connUnknown connState = iota
	connUp
	connDown
)

// Model is the root application state.
type Model struct {
	cfg    config.Config
	client *remote.Client
	store  *transcript.Store

	// Panes
	chat    *chatview.Model
	buffer  *editor.Buffer
	history *editor.History

	inputKeys keys.InputKeyMap
	chatKeys  keys.ChatKeyMap
	helpView  help.Model
	spin      spinner.Model

	focus    focusArea
	showHelp bool

	width  int
	height int

	conn          connState
	fetchInFlight bool
	pendingSends  int
	lastSync      time.Time

	// Debug log tail, shown under the status bar when --debug is set.
	debugMode   bool
	logListener *log.LogListener
	logCancel   context.CancelFunc
	lastLog     string
}

// New creates the application model. Saved history, if any, must already
// be loaded into store.
func New(cfg config.Config, client *remote.Client, store *transcript.Store) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.SpinnerColor)

	hv := help.New()
	hv.ShowAll = true

	return Model{
		cfg:    cfg,
		client: client,
		store:  store,
		chat: chatview.New(chatview.Config{
			ShowTimestamps: cfg.UI.ShowTimestamps,
			TimeFormat:     cfg.UI.TimeFormat,
		}),
		buffer:    editor.New(),
		history:   editor.NewHistory(),
		inputKeys: keys.DefaultInputKeyMap(),
		chatKeys:  keys.DefaultChatKeyMap(),
		helpView:  hv,
		spin:      sp,
	}
}

// WithDebug subscribes the model to the log broker and enables the
// one-line log tail. Must be called after log initialization.
func (m Model) WithDebug() Model {
	ctx, cancel := context.WithCancel(context.Background())
	m.debugMode = true
	m.logListener = log.NewListener(ctx)
	m.logCancel = cancel
	return m
}

// Store exposes the transcript for persistence after the program exits.
func (m Model) Store() *transcript.Store { return m.store }

// Close cancels the log subscription, if any.
func (m Model) Close() {
	if m.logCancel != nil {
		m.logCancel()
	}
}

// Messages

type tickMsg time.Time

type fetchResultMsg struct {
	msgs []remote.Message
	err  error
}

type sendResultMsg struct {
	id    uuid.UUID
	reply remote.Message
	err   error
}

type clearResultMsg struct {
	err error
}

type pasteMsg struct {
	text string
	err  error
}

// Commands

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.Sync.PollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchCmd(since int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		msgs, err := client.Fetch(context.Background(), since)
		return fetchResultMsg{msgs: msgs, err: err}
	}
}

func (m Model) sendCmd(id uuid.UUID, text string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		reply, err := client.Send(context.Background(), text)
		return sendResultMsg{id: id, reply: reply, err: err}
	}
}

func (m Model) clearCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return clearResultMsg{err: client.Clear(context.Background())}
	}
}

func pasteCmd() tea.Msg {
	text, err := clipboard.ReadAll()
	return pasteMsg{text: text, err: err}
}

// Init implements tea.Model. It fires an immediate poll so the transcript
// fills without waiting for the first tick.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.fetchCmd(m.store.HighWater()),
		m.tickCmd(),
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpView.Width = msg.Width
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{m.tickCmd()}
		// A poll still in flight means the server is slow; piling on a
		// second request would only make that worse.
		if !m.fetchInFlight {
			m.fetchInFlight = true
			cmds = append(cmds, m.fetchCmd(m.store.HighWater()))
		}
		return m, tea.Batch(cmds...)

	case fetchResultMsg:
		return m.handleFetchResult(msg)

	case sendResultMsg:
		return m.handleSendResult(msg)

	case clearResultMsg:
		if msg.err != nil {
			log.Warn(log.CatSync, "Clear failed", "error", msg.err)
			m.store.AppendSystem("Could not clear history: " + msg.err.Error())
			return m, nil
		}
		m.store.Clear()
		m.chat.InvalidateCache()
		m.chat.GotoBottom()
		log.Info(log.CatSync, "History cleared")
		return m, nil

	case pasteMsg:
		if msg.err != nil {
			log.Warn(log.CatInput, "Clipboard read failed", "error", msg.err)
			return m, nil
		}
		m.buffer.Insert(strings.ReplaceAll(msg.text, "\r\n", "\n"))
		m.history.Exit()
		return m, nil

	case log.LogEvent:
		if m.logListener == nil {
			return m, nil
		}
		m.lastLog = strings.TrimSpace(msg.Payload)
		return m, m.logListener.Listen()

	case spinner.TickMsg:
		if m.pendingSends == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleFetchResult(msg fetchResultMsg) (tea.Model, tea.Cmd) {
	m.fetchInFlight = false

	if msg.err != nil {
		log.Warn(log.CatSync, "Poll failed", "error", msg.err, "highWater", m.store.HighWater())
		if m.conn == connUp {
			m.store.AppendSystem("Lost connection to " + m.client.BaseURL())
		}
		m.conn = connDown
		return m, nil
	}

	if m.conn == connDown {
		m.store.AppendSystem("Reconnected to " + m.client.BaseURL())
	}
	m.conn = connUp
	m.lastSync = time.Now()

	if len(msg.msgs) == 0 {
		return m, nil
	}

	batch := make([]transcript.Incoming, 0, len(msg.msgs))
	for _, rm := range msg.msgs {
		batch = append(batch, transcript.Incoming{
			Role:      transcript.Role(rm.Role),
			Text:      rm.Text,
			Timestamp: rm.Timestamp,
		})
	}

	wasAtBottom := m.chat.AtBottom()
	added := m.store.Merge(batch)
	if added > 0 {
		log.Debug(log.CatSync, "Merged messages", "count", added, "highWater", m.store.HighWater())
		if !wasAtBottom {
			m.chat.MarkNewContent()
		}
	}
	return m, nil
}

func (m Model) handleSendResult(msg sendResultMsg) (tea.Model, tea.Cmd) {
	if m.pendingSends > 0 {
		m.pendingSends--
	}

	if msg.err != nil {
		log.ErrorErr(log.CatNet, "Send failed", msg.err)
		m.store.MarkFailed(msg.id)
		m.store.AppendSystem("Send failed: " + msg.err.Error())
		return m, nil
	}

	// The server accepted the message, so confirm it here. Waiting for the
	// poll echo would deadlock: merging the reply below advances the
	// high-water-mark past the echo's timestamp, and a since-filtering
	// server never returns it again.
	m.store.Confirm(msg.id)
	m.store.Merge([]transcript.Incoming{{
		Role:      transcript.Role(msg.reply.Role),
		Text:      msg.reply.Text,
		Timestamp: msg.reply.Timestamp,
	}})
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay swallows everything except the toggle and quit.
	if m.showHelp {
		switch {
		case key.Matches(msg, m.inputKeys.Quit), key.Matches(msg, m.chatKeys.Quit):
			return m, tea.Quit
		default:
			m.showHelp = false
			return m, nil
		}
	}

	if m.focus == focusChat {
		return m.handleChatKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editWidth := m.inputWrapWidth()

	switch {
	case key.Matches(msg, m.inputKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.inputKeys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.inputKeys.FocusChat):
		m.focus = focusChat
		m.chat.SetFocused(true)
		return m, nil

	case key.Matches(msg, m.inputKeys.Send):
		return m.sendCurrent()

	case key.Matches(msg, m.inputKeys.Newline):
		m.buffer.InsertNewline()
		m.history.Exit()
		return m, nil

	case key.Matches(msg, m.inputKeys.Up):
		m.buffer.MoveUp(editWidth)
		return m, nil

	case key.Matches(msg, m.inputKeys.Down):
		m.buffer.MoveDown(editWidth)
		return m, nil

	case key.Matches(msg, m.inputKeys.Left):
		m.buffer.MoveLeft()
		return m, nil

	case key.Matches(msg, m.inputKeys.Right):
		m.buffer.MoveRight()
		return m, nil

	case key.Matches(msg, m.inputKeys.LineStart):
		m.buffer.MoveLineStart(editWidth)
		return m, nil

	case key.Matches(msg, m.inputKeys.LineEnd):
		m.buffer.MoveLineEnd(editWidth)
		return m, nil

	case key.Matches(msg, m.inputKeys.Backspace):
		m.buffer.DeleteBackward()
		m.history.Exit()
		return m, nil

	case key.Matches(msg, m.inputKeys.Delete):
		m.buffer.DeleteForward()
		m.history.Exit()
		return m, nil

	case key.Matches(msg, m.inputKeys.Paste):
		return m, pasteCmd

	case key.Matches(msg, m.inputKeys.HistoryPrev):
		if text, ok := m.history.Prev(m.buffer.Content()); ok {
			m.buffer.SetContent(text)
		}
		return m, nil

	case key.Matches(msg, m.inputKeys.HistoryNext):
		if text, ok := m.history.Next(); ok {
			m.buffer.SetContent(text)
		}
		return m, nil

	case key.Matches(msg, m.inputKeys.ScrollUp):
		m.chat.PageUp()
		return m, nil

	case key.Matches(msg, m.inputKeys.ScrollDown):
		m.chat.PageDown()
		return m, nil

	case key.Matches(msg, m.inputKeys.Clear):
		return m, m.clearCmd()
	}

	// Anything else that carries printable runes is text input.
	switch msg.Type {
	case tea.KeyRunes:
		m.buffer.Insert(string(msg.Runes))
		m.history.Exit()
	case tea.KeySpace:
		m.buffer.Insert(" ")
		m.history.Exit()
	}
	return m, nil
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.chatKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.chatKeys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.chatKeys.FocusInput), key.Matches(msg, m.chatKeys.Escape):
		m.focus = focusInput
		m.chat.SetFocused(false)
		return m, nil

	case key.Matches(msg, m.chatKeys.Up):
		m.chat.ScrollUp(1)
		return m, nil

	case key.Matches(msg, m.chatKeys.Down):
		m.chat.ScrollDown(1)
		return m, nil

	case key.Matches(msg, m.chatKeys.PageUp):
		m.chat.PageUp()
		return m, nil

	case key.Matches(msg, m.chatKeys.PageDown):
		m.chat.PageDown()
		return m, nil

	case key.Matches(msg, m.chatKeys.Top):
		m.chat.GotoTop()
		return m, nil

	case key.Matches(msg, m.chatKeys.Bottom):
		m.chat.GotoBottom()
		return m, nil

	case key.Matches(msg, m.chatKeys.Clear):
		return m, m.clearCmd()
	}
	return m, nil
}

// sendCurrent submits the buffer: the message shows up immediately as
// pending, the buffer resets, and the transcript snaps to the bottom.
func (m Model) sendCurrent() (tea.Model, tea.Cmd) {
	if m.buffer.Empty() {
		return m, nil
	}

	text := m.buffer.Content()
	id := m.store.AppendLocal(text)
	m.history.Record(text)
	m.history.Exit()
	m.buffer.Clear()
	m.pendingSends++
	m.chat.GotoBottom()

	log.Info(log.CatNet, "Sending message", "chars", len(text))
	return m, tea.Batch(m.sendCmd(id, text), m.spin.Tick)
}

func (m Model) inputWrapWidth() int {
	return max(m.width-2, 1)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showHelp {
		return m.renderHelp()
	}

	statusHeight := 0
	if m.cfg.UI.ShowStatusBar {
		statusHeight = 1
	}
	tailHeight := 0
	if m.debugMode && m.lastLog != "" {
		tailHeight = 1
	}
	inputHeight := inputview.PaneHeight(m.buffer, m.width)
	chatHeight := max(m.height-inputHeight-statusHeight-tailHeight, 3)

	sections := []string{
		m.chat.View(m.store.Messages(), m.width, chatHeight, m.chatBottomLeft()),
		inputview.View(m.buffer, m.width, inputHeight, m.focus == focusInput, m.historyNote()),
	}
	if m.cfg.UI.ShowStatusBar {
		sections = append(sections, m.renderStatusBar())
	}
	if tailHeight > 0 {
		sections = append(sections, styles.HelpDescStyle.Render(styles.TruncateString(m.lastLog, m.width)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// chatBottomLeft labels the chat border while sends are in flight.
func (m Model) chatBottomLeft() string {
	if m.pendingSends == 0 {
		return ""
	}
	return fmt.Sprintf("%s sending %d", m.spin.View(), m.pendingSends)
}

func (m Model) historyNote() string {
	if !m.history.Navigating() {
		return ""
	}
	return "history"
}

func (m Model) renderStatusBar() string {
	var conn string
	switch m.conn {
	case connUp:
		conn = styles.ConnectedStyle.Render("● " + m.client.BaseURL())
	case connDown:
		conn = styles.DisconnectedStyle.Render("○ " + m.client.BaseURL() + " (offline)")
	default:
		conn = styles.DisconnectedStyle.Render("○ connecting to " + m.client.BaseURL())
	}

	sync := "sync: " + chatview.FormatHeaderTime(m.lastSync, m.cfg.UI.TimeFormat)
	count := fmt.Sprintf("%d messages", m.store.Len())
	hint := styles.HelpDescStyle.Render("f1 help")

	left := conn + styles.StatusBarStyle.Render("  "+sync+"  "+count)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(hint), 1)
	return left + strings.Repeat(" ", gap) + hint
}

func (m Model) renderHelp() string {
	var view string
	if m.focus == focusChat {
		view = m.helpView.View(m.chatKeys)
	} else {
		view = m.helpView.View(m.inputKeys)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
}
