// Package chatview renders the conversation transcript as a scrollable,
// bottom-anchored pane. Message blocks are wrapped with the same
// display-width rules as the input editor and cached per message so only
// new or changed entries are re-rendered.
package chatview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/muesli/reflow/wordwrap"

	"github.com/hankchat/hanktui/internal/cachemanager"
	"github.com/hankchat/hanktui/internal/transcript"
	"github.com/hankchat/hanktui/internal/ui/panes"
	"github.com/hankchat/hanktui/internal/ui/styles"
	"github.com/hankchat/hanktui/internal/wrap"
)

// contentIndent prefixes wrapped message body lines under the header.
const contentIndent = "  "

// Config controls transcript presentation.
type Config struct {
	ShowTimestamps bool
	// TimeFormat is a Go time layout for the header timestamp.
	TimeFormat string
}

type renderInput struct {
	msg   transcript.Message
	width int
}

// Model is the transcript pane. Scroll state lives in the embedded
// viewport; the pane is pinned to the newest message until the user
// scrolls up, and re-pins the moment they return to the bottom.
type Model struct {
	Viewport viewport.Model

	cfg     Config
	store   *cachemanager.InMemoryCacheManager[string, string]
	cache   *cachemanager.ReadThroughCache[string, string, renderInput]
	focused bool
	hasNew  bool
}

// New creates a transcript pane.
func New(cfg Config) *Model {
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = "15:04:05"
	}
	m := &Model{
		Viewport: viewport.New(0, 0),
		cfg:      cfg,
	}
	m.store = cachemanager.NewInMemoryCacheManager[string, string](
		"chat-render", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	m.cache = cachemanager.NewReadThroughCache[string, string, renderInput](m.store,
		func(_ context.Context, in renderInput) (string, error) {
			return renderMessage(in.msg, in.width, cfg), nil
		}, false)
	return m
}

// SetFocused toggles keyboard focus, which changes the border color.
func (m *Model) SetFocused(focused bool) { m.focused = focused }

// Focused reports whether the pane has keyboard focus.
func (m *Model) Focused() bool { return m.focused }

// AtBottom reports whether the view is pinned to the newest message.
func (m *Model) AtBottom() bool { return m.Viewport.AtBottom() }

// MarkNewContent records that messages arrived while scrolled up, which
// shows the ↓New indicator until the user returns to the bottom.
func (m *Model) MarkNewContent() {
	if !m.Viewport.AtBottom() {
		m.hasNew = true
	}
}

// ScrollUp moves the view n lines toward older messages.
func (m *Model) ScrollUp(n int) { m.Viewport.SetYOffset(m.Viewport.YOffset - n) }

// ScrollDown moves the view n lines toward newer messages.
func (m *Model) ScrollDown(n int) {
	m.Viewport.SetYOffset(m.Viewport.YOffset + n)
	m.clearNewIfAtBottom()
}

// PageUp scrolls one viewport height toward older messages.
func (m *Model) PageUp() { m.Viewport.PageUp() }

// PageDown scrolls one viewport height toward newer messages.
func (m *Model) PageDown() {
	m.Viewport.PageDown()
	m.clearNewIfAtBottom()
}

// GotoTop jumps to the oldest message.
func (m *Model) GotoTop() { m.Viewport.GotoTop() }

// GotoBottom jumps to the newest message and re-enables follow mode.
func (m *Model) GotoBottom() {
	m.Viewport.GotoBottom()
	m.hasNew = false
}

func (m *Model) clearNewIfAtBottom() {
	if m.Viewport.AtBottom() {
		m.hasNew = false
	}
}

// InvalidateCache drops all cached message blocks. Called when the
// transcript is cleared so stale entries cannot resurface.
func (m *Model) InvalidateCache() {
	_ = m.store.Flush(context.Background())
}

// View renders the bordered transcript pane at the given outer size.
// bottomLeft is optional border text (e.g. pending-send count).
func (m *Model) View(msgs []transcript.Message, width, height int, bottomLeft string) string {
	return panes.ScrollablePane(width, height, panes.ScrollableConfig{
		Viewport:            &m.Viewport,
		HasNewContent:       m.hasNew,
		LeftTitle:           "Chat",
		BottomLeft:          bottomLeft,
		ShowScrollIndicator: true,
		TitleColor:          styles.TextPrimaryColor,
		BorderColor:         styles.BorderDefaultColor,
		FocusedBorderColor:  styles.BorderHighlightFocusColor,
		Focused:             m.focused,
	}, func(wrapWidth int) string {
		return m.renderContent(msgs, wrapWidth)
	})
}

// renderContent joins per-message blocks with blank separator lines.
func (m *Model) renderContent(msgs []transcript.Message, width int) string {
	if len(msgs) == 0 {
		return styles.SystemMessageStyle.Render("No messages yet. Type below and press enter to send.")
	}

	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		key := fmt.Sprintf("%s|%d|%d", msg.ID, width, msg.State)
		block, err := m.cache.Get(context.Background(), key, renderInput{msg: msg, width: width}, cachemanager.DefaultExpiration)
		if err != nil {
			block = renderMessage(msg, width, m.cfg)
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n")
}

// renderMessage produces one message block: a header line with timestamp,
// role label, and send-state marker, followed by indented wrapped body
// lines.
func renderMessage(msg transcript.Message, width int, cfg Config) string {
	var b strings.Builder

	if cfg.ShowTimestamps && !msg.LocalTime.IsZero() {
		b.WriteString(styles.TimestampStyle.Render("["+msg.LocalTime.Format(cfg.TimeFormat)+"]") + " ")
	}
	b.WriteString(roleLabel(msg.Role))

	switch msg.State {
	case transcript.StatePending:
		b.WriteString(" " + styles.PendingMarkerStyle.Render("… sending"))
	case transcript.StateFailed:
		b.WriteString(" " + styles.FailedMarkerStyle.Render("✗ failed"))
	}
	b.WriteString("\n")

	bodyWidth := max(width-len(contentIndent), 1)
	for i, line := range bodyLines(msg.Text, bodyWidth) {
		if i > 0 {
			b.WriteString("\n")
		}
		if msg.Role == transcript.RoleSystem {
			line = styles.SystemMessageStyle.Render(line)
		}
		b.WriteString(contentIndent + line)
	}

	return b.String()
}

// bodyLines wraps message text at word boundaries, then hard-breaks any
// word still wider than the pane so a pasted URL cannot push past the
// border.
func bodyLines(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(wordwrap.String(text, width), "\n") {
		for _, l := range wrap.Lines(para, width) {
			out = append(out, wrap.Text(para, l))
		}
	}
	return out
}

func roleLabel(role transcript.Role) string {
	switch role {
	case transcript.RoleUser:
		return styles.UserLabelStyle.Render("You:")
	case transcript.RoleAssistant:
		return styles.AssistantLabelStyle.Render("Hank:")
	default:
		return styles.SystemLabelStyle.Render("System:")
	}
}

// FormatHeaderTime is a helper for status displays that show the last
// sync time.
func FormatHeaderTime(t time.Time, layout string) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format(layout)
}
