package chatview

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hankchat/hanktui/internal/transcript"
)

func confirmedAt(role transcript.Role, text string, at time.Time) transcript.Message {
	return transcript.Message{
		ID:        uuid.New(),
		Role:      role,
		Text:      text,
		Timestamp: at.Unix(),
		LocalTime: at,
		State:     transcript.StateConfirmed,
	}
}

func TestRenderMessage_UserHeader(t *testing.T) {
	msg := confirmedAt(transcript.RoleUser, "hello there", time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC))

	out := renderMessage(msg, 40, Config{ShowTimestamps: true, TimeFormat: "15:04:05"})

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[0], "[09:30:00]")
	assert.Contains(t, lines[0], "You:")
	assert.Equal(t, "  hello there", lines[1])
}

func TestRenderMessage_AssistantHeader(t *testing.T) {
	msg := confirmedAt(transcript.RoleAssistant, "hi", time.Now())

	out := renderMessage(msg, 40, Config{})

	assert.Contains(t, out, "Hank:")
}

func TestRenderMessage_TimestampsHidden(t *testing.T) {
	msg := confirmedAt(transcript.RoleUser, "hello", time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC))

	out := renderMessage(msg, 40, Config{ShowTimestamps: false})

	assert.NotContains(t, out, "09:30:00")
}

func TestRenderMessage_PendingMarker(t *testing.T) {
	msg := confirmedAt(transcript.RoleUser, "on its way", time.Now())
	msg.State = transcript.StatePending

	out := renderMessage(msg, 40, Config{})

	assert.Contains(t, out, "… sending")
}

func TestRenderMessage_FailedMarker(t *testing.T) {
	msg := confirmedAt(transcript.RoleUser, "lost", time.Now())
	msg.State = transcript.StateFailed

	out := renderMessage(msg, 40, Config{})

	assert.Contains(t, out, "✗ failed")
}

func TestRenderMessage_BodyWrapsAtWords(t *testing.T) {
	msg := confirmedAt(transcript.RoleAssistant, "aaaa bbbb cccc", time.Now())

	// body width is 6 after the two-space indent
	out := renderMessage(msg, 8, Config{})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "  aaaa", lines[1])
	assert.Equal(t, "  bbbb", lines[2])
	assert.Equal(t, "  cccc", lines[3])
}

func TestBodyLines_HardBreaksOverlongWord(t *testing.T) {
	lines := bodyLines("aaaaaaaaaa", 6)

	require.Equal(t, []string{"aaaaaa", "aaaa"}, lines)
}

func TestBodyLines_PreservesBlankLines(t *testing.T) {
	lines := bodyLines("a\n\nb", 10)

	require.Equal(t, []string{"a", "", "b"}, lines)
}

func TestRenderMessage_MultilineBody(t *testing.T) {
	msg := confirmedAt(transcript.RoleUser, "first\nsecond", time.Now())

	out := renderMessage(msg, 40, Config{})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  first", lines[1])
	assert.Equal(t, "  second", lines[2])
}

func TestRenderContent_Empty(t *testing.T) {
	m := New(Config{})

	out := m.renderContent(nil, 40)

	assert.Contains(t, out, "No messages yet")
}

func TestRenderContent_BlankLineBetweenMessages(t *testing.T) {
	m := New(Config{})
	msgs := []transcript.Message{
		confirmedAt(transcript.RoleUser, "one", time.Now()),
		confirmedAt(transcript.RoleAssistant, "two", time.Now()),
	}

	out := m.renderContent(msgs, 40)

	assert.Contains(t, out, "\n\n")
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")
}

func TestRenderContent_StateChangeRerenders(t *testing.T) {
	m := New(Config{})
	msg := confirmedAt(transcript.RoleUser, "retry me", time.Now())
	msg.State = transcript.StatePending

	first := m.renderContent([]transcript.Message{msg}, 40)
	assert.Contains(t, first, "… sending")

	// Same ID and width, different state. The cache key includes the
	// state, so the stale pending block must not be reused.
	msg.State = transcript.StateConfirmed
	second := m.renderContent([]transcript.Message{msg}, 40)
	assert.NotContains(t, second, "… sending")
}

func TestView_Dimensions(t *testing.T) {
	m := New(Config{})
	msgs := []transcript.Message{
		confirmedAt(transcript.RoleUser, "hello", time.Now()),
	}

	out := m.View(msgs, 60, 12, "")

	assert.Equal(t, 60, lipgloss.Width(out))
	assert.Equal(t, 12, lipgloss.Height(out))
}

func TestView_StartsAtBottom(t *testing.T) {
	m := New(Config{})
	var msgs []transcript.Message
	for range 30 {
		msgs = append(msgs, confirmedAt(transcript.RoleUser, "line", time.Now()))
	}

	m.View(msgs, 60, 10, "")

	assert.True(t, m.AtBottom())
}

func TestMarkNewContent_OnlyWhenScrolledUp(t *testing.T) {
	m := New(Config{})
	var msgs []transcript.Message
	for range 30 {
		msgs = append(msgs, confirmedAt(transcript.RoleUser, "line", time.Now()))
	}
	m.View(msgs, 60, 10, "")

	m.MarkNewContent()
	assert.False(t, m.hasNew, "pinned to bottom, no indicator")

	m.GotoTop()
	m.MarkNewContent()
	assert.True(t, m.hasNew)

	out := m.View(msgs, 60, 10, "")
	assert.Contains(t, out, "↓New")

	m.GotoBottom()
	assert.False(t, m.hasNew, "returning to bottom clears the flag")
}

func TestScrollDown_ClearsIndicatorAtBottom(t *testing.T) {
	m := New(Config{})
	var msgs []transcript.Message
	for range 30 {
		msgs = append(msgs, confirmedAt(transcript.RoleUser, "line", time.Now()))
	}
	m.View(msgs, 60, 10, "")
	m.GotoTop()
	m.MarkNewContent()

	m.ScrollDown(1000)

	assert.True(t, m.AtBottom())
	assert.False(t, m.hasNew)
}

func TestScroll_OffsetAlwaysClamped(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := New(Config{})
		count := rapid.IntRange(0, 60).Draw(rt, "messages")
		width := rapid.IntRange(10, 100).Draw(rt, "width")
		height := rapid.IntRange(4, 30).Draw(rt, "height")

		msgs := make([]transcript.Message, 0, count)
		for i := range count {
			msgs = append(msgs, confirmedAt(transcript.RoleUser,
				strings.Repeat("x", (i%17)+1), time.Unix(int64(i), 0)))
		}
		m.View(msgs, width, height, "")

		steps := rapid.IntRange(0, 20).Draw(rt, "steps")
		for range steps {
			switch rapid.IntRange(0, 5).Draw(rt, "op") {
			case 0:
				m.ScrollUp(rapid.IntRange(1, 50).Draw(rt, "up"))
			case 1:
				m.ScrollDown(rapid.IntRange(1, 50).Draw(rt, "down"))
			case 2:
				m.PageUp()
			case 3:
				m.PageDown()
			case 4:
				m.GotoTop()
			case 5:
				m.GotoBottom()
			}
			m.View(msgs, width, height, "")

			maxOffset := max(m.Viewport.TotalLineCount()-m.Viewport.Height, 0)
			if m.Viewport.YOffset < 0 || m.Viewport.YOffset > maxOffset {
				rt.Fatalf("offset %d out of [0, %d]", m.Viewport.YOffset, maxOffset)
			}
		}
	})
}

func TestFormatHeaderTime(t *testing.T) {
	assert.Equal(t, "never", FormatHeaderTime(time.Time{}, "15:04:05"))
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "09:30:00", FormatHeaderTime(at, "15:04:05"))
}
