// Package inputview renders the message editor as a bordered pane with a
// block cursor. The pane grows with the buffer up to a maximum number of
// rows and keeps the cursor row visible once content scrolls.
package inputview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hankchat/hanktui/internal/editor"
	"github.com/hankchat/hanktui/internal/grapheme"
	"github.com/hankchat/hanktui/internal/ui/panes"
	"github.com/hankchat/hanktui/internal/ui/styles"
	"github.com/hankchat/hanktui/internal/wrap"
)

// MaxVisibleRows caps how tall the input pane grows before it scrolls
// internally.
const MaxVisibleRows = 5

var cursorStyle = lipgloss.NewStyle().Reverse(true)

// ContentRows returns how many editor rows the pane should show for the
// current buffer, between 1 and MaxVisibleRows.
func ContentRows(buf *editor.Buffer, width int) int {
	n := len(buf.Lines(innerWidth(width)))
	if n < 1 {
		n = 1
	}
	if n > MaxVisibleRows {
		n = MaxVisibleRows
	}
	return n
}

// PaneHeight is ContentRows plus the two border rows.
func PaneHeight(buf *editor.Buffer, width int) int {
	return ContentRows(buf, width) + 2
}

func innerWidth(width int) int {
	return max(width-2, 1)
}

// View renders the editor inside its border. The cursor is drawn as a
// reversed cell only while the pane is focused. historyNote, when not
// empty, appears on the bottom border (e.g. "history 3/10").
func View(buf *editor.Buffer, width, height int, focused bool, historyNote string) string {
	iw := innerWidth(width)
	rows := max(height-2, 1)

	content := buf.Content()
	lines := buf.Lines(iw)
	pos := buf.Position(iw)

	// Window the wrapped rows so the cursor row stays visible.
	top := 0
	if pos.Row >= rows {
		top = pos.Row - rows + 1
	}
	if top > max(len(lines)-rows, 0) {
		top = max(len(lines)-rows, 0)
	}

	rendered := make([]string, 0, rows)
	for i := top; i < len(lines) && i < top+rows; i++ {
		text := wrap.Text(content, lines[i])
		if focused && i == pos.Row {
			text = renderCursorLine(text, pos.Col)
		}
		rendered = append(rendered, text)
	}
	return panes.BorderedPane(panes.BorderConfig{
		Content:            strings.Join(rendered, "\n"),
		Width:              width,
		Height:             height,
		TopLeft:            "Message",
		BottomRight:        historyNote,
		Focused:            focused,
		TitleColor:         styles.TextPrimaryColor,
		BorderColor:        styles.BorderDefaultColor,
		FocusedBorderColor: styles.BorderHighlightFocusColor,
	})
}

// renderCursorLine draws a reversed block over the cluster at display
// column col, or a reversed space when the cursor sits past the last
// cluster.
func renderCursorLine(text string, col int) string {
	var before, under, after strings.Builder
	w := 0
	found := false

	it := grapheme.NewIterator(text)
	for it.Next() {
		cw := grapheme.ClusterWidth(it.Cluster())
		switch {
		case found:
			after.WriteString(it.Cluster())
		case w == col:
			under.WriteString(it.Cluster())
			found = true
		default:
			before.WriteString(it.Cluster())
		}
		w += cw
	}

	if !found {
		return text + cursorStyle.Render(" ")
	}
	return before.String() + cursorStyle.Render(under.String()) + after.String()
}
