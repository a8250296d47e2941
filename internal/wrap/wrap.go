// Package wrap computes visually wrapped display lines for a logical text
// buffer and maps between logical grapheme offsets and (row, column)
// display positions.
//
// Wrapping is a greedy fill: clusters accumulate into the current display
// line until the next cluster would exceed the viewport width, at which
// point a new display line starts. A wide cluster is never split across
// two display lines; when it would cross the boundary it moves wholly to
// the next line, leaving the prior line short. Wrapping is recomputed in
// full on every content or width change, which is fine for chat-sized
// buffers.
package wrap

import (
	"github.com/hankchat/hanktui/internal/grapheme"
)

// Line is one visually wrapped row of the buffer. Start and End are
// grapheme indices into the full buffer; End is exclusive and never covers
// the newline that terminated a hard line.
type Line struct {
	Start int
	End   int
	Width int
	// Hard marks a line terminated by an explicit newline or end of text,
	// as opposed to a soft wrap at the viewport edge.
	Hard bool
}

// Position is a cursor location in display coordinates. Col is measured in
// display columns, not grapheme indices.
type Position struct {
	Row int
	Col int
}

func isNewline(cluster string) bool {
	return cluster == "\n" || cluster == "\r\n"
}

// Lines wraps content at the given viewport width. Width values below 1
// are treated as 1. The result always contains at least one line, and each
// empty logical line produces exactly one empty display line so blank
// lines stay addressable.
func Lines(content string, width int) []Line {
	if width < 1 {
		width = 1
	}

	var lines []Line
	lineStart := 0
	lineWidth := 0
	i := 0

	it := grapheme.NewIterator(content)
	for it.Next() {
		cluster := it.Cluster()
		if isNewline(cluster) {
			lines = append(lines, Line{Start: lineStart, End: i, Width: lineWidth, Hard: true})
			lineStart = i + 1
			lineWidth = 0
			i++
			continue
		}
		cw := grapheme.ClusterWidth(cluster)
		if lineWidth+cw > width && lineWidth > 0 {
			lines = append(lines, Line{Start: lineStart, End: i, Width: lineWidth})
			lineStart = i
			lineWidth = 0
		}
		lineWidth += cw
		i++
	}

	lines = append(lines, Line{Start: lineStart, End: i, Width: lineWidth, Hard: true})
	return lines
}

// Text returns the buffer slice covered by a display line.
func Text(content string, l Line) string {
	return grapheme.Slice(content, l.Start, l.End)
}

// Cursor maps a logical grapheme offset to its display position within
// lines. An offset equal to a line's End maps to that line's last column
// plus one, so a cursor can park after the final character of a wrapped
// row. The mapping is a pure function of (content, lines, offset).
func Cursor(content string, lines []Line, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	for row, l := range lines {
		if offset <= l.End {
			col := grapheme.StringWidth(grapheme.Slice(content, l.Start, offset))
			return Position{Row: row, Col: col}
		}
	}
	last := len(lines) - 1
	return Position{Row: last, Col: lines[last].Width}
}

// OffsetAt maps a display position back to the nearest valid grapheme
// offset. Rows are clamped to the line range; a column past the end of a
// shorter line clamps to that line's end. A column landing inside a wide
// cluster resolves to the cluster's start.
func OffsetAt(content string, lines []Line, row, col int) int {
	if row < 0 {
		row = 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
	}
	l := lines[row]

	width := 0
	idx := l.Start
	it := grapheme.NewIterator(grapheme.Slice(content, l.Start, l.End))
	for it.Next() {
		cw := grapheme.ClusterWidth(it.Cluster())
		// width+cw > col means col falls inside this cluster; stop at its
		// start rather than landing mid-cluster.
		if width >= col || width+cw > col {
			return idx
		}
		width += cw
		idx++
	}
	return l.End
}
