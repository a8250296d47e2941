// Package editor owns the multi-line input buffer and its logical cursor.
//
// The cursor is a grapheme index in [0, Count(content)], never a byte
// offset, so no edit operation can split a user-perceived character.
// Vertical movement is expressed in display terms and delegated to the
// wrap package for the offset mapping.
package editor

import (
	"strings"

	"github.com/hankchat/hanktui/internal/grapheme"
	"github.com/hankchat/hanktui/internal/wrap"
)

// Buffer is the editable multi-line input buffer.
type Buffer struct {
	content string
	cursor  int // grapheme index, 0..Count(content)
}

// New returns an empty buffer with the cursor at 0.
func New() *Buffer {
	return &Buffer{}
}

// Content returns the full logical text, including embedded newlines.
func (b *Buffer) Content() string { return b.content }

// Cursor returns the logical cursor offset as a grapheme index.
func (b *Buffer) Cursor() int { return b.cursor }

// Len returns the buffer length in graphemes.
func (b *Buffer) Len() int { return grapheme.Count(b.content) }

// Empty reports whether the buffer contains only whitespace.
func (b *Buffer) Empty() bool { return strings.TrimSpace(b.content) == "" }

// SetContent replaces the buffer text and parks the cursor at the end.
// Used when history navigation swaps in an entry.
func (b *Buffer) SetContent(s string) {
	b.content = s
	b.cursor = grapheme.Count(s)
}

// Insert splices text at the cursor and advances the cursor past it.
// Pasted clipboard content goes through here verbatim, embedded newlines
// included.
func (b *Buffer) Insert(text string) {
	if text == "" {
		return
	}
	b.content = grapheme.Insert(b.content, b.cursor, text)
	b.cursor += grapheme.Count(text)
}

// InsertNewline inserts a line break at the cursor.
func (b *Buffer) InsertNewline() {
	b.Insert("\n")
}

// DeleteBackward removes the grapheme before the cursor. No-op at the
// start of the buffer.
func (b *Buffer) DeleteBackward() {
	if b.cursor == 0 {
		return
	}
	b.content = grapheme.DeleteRange(b.content, b.cursor-1, b.cursor)
	b.cursor--
}

// DeleteForward removes the grapheme after the cursor. No-op at the end
// of the buffer.
func (b *Buffer) DeleteForward() {
	if b.cursor >= b.Len() {
		return
	}
	b.content = grapheme.DeleteRange(b.content, b.cursor, b.cursor+1)
}

// MoveLeft moves the cursor one grapheme left, clamped at 0.
func (b *Buffer) MoveLeft() {
	if b.cursor > 0 {
		b.cursor--
	}
}

// MoveRight moves the cursor one grapheme right, clamped at the end.
func (b *Buffer) MoveRight() {
	if b.cursor < b.Len() {
		b.cursor++
	}
}

// MoveUp moves the cursor to the display line above its current row at
// the nearest valid column, given the viewport width. No-op on the first
// display line.
func (b *Buffer) MoveUp(width int) {
	lines := wrap.Lines(b.content, width)
	pos := wrap.Cursor(b.content, lines, b.cursor)
	if pos.Row == 0 {
		return
	}
	b.cursor = wrap.OffsetAt(b.content, lines, pos.Row-1, pos.Col)
}

// MoveDown moves the cursor to the display line below, clamping to the
// target line's end when it is shorter. No-op on the last display line.
func (b *Buffer) MoveDown(width int) {
	lines := wrap.Lines(b.content, width)
	pos := wrap.Cursor(b.content, lines, b.cursor)
	if pos.Row >= len(lines)-1 {
		return
	}
	b.cursor = wrap.OffsetAt(b.content, lines, pos.Row+1, pos.Col)
}

// MoveLineStart moves the cursor to the start of its current display line.
func (b *Buffer) MoveLineStart(width int) {
	lines := wrap.Lines(b.content, width)
	pos := wrap.Cursor(b.content, lines, b.cursor)
	b.cursor = lines[pos.Row].Start
}

// MoveLineEnd moves the cursor past the last character of its current
// display line.
func (b *Buffer) MoveLineEnd(width int) {
	lines := wrap.Lines(b.content, width)
	pos := wrap.Cursor(b.content, lines, b.cursor)
	b.cursor = lines[pos.Row].End
}

// Clear empties the buffer and resets the cursor.
func (b *Buffer) Clear() {
	b.content = ""
	b.cursor = 0
}

// Lines returns the buffer's display lines at the given width.
func (b *Buffer) Lines(width int) []wrap.Line {
	return wrap.Lines(b.content, width)
}

// Position returns the cursor's display position at the given width.
func (b *Buffer) Position(width int) wrap.Position {
	lines := wrap.Lines(b.content, width)
	return wrap.Cursor(b.content, lines, b.cursor)
}
