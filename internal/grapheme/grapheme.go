// Package grapheme provides Unicode grapheme cluster helpers for
// width-aware text handling.
//
// Three units of measurement are in play throughout hanktui:
//
//  1. Bytes: the underlying storage unit of Go strings. A single grapheme
//     can span many bytes (a ZWJ emoji family is 25 bytes).
//
//  2. Graphemes: the user-perceived character. All cursor offsets in the
//     editor and wrap packages are grapheme indices, never byte offsets,
//     so a cursor can never land inside a cluster.
//
//  3. Display columns: the width in terminal cells a cluster occupies.
//     ASCII = 1, CJK and most emoji = 2, combining marks and control
//     characters = 0. Unknown codepoints fall back to width 1.
package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// ClusterWidth returns the display width of a single grapheme cluster in
// terminal cells. A newline cluster has width 0.
func ClusterWidth(cluster string) int {
	if cluster == "" || cluster == "\n" || cluster == "\r\n" {
		return 0
	}
	return runewidth.StringWidth(cluster)
}

// StringWidth returns the total display width of s in terminal cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// ToByteOffset converts a grapheme index into a byte offset.
// Indices past the end map to len(s); negative indices map to 0.
func ToByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	n := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		_, tail, _, newState := uniseg.StepString(rest, state)
		n++
		if n == idx {
			return len(s) - len(tail)
		}
		rest = tail
		state = newState
	}
	return len(s)
}

// Slice returns the substring covering grapheme indices [start, end).
// Out-of-range bounds are clamped; inverted ranges yield "".
func Slice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}
	startByte := ToByteOffset(s, start)
	if startByte >= len(s) {
		return ""
	}
	endByte := ToByteOffset(s, end)
	return s[startByte:endByte]
}

// At returns the grapheme cluster at the given index, or "" when the index
// is out of bounds.
func At(s string, idx int) string {
	if idx < 0 {
		return ""
	}
	it := NewIterator(s)
	for it.Next() {
		if it.Index() == idx {
			return it.Cluster()
		}
	}
	return ""
}

// Insert splices text into s at the given grapheme index.
func Insert(s string, idx int, text string) string {
	at := ToByteOffset(s, idx)
	return s[:at] + text + s[at:]
}

// DeleteRange removes grapheme clusters in [start, end) from s.
func DeleteRange(s string, start, end int) string {
	startByte := ToByteOffset(s, start)
	endByte := ToByteOffset(s, end)
	if endByte < startByte {
		endByte = startByte
	}
	return s[:startByte] + s[endByte:]
}

// TruncateToWidth truncates s to fit within maxWidth display columns
// without splitting a cluster.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	var b strings.Builder
	width := 0
	it := NewIterator(s)
	for it.Next() {
		w := ClusterWidth(it.Cluster())
		if width+w > maxWidth {
			break
		}
		b.WriteString(it.Cluster())
		width += w
	}
	return b.String()
}

// Iterator walks the grapheme clusters of a string in order.
//
//	it := grapheme.NewIterator(s)
//	for it.Next() {
//		_ = it.Cluster()
//	}
type Iterator struct {
	src     string
	rest    string
	state   int
	cluster string
	index   int
}

// NewIterator returns an iterator positioned before the first cluster.
func NewIterator(s string) *Iterator {
	return &Iterator{src: s, rest: s, state: -1, index: -1}
}

// Next advances to the next cluster, returning false at the end.
func (it *Iterator) Next() bool {
	if len(it.rest) == 0 {
		return false
	}
	cluster, rest, _, state := uniseg.StepString(it.rest, it.state)
	it.cluster = cluster
	it.rest = rest
	it.state = state
	it.index++
	return true
}

// Cluster returns the current grapheme cluster.
func (it *Iterator) Cluster() string { return it.cluster }

// Index returns the grapheme index of the current cluster, or -1 before
// the first call to Next.
func (it *Iterator) Index() int { return it.index }

// BytePos returns the byte offset of the first byte after the current
// cluster's start, i.e. where the current cluster begins in the source.
func (it *Iterator) BytePos() int {
	return len(it.src) - len(it.rest) - len(it.cluster)
}
