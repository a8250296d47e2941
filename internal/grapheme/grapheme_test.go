package grapheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clusterCases = []struct {
	name     string
	input    string
	count    int
	bytes    int
	width    int
}{
	{"ascii", "hello", 5, 5, 5},
	{"empty", "", 0, 0, 0},
	{"combining accent", "h\u00e9llo", 5, 6, 5},
	{"stacked combining", "\u0229\u0301", 1, 4, 1},
	{"emoji", "😀", 1, 4, 2},
	{"emoji in text", "h😀llo", 5, 8, 6},
	{"zwj family", "👨‍👩‍👧‍👦", 1, 25, 2},
	{"skin tone", "👋🏽", 1, 8, 2},
	{"cjk", "日本語", 3, 9, 6},
}

func TestCountAndWidth(t *testing.T) {
	for _, tc := range clusterCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.count, Count(tc.input), "grapheme count")
			assert.Equal(t, tc.bytes, len(tc.input), "byte length")
			assert.Equal(t, tc.width, StringWidth(tc.input), "display width")
		})
	}
}

func TestClusterWidth(t *testing.T) {
	assert.Equal(t, 0, ClusterWidth(""))
	assert.Equal(t, 0, ClusterWidth("\n"))
	assert.Equal(t, 1, ClusterWidth("a"))
	assert.Equal(t, 2, ClusterWidth("😀"))
	assert.Equal(t, 2, ClusterWidth("日"))
	assert.Equal(t, 1, ClusterWidth("é"))
}

func TestToByteOffset(t *testing.T) {
	s := "a😀b"
	assert.Equal(t, 0, ToByteOffset(s, 0))
	assert.Equal(t, 1, ToByteOffset(s, 1))
	assert.Equal(t, 5, ToByteOffset(s, 2))
	assert.Equal(t, 6, ToByteOffset(s, 3))
	assert.Equal(t, 6, ToByteOffset(s, 99), "past end clamps to len")
	assert.Equal(t, 0, ToByteOffset(s, -1), "negative clamps to 0")
}

func TestSlice(t *testing.T) {
	s := "a😀b日"
	assert.Equal(t, "😀b", Slice(s, 1, 3))
	assert.Equal(t, "a", Slice(s, 0, 1))
	assert.Equal(t, s, Slice(s, 0, 4))
	assert.Equal(t, "", Slice(s, 3, 2), "inverted range")
	assert.Equal(t, "", Slice(s, 10, 12), "out of range")
}

func TestAt(t *testing.T) {
	s := "a😀b"
	assert.Equal(t, "a", At(s, 0))
	assert.Equal(t, "😀", At(s, 1))
	assert.Equal(t, "b", At(s, 2))
	assert.Equal(t, "", At(s, 3))
	assert.Equal(t, "", At(s, -1))
}

func TestInsertAndDelete(t *testing.T) {
	s := "a😀b"
	assert.Equal(t, "aX😀b", Insert(s, 1, "X"))
	assert.Equal(t, "a😀bX", Insert(s, 3, "X"))
	assert.Equal(t, "ab", DeleteRange(s, 1, 2), "deleting the emoji removes all its bytes")
	assert.Equal(t, "a😀b", DeleteRange(s, 2, 2), "empty range is a no-op")
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "a", TruncateToWidth("a😀b", 2), "emoji does not fit in remaining 1 cell")
	assert.Equal(t, "a😀", TruncateToWidth("a😀b", 3))
	assert.Equal(t, "", TruncateToWidth("abc", 0))
}

func TestIterator(t *testing.T) {
	s := "a😀b"
	it := NewIterator(s)

	require.True(t, it.Next())
	assert.Equal(t, "a", it.Cluster())
	assert.Equal(t, 0, it.Index())
	assert.Equal(t, 0, it.BytePos())

	require.True(t, it.Next())
	assert.Equal(t, "😀", it.Cluster())
	assert.Equal(t, 1, it.Index())
	assert.Equal(t, 1, it.BytePos())

	require.True(t, it.Next())
	assert.Equal(t, "b", it.Cluster())
	assert.Equal(t, 2, it.Index())
	assert.Equal(t, 5, it.BytePos())

	require.False(t, it.Next())
}
