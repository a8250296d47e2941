package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_PrevClampsAtOldest(t *testing.T) {
	h := NewHistory()
	h.Record("a")
	h.Record("b")
	h.Record("c")

	text, ok := h.Prev("draft")
	require.True(t, ok)
	assert.Equal(t, "c", text)

	text, _ = h.Prev(text)
	assert.Equal(t, "b", text)
	text, _ = h.Prev(text)
	assert.Equal(t, "a", text)

	// Repeated prev stays at the oldest entry; no wraparound.
	for i := 0; i < 5; i++ {
		text, ok = h.Prev(text)
		require.True(t, ok)
		assert.Equal(t, "a", text)
	}
}

func TestHistory_PrevOnEmpty(t *testing.T) {
	h := NewHistory()
	_, ok := h.Prev("draft")
	assert.False(t, ok)
	assert.False(t, h.Navigating())
}

func TestHistory_NextRestoresDraft(t *testing.T) {
	h := NewHistory()
	h.Record("a")
	h.Record("b")

	_, _ = h.Prev("work in progress")
	_, _ = h.Prev("")
	assert.True(t, h.Navigating())

	text, ok := h.Next()
	require.True(t, ok)
	assert.Equal(t, "b", text)

	text, ok = h.Next()
	require.True(t, ok)
	assert.Equal(t, "work in progress", text, "stepping past newest restores the draft")
	assert.False(t, h.Navigating())

	_, ok = h.Next()
	assert.False(t, ok, "next while idle does nothing")
}

func TestHistory_EditExitsNavigation(t *testing.T) {
	h := NewHistory()
	h.Record("a")

	_, _ = h.Prev("draft")
	require.True(t, h.Navigating())

	// The app calls Exit when the user edits while navigating; the draft
	// is discarded and the displayed entry becomes the new working text.
	h.Exit()
	assert.False(t, h.Navigating())
	_, ok := h.Next()
	assert.False(t, ok)
}

func TestHistory_RecordSkipsEmptyAndConsecutiveDuplicates(t *testing.T) {
	h := NewHistory()
	h.Record("")
	assert.Equal(t, 0, h.Len())

	h.Record("x")
	h.Record("x")
	assert.Equal(t, 1, h.Len(), "consecutive duplicates collapse")

	h.Record("y")
	h.Record("x")
	assert.Equal(t, 3, h.Len(), "non-consecutive duplicates are kept")
}
