package editor

// History navigates previously sent messages. It is either idle or
// viewing an entry; while viewing, the in-progress draft is held aside
// and restored when navigation walks past the newest entry.
//
// Any edit to the buffer exits navigation immediately, keeping the
// displayed text as the new draft. Sending also exits navigation. Neither
// end wraps around.
type History struct {
	entries []string
	index   int // -1 when idle
	draft   string
}

// NewHistory returns an empty, idle history.
func NewHistory() *History {
	return &History{index: -1}
}

// Len returns the number of recorded entries.
func (h *History) Len() int { return len(h.entries) }

// Navigating reports whether an entry is currently being viewed.
func (h *History) Navigating() bool { return h.index >= 0 }

// Record appends a sent message. Empty messages and messages identical to
// the most recent entry are not recorded.
func (h *History) Record(text string) {
	if text == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == text {
		return
	}
	h.entries = append(h.entries, text)
}

// Prev moves to the previous (older) entry, saving the current draft on
// the first step. At the oldest entry it stays put. Returns the entry to
// display and false when there is no history.
func (h *History) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.index < 0:
		h.draft = current
		h.index = len(h.entries) - 1
	case h.index > 0:
		h.index--
	}
	return h.entries[h.index], true
}

// Next moves to the next (newer) entry. Stepping past the newest entry
// exits navigation and restores the saved draft. Returns the text to
// display and false when not navigating.
func (h *History) Next() (string, bool) {
	if h.index < 0 {
		return "", false
	}
	if h.index < len(h.entries)-1 {
		h.index++
		return h.entries[h.index], true
	}
	h.index = -1
	draft := h.draft
	h.draft = ""
	return draft, true
}

// Exit leaves navigation without touching the buffer, discarding the
// saved draft. Called when the user edits or sends while navigating.
func (h *History) Exit() {
	h.index = -1
	h.draft = ""
}
