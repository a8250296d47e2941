package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestInputKeyMap_SendAndNewlineDoNotOverlap(t *testing.T) {
	k := DefaultInputKeyMap()

	require.Equal(t, []string{"enter"}, k.Send.Keys(), "Send should be bound to plain enter")
	for _, nl := range k.Newline.Keys() {
		require.NotEqual(t, "enter", nl, "Newline must not shadow plain enter")
	}
}

func TestInputKeyMap_HistoryUsesCtrlArrows(t *testing.T) {
	k := DefaultInputKeyMap()

	require.Equal(t, []string{"ctrl+up"}, k.HistoryPrev.Keys())
	require.Equal(t, []string{"ctrl+down"}, k.HistoryNext.Keys())
	// Plain arrows stay reserved for cursor movement.
	require.Equal(t, []string{"up"}, k.Up.Keys())
	require.Equal(t, []string{"down"}, k.Down.Keys())
}

func TestInputKeyMap_NoPrintableSingleCharBindings(t *testing.T) {
	k := DefaultInputKeyMap()

	all := [][]key.Binding{k.ShortHelp()}
	all = append(all, k.FullHelp()...)
	for _, row := range all {
		for _, b := range row {
			for _, s := range b.Keys() {
				require.Greater(t, len(s), 1,
					"input focus must not bind printable key %q, it would swallow typed text", s)
			}
		}
	}
}

func TestInputKeyMap_HelpTextDefined(t *testing.T) {
	k := DefaultInputKeyMap()

	for _, row := range k.FullHelp() {
		for _, b := range row {
			help := b.Help()
			require.NotEmpty(t, help.Key, "key help should not be empty")
			require.NotEmpty(t, help.Desc, "description help should not be empty")
		}
	}
}

func TestChatKeyMap_VimStyleScrolling(t *testing.T) {
	k := DefaultChatKeyMap()

	require.Equal(t, []string{"k", "up"}, k.Up.Keys())
	require.Equal(t, []string{"j", "down"}, k.Down.Keys())
	require.Contains(t, k.Top.Keys(), "g")
	require.Contains(t, k.Bottom.Keys(), "G")
}

func TestChatKeyMap_FocusToggle(t *testing.T) {
	k := DefaultChatKeyMap()

	require.Contains(t, k.FocusInput.Keys(), "tab")
	require.Contains(t, k.Escape.Keys(), "esc")
}

func TestChatKeyMap_HelpTextDefined(t *testing.T) {
	k := DefaultChatKeyMap()

	for _, row := range k.FullHelp() {
		for _, b := range row {
			help := b.Help()
			require.NotEmpty(t, help.Key, "key help should not be empty")
			require.NotEmpty(t, help.Desc, "description help should not be empty")
		}
	}
}

func TestShortHelp_IsSubsetOfFullHelp(t *testing.T) {
	input := DefaultInputKeyMap()
	chat := DefaultChatKeyMap()

	require.NotEmpty(t, input.ShortHelp())
	require.NotEmpty(t, chat.ShortHelp())
}
