// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Timestamps, secondary info
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Input placeholder

	// Semantic color names - Border
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused pane border

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Connected, confirmed sends
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Pending sends, new content
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Failed sends, disconnects

	// Message role colors
	UserColor      = lipgloss.AdaptiveColor{Light: "#FB923C", Dark: "#FB923C"}
	AssistantColor = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#43BF6D"}
	SystemColor    = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#777777"}

	// Role label styles (bold name in the message header line)
	UserLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(UserColor)
	AssistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(AssistantColor)
	SystemLabelStyle    = lipgloss.NewStyle().Italic(true).Foreground(SystemColor)

	// Message body styles
	SystemMessageStyle = lipgloss.NewStyle().Italic(true).Foreground(SystemColor)
	TimestampStyle     = lipgloss.NewStyle().Foreground(TextSecondaryColor)

	// Send lifecycle markers
	PendingMarkerStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)
	FailedMarkerStyle  = lipgloss.NewStyle().Bold(true).Foreground(StatusErrorColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)
	ConnectedStyle    = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	DisconnectedStyle = lipgloss.NewStyle().Bold(true).Foreground(StatusErrorColor)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	// Help overlay
	HelpKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	HelpDescStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Loading spinner color
	SpinnerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#FFF"}
)
