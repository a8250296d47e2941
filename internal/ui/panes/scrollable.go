package panes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/hankchat/hanktui/internal/ui/styles"
)

// Scroll indicator styles
var (
	// ScrollIndicatorStyle is the style for scroll position indicators (e.g., "↑50%").
	ScrollIndicatorStyle = lipgloss.NewStyle().
				Foreground(styles.TextMutedColor)

	// NewContentIndicatorStyle is the style for the "↓New" indicator shown when
	// new messages arrive while scrolled up.
	NewContentIndicatorStyle = lipgloss.NewStyle().
					Foreground(styles.StatusWarningColor).
					Bold(true)
)

// ScrollableConfig holds the configuration for rendering a scrollable pane.
type ScrollableConfig struct {
	// Viewport is a pointer to the viewport model.
	// Must be a pointer: the pane mutates dimensions, content, and scroll
	// position, and that state has to survive across renders.
	Viewport *viewport.Model

	// HasNewContent indicates new messages arrived while scrolled up.
	// Displayed as "↓New" in the right title.
	HasNewContent bool

	// LeftTitle is the title shown on the left side of the top border.
	LeftTitle string

	// RightTitle is appended to the top-right border section.
	RightTitle string

	// BottomLeft is optional text shown on the bottom-left of the border.
	BottomLeft string

	// ShowScrollIndicator displays "↑XX%" on the bottom-right when
	// scrolled up from the bottom.
	ShowScrollIndicator bool

	// TitleColor is the color for the title text.
	TitleColor lipgloss.AdaptiveColor

	// BorderColor is the color for the pane border.
	BorderColor lipgloss.AdaptiveColor

	// Focused indicates whether the pane has focus.
	Focused bool

	// FocusedBorderColor is the border color when focused.
	// If not set, uses BorderColor even when focused.
	FocusedBorderColor lipgloss.AdaptiveColor
}

// ScrollablePane handles the common viewport setup, content padding,
// auto-scroll, and border rendering pattern for chat-like panes.
//
// Invariant: wasAtBottom MUST be captured BEFORE SetContent(), otherwise
// every render would force the user back to the bottom. Short content is
// padded by PREPENDING blank lines so the transcript hugs the bottom edge.
//
// contentFn receives the available width (viewport width) and returns the
// rendered content string.
func ScrollablePane(
	width, height int,
	cfg ScrollableConfig,
	contentFn func(wrapWidth int) string,
) string {
	// Viewport dimensions exclude the borders
	vpWidth := max(width-2, 1)
	vpHeight := max(height-2, 1)

	content := contentFn(vpWidth)

	contentLines := strings.Split(content, "\n")
	if len(contentLines) < vpHeight {
		padding := make([]string, vpHeight-len(contentLines))
		contentLines = append(padding, contentLines...)
		content = strings.Join(contentLines, "\n")
	}

	wasAtBottom := cfg.Viewport.AtBottom()
	oldScrollPercent := cfg.Viewport.ScrollPercent()
	dimensionsChanged := cfg.Viewport.Width != vpWidth || cfg.Viewport.Height != vpHeight

	cfg.Viewport.Width = vpWidth
	cfg.Viewport.Height = vpHeight

	cfg.Viewport.SetContent(content)

	if wasAtBottom {
		cfg.Viewport.GotoBottom()
	} else if dimensionsChanged && oldScrollPercent > 0 {
		// Restore proportional scroll position after a resize
		totalLines := cfg.Viewport.TotalLineCount()
		scrollableRange := totalLines - cfg.Viewport.Height
		if scrollableRange > 0 {
			newOffset := int(oldScrollPercent * float64(scrollableRange))
			cfg.Viewport.SetYOffset(newOffset)
		}
	}

	viewportContent := cfg.Viewport.View()

	// Must happen AFTER SetContent so the indicator reflects final state
	rightTitle := buildRightTitle(*cfg.Viewport, cfg.HasNewContent, cfg.RightTitle)

	var bottomRight string
	if cfg.ShowScrollIndicator {
		bottomRight = BuildScrollIndicator(*cfg.Viewport)
	}

	return BorderedPane(BorderConfig{
		Content:            viewportContent,
		Width:              width,
		Height:             height,
		TopLeft:            cfg.LeftTitle,
		TopRight:           rightTitle,
		BottomLeft:         cfg.BottomLeft,
		BottomRight:        bottomRight,
		Focused:            cfg.Focused,
		TitleColor:         cfg.TitleColor,
		BorderColor:        cfg.BorderColor,
		FocusedBorderColor: cfg.FocusedBorderColor,
	})
}

// buildRightTitle combines the new-content indicator with the caller's
// right title.
func buildRightTitle(vp viewport.Model, hasNewContent bool, rightTitle string) string {
	var parts []string

	if hasNewContent && !vp.AtBottom() {
		parts = append(parts, NewContentIndicatorStyle.Render("↓New"))
	}

	if rightTitle != "" {
		parts = append(parts, rightTitle)
	}

	return strings.Join(parts, " ")
}

// BuildScrollIndicator returns a styled scroll position indicator for the
// viewport. Empty when the content fits or the view is pinned to the
// bottom (live view).
func BuildScrollIndicator(vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	if vp.AtBottom() {
		return ""
	}
	return ScrollIndicatorStyle.Render(fmt.Sprintf("↑%.0f%%", vp.ScrollPercent()*100))
}
