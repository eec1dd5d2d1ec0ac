package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskflow/internal/theme"
)

// Layout manages the multi-panel terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// SideWidth is the width reserved for the focus panel beside the list.
const SideWidth = 30

// minMainWidth is the narrowest list that still gets a side panel.
const minMainWidth = 40

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// HasSide reports whether the terminal is wide enough for the side panel.
func (l Layout) HasSide() bool {
	return l.Width-SideWidth >= minMainWidth
}

// MainWidth returns the width of the list column.
func (l Layout) MainWidth() int {
	if !l.HasSide() {
		return l.Width
	}
	return l.Width - SideWidth
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top header bar with a title and a right-aligned
// status string.
func (l Layout) RenderHeader(title string, status string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(status)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(statusRendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints. A
// non-empty toast is shown before the hints.
func (l Layout) RenderStatusBar(toast, hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)
	if toast != "" {
		rendered = lipgloss.JoinHorizontal(lipgloss.Top, toast, rendered)
	}

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderColumns places the main content and the side panel next to each
// other. Without room for the side panel only main is shown.
func (l Layout) RenderColumns(main, side string) string {
	if !l.HasSide() || side == "" {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, side)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
