package tui

import "github.com/charmbracelet/lipgloss"

// Layout proportions
const (
	ListColumnPercent = 40
	MinColumnWidth    = 24

	// Vertical layout: single footer line
	ChromeHeight = 1
)

// columnLayout holds calculated widths for the View
type columnLayout struct {
	listWidth   int
	detailWidth int // 0 if not shown
}

// calculateColumnLayout splits the width between list and detail. Narrow
// terminals drop the detail pane.
func calculateColumnLayout(availableWidth int) columnLayout {
	listWidth := max(availableWidth*ListColumnPercent/100, MinColumnWidth)
	if availableWidth-listWidth < MinColumnWidth {
		return columnLayout{listWidth: availableWidth}
	}
	return columnLayout{
		listWidth:   listWidth,
		detailWidth: availableWidth - listWidth,
	}
}

// updateLayout sizes the components for the current window, leaving room
// for overlay lines (toasts) above the footer
func (m *Model) updateLayout(overlayLines int) {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := max(m.Height-ChromeHeight-overlayLines, 3)
	layout := calculateColumnLayout(m.Width)

	m.List.SetSize(layout.listWidth, contentHeight)
	if layout.detailWidth > 0 {
		m.Detail.SetSize(layout.detailWidth, contentHeight)
	}
	m.layout = layout
}

func overlayHeight(s string) int {
	if s == "" {
		return 0
	}
	return lipgloss.Height(s)
}
