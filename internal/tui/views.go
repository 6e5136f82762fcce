package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pokedex/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	toasts := m.Toasts.View(m.Width)
	m.updateLayout(overlayHeight(toasts))

	var body string
	if m.ShowHelp {
		body = m.renderHelp()
	} else if m.layout.detailWidth > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.List.View(), m.Detail.View())
	} else {
		body = m.List.View()
	}

	parts := []string{body}
	if toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, m.renderFooter())
	return strings.Join(parts, "\n")
}

func (m Model) renderFooter() string {
	state := m.Pager.State()

	var status string
	switch {
	case state.Busy:
		status = styles.AccentStyle.Render(RenderSpinner(m.SpinnerFrame)) + styles.DimStyle.Render(fmt.Sprintf(" page %d", state.Cursor+1))
	case state.HasError():
		status = styles.ErrorStyle.Render("✘ " + styles.Truncate(state.ErrorMessage, 40))
	default:
		status = styles.DimStyle.Render(fmt.Sprintf("page %d", state.Cursor+1))
	}

	help := m.Help.ShortHelpView(m.keys.ShortHelp())
	gap := m.Width - lipgloss.Width(status) - lipgloss.Width(help) - 1
	if gap < 1 {
		return status
	}
	return status + strings.Repeat(" ", gap) + help
}

func (m Model) renderHelp() string {
	full := m.Help.FullHelpView(m.keys.FullHelp())
	list := m.Help.FullHelpView([][]key.Binding{m.List.HelpBindings()})
	content := styles.TitleStyle.Render("Keys") + "\n\n" + full + "\n\n" + list
	return lipgloss.Place(m.Width, max(m.Height-ChromeHeight, 1), lipgloss.Center, lipgloss.Center, content)
}

// RenderSpinner renders a spinner frame
func RenderSpinner(frame int) string {
	return styles.SpinnerFrames[frame%len(styles.SpinnerFrames)]
}
