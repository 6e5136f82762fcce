package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	PokedexRed = lipgloss.Color("#E3350D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Yellow     = lipgloss.Color("#FBBF24")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// TypeColors maps elemental types to badge colors
var TypeColors = map[string]lipgloss.Color{
	"normal":   lipgloss.Color("#A8A77A"),
	"fire":     lipgloss.Color("#EE8130"),
	"water":    lipgloss.Color("#6390F0"),
	"electric": lipgloss.Color("#F7D02C"),
	"grass":    lipgloss.Color("#7AC74C"),
	"ice":      lipgloss.Color("#96D9D6"),
	"fighting": lipgloss.Color("#C22E28"),
	"poison":   lipgloss.Color("#A33EA1"),
	"ground":   lipgloss.Color("#E2BF65"),
	"flying":   lipgloss.Color("#A98FF3"),
	"psychic":  lipgloss.Color("#F95587"),
	"bug":      lipgloss.Color("#A6B91A"),
	"rock":     lipgloss.Color("#B6A136"),
	"ghost":    lipgloss.Color("#735797"),
	"dragon":   lipgloss.Color("#6F35FC"),
	"dark":     lipgloss.Color("#705746"),
	"steel":    lipgloss.Color("#B7B7CE"),
	"fairy":    lipgloss.Color("#D685AD"),
}

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PokedexRed)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(PokedexRed)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(PokedexRed)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Stat bar styles
var (
	StatFullStyle = lipgloss.NewStyle().
			Foreground(PokedexRed)

	StatEmptyStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Badge style; background is set per type
var BadgeStyle = lipgloss.NewStyle().
	Foreground(White).
	Bold(true).
	Padding(0, 1)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(PokedexRed)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(PokedexRed).
				Bold(true)
)

// Toast styles
var (
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	ToastErrorStyle = ToastStyle.
			BorderForeground(Red).
			Foreground(Red)

	ToastInfoStyle = ToastStyle.
			BorderForeground(Blue).
			Foreground(LightGray)
)

// Row marker for entries that just arrived or changed
const ChangedChar = "•"

// SpinnerFrames for loading animation
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Pad pads a string to the given width
func Pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// RenderStatBar renders value out of max as a fixed-width bar
func RenderStatBar(value, max, width int) string {
	if width < 3 || max <= 0 {
		return ""
	}

	filled := value * width / max
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return StatFullStyle.Render(strings.Repeat("█", filled)) +
		StatEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// RenderTypeBadge renders an elemental type as a colored badge
func RenderTypeBadge(name string) string {
	bg, ok := TypeColors[name]
	if !ok {
		bg = SlateLight
	}
	return BadgeStyle.Background(bg).Render(name)
}

// RenderListRow renders a complete list row with uniform background when selected.
// This function styles each part explicitly to avoid ANSI reset code issues.
// parts is a slice of {text, fgColor} pairs. Use nil for default foreground.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := SlateLight
	defaultFg := LightGray
	selectedFg := White

	var result strings.Builder
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		if part.Foreground != nil {
			style = style.Foreground(*part.Foreground)
		} else if selected {
			style = style.Foreground(selectedFg)
		} else {
			style = style.Foreground(defaultFg)
		}
		if selected {
			style = style.Background(bg)
		}
		result.WriteString(style.Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// Add padding to fill width (subtract 2 for left/right margin)
	paddingNeeded := width - visibleLen - 2
	if paddingNeeded > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		result.WriteString(padStyle.Render(strings.Repeat(" ", paddingNeeded)))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + result.String() + margin
}

// RowPart represents a part of a row with optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}
