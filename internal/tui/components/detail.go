package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/tui/styles"
)

// Highest base stat in the catalog, used to scale stat bars
const maxBaseStat = 255

// Detail shows the record of the activated entry
type Detail struct {
	entry   domain.Pokemon
	info    *domain.PokemonInfo
	loading bool
	err     error

	// glamour style name ("dark", "light", "notty", ...)
	markdownStyle string

	width  int
	height int
}

// NewDetail creates an empty detail pane rendering markdown in markdownStyle
func NewDetail(markdownStyle string) *Detail {
	if markdownStyle == "" {
		markdownStyle = "dark"
	}
	return &Detail{markdownStyle: markdownStyle}
}

// Show switches the pane to entry and marks it loading
func (d *Detail) Show(entry domain.Pokemon) {
	d.entry = entry
	d.info = nil
	d.err = nil
	d.loading = true
}

// SetInfo fills in the record for the current entry. Records for any other
// entry are ignored.
func (d *Detail) SetInfo(info *domain.PokemonInfo) bool {
	if info == nil || info.Name != d.entry.Name {
		return false
	}
	d.info = info
	d.loading = false
	return true
}

// SetError records a failed load for name
func (d *Detail) SetError(name string, err error) bool {
	if name != d.entry.Name {
		return false
	}
	d.err = err
	d.loading = false
	return true
}

// Entry returns the entry on display
func (d *Detail) Entry() domain.Pokemon {
	return d.entry
}

// Info returns the loaded record, if any
func (d *Detail) Info() *domain.PokemonInfo {
	return d.info
}

func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d *Detail) View() string {
	frameW, frameH := styles.InactiveBorder.GetFrameSize()
	inner := d.width - frameW
	if inner < 10 {
		inner = 10
	}

	var body string
	switch {
	case d.entry.Name == "":
		body = styles.DimStyle.Render("Press enter on an entry to see its details")
	case d.loading:
		body = styles.TitleStyle.Render(d.entry.DisplayName()) + "\n\n" + styles.DimStyle.Render("Loading...")
	case d.err != nil:
		body = styles.TitleStyle.Render(d.entry.DisplayName()) + "\n\n" + styles.ErrorStyle.Render(d.err.Error())
	default:
		body = d.renderInfo(inner)
	}

	return styles.InactiveBorder.
		Width(d.width - frameW).
		Height(d.height - frameH).
		Render(body)
}

func (d *Detail) renderInfo(width int) string {
	info := d.info

	badges := make([]string, len(info.Types))
	for i, t := range info.Types {
		badges[i] = styles.RenderTypeBadge(t)
	}

	barWidth := width - 22
	if barWidth > 30 {
		barWidth = 30
	}
	var stats []string
	for _, s := range info.Stats {
		stats = append(stats, fmt.Sprintf("%-16s %3d %s",
			styles.Truncate(s.Name, 16), s.Value, styles.RenderStatBar(s.Value, maxBaseStat, barWidth)))
	}

	return strings.Join([]string{
		RenderMarkdown(InfoMarkdown(d.entry, info), d.markdownStyle, width),
		strings.Join(badges, " "),
		"",
		strings.Join(stats, "\n"),
	}, "\n")
}

// InfoMarkdown describes a detail record as markdown
func InfoMarkdown(entry domain.Pokemon, info *domain.PokemonInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s #%03d\n\n", entry.DisplayName(), info.ID)
	fmt.Fprintf(&b, "| Height | Weight | Base exp |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| %.1f m | %.1f kg | %d |\n\n", info.HeightMeters(), info.WeightKilograms(), info.BaseExperience)
	fmt.Fprintf(&b, "Artwork: <%s>\n", entry.ImageURL())
	return b.String()
}

// RenderMarkdown renders md with glamour, falling back to the raw text
func RenderMarkdown(md, style string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// glamour adds surrounding newlines
	return strings.Trim(out, "\n")
}
