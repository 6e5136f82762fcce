package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/listdiff"
	"github.com/mmcdole/pokedex/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for the list
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// PokemonList is the scrollable catalog list. Published item lists are
// reconciled against the rows already shown, so only changed rows are
// touched and the selection follows its entry.
type PokemonList struct {
	items []domain.Pokemon
	keys  ListKeyMap

	// Rows inserted or updated by the last reconciliations, by key, with
	// the time their highlight expires
	highlights   map[string]time.Time
	highlightFor time.Duration
	now          func() time.Time
	lastCounts   listdiff.Counts

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Loading state
	busy         bool
	spinnerFrame int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewPokemonList creates an empty list. Changed rows stay highlighted for
// highlightFor.
func NewPokemonList(title string, highlightFor time.Duration) *PokemonList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &PokemonList{
		keys:         DefaultListKeyMap(),
		title:        title,
		filterInput:  ti,
		highlights:   make(map[string]time.Time),
		highlightFor: highlightFor,
		now:          time.Now,
		focused:      true,
	}
}

// SetClock replaces the time source used for highlight expiry
func (l *PokemonList) SetClock(now func() time.Time) {
	l.now = now
}

// SetItems reconciles the shown rows with items and returns the edit
// script that was applied
func (l *PokemonList) SetItems(items []domain.Pokemon) listdiff.Script[domain.Pokemon] {
	var selectedKey string
	if p, ok := l.Selected(); ok {
		selectedKey = p.Key()
	}

	script := listdiff.Compute(l.items, items, domain.Pokemon.Key, func(a, b domain.Pokemon) bool {
		return a == b
	})
	if script.IsEmpty() {
		return script
	}

	l.items = listdiff.Apply(l.items, script)
	l.lastCounts = script.Counts()

	expires := l.now().Add(l.highlightFor)
	for _, idx := range script.Changed() {
		l.highlights[l.items[idx].Key()] = expires
	}

	if l.filterActive && l.filterQuery != "" {
		l.applyFilter()
	}

	// Keep the selection on the same entry when it survived
	if selectedKey != "" {
		for i := 0; i < l.ItemCount(); i++ {
			if l.items[l.mapIndex(i)].Key() == selectedKey {
				l.cursor = i
				break
			}
		}
	}
	l.clampCursor()
	l.ensureVisible()

	return script
}

// Items returns the rows currently shown, unfiltered
func (l *PokemonList) Items() []domain.Pokemon {
	return l.items
}

// LastCounts returns the tally of the last non-empty reconciliation
func (l *PokemonList) LastCounts() listdiff.Counts {
	return l.lastCounts
}

// IsHighlighted reports whether the entry with key changed recently
func (l *PokemonList) IsHighlighted(key string) bool {
	expires, ok := l.highlights[key]
	return ok && l.now().Before(expires)
}

// PruneHighlights forgets expired highlights
func (l *PokemonList) PruneHighlights() {
	now := l.now()
	for k, expires := range l.highlights {
		if !now.Before(expires) {
			delete(l.highlights, k)
		}
	}
}

func (l *PokemonList) Update(msg tea.Msg) tea.Cmd {
	if !l.focused {
		return nil
	}

	// Handle filter input when active AND focused (typing mode)
	if l.filterActive && l.filterInput.Focused() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, l.keys.Escape):
				l.clearFilter()
				return nil
			case key.Matches(msg, l.keys.Enter):
				// Accept filter, blur input to allow navigation
				l.filterInput.Blur()
				return nil
			case msg.String() == "backspace" && l.filterInput.Value() == "":
				l.clearFilter()
				return nil
			}
		}

		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return cmd
	}

	// Filter active but blurred: navigating the results
	if l.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, l.keys.Escape):
				l.clearFilter()
				return nil
			case key.Matches(msg, l.keys.Filter):
				l.filterInput.Focus()
				return nil
			}
		}
	}

	count := l.ItemCount()
	if count == 0 {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, l.keys.Down):
		if l.cursor < count-1 {
			l.cursor++
			l.ensureVisible()
		}
	case key.Matches(keyMsg, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
			l.ensureVisible()
		}
	case key.Matches(keyMsg, l.keys.Home):
		l.cursor = 0
		l.offset = 0
	case key.Matches(keyMsg, l.keys.End):
		l.cursor = count - 1
		l.ensureVisible()
	case key.Matches(keyMsg, l.keys.HalfDown):
		l.cursor += max(l.maxVisible/2, 1)
		l.clampCursor()
		l.ensureVisible()
	case key.Matches(keyMsg, l.keys.HalfUp):
		l.cursor -= max(l.maxVisible/2, 1)
		l.clampCursor()
		l.ensureVisible()
	case key.Matches(keyMsg, l.keys.PageDown):
		l.cursor += l.maxVisible
		l.clampCursor()
		l.ensureVisible()
	case key.Matches(keyMsg, l.keys.PageUp):
		l.cursor -= l.maxVisible
		l.clampCursor()
		l.ensureVisible()
	}

	return nil
}

func (l *PokemonList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(l.width - frameW).
		Height(l.height - frameH).
		Render(l.renderContent())
}

func (l *PokemonList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

func (l *PokemonList) SetFocused(focused bool) {
	l.focused = focused
}

// SetBusy toggles the loading indicator
func (l *PokemonList) SetBusy(busy bool) {
	l.busy = busy
}

// SetSpinnerFrame updates the spinner animation frame
func (l *PokemonList) SetSpinnerFrame(frame int) {
	l.spinnerFrame = frame
}

// Selected returns the entry under the cursor
func (l *PokemonList) Selected() (domain.Pokemon, bool) {
	count := l.ItemCount()
	if count == 0 || l.cursor >= count {
		return domain.Pokemon{}, false
	}
	return l.items[l.mapIndex(l.cursor)], true
}

// SelectedIndex returns the cursor position in the visible (filtered) rows
func (l *PokemonList) SelectedIndex() int {
	return l.cursor
}

// AtLastRow reports whether the cursor rests on the final unfiltered row,
// the point at which the next page is wanted
func (l *PokemonList) AtLastRow() bool {
	if l.filterActive && l.filterQuery != "" {
		return false
	}
	return len(l.items) > 0 && l.cursor == len(l.items)-1
}

// ItemCount returns the number of visible rows
func (l *PokemonList) ItemCount() int {
	if l.filteredIdx != nil {
		return len(l.filteredIdx)
	}
	return len(l.items)
}

// ToggleFilter activates the filter input
func (l *PokemonList) ToggleFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// IsFilterTyping returns true if filter is active AND input is focused
func (l *PokemonList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (l *PokemonList) ClearFilter() {
	l.clearFilter()
}

// HelpBindings returns the navigation bindings for the help overlay
func (l *PokemonList) HelpBindings() []key.Binding {
	return []key.Binding{l.keys.Up, l.keys.Down, l.keys.Home, l.keys.End, l.keys.HalfDown, l.keys.HalfUp, l.keys.PageDown, l.keys.PageUp, l.keys.Escape}
}

// Internal methods

func (l *PokemonList) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	l.maxVisible = l.height - BorderHeight - ScrollIndicatorLines - 1
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *PokemonList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *PokemonList) clampCursor() {
	count := l.ItemCount()
	if l.cursor >= count {
		l.cursor = count - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.offset > l.cursor {
		l.offset = l.cursor
	}
}

func (l *PokemonList) clearFilter() {
	l.filterActive = false
	l.filterQuery = ""
	l.filteredIdx = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
	l.clampCursor()
	l.ensureVisible()
}

func (l *PokemonList) applyFilter() {
	query := l.filterInput.Value()
	l.filterQuery = query

	if query == "" {
		l.filteredIdx = nil
		return
	}

	names := make([]string, len(l.items))
	for i, p := range l.items {
		names[i] = strings.ToLower(p.Name)
	}

	matches := fuzzy.Find(strings.ToLower(query), names)
	l.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		l.filteredIdx[i] = match.Index
	}

	l.cursor = 0
	l.offset = 0
}

func (l *PokemonList) mapIndex(i int) int {
	if l.filteredIdx != nil && i < len(l.filteredIdx) {
		return l.filteredIdx[i]
	}
	return i
}

// Rendering

func (l *PokemonList) renderContent() string {
	itemWidth := l.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	title := l.title
	if len(l.items) > 0 {
		title = fmt.Sprintf("%s (%d)", l.title, len(l.items))
	}
	titleLine := styles.AccentStyle.Render(styles.Truncate(title, itemWidth))

	count := l.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No entries")
		if l.busy {
			emptyMsg = styles.DimStyle.Render(l.spinner() + " Loading...")
		} else if l.filterActive && l.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
		if l.filterActive {
			content += "\n" + l.renderFilterBar(itemWidth)
		}
		return content
	}

	end := min(l.offset+l.maxVisible, count)

	var lines []string
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(l.items[l.mapIndex(i)], i == l.cursor, itemWidth))
	}

	// Header and footer lines are always reserved to prevent layout shifts
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	switch {
	case l.busy:
		footer = styles.DimStyle.Render(l.spinner() + " Loading next page...")
	case end < count:
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if l.filterActive {
		content += "\n" + l.renderFilterBar(itemWidth)
	}
	return content
}

func (l *PokemonList) renderRow(p domain.Pokemon, selected bool, width int) string {
	marker := " "
	markerFg := styles.DimGray
	if l.IsHighlighted(p.Key()) {
		marker = styles.ChangedChar
		markerFg = styles.Green
	}

	numberFg := styles.DimGray
	number := fmt.Sprintf("#%03d", p.Number())

	// width - marker(1) - number - spaces(2) - margins(2)
	available := width - lipgloss.Width(number) - 5
	if available < 5 {
		available = 5
	}

	parts := []styles.RowPart{
		{Text: marker, Foreground: &markerFg},
		{Text: " " + number, Foreground: &numberFg},
		{Text: " " + styles.Truncate(p.DisplayName(), available)},
	}
	return styles.RenderListRow(parts, selected, width)
}

func (l *PokemonList) renderFilterBar(width int) string {
	l.filterInput.Width = width - 4
	return l.filterInput.View()
}

func (l *PokemonList) spinner() string {
	return styles.SpinnerFrames[l.spinnerFrame%len(styles.SpinnerFrames)]
}
