package components

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(names ...string) []domain.Pokemon {
	out := make([]domain.Pokemon, len(names))
	for i, n := range names {
		out[i] = domain.Pokemon{
			Name: n,
			URL:  fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", i+1),
		}
	}
	return out
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newList(now *time.Time) *PokemonList {
	l := NewPokemonList("Pokédex", time.Second)
	l.SetClock(func() time.Time { return *now })
	l.SetSize(40, 20)
	return l
}

func TestSetItemsHighlightsOnlyChangedRows(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newList(&now)

	l.SetItems(entries("bulbasaur", "ivysaur"))
	now = now.Add(2 * time.Second)
	l.PruneHighlights()

	assert.False(t, l.IsHighlighted("bulbasaur"))

	grown := append(entries("bulbasaur", "ivysaur"), domain.Pokemon{Name: "venusaur", URL: "https://pokeapi.co/api/v2/pokemon/3/"})
	script := l.SetItems(grown)

	assert.Equal(t, 1, script.Counts().Inserted)
	assert.True(t, l.IsHighlighted("venusaur"))
	assert.False(t, l.IsHighlighted("bulbasaur"), "stable rows untouched")
	assert.Equal(t, grown, l.Items())
}

func TestSetItemsKeepsSelectionOnEntry(t *testing.T) {
	now := time.Now()
	l := newList(&now)

	l.SetItems(entries("a", "b", "c"))
	l.Update(keyMsg("j"))
	l.Update(keyMsg("j"))

	p, ok := l.Selected()
	require.True(t, ok)
	require.Equal(t, "c", p.Name)

	l.SetItems([]domain.Pokemon{{Name: "c"}, {Name: "a"}, {Name: "b"}})

	p, _ = l.Selected()
	assert.Equal(t, "c", p.Name)
	assert.Equal(t, 0, l.SelectedIndex())
}

func TestSetItemsClampsCursorWhenRowsRemoved(t *testing.T) {
	now := time.Now()
	l := newList(&now)

	l.SetItems(entries("a", "b", "c"))
	l.Update(keyMsg("G"))
	l.SetItems(entries("x"))

	assert.Equal(t, 0, l.SelectedIndex())
	p, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "x", p.Name)
}

func TestIdenticalItemsProduceEmptyScript(t *testing.T) {
	now := time.Now()
	l := newList(&now)

	l.SetItems(entries("a", "b"))
	assert.True(t, l.SetItems(entries("a", "b")).IsEmpty())
}

func TestAtLastRow(t *testing.T) {
	now := time.Now()
	l := newList(&now)

	assert.False(t, l.AtLastRow())

	l.SetItems(entries("a", "b"))
	assert.False(t, l.AtLastRow())

	l.Update(keyMsg("j"))
	assert.True(t, l.AtLastRow())

	l.Update(keyMsg("j"))
	assert.Equal(t, 1, l.SelectedIndex(), "cursor stops at the end")
}

func TestNavigationKeys(t *testing.T) {
	now := time.Now()
	l := newList(&now) // 20 rows tall: 15 visible
	names := make([]string, 40)
	for i := range names {
		names[i] = fmt.Sprintf("mon%d", i+1)
	}
	l.SetItems(entries(names...))

	steps := []struct {
		msg  tea.Msg
		want int
	}{
		{keyMsg("k"), 0},
		{tea.KeyMsg{Type: tea.KeyPgDown}, 15},
		{tea.KeyMsg{Type: tea.KeyPgDown}, 30},
		{tea.KeyMsg{Type: tea.KeyCtrlU}, 23},
		{tea.KeyMsg{Type: tea.KeyCtrlD}, 30},
		{keyMsg("G"), 39},
		{tea.KeyMsg{Type: tea.KeyPgDown}, 39},
		{tea.KeyMsg{Type: tea.KeyPgUp}, 24},
		{keyMsg("g"), 0},
		{keyMsg("j"), 1},
		{tea.WindowSizeMsg{Width: 10, Height: 10}, 1},
	}
	for i, step := range steps {
		l.Update(step.msg)
		require.Equal(t, step.want, l.SelectedIndex(), "step %d (%v)", i, step.msg)
	}
	assert.Nil(t, l.Update(keyMsg("G")))
	assert.True(t, l.AtLastRow())
}

func TestFilterNarrowsRows(t *testing.T) {
	now := time.Now()
	l := newList(&now)
	l.SetItems(entries("charmander", "charmeleon", "squirtle"))

	l.ToggleFilter()
	for _, r := range "chmd" {
		l.Update(keyMsg(string(r)))
	}

	assert.Equal(t, 1, l.ItemCount())
	p, _ := l.Selected()
	assert.Equal(t, "charmander", p.Name)
	assert.False(t, l.AtLastRow(), "filtered views never page")

	l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 3, l.ItemCount())
}

func TestViewShowsNumbersAndNames(t *testing.T) {
	now := time.Now()
	l := newList(&now)
	l.SetItems(entries("bulbasaur"))

	view := l.View()
	assert.Contains(t, view, "#001")
	assert.Contains(t, view, "Bulbasaur")
}
