package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pokedex/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// FetchStepMsg carries one lifecycle callback of a page fetch back onto the
// update loop. NextCmd reads the following callback, if any.
type FetchStepMsg struct {
	Page    int
	Apply   func()
	NextCmd tea.Cmd
}

// DetailRequestedMsg signals an accepted row activation
type DetailRequestedMsg struct {
	Pokemon domain.Pokemon
}

// InfoLoadedMsg signals that a detail record has been loaded
type InfoLoadedMsg struct {
	Info *domain.PokemonInfo
}

// InfoFailedMsg signals that loading a detail record failed
type InfoFailedMsg struct {
	Name string
	Err  ErrMsg
}

// TickMsg is a general tick message for animations
type TickMsg struct{}
