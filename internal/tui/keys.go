package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level key bindings. List navigation keys
// live with the list component.
type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Filter    key.Binding
	Open      key.Binding
	Next      key.Binding
	Reload    key.Binding
	ReloadAll key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "details"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next page"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		ReloadAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "clear cache and reload"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Filter, k.Next, k.Reload, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped for the help overlay
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Filter, k.Next},
		{k.Reload, k.ReloadAll},
		{k.Help, k.Quit},
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
