package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/pager"
	"github.com/mmcdole/pokedex/internal/tui/components"
)

// repositoryFetcher adapts the repository to pager.Fetcher for Bubble Tea.
// Fetch only queues a command; the model flushes the queue into the
// commands it returns from Update.
type repositoryFetcher struct {
	repo    domain.PokedexRepository
	timeout time.Duration
	pending []tea.Cmd
}

func newRepositoryFetcher(repo domain.PokedexRepository, timeout time.Duration) *repositoryFetcher {
	return &repositoryFetcher{repo: repo, timeout: timeout}
}

// Fetch implements pager.Fetcher
func (f *repositoryFetcher) Fetch(page int, cb pager.Callbacks[domain.Pokemon]) {
	f.pending = append(f.pending, FetchPageCmd(f.repo, page, cb, f.timeout))
}

// Flush returns the queued fetch commands and empties the queue
func (f *repositoryFetcher) Flush() tea.Cmd {
	if len(f.pending) == 0 {
		return nil
	}
	cmds := f.pending
	f.pending = nil
	return tea.Batch(cmds...)
}

// listObserver applies published fetch states to the list and raises a
// toast once per failure
type listObserver struct {
	list      *components.PokemonList
	toasts    *components.Toasts
	lastError string
}

func newListObserver(list *components.PokemonList, toasts *components.Toasts) *listObserver {
	return &listObserver{list: list, toasts: toasts}
}

// OnState is registered with the pager controller
func (o *listObserver) OnState(s pager.State[domain.Pokemon]) {
	o.list.SetBusy(s.Busy)
	o.list.SetItems(s.Items)

	if s.ErrorMessage != "" && s.ErrorMessage != o.lastError {
		o.toasts.Add(s.ErrorMessage, components.ToastError)
	}
	o.lastError = s.ErrorMessage
}
