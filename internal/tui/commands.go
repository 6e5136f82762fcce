package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/pager"
)

// Command factories for async operations

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// RequestDetailCmd emits an accepted row activation
func RequestDetailCmd(p domain.Pokemon) tea.Cmd {
	return func() tea.Msg {
		return DetailRequestedMsg{Pokemon: p}
	}
}

// LoadInfoCmd loads the detail record for an entry
func LoadInfoCmd(repo domain.PokedexRepository, p domain.Pokemon, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		info, err := repo.FetchPokemonInfo(ctx, p.Name)
		if err != nil {
			return InfoFailedMsg{Name: p.Name, Err: ErrMsg{Err: err, Context: "loading " + p.Name}}
		}
		return InfoLoadedMsg{Info: info}
	}
}

// FetchPageCmd runs a list fetch in the background and streams each of its
// callbacks back as a FetchStepMsg, using a continuation per step so every
// callback executes inside Update
func FetchPageCmd(
	repo domain.PokedexRepository,
	page int,
	cb pager.Callbacks[domain.Pokemon],
	timeout time.Duration,
) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)

		// At most start, items or error, complete
		steps := make(chan func(), 4)

		go func() {
			defer cancel()
			defer close(steps)
			repo.FetchPokemonList(ctx, page, domain.FetchHooks{
				OnStart: func() { steps <- cb.OnStart },
				OnItems: func(items []domain.Pokemon) {
					steps <- func() { cb.OnItems(items) }
				},
				OnComplete: func() { steps <- cb.OnComplete },
				OnError: func(message string) {
					steps <- func() { cb.OnError(message) }
				},
			})
		}()

		return readFetchStep(page, steps)
	}
}

// readFetchStep reads one callback from the channel and attaches the
// continuation command
func readFetchStep(page int, steps <-chan func()) tea.Msg {
	step, ok := <-steps
	if !ok {
		return nil
	}
	return FetchStepMsg{
		Page:    page,
		Apply:   step,
		NextCmd: listenFetchCmd(page, steps),
	}
}

// listenFetchCmd returns a command that reads the next callback
func listenFetchCmd(page int, steps <-chan func()) tea.Cmd {
	return func() tea.Msg {
		return readFetchStep(page, steps)
	}
}
