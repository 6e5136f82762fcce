package domain

import (
	"context"
)

// CatalogRepository provides network access to the paginated catalog
type CatalogRepository interface {
	// FetchPokemonList returns a single page of entries, each stamped with page
	FetchPokemonList(ctx context.Context, page int) ([]Pokemon, error)

	// FetchPokemonInfo returns the detail record for a named entry
	FetchPokemonInfo(ctx context.Context, name string) (*PokemonInfo, error)
}

// FetchHooks are the lifecycle callbacks of a single list fetch.
// A fetch calls OnStart first, OnItems at most once, OnError at most once,
// and OnComplete last. Nil hooks are skipped.
type FetchHooks struct {
	OnStart    func()
	OnItems    func(items []Pokemon)
	OnComplete func()
	OnError    func(message string)
}

// Start invokes OnStart if set
func (h FetchHooks) Start() {
	if h.OnStart != nil {
		h.OnStart()
	}
}

// Items invokes OnItems if set
func (h FetchHooks) Items(items []Pokemon) {
	if h.OnItems != nil {
		h.OnItems(items)
	}
}

// Complete invokes OnComplete if set
func (h FetchHooks) Complete() {
	if h.OnComplete != nil {
		h.OnComplete()
	}
}

// Fail invokes OnError if set
func (h FetchHooks) Fail(message string) {
	if h.OnError != nil {
		h.OnError(message)
	}
}

// PokedexRepository is the cache-first data source consumed by the UI.
// FetchPokemonList reports through hooks and returns when the fetch is done.
type PokedexRepository interface {
	FetchPokemonList(ctx context.Context, page int, hooks FetchHooks)
	FetchPokemonInfo(ctx context.Context, name string) (*PokemonInfo, error)

	// Invalidate drops every cached page and detail record
	Invalidate()
}
