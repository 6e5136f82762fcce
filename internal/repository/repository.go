// Package repository serves catalog pages and detail records cache-first:
// the local store answers when it can, the network fills the gaps.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/pokedex/internal/domain"
)

var _ domain.PokedexRepository = (*MainRepository)(nil)

// MainRepository combines the remote catalog with the local store
type MainRepository struct {
	remote domain.CatalogRepository
	store  domain.Store
	logger *slog.Logger
}

// NewMainRepository creates a repository over remote and store
func NewMainRepository(remote domain.CatalogRepository, store domain.Store, logger *slog.Logger) *MainRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &MainRepository{
		remote: remote,
		store:  store,
		logger: logger,
	}
}

// FetchPokemonList reports every entry on pages 0..page through hooks.
// The result is cumulative and assembled page by page: any page the store
// no longer holds (memory-only mode evicts) is fetched again and saved before
// the list is emitted. OnComplete is always the last hook called, including
// after OnError.
func (r *MainRepository) FetchPokemonList(ctx context.Context, page int, hooks domain.FetchHooks) {
	start := time.Now()
	hooks.Start()
	defer hooks.Complete()
	defer func() {
		FetchDuration.WithLabelValues(kindList).Observe(time.Since(start).Seconds())
	}()

	if page < 0 {
		hooks.Fail(fmt.Sprintf("invalid page %d", page))
		return
	}

	var (
		all      []domain.Pokemon
		networks int
	)
	for p := 0; p <= page; p++ {
		items, fromNetwork, err := r.loadPage(ctx, p)
		if err != nil {
			r.logger.Error("failed to fetch page", "page", p, "requested", page, "error", err)
			FetchErrors.WithLabelValues(kindList).Inc()
			hooks.Fail(err.Error())
			return
		}
		if fromNetwork {
			networks++
		}
		all = append(all, items...)
	}

	if networks == 0 {
		r.logger.Debug("pages served from store", "page", page, "count", len(all))
		FetchTotal.WithLabelValues(kindList, sourceStore).Inc()
	} else {
		r.logger.Info("pages fetched", "page", page, "fetched", networks, "count", len(all))
		FetchTotal.WithLabelValues(kindList, sourceNetwork).Inc()
	}
	hooks.Items(all)
}

// loadPage returns one page from the store, or from the network (saved on
// the way through) when the store has nothing for it
func (r *MainRepository) loadPage(ctx context.Context, page int) ([]domain.Pokemon, bool, error) {
	if cached, ok := r.store.GetPage(page); ok && len(cached) > 0 {
		return cached, false, nil
	}

	items, err := r.remote.FetchPokemonList(ctx, page)
	if err != nil {
		return nil, false, err
	}
	for i := range items {
		items[i].Page = page
	}
	if err := r.store.SavePage(page, items); err != nil {
		// Still usable for this session; the next launch refetches
		r.logger.Warn("failed to save page", "page", page, "error", err)
	}
	return items, true, nil
}

// FetchPokemonInfo returns the detail record for name, store first
func (r *MainRepository) FetchPokemonInfo(ctx context.Context, name string) (*domain.PokemonInfo, error) {
	start := time.Now()
	defer func() {
		FetchDuration.WithLabelValues(kindInfo).Observe(time.Since(start).Seconds())
	}()

	if info, ok := r.store.GetInfo(name); ok {
		FetchTotal.WithLabelValues(kindInfo, sourceStore).Inc()
		return info, nil
	}

	info, err := r.remote.FetchPokemonInfo(ctx, name)
	if err != nil {
		FetchErrors.WithLabelValues(kindInfo).Inc()
		return nil, err
	}

	if err := r.store.SaveInfo(info); err != nil {
		r.logger.Warn("failed to save info", "name", name, "error", err)
	}
	FetchTotal.WithLabelValues(kindInfo, sourceNetwork).Inc()
	return info, nil
}

// Invalidate drops everything the store holds
func (r *MainRepository) Invalidate() {
	r.logger.Info("invalidating catalog store")
	r.store.InvalidateAll()
}
