package repository

import (
	"context"
	"fmt"

	"github.com/mmcdole/pokedex/internal/domain"
)

// maxSyncPages bounds a sync against an API that never returns a short page
const maxSyncPages = 500

// fetchPages walks pages from 0 until a page comes back shorter than
// pageSize, handing each to onPage
func fetchPages[T any](
	ctx context.Context,
	fetch func(ctx context.Context, page int) ([]T, error),
	pageSize int,
	onPage func(page int, items []T) error,
) (int, error) {
	pages := 0
	for page := 0; page < maxSyncPages; page++ {
		select {
		case <-ctx.Done():
			return pages, ctx.Err()
		default:
		}

		items, err := fetch(ctx, page)
		if err != nil {
			return pages, fmt.Errorf("page %d: %w", page, err)
		}

		if len(items) > 0 {
			if err := onPage(page, items); err != nil {
				return pages, err
			}
			pages++
		}

		if len(items) < pageSize {
			break
		}
	}
	return pages, nil
}

// SyncAll stores every catalog page locally so offline search sees the whole
// catalog. Pages already in the store are not refetched. onProgress, if set,
// receives the running entry count.
func (r *MainRepository) SyncAll(ctx context.Context, onProgress func(loaded int)) (int, error) {
	loaded := 0

	fetch := func(ctx context.Context, page int) ([]domain.Pokemon, error) {
		if cached, ok := r.store.GetPage(page); ok && len(cached) > 0 {
			FetchTotal.WithLabelValues(kindList, sourceStore).Inc()
			return cached, nil
		}
		items, err := r.remote.FetchPokemonList(ctx, page)
		if err != nil {
			FetchErrors.WithLabelValues(kindList).Inc()
			return nil, err
		}
		FetchTotal.WithLabelValues(kindList, sourceNetwork).Inc()
		for i := range items {
			items[i].Page = page
		}
		return items, nil
	}

	_, err := fetchPages(ctx, fetch, domain.PageSize, func(page int, items []domain.Pokemon) error {
		if err := r.store.SavePage(page, items); err != nil {
			return fmt.Errorf("failed to save page %d: %w", page, err)
		}
		loaded += len(items)
		if onProgress != nil {
			onProgress(loaded)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("catalog sync failed", "loaded", loaded, "error", err)
		return loaded, err
	}

	r.logger.Info("catalog synced", "entries", loaded)
	return loaded, nil
}
