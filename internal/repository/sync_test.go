package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedRemote serves total entries in pages of domain.PageSize
type pagedRemote struct {
	total   int
	calls   []int
	failOn  int
	failErr error
}

func (p *pagedRemote) FetchPokemonList(ctx context.Context, page int) ([]domain.Pokemon, error) {
	p.calls = append(p.calls, page)
	if p.failErr != nil && page == p.failOn {
		return nil, p.failErr
	}
	var items []domain.Pokemon
	for n := page*domain.PageSize + 1; n <= min((page+1)*domain.PageSize, p.total); n++ {
		items = append(items, domain.Pokemon{
			Name: fmt.Sprintf("mon%d", n),
			URL:  fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", n),
		})
	}
	return items, nil
}

func (p *pagedRemote) FetchPokemonInfo(ctx context.Context, name string) (*domain.PokemonInfo, error) {
	return nil, domain.ErrPokemonNotFound
}

func TestSyncAllStopsAtShortPage(t *testing.T) {
	remote := &pagedRemote{total: 45}
	s, err := store.NewCatalogStore("", 64)
	require.NoError(t, err)
	repo := NewMainRepository(remote, s, nil)

	var progress []int
	loaded, err := repo.SyncAll(context.Background(), func(n int) { progress = append(progress, n) })

	require.NoError(t, err)
	assert.Equal(t, 45, loaded)
	assert.Equal(t, []int{20, 40, 45}, progress)
	assert.Equal(t, []int{0, 1, 2}, remote.calls)
	assert.Len(t, s.All(), 45)
}

func TestSyncAllExactMultipleProbesOneEmptyPage(t *testing.T) {
	remote := &pagedRemote{total: 40}
	s, err := store.NewCatalogStore("", 64)
	require.NoError(t, err)

	loaded, err := NewMainRepository(remote, s, nil).SyncAll(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 40, loaded)
	assert.Equal(t, []int{0, 1, 2}, remote.calls)
}

func TestSyncAllSkipsCachedPages(t *testing.T) {
	remote := &pagedRemote{total: 30}
	s, err := store.NewCatalogStore("", 64)
	require.NoError(t, err)
	repo := NewMainRepository(remote, s, nil)

	var r recorder
	repo.FetchPokemonList(context.Background(), 0, r.hooks())
	remote.calls = nil

	loaded, err := repo.SyncAll(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 30, loaded)
	assert.Equal(t, []int{1}, remote.calls)
}

func TestSyncAllReportsFailingPage(t *testing.T) {
	remote := &pagedRemote{total: 100, failOn: 2, failErr: domain.ErrRateLimited}
	s, err := store.NewCatalogStore("", 64)
	require.NoError(t, err)

	loaded, err := NewMainRepository(remote, s, nil).SyncAll(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.ErrorContains(t, err, "page 2")
	assert.Equal(t, 40, loaded)
}

func TestSyncAllHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := store.NewCatalogStore("", 64)
	require.NoError(t, err)

	_, err = NewMainRepository(&pagedRemote{total: 100}, s, nil).SyncAll(ctx, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}
