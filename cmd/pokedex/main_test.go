package main

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/repository"
	"github.com/mmcdole/pokedex/internal/search"
	"github.com/mmcdole/pokedex/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	items []domain.Pokemon
	err   string
}

func (s *stubRepo) FetchPokemonList(ctx context.Context, page int, hooks domain.FetchHooks) {
	hooks.Start()
	defer hooks.Complete()
	if s.err != "" {
		hooks.Fail(s.err)
		return
	}
	hooks.Items(s.items)
}

func (s *stubRepo) FetchPokemonInfo(ctx context.Context, name string) (*domain.PokemonInfo, error) {
	return nil, domain.ErrPokemonNotFound
}

func (s *stubRepo) Invalidate() {}

type stubSource []domain.Pokemon

func (s stubSource) All() []domain.Pokemon { return s }

func mon(n int, name string) domain.Pokemon {
	return domain.Pokemon{Name: name, URL: fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", n)}
}

func TestPrintFirstPage(t *testing.T) {
	var buf bytes.Buffer
	repo := &stubRepo{items: []domain.Pokemon{mon(1, "bulbasaur"), mon(2, "ivysaur")}}

	require.NoError(t, printFirstPage(&buf, repo, time.Second))
	assert.Equal(t, "1\tbulbasaur\n2\tivysaur\n", buf.String())
}

func TestPrintFirstPageError(t *testing.T) {
	var buf bytes.Buffer
	err := printFirstPage(&buf, &stubRepo{err: "catalog server is unreachable"}, time.Second)

	assert.ErrorContains(t, err, "catalog server is unreachable")
	assert.Empty(t, buf.String())
}

func TestPrintSearch(t *testing.T) {
	var buf bytes.Buffer
	svc := search.NewService(stubSource{mon(25, "pikachu"), mon(26, "raichu")}, nil)

	require.NoError(t, printSearch(&buf, svc, "pika"))
	assert.Equal(t, "25\tPikachu\n", buf.String())

	assert.Error(t, printSearch(&buf, svc, "zzz"))
}

// shortRemote serves a single short page
type shortRemote struct{}

func (shortRemote) FetchPokemonList(ctx context.Context, page int) ([]domain.Pokemon, error) {
	if page > 0 {
		return nil, nil
	}
	return []domain.Pokemon{mon(1, "bulbasaur"), mon(2, "ivysaur"), mon(3, "venusaur")}, nil
}

func (shortRemote) FetchPokemonInfo(ctx context.Context, name string) (*domain.PokemonInfo, error) {
	return nil, domain.ErrPokemonNotFound
}

func TestSyncCatalog(t *testing.T) {
	s, err := store.NewCatalogStore("", 16)
	require.NoError(t, err)
	repo := repository.NewMainRepository(shortRemote{}, s, nil)

	var buf bytes.Buffer
	require.NoError(t, syncCatalog(&buf, repo))

	assert.Contains(t, buf.String(), "Syncing catalog... 3 entries")
	assert.Contains(t, buf.String(), "✓ Synced 3 entries")
	assert.Len(t, s.All(), 3)
}
