package search

import (
	"fmt"
	"testing"

	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource []domain.Pokemon

func (s staticSource) All() []domain.Pokemon { return s }

func catalog(names ...string) staticSource {
	out := make(staticSource, len(names))
	for i, n := range names {
		out[i] = domain.Pokemon{
			Name: n,
			URL:  fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", i+1),
		}
	}
	return out
}

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Pokemon.Name
	}
	return out
}

func TestFindRanksExactThenPrefix(t *testing.T) {
	svc := NewService(catalog("pikachu", "raichu", "pichu", "pika"), nil)

	got := svc.Find("pika", 0)

	require.NotEmpty(t, got)
	assert.Equal(t, "pika", got[0].Pokemon.Name)
	assert.Equal(t, "pikachu", got[1].Pokemon.Name)
	assert.NotContains(t, names(got), "raichu")
}

func TestFindIsCaseInsensitive(t *testing.T) {
	svc := NewService(catalog("bulbasaur", "ivysaur"), nil)

	assert.Equal(t, []string{"bulbasaur"}, names(svc.Find("BULBA", 0)))
}

func TestFindSubsequence(t *testing.T) {
	svc := NewService(catalog("charmander", "charmeleon", "squirtle"), nil)

	got := names(svc.Find("chmdr", 0))
	assert.Equal(t, []string{"charmander"}, got)
}

func TestFindByIndex(t *testing.T) {
	svc := NewService(catalog("bulbasaur", "ivysaur", "venusaur"), nil)

	got := svc.Find("2", 0)
	require.NotEmpty(t, got)
	assert.Equal(t, "ivysaur", got[0].Pokemon.Name)
}

func TestFindLimit(t *testing.T) {
	svc := NewService(catalog("aa", "aab", "aabc", "aabcd"), nil)

	assert.Len(t, svc.Find("aa", 2), 2)
}

func TestFindEmpty(t *testing.T) {
	svc := NewService(catalog("bulbasaur"), nil)
	assert.Nil(t, svc.Find("   ", 0))

	empty := NewService(staticSource(nil), nil)
	assert.Nil(t, empty.Find("bulba", 0))
}
