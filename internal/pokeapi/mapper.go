package pokeapi

import (
	"sort"

	"github.com/mmcdole/pokedex/internal/domain"
)

// MapPokemonList converts a list response into catalog entries stamped with page
func MapPokemonList(results []NamedResource, page int) []domain.Pokemon {
	items := make([]domain.Pokemon, 0, len(results))
	for _, r := range results {
		items = append(items, domain.Pokemon{
			Page: page,
			Name: r.Name,
			URL:  r.URL,
		})
	}
	return items
}

// MapPokemonInfo converts a detail response into a domain record
func MapPokemonInfo(p *PokemonResponse) *domain.PokemonInfo {
	slots := make([]TypeSlot, len(p.Types))
	copy(slots, p.Types)
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Slot < slots[j].Slot
	})

	types := make([]string, 0, len(slots))
	for _, s := range slots {
		types = append(types, s.Type.Name)
	}

	stats := make([]domain.Stat, 0, len(p.Stats))
	for _, s := range p.Stats {
		stats = append(stats, domain.Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}

	return &domain.PokemonInfo{
		ID:             p.ID,
		Name:           p.Name,
		Height:         p.Height,
		Weight:         p.Weight,
		BaseExperience: p.BaseExperience,
		Types:          types,
		Stats:          stats,
	}
}
