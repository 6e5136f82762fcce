package domain

// Store handles the local catalog cache (BoltDB + memory).
// Pages are stored independently so a cumulative list can be rebuilt
// from whichever pages are still held.
type Store interface {
	// === Catalog pages ===
	GetPage(page int) ([]Pokemon, bool)
	SavePage(page int, items []Pokemon) error

	// All returns every cached entry in page order
	All() []Pokemon

	// === Detail records ===
	GetInfo(name string) (*PokemonInfo, bool)
	SaveInfo(info *PokemonInfo) error

	// === Invalidation ===
	InvalidateAll()

	Close() error
}
