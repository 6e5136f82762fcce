package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PageSize is the number of entries the catalog API returns per page
const PageSize = 20

const artworkURLFormat = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%s.png"

// Pokemon is one catalog entry as listed by the paginated catalog endpoint.
// Name is the identity key; equality covers every field.
type Pokemon struct {
	Page int    `json:"page"` // Page the entry was fetched on
	Name string `json:"name"` // Stable identity key
	URL  string `json:"url"`  // Detail resource URL (ends with the numeric index)
}

// Key returns the identity key used to match rows across list versions
func (p Pokemon) Key() string {
	return p.Name
}

// Index returns the numeric catalog index parsed from the resource URL
func (p Pokemon) Index() string {
	trimmed := strings.TrimRight(p.URL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// Number returns the catalog index as an int (0 if unparseable)
func (p Pokemon) Number() int {
	n, err := strconv.Atoi(p.Index())
	if err != nil {
		return 0
	}
	return n
}

// ImageURL returns the official artwork URL for this entry
func (p Pokemon) ImageURL() string {
	return fmt.Sprintf(artworkURLFormat, p.Index())
}

// DisplayName returns the name with its first letter upper-cased
func (p Pokemon) DisplayName() string {
	if p.Name == "" {
		return ""
	}
	return strings.ToUpper(p.Name[:1]) + p.Name[1:]
}

// PokemonInfo holds the detail record shown when a row is activated
type PokemonInfo struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Height         int      `json:"height"` // decimetres
	Weight         int      `json:"weight"` // hectograms
	BaseExperience int      `json:"base_experience"`
	Types          []string `json:"types"`
	Stats          []Stat   `json:"stats"`
}

// Stat is a single base stat (hp, attack, ...)
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// HeightMeters returns the height in metres
func (i PokemonInfo) HeightMeters() float64 {
	return float64(i.Height) / 10
}

// WeightKilograms returns the weight in kilograms
func (i PokemonInfo) WeightKilograms() float64 {
	return float64(i.Weight) / 10
}
