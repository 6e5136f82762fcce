package pokeapi

// PokemonListResponse is the paginated catalog envelope returned by
// /pokemon?limit=&offset=
type PokemonListResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// NamedResource is a name plus the URL of the full resource
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PokemonResponse is the subset of /pokemon/{name} we consume
type PokemonResponse struct {
	ID             int         `json:"id"`
	Name           string      `json:"name"`
	Height         int         `json:"height"`
	Weight         int         `json:"weight"`
	BaseExperience int         `json:"base_experience"`
	Types          []TypeSlot  `json:"types"`
	Stats          []StatEntry `json:"stats"`
}

// TypeSlot is one entry of the types array; Slot orders primary/secondary
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// StatEntry is one base stat
type StatEntry struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}
