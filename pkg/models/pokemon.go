package models

// PokemonSummary is one entry of the paginated pokemon index.
type PokemonSummary struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	Generation int    `json:"generation"`
}

// PokemonListResponse is the paginated pokemon index response.
type PokemonListResponse struct {
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
	Source  string           `json:"source"`
	Results []PokemonSummary `json:"results"`
}

// MoveSummary is one entry of the paginated move index.
type MoveSummary struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// MoveListResponse is the paginated move index response.
type MoveListResponse struct {
	Total   int           `json:"total"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
	Source  string        `json:"source"`
	Results []MoveSummary `json:"results"`
}

// PokemonDetailResponse is the single-pokemon detail view.
type PokemonDetailResponse struct {
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
	Generation int                `json:"generation"`
	Types      []string           `json:"types"`
	Stats      EvolutionStatsDto  `json:"stats"`
	Assets     EvolutionAssetsDto `json:"assets"`
}
