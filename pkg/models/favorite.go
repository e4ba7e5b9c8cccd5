package models

import "time"

// Favorite is one user-saved pokemon.
type Favorite struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	PokemonID int64     `json:"pokemonId" db:"pokemon_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// AddFavoriteRequest is the create-favorite request body.
type AddFavoriteRequest struct {
	PokemonID int64  `json:"pokemonId" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required,min=1,max=100"`
}

// FavoriteListResponse is the paginated favorites response.
type FavoriteListResponse struct {
	Total   int        `json:"total"`
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
	Results []Favorite `json:"results"`
}
