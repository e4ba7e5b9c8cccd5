// Package models defines the API DTOs and persistence records shared across
// handlers, services and repositories.
package models

import (
	"time"

	"github.com/arturpasiut/poke-sky-api/pkg/database"
)

// EvolutionRequirementDto is one human-readable evolution condition. The
// summaries are rendered in Polish for direct display.
type EvolutionRequirementDto struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
}

// EvolutionAssetsDto carries the display images for a stage. Gif is reserved
// for animated sprites and is always null for now.
type EvolutionAssetsDto struct {
	Sprite   *string `json:"sprite"`
	Fallback string  `json:"fallback"`
	Gif      *string `json:"gif"`
}

// EvolutionStatsDto maps the upstream base stats by stat name.
type EvolutionStatsDto map[string]int

// EvolutionStageDto is one species in a resolved chain.
type EvolutionStageDto struct {
	StageID      string                    `json:"stageId"`
	PokemonID    int64                     `json:"pokemonId"`
	Name         string                    `json:"name"`
	Order        int                       `json:"order"`
	Types        []string                  `json:"types"`
	Generation   int                       `json:"generation"`
	BranchIDs    []string                  `json:"branchIds"`
	Requirements []EvolutionRequirementDto `json:"requirements"`
	Assets       EvolutionAssetsDto        `json:"assets"`
	Stats        EvolutionStatsDto         `json:"stats"`
}

// EvolutionBranchDto labels one root-to-leaf path through a branching chain.
type EvolutionBranchDto struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Description *string `json:"description"`
}

// EvolutionChainDto is the resolved, display-ready evolution chain.
type EvolutionChainDto struct {
	ChainID       string               `json:"chainId"`
	Title         string               `json:"title"`
	LeadPokemonID int64                `json:"leadPokemonId"`
	LeadName      string               `json:"leadName"`
	Summary       string               `json:"summary"`
	Stages        []EvolutionStageDto  `json:"stages"`
	Branches      []EvolutionBranchDto `json:"branches"`
}

// ChainRequest is the parsed query surface of the evolutions endpoint.
type ChainRequest struct {
	ChainID    *int64
	PokemonID  *int64
	Identifier string
	Type       string
	Generation *int
	Branching  string
}

// EvolutionChainCacheRecord is the Postgres row caching a resolved chain. The
// payload is the unfiltered DTO; filters are always applied on read paths,
// never baked into the cache.
type EvolutionChainCacheRecord struct {
	ChainID       int64                                `db:"chain_id"`
	LeadPokemonID int64                                `db:"lead_pokemon_id"`
	LeadName      string                               `db:"lead_name"`
	StageCount    int                                  `db:"stage_count"`
	BranchCount   int                                  `db:"branch_count"`
	Payload       database.JSONB[EvolutionChainDto]    `db:"payload"`
	Branches      database.JSONB[[]EvolutionBranchDto] `db:"branches"`
	ResolvedAt    time.Time                            `db:"resolved_at"`
	UpdatedAt     time.Time                            `db:"updated_at"`
}
