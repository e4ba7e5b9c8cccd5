package evolution

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/arturpasiut/poke-sky-api/pkg/models"
	"github.com/arturpasiut/poke-sky-api/pkg/pokeapi"
)

// BuildAssetBundle selects a stage's display sprite by priority
// (front_default, home, dream world, official artwork) and always carries the
// locally-served fallback path. Gif stays nil; the upstream shape has no
// animated variant worth exposing.
func BuildAssetBundle(pokemonID int64, pokemon *pokeapi.Pokemon) models.EvolutionAssetsDto {
	assets := models.EvolutionAssetsDto{
		Fallback: fmt.Sprintf("/images/pokemon/%d.png", pokemonID),
	}
	if pokemon == nil {
		return assets
	}

	sprites := pokemon.Sprites
	switch {
	case sprites.FrontDefault != nil:
		assets.Sprite = sprites.FrontDefault
	case sprites.Other != nil && sprites.Other.Home.FrontDefault != nil:
		assets.Sprite = sprites.Other.Home.FrontDefault
	case sprites.Other != nil && sprites.Other.DreamWorld.FrontDefault != nil:
		assets.Sprite = sprites.Other.DreamWorld.FrontDefault
	case sprites.Other != nil && sprites.Other.OfficialArtwork.FrontDefault != nil:
		assets.Sprite = sprites.Other.OfficialArtwork.FrontDefault
	}

	return assets
}

// BuildStats maps the upstream base stats by stat name. A missing pokemon
// detail yields an empty map, not nil, so the JSON field stays an object.
func BuildStats(pokemon *pokeapi.Pokemon) models.EvolutionStatsDto {
	stats := models.EvolutionStatsDto{}
	if pokemon == nil {
		return stats
	}
	for _, s := range pokemon.Stats {
		stats[s.Stat.Name] = s.BaseStat
	}
	return stats
}

// BuildTypeList extracts the stage's type names in slot order.
func BuildTypeList(pokemon *pokeapi.Pokemon) []string {
	if pokemon == nil {
		return []string{}
	}
	types := make([]string, 0, len(pokemon.Types))
	for _, t := range pokemon.Types {
		types = append(types, t.Type.Name)
	}
	return types
}

// BuildChainDto assembles the display-ready chain from the raw graph and the
// per-species details fetched by the service. Species missing from pokemonMap
// degrade to empty types/stats and a fallback-only asset bundle instead of
// failing the chain. The returned branch paths feed the filter engine.
func BuildChainDto(chain *pokeapi.EvolutionChain, pokemonMap map[int64]*pokeapi.Pokemon) (*models.EvolutionChainDto, []BranchPath, error) {
	if chain == nil || chain.Chain == nil {
		return nil, nil, errors.New("evolution chain has no root node")
	}

	branches := CollectBranchPaths(chain.Chain)
	accumulators := BuildStageAccumulators(branches)
	if len(accumulators) == 0 {
		return nil, nil, errors.New("evolution chain has no resolvable stages")
	}

	ordered := make([]*StageAccumulator, 0, len(accumulators))
	for _, stage := range accumulators {
		ordered = append(ordered, stage)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Order != ordered[j].Order {
			return ordered[i].Order < ordered[j].Order
		}
		return ordered[i].PokemonID < ordered[j].PokemonID
	})

	stages := make([]models.EvolutionStageDto, 0, len(ordered))
	for _, acc := range ordered {
		pokemon := pokemonMap[acc.PokemonID]
		stages = append(stages, models.EvolutionStageDto{
			StageID:      fmt.Sprintf("stage-%d", acc.PokemonID),
			PokemonID:    acc.PokemonID,
			Name:         acc.Name,
			Order:        acc.Order,
			Types:        BuildTypeList(pokemon),
			Generation:   GenerationForPokemonID(acc.PokemonID),
			BranchIDs:    acc.BranchIDs,
			Requirements: ToRequirements(acc),
			Assets:       BuildAssetBundle(acc.PokemonID, pokemon),
			Stats:        BuildStats(pokemon),
		})
	}

	branchDtos := make([]models.EvolutionBranchDto, 0, len(branches))
	for _, branch := range branches {
		dto := models.EvolutionBranchDto{
			ID:    branch.ID,
			Label: branch.Label,
		}
		if len(branch.Nodes) > 1 {
			desc := "Gałąź rozwoju prowadząca do " + branch.Label
			dto.Description = &desc
		}
		branchDtos = append(branchDtos, dto)
	}

	var summary string
	if len(branches) > 1 {
		summary = fmt.Sprintf("Łańcuch ewolucji z %d alternatywnymi ścieżkami rozwoju", len(branches))
	} else {
		summary = fmt.Sprintf("Łańcuch ewolucji składa się z %d etapów", len(stages))
	}

	lead := stages[0]
	for _, stage := range stages {
		if stage.Order == 1 {
			lead = stage
			break
		}
	}

	chainID := "unknown"
	if chain.ID > 0 {
		chainID = strconv.FormatInt(chain.ID, 10)
	} else if lead.PokemonID > 0 {
		chainID = strconv.FormatInt(lead.PokemonID, 10)
	}

	dto := &models.EvolutionChainDto{
		ChainID:       chainID,
		Title:         "Ewolucje " + FormatLabel(lead.Name),
		LeadPokemonID: lead.PokemonID,
		LeadName:      lead.Name,
		Summary:       summary,
		Stages:        stages,
		Branches:      branchDtos,
	}

	return dto, branches, nil
}
