package evolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturpasiut/poke-sky-api/pkg/pokeapi"
)

func strPtr(s string) *string { return &s }

func pokemonDetail(id int64, name string, types ...string) *pokeapi.Pokemon {
	typeList := make([]pokeapi.PokemonType, 0, len(types))
	for i, t := range types {
		typeList = append(typeList, pokeapi.PokemonType{
			Slot: i + 1,
			Type: pokeapi.NamedResource{Name: t},
		})
	}
	return &pokeapi.Pokemon{
		ID:    id,
		Name:  name,
		Types: typeList,
		Stats: []pokeapi.PokemonStat{
			{BaseStat: 45, Stat: pokeapi.NamedResource{Name: "hp"}},
			{BaseStat: 49, Stat: pokeapi.NamedResource{Name: "attack"}},
		},
		Sprites: pokeapi.SpriteSet{
			FrontDefault: strPtr("https://sprites.example/" + name + ".png"),
		},
	}
}

func linearChain() *pokeapi.EvolutionChain {
	root := chainNode(1, "bulbasaur",
		chainNodeWithDetails(2, "ivysaur", []pokeapi.EvolutionDetail{levelUpDetail(16)},
			chainNodeWithDetails(3, "venusaur", []pokeapi.EvolutionDetail{levelUpDetail(32)})))
	return &pokeapi.EvolutionChain{ID: 1, Chain: &root}
}

func branchingChain() *pokeapi.EvolutionChain {
	root := chainNode(133, "eevee",
		chainNodeWithDetails(134, "vaporeon", []pokeapi.EvolutionDetail{itemDetail("water-stone")}),
		chainNodeWithDetails(135, "jolteon", []pokeapi.EvolutionDetail{itemDetail("thunder-stone")}))
	return &pokeapi.EvolutionChain{ID: 67, Chain: &root}
}

func linearPokemonMap() map[int64]*pokeapi.Pokemon {
	return map[int64]*pokeapi.Pokemon{
		1: pokemonDetail(1, "bulbasaur", "grass", "poison"),
		2: pokemonDetail(2, "ivysaur", "grass", "poison"),
		3: pokemonDetail(3, "venusaur", "grass", "poison"),
	}
}

func TestBuildChainDtoLinear(t *testing.T) {
	dto, branches, err := BuildChainDto(linearChain(), linearPokemonMap())
	require.NoError(t, err)
	require.Len(t, branches, 1)

	assert.Equal(t, "1", dto.ChainID)
	assert.Equal(t, int64(1), dto.LeadPokemonID)
	assert.Equal(t, "bulbasaur", dto.LeadName)
	assert.Equal(t, "Ewolucje Bulbasaur", dto.Title)
	assert.Equal(t, "Łańcuch ewolucji składa się z 3 etapów", dto.Summary)

	require.Len(t, dto.Stages, 3)
	assert.Equal(t, "Forma startowa", dto.Stages[0].Requirements[0].Summary)
	assert.Contains(t, dto.Stages[1].Requirements[0].Summary, "16")
	assert.Contains(t, dto.Stages[2].Requirements[0].Summary, "32")

	assert.Equal(t, []string{"grass", "poison"}, dto.Stages[0].Types)
	assert.Equal(t, 1, dto.Stages[0].Generation)
	require.Len(t, dto.Branches, 1)
}

func TestBuildChainDtoBranching(t *testing.T) {
	pokemonMap := map[int64]*pokeapi.Pokemon{
		133: pokemonDetail(133, "eevee", "normal"),
		134: pokemonDetail(134, "vaporeon", "water"),
		135: pokemonDetail(135, "jolteon", "electric"),
	}

	dto, branches, err := BuildChainDto(branchingChain(), pokemonMap)
	require.NoError(t, err)
	require.Len(t, branches, 2)

	assert.Equal(t, "67", dto.ChainID)
	assert.Equal(t, "Łańcuch ewolucji z 2 alternatywnymi ścieżkami rozwoju", dto.Summary)
	require.Len(t, dto.Stages, 3)
	require.Len(t, dto.Branches, 2)

	// only genuine forks carry a description
	require.NotNil(t, dto.Branches[0].Description)
	assert.Contains(t, *dto.Branches[0].Description, "Vaporeon")
}

func TestBuildChainDtoNoDuplicateStages(t *testing.T) {
	dto, _, err := BuildChainDto(branchingChain(), nil)
	require.NoError(t, err)

	seen := map[int64]bool{}
	orderOne := 0
	for _, stage := range dto.Stages {
		assert.False(t, seen[stage.PokemonID], "duplicate stage %d", stage.PokemonID)
		seen[stage.PokemonID] = true
		if stage.Order == 1 {
			orderOne++
		}
	}
	assert.Equal(t, 1, orderOne)
}

func TestBuildChainDtoMissingDetailDegrades(t *testing.T) {
	pokemonMap := linearPokemonMap()
	delete(pokemonMap, 2)

	dto, _, err := BuildChainDto(linearChain(), pokemonMap)
	require.NoError(t, err)

	require.Len(t, dto.Stages, 3)
	degraded := dto.Stages[1]
	assert.Equal(t, int64(2), degraded.PokemonID)
	assert.Empty(t, degraded.Types)
	assert.Empty(t, degraded.Stats)
	assert.Nil(t, degraded.Assets.Sprite)
	assert.Equal(t, "/images/pokemon/2.png", degraded.Assets.Fallback)
	// requirements survive without detail data
	assert.Contains(t, degraded.Requirements[0].Summary, "16")
}

func TestBuildChainDtoMissingRoot(t *testing.T) {
	_, _, err := BuildChainDto(&pokeapi.EvolutionChain{ID: 1}, nil)
	assert.Error(t, err)

	_, _, err = BuildChainDto(nil, nil)
	assert.Error(t, err)
}

func TestBuildAssetBundleSpritePriority(t *testing.T) {
	// front_default wins when present
	p := pokemonDetail(25, "pikachu", "electric")
	assets := BuildAssetBundle(25, p)
	require.NotNil(t, assets.Sprite)
	assert.Contains(t, *assets.Sprite, "pikachu")
	assert.Equal(t, "/images/pokemon/25.png", assets.Fallback)
	assert.Nil(t, assets.Gif)

	// home sprite is next in line
	p.Sprites = pokeapi.SpriteSet{
		Other: &pokeapi.OtherSprites{
			Home:            pokeapi.SpriteImage{FrontDefault: strPtr("home.png")},
			OfficialArtwork: pokeapi.SpriteImage{FrontDefault: strPtr("art.png")},
		},
	}
	assets = BuildAssetBundle(25, p)
	require.NotNil(t, assets.Sprite)
	assert.Equal(t, "home.png", *assets.Sprite)

	// official artwork is the last sprite option
	p.Sprites = pokeapi.SpriteSet{
		Other: &pokeapi.OtherSprites{
			OfficialArtwork: pokeapi.SpriteImage{FrontDefault: strPtr("art.png")},
		},
	}
	assets = BuildAssetBundle(25, p)
	require.NotNil(t, assets.Sprite)
	assert.Equal(t, "art.png", *assets.Sprite)

	// no sprites at all leaves only the fallback
	assets = BuildAssetBundle(25, &pokeapi.Pokemon{ID: 25})
	assert.Nil(t, assets.Sprite)
	assert.Equal(t, "/images/pokemon/25.png", assets.Fallback)
}

func TestBuildChainDtoFallbackChainID(t *testing.T) {
	chain := linearChain()
	chain.ID = 0

	dto, _, err := BuildChainDto(chain, linearPokemonMap())
	require.NoError(t, err)
	assert.Equal(t, "1", dto.ChainID)
}
