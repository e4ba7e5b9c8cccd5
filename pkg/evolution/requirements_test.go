package evolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturpasiut/poke-sky-api/pkg/pokeapi"
)

func intPtr(v int) *int { return &v }

func TestDescribeLevelUp(t *testing.T) {
	summary := describeEvolutionDetail(levelUpDetail(16))
	assert.Equal(t, "Poziom 16", summary)
}

func TestDescribeTradeWinsOverItem(t *testing.T) {
	detail := pokeapi.EvolutionDetail{
		Trigger: &pokeapi.NamedResource{Name: "trade"},
		Item:    &pokeapi.NamedResource{Name: "metal-coat"},
	}
	summary := describeEvolutionDetail(detail)
	assert.Contains(t, summary, "Wymiana")
	assert.NotContains(t, summary, "Użyj")
}

func TestDescribeStoneItems(t *testing.T) {
	assert.Equal(t, "Użyj Wodny Kamień", describeEvolutionDetail(itemDetail("water-stone")))
	assert.Equal(t, "Użyj Piorunowy Kamień", describeEvolutionDetail(itemDetail("thunder-stone")))
	assert.Equal(t, "Użyj Ognisty Kamień", describeEvolutionDetail(itemDetail("fire-stone")))
	assert.Equal(t, "Użyj Liściasty Kamień", describeEvolutionDetail(itemDetail("leaf-stone")))
	assert.Equal(t, "Użyj Księżycowy Kamień", describeEvolutionDetail(itemDetail("moon-stone")))
	assert.Equal(t, "Użyj Słoneczny Kamień", describeEvolutionDetail(itemDetail("sun-stone")))
}

func TestDescribeUnknownItemFallsBackToLabel(t *testing.T) {
	assert.Equal(t, "Użyj Metal Coat", describeEvolutionDetail(itemDetail("metal-coat")))
}

func TestDescribeSupplementaryClauses(t *testing.T) {
	detail := pokeapi.EvolutionDetail{
		Trigger:      &pokeapi.NamedResource{Name: "level-up"},
		MinLevel:     intPtr(25),
		TimeOfDay:    "night",
		MinHappiness: intPtr(220),
	}
	summary := describeEvolutionDetail(detail)
	assert.Equal(t, "Poziom 25, Pora dnia: Noc, Przyjaźń min. 220", summary)
}

func TestDescribeGenderAndStats(t *testing.T) {
	female := pokeapi.EvolutionDetail{
		Trigger: &pokeapi.NamedResource{Name: "level-up"},
		Gender:  intPtr(1),
	}
	assert.Equal(t, "Płeć: tylko samice", describeEvolutionDetail(female))

	male := pokeapi.EvolutionDetail{Gender: intPtr(2)}
	assert.Equal(t, "Płeć: tylko samce", describeEvolutionDetail(male))

	tyrogue := pokeapi.EvolutionDetail{
		Trigger:               &pokeapi.NamedResource{Name: "level-up"},
		MinLevel:              intPtr(20),
		RelativePhysicalStats: intPtr(1),
	}
	assert.Equal(t, "Poziom 20, Atak większy niż Obrona", describeEvolutionDetail(tyrogue))

	equal := pokeapi.EvolutionDetail{RelativePhysicalStats: intPtr(0)}
	assert.Equal(t, "Atak równy Obronie", describeEvolutionDetail(equal))
}

func TestDescribeExoticConditions(t *testing.T) {
	sliggoo := pokeapi.EvolutionDetail{
		Trigger:            &pokeapi.NamedResource{Name: "level-up"},
		MinLevel:           intPtr(50),
		NeedsOverworldRain: true,
	}
	assert.Equal(t, "Poziom 50, Deszcz w świecie gry", describeEvolutionDetail(sliggoo))

	inkay := pokeapi.EvolutionDetail{
		Trigger:        &pokeapi.NamedResource{Name: "level-up"},
		MinLevel:       intPtr(30),
		TurnUpsideDown: true,
	}
	assert.Equal(t, "Poziom 30, Obróć urządzenie do góry nogami", describeEvolutionDetail(inkay))

	shelmet := pokeapi.EvolutionDetail{
		Trigger:      &pokeapi.NamedResource{Name: "trade"},
		TradeSpecies: &pokeapi.NamedResource{Name: "karrablast"},
	}
	assert.Equal(t, "Wymiana, Wymiana za Karrablast", describeEvolutionDetail(shelmet))

	mantyke := pokeapi.EvolutionDetail{
		Trigger:      &pokeapi.NamedResource{Name: "level-up"},
		PartySpecies: &pokeapi.NamedResource{Name: "remoraid"},
	}
	assert.Equal(t, "W drużynie: Remoraid", describeEvolutionDetail(mantyke))

	pancham := pokeapi.EvolutionDetail{
		Trigger:   &pokeapi.NamedResource{Name: "level-up"},
		MinLevel:  intPtr(32),
		PartyType: &pokeapi.NamedResource{Name: "dark"},
	}
	assert.Equal(t, "Poziom 32, W drużynie Pokémon typu: Dark", describeEvolutionDetail(pancham))

	magnezone := pokeapi.EvolutionDetail{
		Trigger:  &pokeapi.NamedResource{Name: "level-up"},
		Location: &pokeapi.NamedResource{Name: "mount-coronet"},
	}
	assert.Equal(t, "Miejsce: Mount Coronet", describeEvolutionDetail(magnezone))

	sylveon := pokeapi.EvolutionDetail{
		Trigger:       &pokeapi.NamedResource{Name: "level-up"},
		MinAffection:  intPtr(2),
		KnownMoveType: &pokeapi.NamedResource{Name: "fairy"},
	}
	assert.Equal(t, "Znany ruch typu: Fairy, Uczucie min. 2", describeEvolutionDetail(sylveon))
}

func TestDescribeUnrecognizedFallsBack(t *testing.T) {
	assert.Equal(t, "Ewolucja", describeEvolutionDetail(pokeapi.EvolutionDetail{}))

	// a bare level-up with no level falls back to the trigger label
	withTrigger := pokeapi.EvolutionDetail{
		Trigger: &pokeapi.NamedResource{Name: "level-up"},
	}
	assert.Equal(t, "Level Up", describeEvolutionDetail(withTrigger))
}

func TestDescribeNonLevelTrigger(t *testing.T) {
	detail := pokeapi.EvolutionDetail{
		Trigger: &pokeapi.NamedResource{Name: "shed"},
	}
	assert.Equal(t, "Shed", describeEvolutionDetail(detail))
}

func TestToRequirementsBaseStage(t *testing.T) {
	stage := &StageAccumulator{
		PokemonID: 1,
		Order:     1,
		// trigger data on the root is ignored entirely
		Details: []pokeapi.EvolutionDetail{levelUpDetail(16)},
	}

	reqs := ToRequirements(stage)

	require.Len(t, reqs, 1)
	assert.Equal(t, "base", reqs[0].ID)
	assert.Equal(t, "Forma startowa", reqs[0].Summary)
}

func TestToRequirementsDeduplicates(t *testing.T) {
	stage := &StageAccumulator{
		PokemonID: 2,
		Order:     2,
		Details: []pokeapi.EvolutionDetail{
			levelUpDetail(16),
			levelUpDetail(16),
			itemDetail("water-stone"),
		},
	}

	reqs := ToRequirements(stage)

	require.Len(t, reqs, 2)
	assert.Equal(t, "detail-0", reqs[0].ID)
	assert.Equal(t, "Poziom 16", reqs[0].Summary)
	assert.Equal(t, "detail-1", reqs[1].ID)
	assert.Equal(t, "Użyj Wodny Kamień", reqs[1].Summary)
}

func TestToRequirementsEmptyDetailsFallsBack(t *testing.T) {
	stage := &StageAccumulator{PokemonID: 2, Order: 2}

	reqs := ToRequirements(stage)

	require.Len(t, reqs, 1)
	assert.Equal(t, "detail-0", reqs[0].ID)
	assert.Equal(t, "Ewolucja", reqs[0].Summary)
}
