package evolution

import (
	"fmt"
	"strings"

	"github.com/arturpasiut/poke-sky-api/pkg/models"
	"github.com/arturpasiut/poke-sky-api/pkg/pokeapi"
)

// stoneLabels maps the common evolution stones to their Polish names. Items
// outside the map fall back to the formatted upstream slug.
var stoneLabels = map[string]string{
	"water-stone":   "Wodny Kamień",
	"thunder-stone": "Piorunowy Kamień",
	"fire-stone":    "Ognisty Kamień",
	"leaf-stone":    "Liściasty Kamień",
	"moon-stone":    "Księżycowy Kamień",
	"sun-stone":     "Słoneczny Kamień",
}

var timeOfDayLabels = map[string]string{
	"night": "Noc",
	"day":   "Dzień",
	"dusk":  "Zmierzch",
}

func itemLabel(item *pokeapi.NamedResource) string {
	if label, ok := stoneLabels[item.Name]; ok {
		return label
	}
	return FormatLabel(item.Name)
}

// describeEvolutionDetail renders one upstream evolution detail as a single
// Polish sentence fragment. The primary condition (trade, item, level, or the
// raw trigger) leads, supplementary conditions follow comma-separated.
func describeEvolutionDetail(detail pokeapi.EvolutionDetail) string {
	var parts []string

	switch {
	case detail.Trigger != nil && detail.Trigger.Name == "trade":
		parts = append(parts, "Wymiana")
	case detail.Item != nil:
		parts = append(parts, "Użyj "+itemLabel(detail.Item))
	case detail.Trigger != nil && detail.Trigger.Name == "level-up" && detail.MinLevel != nil:
		parts = append(parts, fmt.Sprintf("Poziom %d", *detail.MinLevel))
	case detail.Trigger != nil && detail.Trigger.Name != "level-up":
		parts = append(parts, FormatLabel(detail.Trigger.Name))
	}

	if label, ok := timeOfDayLabels[detail.TimeOfDay]; ok {
		parts = append(parts, "Pora dnia: "+label)
	}
	if detail.Gender != nil {
		switch *detail.Gender {
		case 1:
			parts = append(parts, "Płeć: tylko samice")
		case 2:
			parts = append(parts, "Płeć: tylko samce")
		}
	}
	if detail.HeldItem != nil {
		parts = append(parts, "Trzymany przedmiot: "+itemLabel(detail.HeldItem))
	}
	if detail.Location != nil {
		parts = append(parts, "Miejsce: "+FormatLabel(detail.Location.Name))
	}
	if detail.KnownMove != nil {
		parts = append(parts, "Znany ruch: "+FormatLabel(detail.KnownMove.Name))
	}
	if detail.KnownMoveType != nil {
		parts = append(parts, "Znany ruch typu: "+FormatLabel(detail.KnownMoveType.Name))
	}
	if detail.MinAffection != nil {
		parts = append(parts, fmt.Sprintf("Uczucie min. %d", *detail.MinAffection))
	}
	if detail.MinBeauty != nil {
		parts = append(parts, fmt.Sprintf("Piękno min. %d", *detail.MinBeauty))
	}
	if detail.MinHappiness != nil {
		parts = append(parts, fmt.Sprintf("Przyjaźń min. %d", *detail.MinHappiness))
	}
	if detail.RelativePhysicalStats != nil {
		switch *detail.RelativePhysicalStats {
		case 1:
			parts = append(parts, "Atak większy niż Obrona")
		case -1:
			parts = append(parts, "Atak mniejszy niż Obrona")
		case 0:
			parts = append(parts, "Atak równy Obronie")
		}
	}
	if detail.NeedsOverworldRain {
		parts = append(parts, "Deszcz w świecie gry")
	}
	if detail.TurnUpsideDown {
		parts = append(parts, "Obróć urządzenie do góry nogami")
	}
	if detail.TradeSpecies != nil {
		parts = append(parts, "Wymiana za "+FormatLabel(detail.TradeSpecies.Name))
	}
	if detail.PartySpecies != nil {
		parts = append(parts, "W drużynie: "+FormatLabel(detail.PartySpecies.Name))
	}
	if detail.PartyType != nil {
		parts = append(parts, "W drużynie Pokémon typu: "+FormatLabel(detail.PartyType.Name))
	}

	if len(parts) == 0 {
		if detail.Trigger != nil && detail.Trigger.Name != "" {
			return FormatLabel(detail.Trigger.Name)
		}
		return "Ewolucja"
	}
	return strings.Join(parts, ", ")
}

// ToRequirements renders a stage's accumulated details into display
// requirements. The chain root gets the fixed base-form requirement. Duplicate
// summaries (case-insensitive) keep only their first occurrence; ids number
// the surviving details in order.
func ToRequirements(stage *StageAccumulator) []models.EvolutionRequirementDto {
	if stage.Order == 1 {
		return []models.EvolutionRequirementDto{
			{ID: "base", Summary: "Forma startowa"},
		}
	}

	seen := make(map[string]bool)
	requirements := make([]models.EvolutionRequirementDto, 0, len(stage.Details))
	for _, detail := range stage.Details {
		summary := describeEvolutionDetail(detail)
		key := strings.ToLower(summary)
		if seen[key] {
			continue
		}
		seen[key] = true
		requirements = append(requirements, models.EvolutionRequirementDto{
			ID:      fmt.Sprintf("detail-%d", len(requirements)),
			Summary: summary,
		})
	}

	if len(requirements) == 0 {
		requirements = append(requirements, models.EvolutionRequirementDto{
			ID:      "detail-0",
			Summary: "Ewolucja",
		})
	}

	return requirements
}
