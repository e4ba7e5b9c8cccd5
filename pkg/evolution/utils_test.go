package evolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "vaporeon", Slugify("Vaporeon"))
	assert.Equal(t, "mr-mime", Slugify("Mr. Mime"))
	assert.Equal(t, "farfetch-d", Slugify("Farfetch'd"))
	assert.Equal(t, "flabebe", Slugify("Flabébé"))
	assert.Equal(t, "nidoran-f", Slugify("nidoran-f"))
	assert.Equal(t, "porygon-z", Slugify("Porygon-Z"))
}

func TestSlugifyCollapsesSeparatorRuns(t *testing.T) {
	assert.Equal(t, "tapu-koko", Slugify("tapu   koko"))
	assert.Equal(t, "a-b", Slugify("a---b"))
	assert.Equal(t, "abc", Slugify("--abc--"))
}

func TestSlugifyEmptyFallsBack(t *testing.T) {
	assert.Equal(t, "branch", Slugify(""))
	assert.Equal(t, "branch", Slugify("!!!"))
}

func TestFormatLabel(t *testing.T) {
	assert.Equal(t, "Water Stone", FormatLabel("water-stone"))
	assert.Equal(t, "Level Up", FormatLabel("level-up"))
	assert.Equal(t, "Eevee", FormatLabel("eevee"))
	assert.Equal(t, "", FormatLabel(""))
	assert.Equal(t, "Mount Lanakila", FormatLabel("mount_lanakila"))
}

func TestGenerationForPokemonID(t *testing.T) {
	assert.Equal(t, 1, GenerationForPokemonID(1))
	assert.Equal(t, 1, GenerationForPokemonID(151))
	assert.Equal(t, 2, GenerationForPokemonID(152))
	assert.Equal(t, 4, GenerationForPokemonID(448))
	assert.Equal(t, 9, GenerationForPokemonID(1025))
	assert.Equal(t, 0, GenerationForPokemonID(0))
	assert.Equal(t, 0, GenerationForPokemonID(-3))
	assert.Equal(t, 0, GenerationForPokemonID(20000))
}
