// Package evolution implements the chain resolution pipeline: branch
// collection, stage aggregation, requirement description, DTO assembly and
// filtering.
package evolution

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify lowers a display name into a URL-safe slug: diacritics are
// stripped, every run of non-alphanumerics collapses to a single hyphen.
// Empty input yields "branch" so branch ids are never blank.
func Slugify(name string) string {
	decomposed := norm.NFD.String(strings.ToLower(name))

	var b strings.Builder
	lastHyphen := true
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from decomposition
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "branch"
	}
	return slug
}

// FormatLabel turns an upstream slug ("water-stone") into a display label
// ("Water Stone"). Empty input stays empty.
func FormatLabel(slug string) string {
	if slug == "" {
		return ""
	}

	tokens := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == ' ' || r == '_'
	})
	for i, token := range tokens {
		runes := []rune(token)
		runes[0] = unicode.ToUpper(runes[0])
		tokens[i] = string(runes)
	}
	return strings.Join(tokens, " ")
}

// generationBounds maps the national dex cutoffs per generation. The upstream
// pokemon detail does not carry a generation, so it is derived from the id.
var generationBounds = []struct {
	max        int64
	generation int
}{
	{151, 1},
	{251, 2},
	{386, 3},
	{493, 4},
	{649, 5},
	{721, 6},
	{809, 7},
	{905, 8},
	{1025, 9},
}

// GenerationForPokemonID derives the generation from a national dex id.
// Unknown ids (0, negatives, beyond the last known dex entry) map to 0.
func GenerationForPokemonID(id int64) int {
	if id <= 0 {
		return 0
	}
	for _, bound := range generationBounds {
		if id <= bound.max {
			return bound.generation
		}
	}
	return 0
}
