package pokeapi

import (
	"strconv"
	"strings"
)

// BuildURL resolves path against the configured base URL. Absolute URLs pass
// through untouched so upstream-provided links can be followed directly.
func BuildURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.TrimPrefix(path, "/")
}

// ExtractID pulls the trailing numeric identifier out of a REST-style
// resource URL (".../pokemon-species/1/"). The second return is false for
// missing or non-numeric input; this never panics on malformed data.
func ExtractID(rawURL string) (int64, bool) {
	if rawURL == "" {
		return 0, false
	}

	segments := strings.Split(rawURL, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == "" {
			continue
		}
		id, err := strconv.ParseInt(segments[i], 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	}

	return 0, false
}
