// Package catalog serves the browsable pokemon and move indexes. The full
// upstream index is small enough to hold as one cached blob, so search and
// pagination happen locally against a redis-cached snapshot.
package catalog

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/arturpasiut/poke-sky-api/pkg/apperrors"
	"github.com/arturpasiut/poke-sky-api/pkg/evolution"
	"github.com/arturpasiut/poke-sky-api/pkg/metrics"
	"github.com/arturpasiut/poke-sky-api/pkg/models"
	"github.com/arturpasiut/poke-sky-api/pkg/pokeapi"
	"github.com/arturpasiut/poke-sky-api/pkg/redis"
	"github.com/arturpasiut/poke-sky-api/pkg/tracing"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	sourceCache    = "cache"
	sourceUpstream = "upstream"
)

// Cache is the slice of the redis client the catalog needs. A nil Cache
// degrades the catalog to upstream-only lookups.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Lister is the slice of the upstream client the catalog needs.
type Lister interface {
	ListPokemon(ctx context.Context, limit, offset int) (*pokeapi.ResourcePage, error)
	ListMoves(ctx context.Context, limit, offset int) (*pokeapi.ResourcePage, error)
	PokemonDetail(ctx context.Context, identifier string, timeout time.Duration) (*pokeapi.Pokemon, error)
}

// Config tunes the catalog index cache.
type Config struct {
	IndexLimit int
	CacheTTL   time.Duration
}

// Service answers catalog queries from a cached full-index snapshot.
type Service struct {
	upstream Lister
	cache    Cache
	cfg      Config
	logger   ectologger.Logger
}

// NewService creates a catalog service. cache may be nil.
func NewService(upstream Lister, cache Cache, cfg Config, logger ectologger.Logger) *Service {
	if cfg.IndexLimit <= 0 {
		cfg.IndexLimit = 2000
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	return &Service{
		upstream: upstream,
		cache:    cache,
		cfg:      cfg,
		logger:   logger,
	}
}

// ListPokemon returns one page of the pokemon index, optionally narrowed by a
// case-insensitive name search and a generation filter.
func (s *Service) ListPokemon(ctx context.Context, search string, generation *int, limit, offset int) (*models.PokemonListResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "Catalog.ListPokemon")
	defer span.End()

	limit, offset = normalizePage(limit, offset)

	index, source, err := s.pokemonIndex(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.PokemonSummary, 0, len(index))
	needle := strings.ToLower(strings.TrimSpace(search))
	for _, entry := range index {
		if needle != "" && !strings.Contains(strings.ToLower(entry.Name), needle) {
			continue
		}
		if generation != nil && entry.Generation != *generation {
			continue
		}
		matched = append(matched, entry)
	}

	return &models.PokemonListResponse{
		Total:   len(matched),
		Limit:   limit,
		Offset:  offset,
		Source:  source,
		Results: page(matched, limit, offset),
	}, nil
}

// ListMoves returns one page of the move index, optionally narrowed by a
// case-insensitive name search.
func (s *Service) ListMoves(ctx context.Context, search string, limit, offset int) (*models.MoveListResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "Catalog.ListMoves")
	defer span.End()

	limit, offset = normalizePage(limit, offset)

	index, source, err := s.moveIndex(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.MoveSummary, 0, len(index))
	needle := strings.ToLower(strings.TrimSpace(search))
	for _, entry := range index {
		if needle != "" && !strings.Contains(strings.ToLower(entry.Name), needle) {
			continue
		}
		matched = append(matched, entry)
	}

	return &models.MoveListResponse{
		Total:   len(matched),
		Limit:   limit,
		Offset:  offset,
		Source:  source,
		Results: page(matched, limit, offset),
	}, nil
}

// GetPokemon returns the detail view for one pokemon by id or name.
func (s *Service) GetPokemon(ctx context.Context, identifier string) (*models.PokemonDetailResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "Catalog.GetPokemon")
	defer span.End()

	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return nil, apperrors.InvalidInput("pokemon identifier is required")
	}

	pokemon, err := s.upstream.PokemonDetail(ctx, identifier, 0)
	if err != nil {
		return nil, err
	}

	return &models.PokemonDetailResponse{
		ID:         pokemon.ID,
		Name:       pokemon.Name,
		Generation: evolution.GenerationForPokemonID(pokemon.ID),
		Types:      evolution.BuildTypeList(pokemon),
		Stats:      evolution.BuildStats(pokemon),
		Assets:     evolution.BuildAssetBundle(pokemon.ID, pokemon),
	}, nil
}

// pokemonIndex loads the full pokemon index, preferring the redis snapshot.
func (s *Service) pokemonIndex(ctx context.Context) ([]models.PokemonSummary, string, error) {
	key := "pokesky:catalog:pokemon:index"

	var cached []models.PokemonSummary
	if s.readIndex(ctx, "pokemon", key, &cached) {
		return cached, sourceCache, nil
	}

	pageData, err := s.upstream.ListPokemon(ctx, s.cfg.IndexLimit, 0)
	if err != nil {
		return nil, "", err
	}

	index := make([]models.PokemonSummary, 0, len(pageData.Results))
	for _, entry := range pageData.Results {
		id, ok := pokeapi.ExtractID(entry.URL)
		if !ok {
			continue
		}
		index = append(index, models.PokemonSummary{
			ID:         id,
			Name:       entry.Name,
			URL:        entry.URL,
			Generation: evolution.GenerationForPokemonID(id),
		})
	}

	s.writeIndex(ctx, key, index)
	return index, sourceUpstream, nil
}

// moveIndex loads the full move index, preferring the redis snapshot.
func (s *Service) moveIndex(ctx context.Context) ([]models.MoveSummary, string, error) {
	key := "pokesky:catalog:move:index"

	var cached []models.MoveSummary
	if s.readIndex(ctx, "move", key, &cached) {
		return cached, sourceCache, nil
	}

	pageData, err := s.upstream.ListMoves(ctx, s.cfg.IndexLimit, 0)
	if err != nil {
		return nil, "", err
	}

	index := make([]models.MoveSummary, 0, len(pageData.Results))
	for _, entry := range pageData.Results {
		index = append(index, models.MoveSummary{
			Name: entry.Name,
			URL:  entry.URL,
		})
	}

	s.writeIndex(ctx, key, index)
	return index, sourceUpstream, nil
}

// readIndex loads a snapshot from redis into dest. A miss, a nil cache or a
// corrupt snapshot all report false and fall through to upstream.
func (s *Service) readIndex(ctx context.Context, resource, key string, dest any) bool {
	if s.cache == nil {
		metrics.CatalogIndexLookups.WithLabelValues(resource, sourceUpstream).Inc()
		return false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !redis.IsMiss(err) {
			s.logger.WithContext(ctx).WithError(err).Warnf("Failed to read catalog index %s from redis", key)
		}
		metrics.CatalogIndexLookups.WithLabelValues(resource, sourceUpstream).Inc()
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warnf("Corrupt catalog index snapshot at %s, refetching", key)
		metrics.CatalogIndexLookups.WithLabelValues(resource, sourceUpstream).Inc()
		return false
	}

	metrics.CatalogIndexLookups.WithLabelValues(resource, sourceCache).Inc()
	return true
}

// writeIndex stores a snapshot in redis. Failures only cost the next caller a
// refetch, so they are logged and dropped.
func (s *Service) writeIndex(ctx context.Context, key string, index any) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(index)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Errorf("Failed to marshal catalog index for %s", key)
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.cfg.CacheTTL); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warnf("Failed to store catalog index %s in redis", key)
	}
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
