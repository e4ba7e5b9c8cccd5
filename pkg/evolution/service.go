package evolution

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"
	"go.opentelemetry.io/otel/attribute"

	"github.com/arturpasiut/poke-sky-api/pkg/apperrors"
	"github.com/arturpasiut/poke-sky-api/pkg/database"
	"github.com/arturpasiut/poke-sky-api/pkg/events"
	"github.com/arturpasiut/poke-sky-api/pkg/metrics"
	"github.com/arturpasiut/poke-sky-api/pkg/models"
	"github.com/arturpasiut/poke-sky-api/pkg/pokeapi"
	"github.com/arturpasiut/poke-sky-api/pkg/tracing"
)

// detailBatchSize bounds concurrent per-species detail fetches. Batches run
// sequentially, so wall-clock time scales with ceil(speciesCount / 3).
const detailBatchSize = 3

// UpstreamClient is the slice of the PokeAPI client the service needs.
type UpstreamClient interface {
	EvolutionChainByID(ctx context.Context, chainID int64) (*pokeapi.EvolutionChain, error)
	EvolutionChainByURL(ctx context.Context, url string) (*pokeapi.EvolutionChain, error)
	Species(ctx context.Context, identifier string) (*pokeapi.PokemonSpecies, error)
	PokemonDetail(ctx context.Context, identifier string, timeout time.Duration) (*pokeapi.Pokemon, error)
}

// CacheRepository persists resolved chains. The service only ever writes;
// read access belongs to other consumers.
type CacheRepository interface {
	Upsert(ctx context.Context, record *models.EvolutionChainCacheRecord) error
}

// EventPublisher emits a lifecycle event after a successful resolution.
type EventPublisher interface {
	PublishChainResolved(ctx context.Context, msg *events.ChainResolvedMessage) error
}

// Service resolves evolution chains end to end: chain lookup, bounded-
// concurrency detail fetches, DTO assembly, filtering and best-effort cache
// persistence. Cache and publisher may be nil; both are optional side
// effects.
type Service struct {
	client    UpstreamClient
	cache     CacheRepository
	publisher EventPublisher
	logger    ectologger.Logger
}

// NewService creates a chain resolution service.
func NewService(client UpstreamClient, cache CacheRepository, publisher EventPublisher, logger ectologger.Logger) *Service {
	return &Service{
		client:    client,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// ResolveChain runs the full pipeline for one request. Filter failures
// propagate to the caller, but the unfiltered DTO is still persisted first;
// cache failures are logged and swallowed, never surfaced.
func (s *Service) ResolveChain(ctx context.Context, req models.ChainRequest) (*models.EvolutionChainDto, error) {
	ctx, span := tracing.StartSpan(ctx, "Evolution.ResolveChain")
	defer span.End()

	start := time.Now()
	dto, err := s.resolveChain(ctx, req)
	metrics.ChainResolutionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChainResolutionsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.ChainResolutionsTotal.WithLabelValues("success").Inc()
	span.SetAttributes(
		attribute.String("chain_id", dto.ChainID),
		attribute.Int("stage_count", len(dto.Stages)),
		attribute.Int("branch_count", len(dto.Branches)),
	)
	return dto, nil
}

func (s *Service) resolveChain(ctx context.Context, req models.ChainRequest) (*models.EvolutionChainDto, error) {
	chain, err := s.resolveUpstreamChain(ctx, req)
	if err != nil {
		return nil, err
	}

	speciesIDs := collectSpeciesIDs(chain.Chain)
	if len(speciesIDs) == 0 {
		return nil, apperrors.Upstream("chain has no stages")
	}

	pokemonMap := s.fetchDetails(ctx, speciesIDs)

	dto, branches, err := BuildChainDto(chain, pokemonMap)
	if err != nil {
		return nil, apperrors.Upstream("failed to build evolution chain").WithCause(err)
	}

	filtered, filterErr := ApplyFilters(dto, branches, FilterOptions{
		Type:       req.Type,
		Generation: req.Generation,
		Branching:  branchingMode(req.Branching),
	})

	// persistence happens regardless of the filter outcome; the cached payload
	// is always the unfiltered chain
	s.persist(ctx, dto)

	if filterErr != nil {
		return nil, filterErr
	}

	s.publish(ctx, dto)
	return filtered, nil
}

// resolveUpstreamChain fetches the chain graph: by explicit id when given,
// otherwise through a species lookup that carries the chain URL.
func (s *Service) resolveUpstreamChain(ctx context.Context, req models.ChainRequest) (*pokeapi.EvolutionChain, error) {
	if req.ChainID != nil {
		return s.client.EvolutionChainByID(ctx, *req.ChainID)
	}

	identifier := req.Identifier
	if identifier == "" && req.PokemonID != nil {
		identifier = strconv.FormatInt(*req.PokemonID, 10)
	}
	if identifier == "" {
		return nil, apperrors.InvalidInput("a chain id, pokemon id or identifier is required")
	}

	species, err := s.client.Species(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if species.EvolutionChain == nil || species.EvolutionChain.URL == "" {
		return nil, apperrors.Upstream("species %s has no evolution chain link", identifier)
	}

	return s.client.EvolutionChainByURL(ctx, species.EvolutionChain.URL)
}

// collectSpeciesIDs gathers every resolvable species id in the graph,
// deduplicated, in traversal order.
func collectSpeciesIDs(root *pokeapi.ChainLink) []int64 {
	var ids []int64
	seen := make(map[int64]bool)

	var walk func(node *pokeapi.ChainLink)
	walk = func(node *pokeapi.ChainLink) {
		if node == nil {
			return
		}
		if id, ok := pokeapi.ExtractID(node.Species.URL); ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
		for i := range node.EvolvesTo {
			walk(&node.EvolvesTo[i])
		}
	}
	walk(root)

	return ids
}

// fetchDetails retrieves per-species detail in fixed sequential batches of
// three. A failed fetch is logged, counted and left as a nil entry; the
// builder tolerates the hole.
func (s *Service) fetchDetails(ctx context.Context, speciesIDs []int64) map[int64]*pokeapi.Pokemon {
	pokemonMap := make(map[int64]*pokeapi.Pokemon, len(speciesIDs))
	var mu sync.Mutex

	for offset := 0; offset < len(speciesIDs); offset += detailBatchSize {
		end := offset + detailBatchSize
		if end > len(speciesIDs) {
			end = len(speciesIDs)
		}

		var wg sync.WaitGroup
		for _, id := range speciesIDs[offset:end] {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				pokemon, err := s.client.PokemonDetail(ctx, strconv.FormatInt(id, 10), 0)
				if err != nil {
					metrics.StageDetailFailures.Inc()
					s.logger.WithContext(ctx).WithError(err).Warnf("Failed to fetch detail for pokemon %d, stage will degrade", id)
					pokemon = nil
				}
				mu.Lock()
				pokemonMap[id] = pokemon
				mu.Unlock()
			}(id)
		}
		wg.Wait()
	}

	return pokemonMap
}

// persist upserts the unfiltered DTO into the chain cache. Chains without a
// numeric id and configurations without a cache skip silently; upsert errors
// are logged and swallowed.
func (s *Service) persist(ctx context.Context, dto *models.EvolutionChainDto) {
	if s.cache == nil {
		return
	}

	chainID, err := strconv.ParseInt(dto.ChainID, 10, 64)
	if err != nil || chainID <= 0 {
		s.logger.WithContext(ctx).Debugf("Skipping cache persistence for non-numeric chain id %q", dto.ChainID)
		return
	}

	now := time.Now().UTC()
	record := &models.EvolutionChainCacheRecord{
		ChainID:       chainID,
		LeadPokemonID: dto.LeadPokemonID,
		LeadName:      dto.LeadName,
		StageCount:    len(dto.Stages),
		BranchCount:   len(dto.Branches),
		Payload:       database.JSONB[models.EvolutionChainDto]{Data: *dto},
		Branches:      database.JSONB[[]models.EvolutionBranchDto]{Data: dto.Branches},
		ResolvedAt:    now,
		UpdatedAt:     now,
	}

	if err := s.cache.Upsert(ctx, record); err != nil {
		metrics.CacheWritesTotal.WithLabelValues("error").Inc()
		s.logger.WithContext(ctx).WithError(err).Errorf("Failed to persist chain %d to cache", chainID)
		return
	}
	metrics.CacheWritesTotal.WithLabelValues("success").Inc()
}

func (s *Service) publish(ctx context.Context, dto *models.EvolutionChainDto) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishChainResolved(ctx, &events.ChainResolvedMessage{
		ChainID:       dto.ChainID,
		LeadPokemonID: dto.LeadPokemonID,
		LeadName:      dto.LeadName,
		StageCount:    len(dto.Stages),
		BranchCount:   len(dto.Branches),
		Cached:        s.cache != nil,
	})
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Warnf("Failed to publish chain resolved event for chain %s", dto.ChainID)
	}
}

func branchingMode(mode string) string {
	switch mode {
	case BranchingLinear, BranchingBranching:
		return mode
	default:
		return BranchingAny
	}
}
