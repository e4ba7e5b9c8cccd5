package handlers

import (
	"strconv"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/arturpasiut/poke-sky-api/pkg/apperrors"
	"github.com/arturpasiut/poke-sky-api/pkg/evolution"
	"github.com/arturpasiut/poke-sky-api/pkg/models"
	"github.com/arturpasiut/poke-sky-api/pkg/repositories/evolutioncache"
)

// EvolutionHandler serves the evolution chain endpoints
type EvolutionHandler struct {
	service *evolution.Service
	cache   evolutioncache.EvolutionCacheRepository
	logger  ectologger.Logger
}

// NewEvolutionHandler creates a new evolution handler. cache may be nil when
// the service runs without Postgres.
func NewEvolutionHandler(service *evolution.Service, cache evolutioncache.EvolutionCacheRepository, logger ectologger.Logger) *EvolutionHandler {
	return &EvolutionHandler{
		service: service,
		cache:   cache,
		logger:  logger,
	}
}

// Register registers evolution routes
func (h *EvolutionHandler) Register(g *echo.Group) {
	g.GET("", h.Resolve)
	g.GET("/cache/:chainId", h.CachedChain)
}

// Resolve handles GET /api/evolutions. The chain is selected by chain_id,
// pokemon_id or identifier, then optionally narrowed by type, generation and
// branching filters.
func (h *EvolutionHandler) Resolve(c echo.Context) error {
	req, err := parseChainRequest(c)
	if err != nil {
		return err
	}

	dto, err := h.service.ResolveChain(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return SuccessResponse(c, dto)
}

// CachedChain handles GET /api/evolutions/cache/:chainId and returns the last
// persisted unfiltered chain without touching upstream.
func (h *EvolutionHandler) CachedChain(c echo.Context) error {
	if h.cache == nil {
		return apperrors.UpstreamNotFound("chain cache is not configured")
	}

	chainID, err := ParsePositiveInt64(c.Param("chainId"), "chainId")
	if err != nil {
		return err
	}

	record, err := h.cache.GetByChainID(c.Request().Context(), chainID)
	if err != nil {
		return err
	}

	return SuccessResponse(c, record.Payload.GetValue())
}

func parseChainRequest(c echo.Context) (models.ChainRequest, error) {
	var req models.ChainRequest

	if raw := c.QueryParam("chain_id"); raw != "" {
		chainID, err := ParsePositiveInt64(raw, "chain_id")
		if err != nil {
			return req, err
		}
		req.ChainID = &chainID
	}
	if raw := c.QueryParam("pokemon_id"); raw != "" {
		pokemonID, err := ParsePositiveInt64(raw, "pokemon_id")
		if err != nil {
			return req, err
		}
		req.PokemonID = &pokemonID
	}
	req.Identifier = c.QueryParam("identifier")
	req.Type = c.QueryParam("type")

	if raw := c.QueryParam("generation"); raw != "" {
		generation, err := strconv.Atoi(raw)
		if err != nil || generation < 1 || generation > 9 {
			return req, BadRequest("invalid generation: must be a number between 1 and 9")
		}
		req.Generation = &generation
	}

	switch branching := c.QueryParam("branching"); branching {
	case "", evolution.BranchingAny, evolution.BranchingLinear, evolution.BranchingBranching:
		req.Branching = branching
	default:
		return req, BadRequest("invalid branching: must be one of linear, branching, any")
	}

	return req, nil
}
