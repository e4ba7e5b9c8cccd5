package handlers

import (
	"strconv"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/arturpasiut/poke-sky-api/pkg/catalog"
)

// PokemonHandler serves the catalog endpoints
type PokemonHandler struct {
	catalog *catalog.Service
	logger  ectologger.Logger
}

// NewPokemonHandler creates a new pokemon catalog handler
func NewPokemonHandler(catalogService *catalog.Service, logger ectologger.Logger) *PokemonHandler {
	return &PokemonHandler{
		catalog: catalogService,
		logger:  logger,
	}
}

// Register registers catalog routes
func (h *PokemonHandler) Register(api *echo.Group) {
	api.GET("/pokemon", h.List)
	api.GET("/pokemon/:identifier", h.Get)
	api.GET("/moves", h.ListMoves)
}

// List handles GET /api/pokemon with search, generation and pagination
// parameters.
func (h *PokemonHandler) List(c echo.Context) error {
	limit, offset, err := ParsePage(c, catalog.DefaultLimit, catalog.MaxLimit)
	if err != nil {
		return err
	}

	var generation *int
	if raw := c.QueryParam("generation"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 9 {
			return BadRequest("invalid generation: must be a number between 1 and 9")
		}
		generation = &parsed
	}

	resp, err := h.catalog.ListPokemon(c.Request().Context(), c.QueryParam("search"), generation, limit, offset)
	if err != nil {
		return err
	}

	return SuccessResponse(c, resp)
}

// Get handles GET /api/pokemon/:identifier by dex id or name.
func (h *PokemonHandler) Get(c echo.Context) error {
	resp, err := h.catalog.GetPokemon(c.Request().Context(), c.Param("identifier"))
	if err != nil {
		return err
	}

	return SuccessResponse(c, resp)
}

// ListMoves handles GET /api/moves with search and pagination parameters.
func (h *PokemonHandler) ListMoves(c echo.Context) error {
	limit, offset, err := ParsePage(c, catalog.DefaultLimit, catalog.MaxLimit)
	if err != nil {
		return err
	}

	resp, err := h.catalog.ListMoves(c.Request().Context(), c.QueryParam("search"), limit, offset)
	if err != nil {
		return err
	}

	return SuccessResponse(c, resp)
}
