package handlers

import (
	"github.com/Gobusters/ectologger"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/arturpasiut/poke-sky-api/pkg/models"
	"github.com/arturpasiut/poke-sky-api/pkg/repositories/favorites"
)

// FavoritesHandler serves the user favorites endpoints
type FavoritesHandler struct {
	repo     favorites.FavoritesRepository
	validate *validator.Validate
	logger   ectologger.Logger
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(repo favorites.FavoritesRepository, logger ectologger.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register registers favorites routes
func (h *FavoritesHandler) Register(g *echo.Group) {
	g.POST("", h.Add)
	g.GET("", h.List)
	g.DELETE("/:pokemonId", h.Remove)
}

// Add handles POST /api/favorites.
func (h *FavoritesHandler) Add(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req models.AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return BadRequest("pokemonId and name are required")
	}

	favorite, err := h.repo.Add(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, favorite)
}

// List handles GET /api/favorites.
func (h *FavoritesHandler) List(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	limit, offset, err := ParsePage(c, 20, 100)
	if err != nil {
		return err
	}

	resp, err := h.repo.List(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return err
	}

	return SuccessResponse(c, resp)
}

// Remove handles DELETE /api/favorites/:pokemonId.
func (h *FavoritesHandler) Remove(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	pokemonID, err := ParsePositiveInt64(c.Param("pokemonId"), "pokemonId")
	if err != nil {
		return err
	}

	if err := h.repo.Remove(c.Request().Context(), userID, pokemonID); err != nil {
		return err
	}

	return NoContentResponse(c)
}
