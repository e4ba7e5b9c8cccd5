// Package favorites stores user-saved pokemon.
package favorites

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/arturpasiut/poke-sky-api/pkg/database"
	"github.com/arturpasiut/poke-sky-api/pkg/models"
	"github.com/arturpasiut/poke-sky-api/pkg/tracing"
)

const favoritesTable = "favorites"

var favoriteStruct = database.NewStruct(models.Favorite{})

type FavoritesRepository interface {
	Add(ctx context.Context, userID string, req models.AddFavoriteRequest) (*models.Favorite, error)
	List(ctx context.Context, userID string, limit, offset int) (*models.FavoriteListResponse, error)
	Remove(ctx context.Context, userID string, pokemonID int64) error
}

type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new favorites repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Add saves a pokemon to the user's favorites. Adding an existing favorite is
// a no-op that returns the stored row.
func (r *Repository) Add(ctx context.Context, userID string, req models.AddFavoriteRequest) (*models.Favorite, error) {
	ctx, span := tracing.StartSpan(ctx, "FavoritesRepository.Add")
	defer span.End()

	favorite := models.Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		PokemonID: req.PokemonID,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}

	ib := favoriteStruct.InsertInto(favoritesTable, favorite)
	ib.OnConflictDoNothing()

	query, args := ib.Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"user_id":    userID,
			"pokemon_id": req.PokemonID,
		}).Error("error adding favorite")
		return nil, errors.Wrap(err, "failed to add favorite")
	}

	return r.get(ctx, userID, req.PokemonID)
}

// List returns one page of the user's favorites, newest first, with the total
// count for pagination.
func (r *Repository) List(ctx context.Context, userID string, limit, offset int) (*models.FavoriteListResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "FavoritesRepository.List")
	defer span.End()

	sb := favoriteStruct.SelectFrom(favoritesTable)
	sb.Where(sb.Equal("user_id", userID))
	sb.OrderBy("created_at").Desc()
	sb.Limit(limit).Offset(offset)

	query, args := sb.Build()

	favorites := []models.Favorite{}
	if err := r.db.SelectContext(ctx, &favorites, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"user_id": userID,
		}).Error("error listing favorites")
		return nil, errors.Wrap(err, "failed to list favorites")
	}

	cb := database.NewSelectBuilder()
	cb.Select("COUNT(*)").From(favoritesTable)
	cb.Where(cb.Equal("user_id", userID))

	countQuery, countArgs := cb.Build()

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"user_id": userID,
		}).Error("error counting favorites")
		return nil, errors.Wrap(err, "failed to count favorites")
	}

	return &models.FavoriteListResponse{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		Results: favorites,
	}, nil
}

// Remove deletes one favorite; removing a pokemon that was never saved is a
// 404.
func (r *Repository) Remove(ctx context.Context, userID string, pokemonID int64) error {
	ctx, span := tracing.StartSpan(ctx, "FavoritesRepository.Remove")
	defer span.End()

	db := favoriteStruct.DeleteFrom(favoritesTable)
	db.Where(
		db.Equal("user_id", userID),
		db.Equal("pokemon_id", pokemonID),
	)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"user_id":    userID,
			"pokemon_id": pokemonID,
		}).Error("error removing favorite")
		return errors.Wrap(err, "failed to remove favorite")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, "favorite not found")
	}

	return nil
}

func (r *Repository) get(ctx context.Context, userID string, pokemonID int64) (*models.Favorite, error) {
	sb := favoriteStruct.SelectFrom(favoritesTable)
	sb.Where(
		sb.Equal("user_id", userID),
		sb.Equal("pokemon_id", pokemonID),
	)

	query, args := sb.Build()

	var favorite models.Favorite
	if err := r.db.GetContext(ctx, &favorite, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NewHTTPError(http.StatusNotFound, "favorite not found")
		}
		return nil, errors.Wrap(err, "failed to load favorite")
	}

	return &favorite, nil
}
