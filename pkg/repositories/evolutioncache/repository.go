// Package evolutioncache persists resolved evolution chains to Postgres. The
// resolution service writes here best-effort; reads serve the cache inspection
// endpoint.
package evolutioncache

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/pkg/errors"

	"github.com/arturpasiut/poke-sky-api/pkg/database"
	"github.com/arturpasiut/poke-sky-api/pkg/models"
	"github.com/arturpasiut/poke-sky-api/pkg/tracing"
)

const chainCacheTable = "evolution_chain_cache"

var chainCacheStruct = database.NewStruct(models.EvolutionChainCacheRecord{})

type EvolutionCacheRepository interface {
	Upsert(ctx context.Context, record *models.EvolutionChainCacheRecord) error
	GetByChainID(ctx context.Context, chainID int64) (*models.EvolutionChainCacheRecord, error)
}

type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new evolution chain cache repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Upsert replaces the cached chain keyed by chain_id; last writer wins.
func (r *Repository) Upsert(ctx context.Context, record *models.EvolutionChainCacheRecord) error {
	ctx, span := tracing.StartSpan(ctx, "EvolutionCacheRepository.Upsert")
	defer span.End()

	if record == nil {
		return errors.New("cache record is nil")
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}

	ib := chainCacheStruct.InsertInto(chainCacheTable, *record)
	ub := ib.OnConflict("chain_id")
	ub.Set(
		ub.Assign("lead_pokemon_id", database.Excluded("lead_pokemon_id")),
		ub.Assign("lead_name", database.Excluded("lead_name")),
		ub.Assign("stage_count", database.Excluded("stage_count")),
		ub.Assign("branch_count", database.Excluded("branch_count")),
		ub.Assign("payload", database.Excluded("payload")),
		ub.Assign("branches", database.Excluded("branches")),
		ub.Assign("resolved_at", database.Excluded("resolved_at")),
		ub.Assign("updated_at", time.Now().UTC()),
	)

	query, args := ib.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"chain_id":     record.ChainID,
		"stage_count":  record.StageCount,
		"branch_count": record.BranchCount,
	}).Debug("Upserting resolved evolution chain")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"chain_id": record.ChainID,
		}).Error("error upserting resolved evolution chain")
		return errors.Wrap(err, "failed to upsert evolution chain cache")
	}

	return nil
}

// GetByChainID returns the cached chain, or a 404 httperror when absent.
func (r *Repository) GetByChainID(ctx context.Context, chainID int64) (*models.EvolutionChainCacheRecord, error) {
	ctx, span := tracing.StartSpan(ctx, "EvolutionCacheRepository.GetByChainID")
	defer span.End()

	sb := chainCacheStruct.SelectFrom(chainCacheTable)
	sb.Where(sb.Equal("chain_id", chainID))

	query, args := sb.Build()

	var record models.EvolutionChainCacheRecord
	if err := r.db.GetContext(ctx, &record, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NewHTTPError(http.StatusNotFound, "evolution chain not cached")
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"chain_id": chainID,
		}).Error("error reading evolution chain cache")
		return nil, errors.Wrap(err, "failed to read evolution chain cache")
	}

	return &record, nil
}
