package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/clustering-microservice/internal/domain"
	"github.com/clustering-microservice/internal/domain/repository"
	"github.com/clustering-microservice/internal/pkg/errors"
)

type placeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPlaceRepository создаёт PlaceRepository поверх PostgreSQL
func NewPlaceRepository(db *DB) repository.PlaceRepository {
	return &placeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Query возвращает POI внутри bbox с фильтрами по категориям и рейтингу.
// Фильтры продублированы в SQL, чтобы не тащить лишние строки из базы;
// семантика идентична domain.Filters.Match.
func (r *placeRepository) Query(ctx context.Context, viewport domain.Viewport, filters domain.Filters) ([]domain.POI, error) {
	query := `
		SELECT
			id, name, category, lat, lng,
			rating, reviews_count, price_level, address
		FROM places
		WHERE lat BETWEEN $1 AND $2
		  AND lng BETWEEN $3 AND $4
		  AND (cardinality($5::text[]) = 0 OR category = ANY($5))
		  AND ($6::float8 IS NULL OR rating >= $6)
		ORDER BY id
	`

	categories := filters.Categories
	if categories == nil {
		categories = []string{}
	}

	var pois []domain.POI
	err := r.db.SelectContext(ctx, &pois, query,
		viewport.South, viewport.North,
		viewport.West, viewport.East,
		pq.Array(categories),
		filters.MinRating,
	)
	if err != nil {
		r.logger.Error("Failed to query places in viewport",
			zap.Float64("north", viewport.North),
			zap.Float64("south", viewport.South),
			zap.Float64("east", viewport.East),
			zap.Float64("west", viewport.West),
			zap.Error(err),
		)
		return nil, errors.ErrRepositoryUnavailable
	}

	return pois, nil
}
