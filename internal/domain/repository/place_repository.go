package repository

import (
	"context"

	"github.com/clustering-microservice/internal/domain"
)

// PlaceRepository определяет методы для чтения точек интереса.
// Единственный upstream движка кластеризации: откуда взялись POI и как
// они кешировались выше по стеку, движок не знает.
type PlaceRepository interface {
	// Query возвращает POI, попадающие в viewport и проходящие фильтры.
	// Пустой результат валиден: в области просто нет POI.
	Query(ctx context.Context, viewport domain.Viewport, filters domain.Filters) ([]domain.POI, error)
}
