package utils

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/clustering-microservice/internal/domain"
)

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ViewportAreaKm2 вычисляет площадь viewport в квадратных километрах.
// Используется в логах медленных запросов: таймаут кластеризации почти
// всегда следствие слишком большой области.
func ViewportAreaKm2(v domain.Viewport) float64 {
	return geo.Area(v.Bound()) / 1e6
}

// BoundContains проверяет, попадает ли точка в viewport
func BoundContains(v domain.Viewport, lat, lng float64) bool {
	return v.Bound().Contains(orb.Point{lng, lat})
}
