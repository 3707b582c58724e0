package domain

import (
	"math"

	"github.com/paulmach/orb"
)

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Viewport представляет видимую область карты (bbox).
// Инвариант: North > South, East > West, координаты в допустимых пределах.
type Viewport struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Valid проверяет инварианты viewport. Области, пересекающие
// антимеридиан (east < west), не поддерживаются и отклоняются.
func (v Viewport) Valid() bool {
	if v.North <= v.South || v.East <= v.West {
		return false
	}
	if v.North > 90 || v.South < -90 {
		return false
	}
	if v.East > 180 || v.West < -180 {
		return false
	}
	return true
}

// Round возвращает viewport с координатами, округлёнными до decimals знаков.
// Округление схлопывает слегка "дрожащие" клиентские viewport'ы на один
// ключ кеша и одну in-flight кластеризацию.
func (v Viewport) Round(decimals int) Viewport {
	pow := math.Pow(10, float64(decimals))
	round := func(f float64) float64 {
		return math.Round(f*pow) / pow
	}
	return Viewport{
		North: round(v.North),
		South: round(v.South),
		East:  round(v.East),
		West:  round(v.West),
	}
}

// Bound возвращает viewport как orb.Bound
func (v Viewport) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{v.West, v.South},
		Max: orb.Point{v.East, v.North},
	}
}

// Center возвращает центр viewport
func (v Viewport) Center() Point {
	c := v.Bound().Center()
	return Point{Lat: c.Lat(), Lng: c.Lon()}
}
