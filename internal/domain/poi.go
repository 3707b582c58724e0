package domain

// POI представляет точку интереса как неизменяемый снимок данных.
// Движок кластеризации никогда не изменяет и не сохраняет POI —
// владельцем данных является PlaceRepository.
type POI struct {
	ID           int64    `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Category     string   `json:"category" db:"category"`
	Lat          float64  `json:"lat" db:"lat"`
	Lng          float64  `json:"lng" db:"lng"`
	Rating       *float64 `json:"rating,omitempty" db:"rating"`
	ReviewsCount int      `json:"reviews_count" db:"reviews_count"`
	PriceLevel   *int     `json:"price_level,omitempty" db:"price_level"`
	Address      *string  `json:"address,omitempty" db:"address"`
}

// Rated сообщает, есть ли у POI рейтинг
func (p *POI) Rated() bool {
	return p.Rating != nil
}
