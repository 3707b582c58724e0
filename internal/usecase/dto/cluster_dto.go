package dto

import "github.com/clustering-microservice/internal/domain"

// ClusterRequest - запрос на кластеризацию POI в viewport
type ClusterRequest struct {
	North      float64  `json:"north" validate:"min=-90,max=90"`
	South      float64  `json:"south" validate:"min=-90,max=90"`
	East       float64  `json:"east" validate:"min=-180,max=180"`
	West       float64  `json:"west" validate:"min=-180,max=180"`
	Zoom       int      `json:"zoom" validate:"omitempty,min=1,max=20"`
	Categories []string `json:"categories,omitempty"`
	MinRating  *float64 `json:"min_rating,omitempty" validate:"omitempty,min=0,max=5"`
	TimeoutMs  int      `json:"timeout_ms,omitempty" validate:"omitempty,min=50,max=30000"`
}

// Viewport возвращает bbox запроса как доменный Viewport
func (r ClusterRequest) Viewport() domain.Viewport {
	return domain.Viewport{
		North: r.North,
		South: r.South,
		East:  r.East,
		West:  r.West,
	}
}

// Filters возвращает фильтры запроса как доменные Filters
func (r ClusterRequest) Filters() domain.Filters {
	return domain.Filters{
		Categories: r.Categories,
		MinRating:  r.MinRating,
	}
}

// ClusterResponse - ответ с кластерами и эхом разрешённых параметров
type ClusterResponse struct {
	Clusters     []domain.Cluster `json:"clusters"`
	ClusterCount int              `json:"cluster_count"`
	POICount     int              `json:"poi_count"`
	Viewport     domain.Viewport  `json:"viewport"`
	Center       domain.Point     `json:"center"`
	Zoom         int              `json:"zoom"`
	Filters      domain.Filters   `json:"filters"`
}
