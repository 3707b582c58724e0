package domain

import "time"

// ClusterKind - тип кластера
type ClusterKind string

const (
	// ClusterKindSingle - ячейка ровно с одним POI
	ClusterKindSingle ClusterKind = "single"
	// ClusterKindCluster - ячейка с двумя и более POI
	ClusterKindCluster ClusterKind = "cluster"
)

// Cluster представляет агрегат POI в одной ячейке сетки.
// ID детерминирован от координат ячейки и zoom, поэтому стабилен
// между повторными вычислениями для той же области.
type Cluster struct {
	ID                string         `json:"id"`
	Kind              ClusterKind    `json:"kind"`
	Centroid          Point          `json:"centroid"`
	Count             int            `json:"count"`
	Members           []POI          `json:"members"`
	AvgRating         *float64       `json:"avg_rating,omitempty"`
	CategoryBreakdown map[string]int `json:"category_breakdown"`
	Zoom              int            `json:"zoom"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

// Zoom boundaries карты
const (
	MinZoom     = 1
	MaxZoom     = 20
	DefaultZoom = 12
)

// ValidZoom проверяет, находится ли zoom в допустимом диапазоне
func ValidZoom(zoom int) bool {
	return zoom >= MinZoom && zoom <= MaxZoom
}
