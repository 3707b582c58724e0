package cluster

import (
	"fmt"
	"math"

	"github.com/clustering-microservice/internal/domain"
)

const (
	// baseCellSizeDeg - размер ячейки в градусах на минимальном zoom
	baseCellSizeDeg = 10.0
	// minCellSizeDeg - нижняя граница размера ячейки, защита от
	// вырожденных ячеек на максимальном zoom
	minCellSizeDeg = 1e-4
)

// Cell - целочисленные координаты ячейки сетки на заданном zoom
type Cell struct {
	IX int64
	IY int64
}

// ID возвращает детерминированный идентификатор кластера для ячейки.
// Стабилен между повторными вычислениями для той же ячейки и zoom.
func (c Cell) ID(zoom int) string {
	return fmt.Sprintf("%d:%d:%d", zoom, c.IX, c.IY)
}

// Less задаёт стабильный порядок ячеек: сначала по IX, затем по IY
func (c Cell) Less(other Cell) bool {
	if c.IX != other.IX {
		return c.IX < other.IX
	}
	return c.IY < other.IY
}

// CellSize возвращает размер ячейки в градусах для zoom.
// Монотонно не возрастает с ростом zoom: выше zoom - мельче сетка.
func CellSize(zoom int) float64 {
	size := baseCellSizeDeg / float64(int64(1)<<uint(zoom-domain.MinZoom))
	if size < minCellSizeDeg {
		size = minCellSizeDeg
	}
	return size
}

// CellOf возвращает ячейку сетки для координат на заданном zoom.
// Долгота нормализуется в [-180, 180); viewport'ы через антимеридиан
// отклоняются валидацией выше.
func CellOf(lat, lng float64, zoom int) Cell {
	size := CellSize(zoom)
	return Cell{
		IX: int64(math.Floor(lat / size)),
		IY: int64(math.Floor(normalizeLng(lng) / size)),
	}
}

func normalizeLng(lng float64) float64 {
	for lng >= 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}

// Aggregate вычисляет центроид (невзвешенное среднее координат),
// средний рейтинг (только по POI с рейтингом, nil если таких нет)
// и разбивку по категориям для набора POI одной ячейки.
func Aggregate(pois []domain.POI) (domain.Point, *float64, map[string]int) {
	var sumLat, sumLng float64
	var ratingSum float64
	ratedCount := 0
	breakdown := make(map[string]int, 4)

	for i := range pois {
		sumLat += pois[i].Lat
		sumLng += pois[i].Lng
		if pois[i].Rating != nil {
			ratingSum += *pois[i].Rating
			ratedCount++
		}
		breakdown[pois[i].Category]++
	}

	n := float64(len(pois))
	centroid := domain.Point{Lat: sumLat / n, Lng: sumLng / n}

	var avgRating *float64
	if ratedCount > 0 {
		avg := ratingSum / float64(ratedCount)
		avgRating = &avg
	}

	return centroid, avgRating, breakdown
}
