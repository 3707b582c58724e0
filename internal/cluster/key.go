package cluster

import (
	"crypto/md5"
	"fmt"
	"sort"
	"strings"

	"github.com/clustering-microservice/internal/domain"
)

// viewportKeyDecimals - точность округления viewport для ключа кеша.
// Семантически одинаковые запросы со слегка разными координатами
// (обычное "дрожание" при панорамировании) схлопываются на один ключ
// и одну in-flight кластеризацию.
const viewportKeyDecimals = 4

// CacheKey создает канонический ключ кеша для (viewport, zoom, filters)
func CacheKey(viewport domain.Viewport, zoom int, filters domain.Filters) string {
	v := viewport.Round(viewportKeyDecimals)

	// Сортируем категории для стабильного хеша
	categories := make([]string, len(filters.Categories))
	copy(categories, filters.Categories)
	sort.Strings(categories)

	minRating := ""
	if filters.MinRating != nil {
		minRating = fmt.Sprintf("%.2f", *filters.MinRating)
	}

	params := fmt.Sprintf("%.4f:%.4f:%.4f:%.4f|%d|%s|%s",
		v.North, v.South, v.East, v.West,
		zoom,
		strings.Join(categories, ","),
		minRating)

	hash := fmt.Sprintf("%x", md5.Sum([]byte(params)))

	return fmt.Sprintf("clusters:%d:%s", zoom, hash)
}
