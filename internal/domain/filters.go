package domain

import "sort"

// Filters - фильтры POI, применяемые до кластеризации.
// Пустой список категорий означает "все категории".
type Filters struct {
	Categories []string `json:"categories,omitempty"`
	MinRating  *float64 `json:"min_rating,omitempty"`
}

// Normalized возвращает канонический вид фильтров: неизвестные категории
// молча отбрасываются, остаток дедуплицируется и сортируется. Плохой
// фильтр деградирует до "без фильтра по категориям", а не ломает запрос.
func (f Filters) Normalized() Filters {
	out := Filters{MinRating: f.MinRating}
	if len(f.Categories) == 0 {
		return out
	}

	seen := make(map[string]bool, len(f.Categories))
	for _, cat := range f.Categories {
		if !IsValidPOICategory(cat) {
			continue
		}
		if seen[cat] {
			continue
		}
		seen[cat] = true
		out.Categories = append(out.Categories, cat)
	}
	sort.Strings(out.Categories)
	return out
}

// Match проверяет, проходит ли POI фильтры
func (f Filters) Match(poi *POI) bool {
	if len(f.Categories) > 0 {
		found := false
		for _, cat := range f.Categories {
			if poi.Category == cat {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinRating != nil {
		if poi.Rating == nil || *poi.Rating < *f.MinRating {
			return false
		}
	}
	return true
}

// Empty сообщает, что фильтры ничего не ограничивают
func (f Filters) Empty() bool {
	return len(f.Categories) == 0 && f.MinRating == nil
}
