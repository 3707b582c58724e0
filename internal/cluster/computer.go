package cluster

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/clustering-microservice/internal/domain"
)

const (
	defaultMaxMembers = 25
	// defaultParallelThreshold - минимальное число ячеек, начиная с
	// которого агрегация раскладывается по воркерам
	defaultParallelThreshold = 50
	maxWorkers               = 8
)

// ComputerConfig - настройки вычислителя кластеров
type ComputerConfig struct {
	// Workers - размер пула воркеров для параллельной агрегации
	Workers int
	// MaxMembers - максимум POI в поле members одного кластера.
	// Count при этом всегда отражает истинное число POI в ячейке.
	MaxMembers int
	// ParallelThreshold - число ячеек, после которого агрегация
	// выполняется параллельно
	ParallelThreshold int
}

// Computer разбивает POI по ячейкам сетки и строит список кластеров.
// Чистая детерминированная функция от (pois, zoom, filters): без
// состояния и без I/O, агрегация ячеек параллелится пулом воркеров.
type Computer struct {
	workers           int
	maxMembers        int
	parallelThreshold int
}

// NewComputer создаёт новый Computer
func NewComputer(cfg ComputerConfig) *Computer {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}

	maxMembers := cfg.MaxMembers
	if maxMembers <= 0 {
		maxMembers = defaultMaxMembers
	}

	threshold := cfg.ParallelThreshold
	if threshold <= 0 {
		threshold = defaultParallelThreshold
	}

	return &Computer{
		workers:           workers,
		maxMembers:        maxMembers,
		parallelThreshold: threshold,
	}
}

// Compute применяет фильтры, группирует POI по ячейкам сетки и
// агрегирует каждую ячейку в кластер. Результат отсортирован по
// координатам ячеек, поэтому одинаковый вход даёт одинаковый выход.
func (c *Computer) Compute(pois []domain.POI, zoom int, filters domain.Filters) []domain.Cluster {
	return c.computeAt(pois, zoom, filters, time.Now().UTC())
}

func (c *Computer) computeAt(pois []domain.POI, zoom int, filters domain.Filters, now time.Time) []domain.Cluster {
	groups := make(map[Cell][]domain.POI)
	for i := range pois {
		if !filters.Match(&pois[i]) {
			continue
		}
		cell := CellOf(pois[i].Lat, pois[i].Lng, zoom)
		groups[cell] = append(groups[cell], pois[i])
	}

	if len(groups) == 0 {
		return []domain.Cluster{}
	}

	// Стабильный порядок ячеек для детерминированного результата
	cells := make([]Cell, 0, len(groups))
	for cell := range groups {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})

	clusters := make([]domain.Cluster, len(cells))

	if len(cells) <= c.parallelThreshold {
		for i, cell := range cells {
			clusters[i] = c.buildCluster(cell, groups[cell], zoom, now)
		}
		return clusters
	}

	// Агрегация независима по ячейкам - раскидываем по пулу воркеров
	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				clusters[i] = c.buildCluster(cells[i], groups[cells[i]], zoom, now)
			}
		}()
	}
	for i := range cells {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return clusters
}

func (c *Computer) buildCluster(cell Cell, members []domain.POI, zoom int, now time.Time) domain.Cluster {
	centroid, avgRating, breakdown := Aggregate(members)

	kind := domain.ClusterKindCluster
	if len(members) == 1 {
		kind = domain.ClusterKindSingle
	}

	return domain.Cluster{
		ID:                cell.ID(zoom),
		Kind:              kind,
		Centroid:          centroid,
		Count:             len(members),
		Members:           c.selectMembers(members),
		AvgRating:         avgRating,
		CategoryBreakdown: breakdown,
		Zoom:              zoom,
		GeneratedAt:       now,
	}
}

// selectMembers ограничивает payload кластера: в members попадают не
// более maxMembers POI с наибольшим рейтингом (без рейтинга - в конец,
// при равенстве - по возрастанию ID).
func (c *Computer) selectMembers(members []domain.POI) []domain.POI {
	out := make([]domain.POI, len(members))
	copy(out, members)

	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].Rating, out[j].Rating
		switch {
		case ri != nil && rj == nil:
			return true
		case ri == nil && rj != nil:
			return false
		case ri != nil && rj != nil && *ri != *rj:
			return *ri > *rj
		}
		return out[i].ID < out[j].ID
	})

	if len(out) > c.maxMembers {
		out = out[:c.maxMembers]
	}
	return out
}
