package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clustering-microservice/internal/domain"
)

func ptrFloat64(f float64) *float64 { return &f }

func TestCellSize(t *testing.T) {
	t.Run("monotonically non-increasing in zoom", func(t *testing.T) {
		prev := CellSize(domain.MinZoom)
		for zoom := domain.MinZoom + 1; zoom <= domain.MaxZoom; zoom++ {
			size := CellSize(zoom)
			assert.LessOrEqual(t, size, prev, "cell size grew at zoom %d", zoom)
			prev = size
		}
	})

	t.Run("halves per zoom step before clamp", func(t *testing.T) {
		assert.InDelta(t, 10.0, CellSize(1), 1e-12)
		assert.InDelta(t, 5.0, CellSize(2), 1e-12)
		assert.InDelta(t, 10.0/2048, CellSize(12), 1e-12)
	})

	t.Run("clamped at max zoom", func(t *testing.T) {
		assert.Equal(t, minCellSizeDeg, CellSize(domain.MaxZoom))
	})
}

func TestCellOf(t *testing.T) {
	t.Run("stable for identical inputs", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			assert.Equal(t, CellOf(30.30, -97.75, 12), CellOf(30.30, -97.75, 12))
		}
	})

	t.Run("nearby points share a cell, distant points do not", func(t *testing.T) {
		a := CellOf(30.300, -97.750, 12)
		b := CellOf(30.301, -97.751, 12)
		c := CellOf(30.280, -97.760, 12)

		assert.Equal(t, a, b)
		assert.NotEqual(t, a, c)
	})

	t.Run("longitude normalized into [-180,180)", func(t *testing.T) {
		assert.Equal(t, CellOf(10, -170, 8), CellOf(10, 190, 8))
		assert.Equal(t, CellOf(10, 170, 8), CellOf(10, -190, 8))
	})

	t.Run("cell id deterministic and zoom-scoped", func(t *testing.T) {
		cell := CellOf(30.30, -97.75, 12)
		assert.Equal(t, cell.ID(12), cell.ID(12))
		assert.NotEqual(t, cell.ID(12), cell.ID(13))
	})
}

func TestAggregate(t *testing.T) {
	t.Run("centroid is unweighted mean", func(t *testing.T) {
		pois := []domain.POI{
			{ID: 1, Lat: 10.0, Lng: 20.0, Category: domain.POICategoryCafe},
			{ID: 2, Lat: 12.0, Lng: 26.0, Category: domain.POICategoryCafe},
		}

		centroid, _, _ := Aggregate(pois)
		assert.InDelta(t, 11.0, centroid.Lat, 1e-9)
		assert.InDelta(t, 23.0, centroid.Lng, 1e-9)
	})

	t.Run("avg rating ignores unrated members", func(t *testing.T) {
		pois := []domain.POI{
			{ID: 1, Category: domain.POICategoryBar, Rating: ptrFloat64(4.0)},
			{ID: 2, Category: domain.POICategoryBar, Rating: ptrFloat64(5.0)},
			{ID: 3, Category: domain.POICategoryBar},
		}

		_, avgRating, _ := Aggregate(pois)
		assert.NotNil(t, avgRating)
		assert.InDelta(t, 4.5, *avgRating, 1e-9)
	})

	t.Run("avg rating nil when no member rated", func(t *testing.T) {
		pois := []domain.POI{
			{ID: 1, Category: domain.POICategoryPark},
			{ID: 2, Category: domain.POICategoryPark},
		}

		_, avgRating, _ := Aggregate(pois)
		assert.Nil(t, avgRating)
	})

	t.Run("category breakdown counts occurrences", func(t *testing.T) {
		pois := []domain.POI{
			{ID: 1, Category: domain.POICategoryRestaurant},
			{ID: 2, Category: domain.POICategoryRestaurant},
			{ID: 3, Category: domain.POICategoryMuseum},
		}

		_, _, breakdown := Aggregate(pois)
		assert.Equal(t, map[string]int{
			domain.POICategoryRestaurant: 2,
			domain.POICategoryMuseum:     1,
		}, breakdown)
	})
}

func TestCacheKey(t *testing.T) {
	viewport := domain.Viewport{North: 30.33, South: 30.27, East: -97.74, West: -97.77}

	t.Run("jittered viewports collapse onto one key", func(t *testing.T) {
		jittered := domain.Viewport{North: 30.33002, South: 30.27001, East: -97.74002, West: -97.77004}
		assert.Equal(t,
			CacheKey(viewport, 12, domain.Filters{}),
			CacheKey(jittered, 12, domain.Filters{}),
		)
	})

	t.Run("category order does not matter", func(t *testing.T) {
		a := domain.Filters{Categories: []string{"restaurant", "museum"}}
		b := domain.Filters{Categories: []string{"museum", "restaurant"}}
		assert.Equal(t, CacheKey(viewport, 12, a), CacheKey(viewport, 12, b))
	})

	t.Run("zoom and filters change the key", func(t *testing.T) {
		base := CacheKey(viewport, 12, domain.Filters{})
		assert.NotEqual(t, base, CacheKey(viewport, 13, domain.Filters{}))
		assert.NotEqual(t, base, CacheKey(viewport, 12, domain.Filters{MinRating: ptrFloat64(4.0)}))
		assert.NotEqual(t, base, CacheKey(viewport, 12, domain.Filters{Categories: []string{"restaurant"}}))
	})
}
