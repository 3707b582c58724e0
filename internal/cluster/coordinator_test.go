package cluster_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clustering-microservice/internal/cluster"
	"github.com/clustering-microservice/internal/domain"
	"github.com/clustering-microservice/internal/repository/cache"
)

func testClusters() []domain.Cluster {
	return []domain.Cluster{
		{ID: "12:6205:-20020", Kind: domain.ClusterKindCluster, Count: 2, Zoom: 12},
		{ID: "12:6201:-20022", Kind: domain.ClusterKindSingle, Count: 1, Zoom: 12},
	}
}

func TestCoordinator_Singleflight(t *testing.T) {
	coordinator := cluster.NewCoordinator(cache.NewMemoryClusterCache(zap.NewNop()), time.Minute, zap.NewNop())

	var calls int32
	compute := func(ctx context.Context) ([]domain.Cluster, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		return testClusters(), nil
	}

	const concurrency = 16
	results := make([][]domain.Cluster, concurrency)
	errs := make([]error, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = coordinator.Resolve(context.Background(), "key", compute)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "exactly one computation per key")
	for i := 0; i < concurrency; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, testClusters(), results[i])
	}
}

func TestCoordinator_CacheTTL(t *testing.T) {
	coordinator := cluster.NewCoordinator(cache.NewMemoryClusterCache(zap.NewNop()), 40*time.Millisecond, zap.NewNop())

	var calls int32
	compute := func(ctx context.Context) ([]domain.Cluster, error) {
		atomic.AddInt32(&calls, 1)
		return testClusters(), nil
	}

	// Первый запрос вычисляет, второй в пределах TTL идёт из кеша
	_, err := coordinator.Resolve(context.Background(), "key", compute)
	require.NoError(t, err)
	_, err = coordinator.Resolve(context.Background(), "key", compute)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// После истечения TTL вычисление повторяется
	time.Sleep(60 * time.Millisecond)
	_, err = coordinator.Resolve(context.Background(), "key", compute)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCoordinator_ErrorsNotCached(t *testing.T) {
	coordinator := cluster.NewCoordinator(cache.NewMemoryClusterCache(zap.NewNop()), time.Minute, zap.NewNop())

	upstreamErr := errors.New("upstream unavailable")
	var calls int32
	failing := func(ctx context.Context) ([]domain.Cluster, error) {
		atomic.AddInt32(&calls, 1)
		return nil, upstreamErr
	}

	_, err := coordinator.Resolve(context.Background(), "key", failing)
	assert.ErrorIs(t, err, upstreamErr)

	// Ошибка не закешировалась - следующий запрос пробует заново
	_, err = coordinator.Resolve(context.Background(), "key", failing)
	assert.ErrorIs(t, err, upstreamErr)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCoordinator_SharedErrorForWaiters(t *testing.T) {
	coordinator := cluster.NewCoordinator(cache.NewMemoryClusterCache(zap.NewNop()), time.Minute, zap.NewNop())

	upstreamErr := errors.New("upstream unavailable")
	var calls int32
	failing := func(ctx context.Context) ([]domain.Cluster, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(30 * time.Millisecond)
		return nil, upstreamErr
	}

	const concurrency = 10
	errs := make([]error, concurrency)
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = coordinator.Resolve(context.Background(), "key", failing)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for i := 0; i < concurrency; i++ {
		assert.ErrorIs(t, errs[i], upstreamErr)
	}
}

func TestCoordinator_WaiterCancelKeepsLeaderRunning(t *testing.T) {
	memCache := cache.NewMemoryClusterCache(zap.NewNop())
	coordinator := cluster.NewCoordinator(memCache, time.Minute, zap.NewNop())

	release := make(chan struct{})
	var calls int32
	blocking := func(ctx context.Context) ([]domain.Cluster, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return testClusters(), nil
	}

	// Ожидание вызывающего обрывается таймаутом...
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := coordinator.Resolve(ctx, "key", blocking)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// ...но само вычисление продолжается и заполняет кеш
	close(release)
	assert.Eventually(t, func() bool {
		clusters, ok, err := memCache.Get(context.Background(), "key")
		return err == nil && ok && len(clusters) == 2
	}, time.Second, 10*time.Millisecond)

	// Следующий запрос обслуживается из кеша без повторного вычисления
	result, err := coordinator.Resolve(context.Background(), "key", blocking)
	require.NoError(t, err)
	assert.Equal(t, testClusters(), result)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCoordinator_DistinctKeysComputeIndependently(t *testing.T) {
	coordinator := cluster.NewCoordinator(cache.NewMemoryClusterCache(zap.NewNop()), time.Minute, zap.NewNop())

	var calls int32
	compute := func(ctx context.Context) ([]domain.Cluster, error) {
		atomic.AddInt32(&calls, 1)
		return testClusters(), nil
	}

	_, err := coordinator.Resolve(context.Background(), "key-a", compute)
	require.NoError(t, err)
	_, err = coordinator.Resolve(context.Background(), "key-b", compute)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, 0, coordinator.InflightCount())
}
