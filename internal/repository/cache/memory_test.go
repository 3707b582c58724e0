package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clustering-microservice/internal/domain"
)

func cachedClusters() []domain.Cluster {
	return []domain.Cluster{
		{ID: "12:100:200", Kind: domain.ClusterKindSingle, Count: 1, Zoom: 12},
	}
}

func TestMemoryClusterCache_PutGet(t *testing.T) {
	c := NewMemoryClusterCache(zap.NewNop())
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "key", cachedClusters(), time.Minute))

	got, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cachedClusters(), got)
}

func TestMemoryClusterCache_LazyExpiry(t *testing.T) {
	c := NewMemoryClusterCache(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "key", cachedClusters(), 20*time.Millisecond))

	_, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	// Просроченная запись - промах, даже без sweeper
	_, ok, err = c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryClusterCache_Delete(t *testing.T) {
	c := NewMemoryClusterCache(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "key", cachedClusters(), time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	_, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryClusterCache_SweeperReclaimsMemory(t *testing.T) {
	c := NewMemoryClusterCache(zap.NewNop())
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "short", cachedClusters(), 10*time.Millisecond))
	require.NoError(t, c.Put(ctx, "long", cachedClusters(), time.Minute))
	assert.Equal(t, 2, c.Len())

	c.StartSweeper(20 * time.Millisecond)

	assert.Eventually(t, func() bool {
		return c.Len() == 1
	}, time.Second, 10*time.Millisecond)

	_, ok, err := c.Get(ctx, "long")
	require.NoError(t, err)
	assert.True(t, ok)
}
