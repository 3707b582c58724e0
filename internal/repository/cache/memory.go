package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/clustering-microservice/internal/domain"
	"github.com/clustering-microservice/internal/domain/repository"
)

// MemoryClusterCache - кеш кластеров в памяти процесса, бекенд по
// умолчанию. Просроченные записи трактуются как промах при чтении;
// опциональный sweeper периодически освобождает память. Кеш живёт как
// явная зависимость координатора, не как скрытый синглтон.
type MemoryClusterCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	logger  *zap.Logger

	sweepOnce sync.Once
	stopSweep chan struct{}
}

type memoryEntry struct {
	clusters  []domain.Cluster
	expiresAt time.Time
}

// NewMemoryClusterCache создаёт кеш кластеров в памяти
func NewMemoryClusterCache(logger *zap.Logger) *MemoryClusterCache {
	return &MemoryClusterCache{
		entries:   make(map[string]memoryEntry),
		logger:    logger,
		stopSweep: make(chan struct{}),
	}
}

var _ repository.ClusterCache = (*MemoryClusterCache)(nil)

func (c *MemoryClusterCache) Get(_ context.Context, key string) ([]domain.Cluster, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil // Cache miss
	}

	c.logger.Debug("Cluster cache hit", zap.String("key", key))
	return entry.clusters, true, nil
}

func (c *MemoryClusterCache) Put(_ context.Context, key string, clusters []domain.Cluster, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{
		clusters:  clusters,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()

	c.logger.Debug("Cluster cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (c *MemoryClusterCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len возвращает число записей, включая ещё не выметенные просроченные
func (c *MemoryClusterCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// StartSweeper запускает фоновую уборку просроченных записей
func (c *MemoryClusterCache) StartSweeper(interval time.Duration) {
	c.sweepOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					c.sweep()
				case <-c.stopSweep:
					return
				}
			}
		}()
	})
}

// Close останавливает sweeper
func (c *MemoryClusterCache) Close() {
	close(c.stopSweep)
}

func (c *MemoryClusterCache) sweep() {
	now := time.Now()
	removed := 0

	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	if removed > 0 {
		c.logger.Debug("Cluster cache sweep", zap.Int("removed", removed))
	}
}
