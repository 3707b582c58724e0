package cluster

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/clustering-microservice/internal/domain"
	"github.com/clustering-microservice/internal/domain/repository"
)

// ComputeFunc выполняет полный путь вычисления: fetch POI + кластеризация
type ComputeFunc func(ctx context.Context) ([]domain.Cluster, error)

// Coordinator - ядро конкурентности движка. Обслуживает попадания в кеш
// немедленно, а при промахе гарантирует не более одного вычисления на
// ключ: первый запрос становится лидером, остальные ждут его результат
// (singleflight). Успешный результат кладётся в кеш с TTL и раздаётся
// всем ожидающим; ошибка не кешируется, следующий запрос начинает заново.
type Coordinator struct {
	cache  repository.ClusterCache
	ttl    time.Duration
	logger *zap.Logger

	mu       sync.Mutex
	inflight map[string]*flight
}

type flight struct {
	done     chan struct{}
	clusters []domain.Cluster
	err      error
}

// NewCoordinator создаёт новый Coordinator
func NewCoordinator(cache repository.ClusterCache, ttl time.Duration, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
		inflight: make(map[string]*flight),
	}
}

// Resolve возвращает кластеры для ключа: из кеша, из in-flight
// вычисления или запустив новое. Отмена ctx вызывающего бросает только
// его ожидание - само вычисление общее и продолжается ради остальных
// ожидающих и заполнения кеша.
func (c *Coordinator) Resolve(ctx context.Context, key string, compute ComputeFunc) ([]domain.Cluster, error) {
	clusters, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		// Ошибка кеша трактуется как промах
		c.logger.Warn("Cluster cache get failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return clusters, nil
	}

	c.mu.Lock()
	if f, exists := c.inflight[key]; exists {
		c.mu.Unlock()
		return c.wait(ctx, f)
	}

	f := &flight{done: make(chan struct{})}
	c.inflight[key] = f
	c.mu.Unlock()

	// Лидер работает на отвязанном контексте: таймаут вызывающего не
	// должен убивать вычисление, нужное остальным ожидающим
	go c.lead(context.WithoutCancel(ctx), key, f, compute)

	return c.wait(ctx, f)
}

func (c *Coordinator) lead(ctx context.Context, key string, f *flight, compute ComputeFunc) {
	start := time.Now()
	f.clusters, f.err = compute(ctx)

	if f.err == nil {
		if err := c.cache.Put(ctx, key, f.clusters, c.ttl); err != nil {
			c.logger.Warn("Failed to cache clusters", zap.String("key", key), zap.Error(err))
		}
		c.logger.Debug("Cluster computation finished",
			zap.String("key", key),
			zap.Int("clusters", len(f.clusters)),
			zap.Duration("took", time.Since(start)),
		)
	}

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()

	close(f.done)
}

func (c *Coordinator) wait(ctx context.Context, f *flight) ([]domain.Cluster, error) {
	select {
	case <-f.done:
		return f.clusters, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// InflightCount возвращает число активных вычислений
func (c *Coordinator) InflightCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inflight)
}
