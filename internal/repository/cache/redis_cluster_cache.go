package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/clustering-microservice/internal/domain"
	"github.com/clustering-microservice/internal/domain/repository"
)

// redisClusterCache - Redis-бекенд кеша кластеров для развертываний с
// несколькими инстансами. TTL обслуживается самим Redis.
type redisClusterCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisClusterCache создаёт ClusterCache поверх Redis
func NewRedisClusterCache(redis *Redis) repository.ClusterCache {
	return &redisClusterCache{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *redisClusterCache) Get(ctx context.Context, key string) ([]domain.Cluster, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get clusters from cache", zap.String("key", key), zap.Error(err))
		return nil, false, fmt.Errorf("cache get error: %w", err)
	}

	var clusters []domain.Cluster
	if err := json.Unmarshal(data, &clusters); err != nil {
		r.logger.Error("Failed to unmarshal cached clusters", zap.String("key", key), zap.Error(err))
		return nil, false, fmt.Errorf("unmarshal clusters: %w", err)
	}

	r.logger.Debug("Cluster cache hit", zap.String("key", key))
	return clusters, true, nil
}

func (r *redisClusterCache) Put(ctx context.Context, key string, clusters []domain.Cluster, ttl time.Duration) error {
	data, err := json.Marshal(clusters)
	if err != nil {
		r.logger.Error("Failed to marshal clusters", zap.Error(err))
		return fmt.Errorf("marshal clusters: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cluster cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cluster cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *redisClusterCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cluster cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}
