package repository

import (
	"context"
	"time"

	"github.com/clustering-microservice/internal/domain"
)

// ClusterCache определяет методы для работы с кешем результатов
// кластеризации. Записи живут до истечения TTL; просроченные записи
// трактуются как отсутствующие (ленивое удаление).
type ClusterCache interface {
	// Get получает список кластеров по ключу.
	// Второй результат false означает промах (или истёкший TTL).
	Get(ctx context.Context, key string) ([]domain.Cluster, bool, error)

	// Put сохраняет список кластеров с TTL
	Put(ctx context.Context, key string, clusters []domain.Cluster, ttl time.Duration) error

	// Delete удаляет запись из кеша
	Delete(ctx context.Context, key string) error
}
