package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"go.uber.org/zap"

	"github.com/clustering-microservice/internal/cluster"
	"github.com/clustering-microservice/internal/domain"
	"github.com/clustering-microservice/internal/domain/repository"
	"github.com/clustering-microservice/internal/pkg/errors"
	"github.com/clustering-microservice/internal/pkg/utils"
	"github.com/clustering-microservice/internal/usecase/dto"
)

// ClusterUseCase - фасад движка кластеризации: валидирует вход,
// прогоняет запрос через координатор с жёстким таймаутом и переводит
// сбои в типизированные ошибки для HTTP-слоя.
type ClusterUseCase struct {
	placeRepo   repository.PlaceRepository
	coordinator *cluster.Coordinator
	computer    *cluster.Computer
	logger      *zap.Logger

	defaultTimeout time.Duration
	maxTimeout     time.Duration
}

// NewClusterUseCase создаёт новый ClusterUseCase
func NewClusterUseCase(
	placeRepo repository.PlaceRepository,
	coordinator *cluster.Coordinator,
	computer *cluster.Computer,
	logger *zap.Logger,
	defaultTimeout time.Duration,
	maxTimeout time.Duration,
) *ClusterUseCase {
	return &ClusterUseCase{
		placeRepo:      placeRepo,
		coordinator:    coordinator,
		computer:       computer,
		logger:         logger,
		defaultTimeout: defaultTimeout,
		maxTimeout:     maxTimeout,
	}
}

// GetClusters возвращает кластеры POI для viewport/zoom/filters.
// Валидация выполняется до любой работы; таймаут обрывает только
// ожидание этого запроса, общее вычисление продолжается.
func (uc *ClusterUseCase) GetClusters(ctx context.Context, req dto.ClusterRequest) (*dto.ClusterResponse, error) {
	viewport := req.Viewport()
	if !viewport.Valid() {
		return nil, errors.ErrInvalidBounds.WithDetails(map[string]interface{}{
			"north": viewport.North,
			"south": viewport.South,
			"east":  viewport.East,
			"west":  viewport.West,
		})
	}

	if !domain.ValidZoom(req.Zoom) {
		return nil, errors.ErrInvalidZoom.WithDetails(map[string]interface{}{
			"zoom": req.Zoom,
		})
	}

	filters := req.Filters().Normalized()
	key := cluster.CacheKey(viewport, req.Zoom, filters)

	timeout := uc.defaultTimeout
	if req.TimeoutMs > 0 {
		timeout = time.Duration(req.TimeoutMs) * time.Millisecond
		if timeout > uc.maxTimeout {
			timeout = uc.maxTimeout
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clusters, err := uc.coordinator.Resolve(ctx, key, func(ctx context.Context) ([]domain.Cluster, error) {
		pois, err := uc.placeRepo.Query(ctx, viewport, filters)
		if err != nil {
			return nil, err
		}
		return uc.computer.Compute(pois, req.Zoom, filters), nil
	})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			uc.logger.Warn("Clustering timed out",
				zap.String("key", key),
				zap.Int("zoom", req.Zoom),
				zap.Duration("timeout", timeout),
				zap.Float64("viewport_area_km2", utils.ViewportAreaKm2(viewport)),
			)
			return nil, errors.ErrClusteringTimeout
		}

		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, appErr
		}

		uc.logger.Error("Clustering failed", zap.String("key", key), zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	poiCount := 0
	for i := range clusters {
		poiCount += clusters[i].Count
	}

	return &dto.ClusterResponse{
		Clusters:     clusters,
		ClusterCount: len(clusters),
		POICount:     poiCount,
		Viewport:     viewport,
		Center:       viewport.Center(),
		Zoom:         req.Zoom,
		Filters:      filters,
	}, nil
}
