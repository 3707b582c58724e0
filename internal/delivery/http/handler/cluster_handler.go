package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/clustering-microservice/internal/domain"
	"github.com/clustering-microservice/internal/pkg/errors"
	"github.com/clustering-microservice/internal/pkg/utils"
	"github.com/clustering-microservice/internal/pkg/validator"
	"github.com/clustering-microservice/internal/usecase"
	"github.com/clustering-microservice/internal/usecase/dto"
)

// ClusterHandler - обработчик запросов кластеризации POI
type ClusterHandler struct {
	clusterUC *usecase.ClusterUseCase
	logger    *zap.Logger
}

// NewClusterHandler создает новый ClusterHandler
func NewClusterHandler(clusterUC *usecase.ClusterUseCase, logger *zap.Logger) *ClusterHandler {
	return &ClusterHandler{
		clusterUC: clusterUC,
		logger:    logger,
	}
}

// GetClusters godoc
// @Summary Кластеры POI в viewport
// @Description Возвращает кластеры точек интереса для видимой области карты. Соседние POI группируются в ячейки сетки, размер которых зависит от zoom. Результаты кешируются, одинаковые конкурентные запросы дедуплицируются.
// @Tags Clusters
// @Produce json
// @Param north query number true "Северная граница viewport (градусы)"
// @Param south query number true "Южная граница viewport (градусы)"
// @Param east query number true "Восточная граница viewport (градусы)"
// @Param west query number true "Западная граница viewport (градусы)"
// @Param zoom query int false "Zoom level 1-20 (по умолчанию 12)"
// @Param categories query string false "Категории через запятую (restaurant,museum)"
// @Param min_rating query number false "Минимальный рейтинг POI (0-5)"
// @Param timeout_ms query int false "Бюджет времени ответа в миллисекундах"
// @Success 200 {object} utils.SuccessResponse{data=dto.ClusterResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Failure 504 {object} utils.ErrorResponse
// @Router /api/v1/clusters [get]
func (h *ClusterHandler) GetClusters(c *fiber.Ctx) error {
	req, err := parseClusterQuery(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.clusterUC.GetClusters(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.ClusterCount})
}

// GetClustersPOST godoc
// @Summary Кластеры POI в viewport (POST)
// @Description То же, что GET /clusters, но с параметрами в JSON body.
// @Tags Clusters
// @Accept json
// @Produce json
// @Param request body dto.ClusterRequest true "Параметры кластеризации"
// @Success 200 {object} utils.SuccessResponse{data=dto.ClusterResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Failure 504 {object} utils.ErrorResponse
// @Router /api/v1/clusters [post]
func (h *ClusterHandler) GetClustersPOST(c *fiber.Ctx) error {
	var req dto.ClusterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if req.Zoom == 0 {
		req.Zoom = domain.DefaultZoom
	}

	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.clusterUC.GetClusters(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.ClusterCount})
}

// parseClusterQuery разбирает query параметры GET запроса.
// Отсутствующий zoom заменяется на DefaultZoom здесь, на границе:
// подстановка видна вызывающему в эхе ответа.
func parseClusterQuery(c *fiber.Ctx) (dto.ClusterRequest, error) {
	var req dto.ClusterRequest

	bounds := map[string]*float64{
		"north": &req.North,
		"south": &req.South,
		"east":  &req.East,
		"west":  &req.West,
	}
	for name, dst := range bounds {
		raw := c.Query(name)
		if raw == "" {
			return req, errors.ErrInvalidBounds.WithDetails(map[string]interface{}{
				"missing": name,
			})
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, errors.ErrInvalidBounds.WithDetails(map[string]interface{}{
				"invalid": name,
			})
		}
		*dst = v
	}

	req.Zoom = domain.DefaultZoom
	if raw := c.Query("zoom"); raw != "" {
		zoom, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.ErrInvalidZoom
		}
		req.Zoom = zoom
	}

	if raw := c.Query("categories"); raw != "" {
		parts := strings.Split(raw, ",")
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				req.Categories = append(req.Categories, trimmed)
			}
		}
	}

	if raw := c.Query("min_rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || rating < 0 || rating > 5 {
			return req, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"invalid": "min_rating",
			})
		}
		req.MinRating = &rating
	}

	if raw := c.Query("timeout_ms"); raw != "" {
		timeoutMs, err := strconv.Atoi(raw)
		if err != nil || timeoutMs < 0 {
			return req, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"invalid": "timeout_ms",
			})
		}
		req.TimeoutMs = timeoutMs
	}

	return req, nil
}
