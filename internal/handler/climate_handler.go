package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"route-spreadsheet-go/internal/service"
)

// ClimateHandler обработчик климатических запросов
type ClimateHandler struct {
	climate *service.ClimateService
	logger  *logrus.Logger
}

// NewClimateHandler создает новый обработчик
func NewClimateHandler(climate *service.ClimateService, logger *logrus.Logger) *ClimateHandler {
	return &ClimateHandler{
		climate: climate,
		logger:  logger,
	}
}

// RegisterRoutes регистрирует маршруты API
func (h *ClimateHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/climate", h.GetClimate)
	}
}

// GetClimate возвращает климатические данные для списка точек
// @Summary Климатические данные для точек маршрута
// @Description Запрашивает Daymet для каждой точки и возвращает таблицу в порядке запроса
// @Tags climate
// @Accept json
// @Produce json
// @Param request body service.ClimateRequest true "Точки и даты"
// @Success 200 {object} ClimateResponse
// @Failure 400 {object} gin.H
// @Failure 502 {object} gin.H
// @Router /climate [post]
func (h *ClimateHandler) GetClimate(c *gin.Context) {
	var req service.ClimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Ошибка разбора запроса: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат запроса"})
		return
	}
	h.logger.Infof("Получен запрос климатических данных для %d точек", len(req.Queries))

	result, err := h.climate.Run(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorf("Ошибка получения климатических данных: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ClimateResponse{
		RunID:   result.RunID,
		Columns: result.Table.Columns,
		Rows:    result.Table.Matrix(),
	})
}
