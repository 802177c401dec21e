package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"route-spreadsheet-go/internal/aggregator"
	"route-spreadsheet-go/internal/columns"
	"route-spreadsheet-go/internal/model"
	"route-spreadsheet-go/internal/repository"
	"route-spreadsheet-go/internal/service"
)

// SpreadsheetHandler обрабатывает HTTP запросы для работы с таблицами маршрутов
type SpreadsheetHandler struct {
	spreadsheets *service.SpreadsheetService
	repo         repository.SpreadsheetRepository
	logger       *logrus.Logger
}

// NewSpreadsheetHandler создает новый экземпляр SpreadsheetHandler
func NewSpreadsheetHandler(spreadsheets *service.SpreadsheetService, repo repository.SpreadsheetRepository, logger *logrus.Logger) *SpreadsheetHandler {
	return &SpreadsheetHandler{
		spreadsheets: spreadsheets,
		repo:         repo,
		logger:       logger,
	}
}

// RegisterRoutes регистрирует маршруты API
func (h *SpreadsheetHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/spreadsheets", h.CreateFromSegments)
		api.POST("/spreadsheets/geojson", h.CreateFromGeoJSON)
		api.GET("/spreadsheets", h.ListSpreadsheets)
		api.GET("/spreadsheets/:name", h.GetSpreadsheet)
		api.DELETE("/spreadsheets/:name", h.DeleteSpreadsheet)
	}
}

// CreateFromSegments строит таблицу из переданных сегментов
func (h *SpreadsheetHandler) CreateFromSegments(c *gin.Context) {
	var req service.SpreadsheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Ошибка разбора запроса: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат запроса"})
		return
	}
	h.logger.Infof("Получен запрос на построение таблицы из %d сегментов", len(req.Segments))

	result, err := h.spreadsheets.FromSegments(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorf("Ошибка построения таблицы: %v", err)
		respondError(c, err)
		return
	}
	h.respond(c, result)
}

// CreateFromGeoJSON строит таблицу из GeoJSON документа маршрута
func (h *SpreadsheetHandler) CreateFromGeoJSON(c *gin.Context) {
	var req service.GeoJSONRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Ошибка разбора запроса: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат запроса"})
		return
	}
	if len(req.GeoJSON) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Отсутствует обязательное поле geojson"})
		return
	}
	h.logger.Info("Получен запрос на построение таблицы из GeoJSON")

	result, err := h.spreadsheets.FromGeoJSON(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorf("Ошибка построения таблицы: %v", err)
		respondError(c, err)
		return
	}
	h.respond(c, result)
}

// respond сохраняет таблицу, если у нее есть имя, и отправляет ответ
func (h *SpreadsheetHandler) respond(c *gin.Context, result *service.SpreadsheetResult) {
	if result.Name != "" {
		sheet := model.NewSpreadsheet(result.RunID, result.Name, string(result.Layout), result.Table)
		if err := h.repo.Save(sheet); err != nil {
			h.logger.Errorf("Ошибка сохранения таблицы %s: %v", result.Name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения таблицы"})
			return
		}
		h.logger.Infof("Таблица %s сохранена", result.Name)
	}

	c.JSON(http.StatusOK, newTableResponse(result.RunID, result.Name, string(result.Layout), result.Table, result.Warnings))
}

// ListSpreadsheets возвращает список сохраненных таблиц с пагинацией
func (h *SpreadsheetHandler) ListSpreadsheets(c *gin.Context) {
	// Получаем параметры пагинации
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 || size > 100 {
		size = 10
	}

	sheets, total, err := h.repo.List(page, size)
	if err != nil {
		h.logger.Errorf("Ошибка получения списка таблиц: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения списка таблиц"})
		return
	}

	response := ListSpreadsheetsResponse{
		Spreadsheets: make([]SpreadsheetSummary, len(sheets)),
		Total:        total,
		Page:         page,
		Size:         size,
	}
	for i, sheet := range sheets {
		response.Spreadsheets[i] = SpreadsheetSummary{
			ID:                 sheet.ID,
			Name:               sheet.Name,
			Layout:             sheet.Layout,
			TotalRows:          sheet.TotalRows,
			TotalDistanceMiles: sheet.TotalDistanceMiles,
			UpdatedAt:          sheet.UpdatedAt.Format(time.RFC3339),
		}
	}

	h.logger.Infof("Возвращено %d таблиц из %d", len(sheets), total)
	c.JSON(http.StatusOK, response)
}

// GetSpreadsheet возвращает сохраненную таблицу по имени
func (h *SpreadsheetHandler) GetSpreadsheet(c *gin.Context) {
	name := c.Param("name")

	sheet, err := h.repo.GetByName(name)
	if err != nil {
		h.logger.Errorf("Ошибка получения таблицы: %v", err)
		respondError(c, err)
		return
	}

	table, err := columns.Restore(aggregator.Layout(sheet.Layout), sheet.ColumnKeys(), sheet.TableRows())
	if err != nil {
		h.logger.Errorf("Ошибка восстановления таблицы %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка восстановления таблицы"})
		return
	}

	c.JSON(http.StatusOK, newTableResponse(sheet.ID, sheet.Name, sheet.Layout, table, nil))
}

// DeleteSpreadsheet удаляет сохраненную таблицу по имени
func (h *SpreadsheetHandler) DeleteSpreadsheet(c *gin.Context) {
	name := c.Param("name")
	h.logger.Infof("Получен запрос на удаление таблицы %s", name)

	if err := h.repo.Delete(name); err != nil {
		h.logger.Errorf("Ошибка удаления таблицы: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Таблица успешно удалена"})
}
