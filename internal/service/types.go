package service

import (
	"route-spreadsheet-go/internal/aggregator"
	"route-spreadsheet-go/pkg/models"
)

// SortOptions параметры сортировки сегментов
type SortOptions struct {
	Sort        bool   `json:"sort"`        // сортировать сегменты по названию
	StripPrefix bool   `json:"stripPrefix"` // сортировать по ведущему номеру и убрать его из названия
	Layout      string `json:"layout"`      // legs (по умолчанию) или locations
}

// SpreadsheetRequest запрос на построение таблицы из готовых сегментов
type SpreadsheetRequest struct {
	Name     string           `json:"name"`
	Segments []models.Segment `json:"segments"`
	SortOptions
}

// GeoJSONRequest запрос на построение таблицы из GeoJSON документа
type GeoJSONRequest struct {
	Name      string         `json:"name"`
	GeoJSON   models.GeoJSON `json:"geojson"`
	Elevation bool           `json:"elevation"` // запросить высоты у сервиса высот
	SortOptions
}

// SpreadsheetResult результат построения таблицы маршрута
type SpreadsheetResult struct {
	RunID    string            `json:"runId"`
	Name     string            `json:"name,omitempty"`
	Layout   aggregator.Layout `json:"layout"`
	Table    models.Table      `json:"table"`
	Warnings []string          `json:"warnings,omitempty"`
}

// ClimateRequest запрос на получение климатических данных
type ClimateRequest struct {
	Queries []models.Query `json:"queries"`
}

// ClimateResult таблица климатических данных
type ClimateResult struct {
	RunID string              `json:"runId"`
	Table models.ClimateTable `json:"table"`
}
