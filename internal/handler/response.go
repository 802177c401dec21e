package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"route-spreadsheet-go/internal/repository"
	"route-spreadsheet-go/pkg/models"
)

// TableResponse таблица в виде, готовом для вывода: столбцы и строки ячеек в том же порядке
type TableResponse struct {
	RunID    string                      `json:"runId,omitempty"`
	Name     string                      `json:"name,omitempty"`
	Layout   string                      `json:"layout"`
	Columns  []models.Column[models.Row] `json:"columns"`
	Rows     [][]models.Cell             `json:"rows"`
	Warnings []string                    `json:"warnings,omitempty"`
}

func newTableResponse(runID, name, layout string, table models.Table, warnings []string) TableResponse {
	return TableResponse{
		RunID:    runID,
		Name:     name,
		Layout:   layout,
		Columns:  table.Columns,
		Rows:     table.Matrix(),
		Warnings: warnings,
	}
}

// ClimateResponse климатическая таблица
type ClimateResponse struct {
	RunID   string                                `json:"runId"`
	Columns []models.Column[models.ClimateRecord] `json:"columns"`
	Rows    [][]models.Cell                       `json:"rows"`
}

// ListSpreadsheetsResponse страница сохраненных таблиц
type ListSpreadsheetsResponse struct {
	Spreadsheets []SpreadsheetSummary `json:"spreadsheets"`
	Total        int64                `json:"total"`
	Page         int                  `json:"page"`
	Size         int                  `json:"size"`
}

// SpreadsheetSummary краткие сведения о сохраненной таблице
type SpreadsheetSummary struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Layout             string  `json:"layout"`
	TotalRows          int     `json:"totalRows"`
	TotalDistanceMiles float64 `json:"totalDistanceMiles"`
	UpdatedAt          string  `json:"updatedAt"`
}

// statusFor сопоставляет ошибку обработки с HTTP статусом
func statusFor(err error) int {
	var (
		validationErr *models.ValidationError
		parseErr      *models.ParseError
		alignmentErr  *models.AlignmentError
		networkErr    *models.NetworkError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &alignmentErr), errors.As(err, &networkErr):
		return http.StatusBadGateway
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
