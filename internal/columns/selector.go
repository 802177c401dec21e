// Package columns выбирает столбцы, которые имеет смысл показывать для данного набора строк.
package columns

import (
	"fmt"

	"route-spreadsheet-go/internal/aggregator"
	"route-spreadsheet-go/pkg/models"
)

// Select возвращает столбцы каталога в исходном порядке.
// Необязательный столбец исключается, только если ни в одной строке у него нет значения.
func Select[R any](rows []R, catalog []models.Column[R]) []models.Column[R] {
	out := make([]models.Column[R], 0, len(catalog))
	for _, column := range catalog {
		if column.Optional && !hasValue(rows, column) {
			continue
		}
		out = append(out, column)
	}
	return out
}

func hasValue[R any](rows []R, column models.Column[R]) bool {
	for _, row := range rows {
		if !column.Value(row).Blank() {
			return true
		}
	}
	return false
}

// Catalog возвращает каталог столбцов для способа построения строк
func Catalog(layout aggregator.Layout) ([]models.Column[models.Row], error) {
	switch layout {
	case aggregator.LayoutLegs:
		return LegColumns(), nil
	case aggregator.LayoutLocations:
		return LocationColumns(), nil
	}
	return nil, fmt.Errorf("нет каталога столбцов для %q", layout)
}

// Build собирает таблицу маршрута из готовых строк
func Build(layout aggregator.Layout, rows []models.Row) (models.Table, error) {
	catalog, err := Catalog(layout)
	if err != nil {
		return models.Table{}, err
	}
	return models.Table{Columns: Select(rows, catalog), Rows: rows}, nil
}

// BuildClimate собирает таблицу климатических данных
func BuildClimate(records []models.ClimateRecord) models.ClimateTable {
	return models.ClimateTable{Columns: Select(records, ClimateColumns()), Records: records}
}

// Restore собирает таблицу из сохраненных ключей столбцов без повторного выбора.
// Неизвестные ключи пропускаются.
func Restore(layout aggregator.Layout, keys []models.ColumnKey, rows []models.Row) (models.Table, error) {
	catalog, err := Catalog(layout)
	if err != nil {
		return models.Table{}, err
	}
	byKey := make(map[models.ColumnKey]models.Column[models.Row], len(catalog))
	for _, column := range catalog {
		byKey[column.Key] = column
	}

	selected := make([]models.Column[models.Row], 0, len(keys))
	for _, key := range keys {
		if column, ok := byKey[key]; ok {
			selected = append(selected, column)
		}
	}
	return models.Table{Columns: selected, Rows: rows}, nil
}
