// Package augment обогащает данные маршрута значениями из внешних сервисов.
package augment

import (
	"context"

	"route-spreadsheet-go/pkg/models"
)

// ElevationService добавляет высоты в геометрию маршрута
type ElevationService interface {
	Augment(ctx context.Context, doc models.GeoJSON) (models.GeoJSON, error)
}

// ClimateService возвращает наблюдения для каждого запроса в том же порядке
type ClimateService interface {
	Augment(ctx context.Context, queries []models.Query) ([]models.Observation, error)
}

// Elevation выполняет один запрос к сервису высот.
// Ошибка возвращается как есть, решение продолжать без высот принимает вызывающий код.
func Elevation(ctx context.Context, svc ElevationService, doc models.GeoJSON) (models.GeoJSON, error) {
	if !doc.Valid() {
		return nil, &models.ValidationError{Index: -1, Field: "geojson", Reason: "документ не является корректным JSON"}
	}
	return svc.Augment(ctx, doc)
}

// Climate запрашивает наблюдения для всех запросов и объединяет их по позиции.
// Любая ошибка прерывает весь пакет, частичный результат не возвращается.
func Climate(ctx context.Context, svc ClimateService, queries []models.Query) ([]models.ClimateRecord, error) {
	for i, query := range queries {
		if err := query.Validate(i); err != nil {
			return nil, err
		}
	}
	if len(queries) == 0 {
		return []models.ClimateRecord{}, nil
	}

	observations, err := svc.Augment(ctx, queries)
	if err != nil {
		return nil, err
	}
	return Merge(queries, observations)
}

// Merge объединяет i-й запрос с i-м наблюдением.
// При разной длине возвращает AlignmentError, ничего не дополняя и не обрезая.
func Merge(queries []models.Query, observations []models.Observation) ([]models.ClimateRecord, error) {
	if len(queries) != len(observations) {
		return nil, &models.AlignmentError{Expected: len(queries), Got: len(observations)}
	}
	records := make([]models.ClimateRecord, len(queries))
	for i := range queries {
		records[i] = models.ClimateRecord{Query: queries[i], Observation: observations[i]}
	}
	return records, nil
}
