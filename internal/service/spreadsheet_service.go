package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"route-spreadsheet-go/internal/aggregator"
	"route-spreadsheet-go/internal/augment"
	"route-spreadsheet-go/internal/columns"
	"route-spreadsheet-go/internal/route"
	"route-spreadsheet-go/internal/sorter"
	"route-spreadsheet-go/pkg/models"
)

const (
	warnElevationUnavailable = "сервис высот не настроен, таблица построена без высот"
	warnElevationFailed      = "сервис высот недоступен, таблица построена без высот"
)

// SpreadsheetService строит таблицу маршрута из сегментов или GeoJSON документа
type SpreadsheetService struct {
	elevation augment.ElevationService
	parser    *route.Parser
	observer  Observer
	logger    *logrus.Logger
}

// NewSpreadsheetService создает новый сервис таблиц маршрута.
// elevation может быть nil, тогда запросы высот пропускаются с предупреждением.
func NewSpreadsheetService(elevation augment.ElevationService, parser *route.Parser, observer Observer, logger *logrus.Logger) *SpreadsheetService {
	return &SpreadsheetService{
		elevation: elevation,
		parser:    parser,
		observer:  observer,
		logger:    logger,
	}
}

func (s *SpreadsheetService) start() *run {
	r := &run{
		id:       uuid.New().String(),
		kind:     KindRoute,
		started:  time.Now(),
		observer: s.observer,
	}
	r.emit(StageStarted, "начато построение таблицы маршрута")
	return r
}

// FromSegments строит таблицу из готовых сегментов
func (s *SpreadsheetService) FromSegments(ctx context.Context, req SpreadsheetRequest) (*SpreadsheetResult, error) {
	r := s.start()

	layout, err := aggregator.ParseLayout(req.Layout)
	if err != nil {
		return nil, r.fail(err)
	}
	result, err := s.build(r, req.Name, layout, req.Segments, req.SortOptions)
	if err != nil {
		return nil, r.fail(err)
	}
	return result, nil
}

// FromGeoJSON строит таблицу из GeoJSON документа.
// Ошибка сервиса высот не прерывает обработку: в результат добавляется предупреждение,
// а таблица строится по исходному документу.
func (s *SpreadsheetService) FromGeoJSON(ctx context.Context, req GeoJSONRequest) (*SpreadsheetResult, error) {
	r := s.start()

	layout, err := aggregator.ParseLayout(req.Layout)
	if err != nil {
		return nil, r.fail(err)
	}

	var (
		segments []models.Segment
		enriched bool
		warnings []string
	)
	if req.Elevation {
		var warning string
		segments, warning, err = s.elevationSegments(ctx, r, req.GeoJSON)
		if err != nil {
			return nil, r.fail(err)
		}
		if warning != "" {
			warnings = append(warnings, warning)
		} else {
			enriched = true
		}
	}

	if !enriched {
		segments, err = s.parser.Parse(req.GeoJSON)
		if err != nil {
			return nil, r.fail(err)
		}
	}
	r.emit(StageSegmentsBuilt, fmt.Sprintf("получено сегментов: %d", len(segments)))

	result, err := s.build(r, req.Name, layout, segments, req.SortOptions)
	if err != nil {
		return nil, r.fail(err)
	}
	result.Warnings = warnings
	return result, nil
}

// elevationSegments строит сегменты по документу, обогащенному высотами, либо возвращает предупреждение.
// Ответ сервиса, который не разбирается как маршрут, считается сбоем сервиса высот.
// Ошибкой считаются только некорректный документ и отмена контекста.
func (s *SpreadsheetService) elevationSegments(ctx context.Context, r *run, doc models.GeoJSON) ([]models.Segment, string, error) {
	if s.elevation == nil {
		r.emit(StageElevationSkipped, warnElevationUnavailable)
		return nil, warnElevationUnavailable, nil
	}

	enriched, err := augment.Elevation(ctx, s.elevation, doc)
	if err == nil {
		segments, parseErr := s.parser.Parse(enriched)
		if parseErr == nil {
			r.emit(StageElevationAugmented, "высоты получены")
			return segments, "", nil
		}
		err = parseErr
	} else {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			return nil, "", err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}
	}

	s.logger.WithError(err).WithField("run_id", r.id).Warn("Не удалось получить высоты, продолжаем без них")
	r.emit(StageElevationSkipped, err.Error())
	return nil, warnElevationFailed, nil
}
