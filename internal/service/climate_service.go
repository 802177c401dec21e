package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"route-spreadsheet-go/internal/augment"
	"route-spreadsheet-go/internal/columns"
)

// ClimateService строит таблицу климатических данных для точек маршрута
type ClimateService struct {
	climate  augment.ClimateService
	observer Observer
	logger   *logrus.Logger
}

// NewClimateService создает новый сервис климатических таблиц
func NewClimateService(climate augment.ClimateService, observer Observer, logger *logrus.Logger) *ClimateService {
	return &ClimateService{
		climate:  climate,
		observer: observer,
		logger:   logger,
	}
}

// Run запрашивает наблюдения для всех точек.
// Любая ошибка отдельного запроса прерывает весь пакет.
func (s *ClimateService) Run(ctx context.Context, req ClimateRequest) (*ClimateResult, error) {
	r := &run{
		id:       uuid.New().String(),
		kind:     KindClimate,
		started:  time.Now(),
		observer: s.observer,
	}
	r.emit(StageStarted, fmt.Sprintf("запрошены климатические данные для %d точек", len(req.Queries)))

	records, err := augment.Climate(ctx, s.climate, req.Queries)
	if err != nil {
		s.logger.WithError(err).WithField("run_id", r.id).Error("Не удалось получить климатические данные")
		return nil, r.fail(err)
	}
	r.emit(StageClimateAugmented, fmt.Sprintf("получено записей: %d", len(records)))

	table := columns.BuildClimate(records)
	r.emit(StageColumnsSelected, fmt.Sprintf("выбрано столбцов: %d", len(table.Columns)))
	r.emit(StageCompleted, "климатическая таблица построена")

	return &ClimateResult{RunID: r.id, Table: table}, nil
}
