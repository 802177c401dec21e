package service

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Stage этап обработки
type Stage string

const (
	StageStarted            Stage = "started"
	StageSorted             Stage = "sorted"
	StageElevationAugmented Stage = "elevation_augmented"
	StageElevationSkipped   Stage = "elevation_skipped"
	StageSegmentsBuilt      Stage = "segments_built"
	StageAggregated         Stage = "aggregated"
	StageColumnsSelected    Stage = "columns_selected"
	StageClimateAugmented   Stage = "climate_augmented"
	StageCompleted          Stage = "completed"
	StageFailed             Stage = "failed"
)

// Kind вид обработки
type Kind string

const (
	KindRoute   Kind = "route"
	KindClimate Kind = "climate"
)

// Event сообщение о завершении этапа
type Event struct {
	RunID   string        `json:"runId"`
	Kind    Kind          `json:"kind"`
	Stage   Stage         `json:"stage"`
	Message string        `json:"message"`
	Elapsed time.Duration `json:"elapsed"` // время с начала обработки
	At      time.Time     `json:"at"`
}

// Observer получает события о ходе обработки.
// Observe не должен блокировать обработку.
type Observer interface {
	Observe(event Event)
}

// ObserverFunc позволяет использовать функцию как Observer
type ObserverFunc func(event Event)

func (f ObserverFunc) Observe(event Event) { f(event) }

// Observers рассылает событие всем наблюдателям по порядку
type Observers []Observer

func (o Observers) Observe(event Event) {
	for _, observer := range o {
		if observer != nil {
			observer.Observe(event)
		}
	}
}

// LogObserver пишет события в лог
type LogObserver struct {
	logger *logrus.Logger
}

// NewLogObserver создает наблюдателя, пишущего в лог
func NewLogObserver(logger *logrus.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Observe(event Event) {
	entry := o.logger.WithFields(logrus.Fields{
		"run_id":  event.RunID,
		"kind":    event.Kind,
		"stage":   event.Stage,
		"elapsed": event.Elapsed.String(),
	})
	if event.Stage == StageFailed || event.Stage == StageElevationSkipped {
		entry.Warn(event.Message)
		return
	}
	entry.Info(event.Message)
}

// run отслеживает одну обработку и отправляет события наблюдателю
type run struct {
	id       string
	kind     Kind
	started  time.Time
	observer Observer
}

func (r *run) emit(stage Stage, message string) {
	if r.observer == nil {
		return
	}
	now := time.Now()
	r.observer.Observe(Event{
		RunID:   r.id,
		Kind:    r.kind,
		Stage:   stage,
		Message: message,
		Elapsed: now.Sub(r.started),
		At:      now,
	})
}

// fail сообщает об ошибке и возвращает ее без изменений
func (r *run) fail(err error) error {
	r.emit(StageFailed, err.Error())
	return err
}
