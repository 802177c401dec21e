package models

import "math"

// Segment один участок маршрута
type Segment struct {
	Title       string  `json:"title"`       // Название, также ключ сортировки
	Distance    Measure `json:"distance"`    // Длина в метрах
	Gain        Measure `json:"gain"`        // Набор высоты в метрах
	Loss        Measure `json:"loss"`        // Сброс высоты в метрах
	Surface     string  `json:"surface"`     // Покрытие
	Locomotion  string  `json:"locomotion"`  // Способ передвижения
	Users       string  `json:"users"`       // Кто пользуется участком
	Description string  `json:"description"` // Заметки
}

// DummySegment возвращает сегмент-ограничитель без метрик
func DummySegment(title string) Segment {
	return Segment{Title: title}
}

// DistanceMeters возвращает длину участка, отсутствующая длина считается нулевой
func (s Segment) DistanceMeters() float64 {
	return s.Distance.Or(0)
}

// WithTitle возвращает копию сегмента с другим названием
func (s Segment) WithTitle(title string) Segment {
	s.Title = title
	return s
}

// WithElevation возвращает копию сегмента с данными о перепаде высот
func (s Segment) WithElevation(gain, loss Measure) Segment {
	s.Gain = gain
	s.Loss = loss
	return s
}

// Validate проверяет числовые поля сегмента.
// index используется только в тексте ошибки.
func (s Segment) Validate(index int) error {
	if s.Distance.Valid {
		if !finite(s.Distance.Value) {
			return &ValidationError{Index: index, Field: "distance", Reason: "не является числом"}
		}
		if s.Distance.Value < 0 {
			return &ValidationError{Index: index, Field: "distance", Reason: "отрицательное значение"}
		}
	}
	if s.Gain.Valid && !finite(s.Gain.Value) {
		return &ValidationError{Index: index, Field: "gain", Reason: "не является числом"}
	}
	if s.Loss.Valid && !finite(s.Loss.Value) {
		return &ValidationError{Index: index, Field: "loss", Reason: "не является числом"}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
