package models

import "time"

// DateLayout формат даты в запросах климатических данных
const DateLayout = "2006-01-02"

// Query запрос климатических данных для одной точки
type Query struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
	Date string  `json:"date"` // YYYY-MM-DD
}

// Validate проверяет координаты и дату запроса
func (q Query) Validate(index int) error {
	if !finite(q.Lat) || q.Lat < -90 || q.Lat > 90 {
		return &ValidationError{Index: index, Field: "lat", Reason: "широта вне диапазона [-90, 90]"}
	}
	if !finite(q.Long) || q.Long < -180 || q.Long > 180 {
		return &ValidationError{Index: index, Field: "long", Reason: "долгота вне диапазона [-180, 180]"}
	}
	if _, err := time.Parse(DateLayout, q.Date); err != nil {
		return &ValidationError{Index: index, Field: "date", Reason: "ожидается дата в формате YYYY-MM-DD"}
	}
	return nil
}

// Observation климатические наблюдения для одной точки и даты
type Observation struct {
	DayLength     Measure `json:"dayl"` // секунды
	Precipitation Measure `json:"prcp"` // мм/сутки
	Radiation     Measure `json:"srad"` // Вт/м²
	SnowWater     Measure `json:"swe"`  // кг/м²
	MaxTemp       Measure `json:"tmax"` // °C
	MinTemp       Measure `json:"tmin"` // °C
	VaporPressure Measure `json:"vp"`   // Па
}

// ClimateRecord запрос, объединенный с полученным для него наблюдением
type ClimateRecord struct {
	Query
	Observation
}
