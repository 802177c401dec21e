// Package units переводит метрические значения в единицы отображения.
package units

import (
	"math"
	"strconv"
	"strings"

	"route-spreadsheet-go/pkg/models"
)

const (
	MetersToMiles = 0.000621371
	MetersToFeet  = 3.28084
)

// IsBlank сообщает, что значение отсутствует или не является числом
func IsBlank(m models.Measure) bool {
	return m.IsBlank()
}

// Round округляет до places знаков после запятой
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// ToMiles переводит метры в мили с точностью до десятых.
// Пустое значение остается пустым.
func ToMiles(meters models.Measure) models.Measure {
	if IsBlank(meters) {
		return models.Blank()
	}
	return models.Some(Round(meters.Value*MetersToMiles, 1))
}

// ToFeet переводит метры в целые футы.
// Пустое значение остается пустым.
func ToFeet(meters models.Measure) models.Measure {
	if IsBlank(meters) {
		return models.Blank()
	}
	return models.Some(Round(meters.Value*MetersToFeet, 0))
}

// ParseMeasure разбирает число из текста. Пустая строка и нечисловой текст дают пустое значение.
func ParseMeasure(s string) models.Measure {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Blank()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return models.Blank()
	}
	return models.Some(v)
}
