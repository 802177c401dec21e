package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Calculator для географических вычислений по линиям маршрута
type Calculator struct{}

// NewCalculator создает новый калькулятор
func NewCalculator() *Calculator {
	return &Calculator{}
}

// DistanceMeters вычисляет расстояние между двумя точками в метрах
func (c *Calculator) DistanceMeters(point1, point2 orb.Point) float64 {
	return orbgeo.Distance(point1, point2)
}

// LineLength вычисляет длину линии в метрах
func (c *Calculator) LineLength(line orb.LineString) float64 {
	switch len(line) {
	case 0, 1:
		return 0
	case 2:
		return c.DistanceMeters(line[0], line[1])
	}
	return orbgeo.Length(line)
}

// MultiLineLength вычисляет суммарную длину нескольких линий в метрах
func (c *Calculator) MultiLineLength(lines orb.MultiLineString) float64 {
	var total float64
	for _, line := range lines {
		total += c.LineLength(line)
	}
	return total
}

// ElevationChange суммирует подъемы и спуски профиля высот.
// Потеря высоты возвращается положительным числом.
func (c *Calculator) ElevationChange(profile []float64) (gain, loss float64) {
	for i := 1; i < len(profile); i++ {
		delta := profile[i] - profile[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}
	return gain, loss
}
