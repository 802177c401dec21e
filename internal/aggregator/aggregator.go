// Package aggregator превращает упорядоченные сегменты в строки таблицы
// с накопленным расстоянием и значениями в единицах отображения.
package aggregator

import (
	"fmt"

	"route-spreadsheet-go/internal/units"
	"route-spreadsheet-go/pkg/models"
)

// Layout способ построения строк
type Layout string

const (
	// LayoutLegs одна строка на участок: откуда, куда, длина участка.
	LayoutLegs Layout = "legs"
	// LayoutLocations одна строка на точку маршрута, метрики относятся к пути до нее.
	LayoutLocations Layout = "locations"
)

const (
	legsEndTitle      = "The End"
	locationsEndTitle = "End"
	startLabel        = "Start"
)

// ParseLayout разбирает название способа построения, пустая строка означает LayoutLegs
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutLegs:
		return LayoutLegs, nil
	case LayoutLocations:
		return LayoutLocations, nil
	}
	return "", &models.ValidationError{Index: -1, Field: "layout", Reason: fmt.Sprintf("неизвестное значение %q", s)}
}

// Aggregate строит строки выбранным способом
func Aggregate(layout Layout, segments []models.Segment) ([]models.Row, error) {
	switch layout {
	case LayoutLegs:
		return Legs(segments)
	case LayoutLocations:
		return Locations(segments)
	}
	return nil, fmt.Errorf("неизвестный способ построения строк: %q", layout)
}

// Legs строит по строке на каждый сегмент.
// Накопленное расстояние строки включает ее собственный участок,
// поле To берется из следующего сегмента, для последнего это "The End".
func Legs(segments []models.Segment) ([]models.Row, error) {
	if err := validate(segments); err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return []models.Row{}, nil
	}

	walk := make([]models.Segment, 0, len(segments)+1)
	walk = append(walk, segments...)
	walk = append(walk, models.DummySegment(legsEndTitle))

	rows := make([]models.Row, 0, len(segments))
	var cumulative float64
	for i, segment := range walk[:len(walk)-1] {
		next := walk[i+1]
		cumulative += segment.DistanceMeters()

		rows = append(rows, models.Row{
			CumulativeDistance: units.ToMiles(models.Some(cumulative)),
			From:               segment.Title,
			To:                 next.Title,
			Distance:           units.ToMiles(segment.Distance),
			Gain:               units.ToFeet(segment.Gain),
			Loss:               units.ToFeet(segment.Loss),
			Description:        segment.Description,
			Users:              segment.Users,
			Surface:            segment.Surface,
			Locomotion:         segment.Locomotion,
		})
	}
	return rows, nil
}

// Locations строит по строке на каждую точку маршрута: начало каждого сегмента и финиш.
// Расстояние и перепады высот берутся из предыдущего сегмента, первая строка
// всегда называется "Start". Для N сегментов получается N+1 строка.
func Locations(segments []models.Segment) ([]models.Row, error) {
	if err := validate(segments); err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return []models.Row{}, nil
	}

	walk := make([]models.Segment, 0, len(segments)+2)
	walk = append(walk, models.DummySegment(""))
	walk = append(walk, segments...)
	walk = append(walk, models.DummySegment(locationsEndTitle))

	rows := make([]models.Row, 0, len(segments)+1)
	var cumulative float64
	for i, segment := range walk[1:] {
		prev := walk[i]
		cumulative += prev.DistanceMeters()

		location := segment.Title
		if i == 0 {
			location = startLabel
		}

		rows = append(rows, models.Row{
			CumulativeDistance: units.ToMiles(models.Some(cumulative)),
			Location:           location,
			Distance:           units.ToMiles(prev.Distance),
			Gain:               units.ToFeet(prev.Gain),
			Loss:               units.ToFeet(prev.Loss),
			Description:        segment.Description,
			Users:              segment.Users,
			Surface:            segment.Surface,
			Locomotion:         segment.Locomotion,
		})
	}
	return rows, nil
}

func validate(segments []models.Segment) error {
	for i, segment := range segments {
		if err := segment.Validate(i); err != nil {
			return err
		}
	}
	return nil
}
