// Package route строит сегменты из GeoJSON документа маршрута.
package route

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"

	"route-spreadsheet-go/internal/geo"
	"route-spreadsheet-go/internal/units"
	"route-spreadsheet-go/pkg/models"
)

const serviceName = "GeoJSON маршрута"

type document struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string         `json:"type"`
	Geometry   *geometry      `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Parser превращает линии GeoJSON в сегменты
type Parser struct {
	calc *geo.Calculator
}

// NewParser создает новый парсер
func NewParser(calc *geo.Calculator) *Parser {
	return &Parser{calc: calc}
}

// Parse возвращает по сегменту на каждый объект LineString или MultiLineString в порядке документа.
// Остальные геометрии пропускаются.
func (p *Parser) Parse(doc models.GeoJSON) ([]models.Segment, error) {
	var root document
	if err := json.Unmarshal(doc, &root); err != nil {
		return nil, &models.ParseError{Service: serviceName, Err: err}
	}

	var features []feature
	switch root.Type {
	case "FeatureCollection":
		features = root.Features
	case "Feature":
		var single feature
		if err := json.Unmarshal(doc, &single); err != nil {
			return nil, &models.ParseError{Service: serviceName, Err: err}
		}
		features = []feature{single}
	default:
		return nil, &models.ParseError{Service: serviceName, Err: fmt.Errorf("неподдерживаемый тип %q", root.Type)}
	}

	segments := make([]models.Segment, 0, len(features))
	for i, f := range features {
		if f.Geometry == nil {
			continue
		}
		lines, err := decodeLines(f.Geometry)
		if err != nil {
			return nil, &models.ParseError{Service: serviceName, Err: fmt.Errorf("объект %d: %w", i, err)}
		}
		if lines == nil {
			continue
		}
		segments = append(segments, p.segment(f.Properties, lines))
	}
	return segments, nil
}

func (p *Parser) segment(props map[string]any, lines [][][]float64) models.Segment {
	var multi orb.MultiLineString
	var gain, loss float64
	hasElevation := true
	for _, coords := range lines {
		line := make(orb.LineString, 0, len(coords))
		profile := make([]float64, 0, len(coords))
		for _, c := range coords {
			line = append(line, orb.Point{c[0], c[1]})
			if len(c) > 2 {
				profile = append(profile, c[2])
			}
		}
		multi = append(multi, line)
		if len(profile) != len(coords) {
			hasElevation = false
			continue
		}
		g, l := p.calc.ElevationChange(profile)
		gain += g
		loss += l
	}

	segment := models.Segment{
		Title:       firstString(props, "title", "name"),
		Distance:    models.Some(p.calc.MultiLineLength(multi)),
		Surface:     firstString(props, "surface"),
		Locomotion:  firstString(props, "locomotion"),
		Users:       firstString(props, "users"),
		Description: firstString(props, "description"),
	}
	if hasElevation && len(multi) > 0 {
		segment = segment.WithElevation(models.Some(gain), models.Some(loss))
	} else {
		// без высот в координатах берем перепады из свойств объекта, если они есть
		segment = segment.WithElevation(propertyMeasure(props, "gain"), propertyMeasure(props, "loss"))
	}
	return segment
}

// propertyMeasure читает число из свойства, записанного числом или текстом
func propertyMeasure(props map[string]any, key string) models.Measure {
	switch v := props[key].(type) {
	case float64:
		return models.Some(v)
	case string:
		return units.ParseMeasure(v)
	}
	return models.Blank()
}

// decodeLines возвращает nil для геометрий, которые не являются линиями
func decodeLines(g *geometry) ([][][]float64, error) {
	var lines [][][]float64
	switch g.Type {
	case "LineString":
		var coords [][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("координаты LineString: %w", err)
		}
		lines = [][][]float64{coords}
	case "MultiLineString":
		if err := json.Unmarshal(g.Coordinates, &lines); err != nil {
			return nil, fmt.Errorf("координаты MultiLineString: %w", err)
		}
	default:
		return nil, nil
	}

	for _, coords := range lines {
		for _, c := range coords {
			if len(c) < 2 {
				return nil, fmt.Errorf("точка должна содержать долготу и широту")
			}
		}
	}
	return lines, nil
}

func firstString(props map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := props[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
