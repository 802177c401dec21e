package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// GeoJSON сериализованный GeoJSON документ маршрута.
// Хранится как есть, чтобы обогащенный документ возвращался без потерь.
type GeoJSON []byte

// MarshalJSON вставляет документ без повторного кодирования
func (g GeoJSON) MarshalJSON() ([]byte, error) {
	if len(g) == 0 {
		return []byte("null"), nil
	}
	return g, nil
}

// UnmarshalJSON сохраняет копию исходного документа, null означает отсутствие документа
func (g *GeoJSON) UnmarshalJSON(data []byte) error {
	if g == nil {
		return errors.New("models.GeoJSON: UnmarshalJSON on nil pointer")
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*g = nil
		return nil
	}
	*g = append((*g)[0:0], data...)
	return nil
}

// Valid сообщает, что документ является корректным JSON и не равен null
func (g GeoJSON) Valid() bool {
	trimmed := bytes.TrimSpace(g)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) && json.Valid(trimmed)
}
