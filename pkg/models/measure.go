package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Measure числовое значение, которое может отсутствовать.
// Пустое значение (Valid == false) отличается от нуля.
type Measure struct {
	Value float64
	Valid bool
}

// Some создает заполненное значение
func Some(v float64) Measure {
	return Measure{Value: v, Valid: true}
}

// Blank возвращает пустое значение
func Blank() Measure {
	return Measure{}
}

// IsBlank сообщает, что значение отсутствует или не является конечным числом
func (m Measure) IsBlank() bool {
	return !m.Valid || math.IsNaN(m.Value) || math.IsInf(m.Value, 0)
}

// Or возвращает значение или fallback, если оно пустое
func (m Measure) Or(fallback float64) float64 {
	if m.IsBlank() {
		return fallback
	}
	return m.Value
}

// Format форматирует значение с заданным количеством знаков после запятой
func (m Measure) Format(places int) string {
	if m.IsBlank() {
		return ""
	}
	return strconv.FormatFloat(m.Value, 'f', places, 64)
}

// MarshalJSON пустое значение сериализуется как null
func (m Measure) MarshalJSON() ([]byte, error) {
	if m.IsBlank() {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON null превращается в пустое значение
func (m *Measure) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = Measure{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Some(v)
	return nil
}
