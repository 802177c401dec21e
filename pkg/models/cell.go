package models

import "encoding/json"

// Cell значение одной ячейки таблицы: текст или число
type Cell struct {
	Text    string
	Number  Measure
	Places  int // знаков после запятой при выводе числа
	numeric bool
}

// TextCell создает текстовую ячейку
func TextCell(s string) Cell {
	return Cell{Text: s}
}

// NumberCell создает числовую ячейку
func NumberCell(m Measure, places int) Cell {
	return Cell{Number: m, Places: places, numeric: true}
}

// IsNumeric сообщает, что ячейка числовая
func (c Cell) IsNumeric() bool {
	return c.numeric
}

// Blank сообщает, что в ячейке нет значения
func (c Cell) Blank() bool {
	if c.numeric {
		return c.Number.IsBlank()
	}
	return c.Text == ""
}

func (c Cell) String() string {
	if c.numeric {
		return c.Number.Format(c.Places)
	}
	return c.Text
}

// MarshalJSON числа сериализуются числами, пустые значения как null
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.numeric {
		return c.Number.MarshalJSON()
	}
	if c.Text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(c.Text)
}
