package model

import (
	"strings"
	"time"

	"route-spreadsheet-go/pkg/models"
)

// Spreadsheet представляет сохраненную таблицу маршрута в базе данных
type Spreadsheet struct {
	ID      string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Layout  string `gorm:"type:varchar(32);not null" json:"layout"`
	Columns string `gorm:"type:text;not null" json:"-"` // ключи выбранных столбцов через запятую

	// Общая статистика
	TotalRows          int     `gorm:"not null;default:0" json:"total_rows"`
	TotalDistanceMiles float64 `gorm:"not null;default:0" json:"total_distance_miles"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Связь со строками
	Rows []SpreadsheetRow `gorm:"foreignKey:SpreadsheetID;constraint:OnDelete:CASCADE" json:"-"`
}

// SpreadsheetRow представляет строку таблицы в базе данных.
// Пустые значения хранятся как NULL.
type SpreadsheetRow struct {
	ID                 uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	SpreadsheetID      string   `gorm:"type:varchar(36);not null;index" json:"spreadsheet_id"`
	Position           int      `gorm:"not null" json:"position"`
	CumulativeDistance *float64 `json:"cumulative_distance"`
	FromTitle          string   `gorm:"type:text" json:"from"`
	ToTitle            string   `gorm:"type:text" json:"to"`
	Location           string   `gorm:"type:text" json:"location"`
	Distance           *float64 `json:"distance"`
	Gain               *float64 `json:"gain"`
	Loss               *float64 `json:"loss"`
	Description        string   `gorm:"type:text" json:"description"`
	Users              string   `gorm:"type:text" json:"users"`
	Surface            string   `gorm:"type:text" json:"surface"`
	Locomotion         string   `gorm:"type:text" json:"locomotion"`
}

// TableName указывает имя таблицы для Spreadsheet
func (Spreadsheet) TableName() string {
	return "spreadsheets"
}

// TableName указывает имя таблицы для SpreadsheetRow
func (SpreadsheetRow) TableName() string {
	return "spreadsheet_rows"
}

// NewSpreadsheet готовит таблицу к сохранению
func NewSpreadsheet(id, name, layout string, table models.Table) *Spreadsheet {
	keys := make([]string, len(table.Columns))
	for i, column := range table.Columns {
		keys[i] = string(column.Key)
	}

	sheet := &Spreadsheet{
		ID:        id,
		Name:      name,
		Layout:    layout,
		Columns:   strings.Join(keys, ","),
		TotalRows: len(table.Rows),
		Rows:      make([]SpreadsheetRow, len(table.Rows)),
	}
	for i, row := range table.Rows {
		sheet.Rows[i] = SpreadsheetRow{
			SpreadsheetID:      id,
			Position:           i,
			CumulativeDistance: toNullable(row.CumulativeDistance),
			FromTitle:          row.From,
			ToTitle:            row.To,
			Location:           row.Location,
			Distance:           toNullable(row.Distance),
			Gain:               toNullable(row.Gain),
			Loss:               toNullable(row.Loss),
			Description:        row.Description,
			Users:              row.Users,
			Surface:            row.Surface,
			Locomotion:         row.Locomotion,
		}
	}
	if n := len(table.Rows); n > 0 {
		sheet.TotalDistanceMiles = table.Rows[n-1].CumulativeDistance.Or(0)
	}
	return sheet
}

// ColumnKeys возвращает ключи сохраненных столбцов в исходном порядке
func (s *Spreadsheet) ColumnKeys() []models.ColumnKey {
	if s.Columns == "" {
		return nil
	}
	parts := strings.Split(s.Columns, ",")
	keys := make([]models.ColumnKey, len(parts))
	for i, part := range parts {
		keys[i] = models.ColumnKey(part)
	}
	return keys
}

// TableRows возвращает строки таблицы в сохраненном порядке
func (s *Spreadsheet) TableRows() []models.Row {
	rows := make([]models.Row, len(s.Rows))
	for _, r := range s.Rows {
		if r.Position < 0 || r.Position >= len(rows) {
			continue
		}
		rows[r.Position] = models.Row{
			CumulativeDistance: fromNullable(r.CumulativeDistance),
			From:               r.FromTitle,
			To:                 r.ToTitle,
			Location:           r.Location,
			Distance:           fromNullable(r.Distance),
			Gain:               fromNullable(r.Gain),
			Loss:               fromNullable(r.Loss),
			Description:        r.Description,
			Users:              r.Users,
			Surface:            r.Surface,
			Locomotion:         r.Locomotion,
		}
	}
	return rows
}

func toNullable(m models.Measure) *float64 {
	if m.IsBlank() {
		return nil
	}
	v := m.Value
	return &v
}

func fromNullable(v *float64) models.Measure {
	if v == nil {
		return models.Blank()
	}
	return models.Some(*v)
}
