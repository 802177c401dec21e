package models

// ColumnKey ключ столбца таблицы
type ColumnKey string

const (
	ColumnCumulativeDistance ColumnKey = "cumulativeDistance"
	ColumnFrom               ColumnKey = "from"
	ColumnTo                 ColumnKey = "to"
	ColumnLocation           ColumnKey = "location"
	ColumnDistance           ColumnKey = "distance"
	ColumnGain               ColumnKey = "gain"
	ColumnLoss               ColumnKey = "loss"
	ColumnDescription        ColumnKey = "description"
	ColumnUsers              ColumnKey = "users"
	ColumnSurface            ColumnKey = "surface"
	ColumnLocomotion         ColumnKey = "locomotion"

	ColumnLatitude      ColumnKey = "latitude"
	ColumnLongitude     ColumnKey = "longitude"
	ColumnDate          ColumnKey = "date"
	ColumnDayLength     ColumnKey = "dayl"
	ColumnPrecipitation ColumnKey = "prcp"
	ColumnRadiation     ColumnKey = "srad"
	ColumnSnowWater     ColumnKey = "swe"
	ColumnMaxTemp       ColumnKey = "tmax"
	ColumnMinTemp       ColumnKey = "tmin"
	ColumnVaporPressure ColumnKey = "vp"
)

// Column описывает один отображаемый столбец.
// Value достает значение столбца из строки типа R.
type Column[R any] struct {
	Key      ColumnKey    `json:"key"`
	Name     string       `json:"name"`
	Optional bool         `json:"-"`
	Value    func(R) Cell `json:"-"`
}

// Table таблица маршрута
type Table struct {
	Columns []Column[Row] `json:"columns"`
	Rows    []Row         `json:"rows"`
}

// Header возвращает названия столбцов
func (t Table) Header() []string {
	return header(t.Columns)
}

// Matrix возвращает строки в виде массивов, выровненных по Columns
func (t Table) Matrix() [][]Cell {
	return matrix(t.Columns, t.Rows)
}

// ClimateTable таблица климатических данных
type ClimateTable struct {
	Columns []Column[ClimateRecord] `json:"columns"`
	Records []ClimateRecord         `json:"records"`
}

// Header возвращает названия столбцов
func (t ClimateTable) Header() []string {
	return header(t.Columns)
}

// Matrix возвращает записи в виде массивов, выровненных по Columns
func (t ClimateTable) Matrix() [][]Cell {
	return matrix(t.Columns, t.Records)
}

func header[R any](columns []Column[R]) []string {
	names := make([]string, len(columns))
	for i, column := range columns {
		names[i] = column.Name
	}
	return names
}

func matrix[R any](columns []Column[R], rows []R) [][]Cell {
	out := make([][]Cell, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(columns))
		for j, column := range columns {
			cells[j] = column.Value(row)
		}
		out[i] = cells
	}
	return out
}
