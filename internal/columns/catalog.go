package columns

import "route-spreadsheet-go/pkg/models"

type rowColumn = models.Column[models.Row]

type recordColumn = models.Column[models.ClimateRecord]

func text(get func(models.Row) string) func(models.Row) models.Cell {
	return func(r models.Row) models.Cell { return models.TextCell(get(r)) }
}

func number(places int, get func(models.Row) models.Measure) func(models.Row) models.Cell {
	return func(r models.Row) models.Cell { return models.NumberCell(get(r), places) }
}

func observation(places int, get func(models.Observation) models.Measure) func(models.ClimateRecord) models.Cell {
	return func(r models.ClimateRecord) models.Cell { return models.NumberCell(get(r.Observation), places) }
}

// LegColumns столбцы таблицы участков в порядке отображения
func LegColumns() []rowColumn {
	return []rowColumn{
		{
			Key:   models.ColumnCumulativeDistance,
			Name:  "Cumulative distance to ending point (mi)",
			Value: number(1, func(r models.Row) models.Measure { return r.CumulativeDistance }),
		},
		{Key: models.ColumnFrom, Name: "Starting point", Value: text(func(r models.Row) string { return r.From })},
		{Key: models.ColumnTo, Name: "Ending point", Value: text(func(r models.Row) string { return r.To })},
		{Key: models.ColumnDistance, Name: "Distance (mi)", Value: number(1, func(r models.Row) models.Measure { return r.Distance })},
		{Key: models.ColumnGain, Name: "Elevation gain (feet)", Optional: true, Value: number(0, func(r models.Row) models.Measure { return r.Gain })},
		{Key: models.ColumnLoss, Name: "Elevation loss (feet)", Optional: true, Value: number(0, func(r models.Row) models.Measure { return r.Loss })},
		{Key: models.ColumnDescription, Name: "Notes about starting point", Value: text(func(r models.Row) string { return r.Description })},
		{Key: models.ColumnUsers, Name: "Users", Optional: true, Value: text(func(r models.Row) string { return r.Users })},
		{Key: models.ColumnSurface, Name: "Surface", Optional: true, Value: text(func(r models.Row) string { return r.Surface })},
		{Key: models.ColumnLocomotion, Name: "Locomotion", Optional: true, Value: text(func(r models.Row) string { return r.Locomotion })},
	}
}

// LocationColumns столбцы таблицы точек маршрута.
// Перепады высот здесь обязательные, в отличие от LegColumns.
func LocationColumns() []rowColumn {
	return []rowColumn{
		{Key: models.ColumnLocation, Name: "Location", Value: text(func(r models.Row) string { return r.Location })},
		{
			Key:   models.ColumnCumulativeDistance,
			Name:  "Cumulative distance (mi)",
			Value: number(1, func(r models.Row) models.Measure { return r.CumulativeDistance }),
		},
		{Key: models.ColumnDistance, Name: "Distance from previous location (mi)", Value: number(1, func(r models.Row) models.Measure { return r.Distance })},
		{Key: models.ColumnGain, Name: "Elevation gain from previous location (feet)", Value: number(0, func(r models.Row) models.Measure { return r.Gain })},
		{Key: models.ColumnLoss, Name: "Elevation loss from previous location (feet)", Value: number(0, func(r models.Row) models.Measure { return r.Loss })},
		{Key: models.ColumnDescription, Name: "Notes", Value: text(func(r models.Row) string { return r.Description })},
		{Key: models.ColumnUsers, Name: "Users", Optional: true, Value: text(func(r models.Row) string { return r.Users })},
		{Key: models.ColumnSurface, Name: "Surface", Optional: true, Value: text(func(r models.Row) string { return r.Surface })},
		{Key: models.ColumnLocomotion, Name: "Locomotion", Optional: true, Value: text(func(r models.Row) string { return r.Locomotion })},
	}
}

// ClimateColumns столбцы таблицы климатических данных, все обязательные
func ClimateColumns() []recordColumn {
	return []recordColumn{
		{Key: models.ColumnLatitude, Name: "Latitude", Value: func(r models.ClimateRecord) models.Cell {
			return models.NumberCell(models.Some(r.Lat), 6)
		}},
		{Key: models.ColumnLongitude, Name: "Longitude", Value: func(r models.ClimateRecord) models.Cell {
			return models.NumberCell(models.Some(r.Long), 6)
		}},
		{Key: models.ColumnDate, Name: "Date", Value: func(r models.ClimateRecord) models.Cell {
			return models.TextCell(r.Date)
		}},
		{Key: models.ColumnDayLength, Name: "Day length (s/day)", Value: observation(0, func(o models.Observation) models.Measure { return o.DayLength })},
		{Key: models.ColumnPrecipitation, Name: "Precipitation (mm/day)", Value: observation(1, func(o models.Observation) models.Measure { return o.Precipitation })},
		{Key: models.ColumnRadiation, Name: "Shortwave radiation (W/m²)", Value: observation(1, func(o models.Observation) models.Measure { return o.Radiation })},
		{Key: models.ColumnSnowWater, Name: "Snow water equivalent (kg/m²)", Value: observation(1, func(o models.Observation) models.Measure { return o.SnowWater })},
		{Key: models.ColumnMaxTemp, Name: "Maximum air temperature (°C)", Value: observation(1, func(o models.Observation) models.Measure { return o.MaxTemp })},
		{Key: models.ColumnMinTemp, Name: "Minimum air temperature (°C)", Value: observation(1, func(o models.Observation) models.Measure { return o.MinTemp })},
		{Key: models.ColumnVaporPressure, Name: "Water vapor pressure (Pa)", Value: observation(0, func(o models.Observation) models.Measure { return o.VaporPressure })},
	}
}
