package columns

import (
	"testing"

	"github.com/kr/pretty"

	"route-spreadsheet-go/internal/aggregator"
	"route-spreadsheet-go/pkg/models"
)

func keys[R any](cols []models.Column[R]) []models.ColumnKey {
	out := make([]models.ColumnKey, len(cols))
	for i, c := range cols {
		out[i] = c.Key
	}
	return out
}

func TestSelectDropsEmptyOptionalColumns(t *testing.T) {
	rows := []models.Row{
		{From: "A", To: "B", Distance: models.Some(1), CumulativeDistance: models.Some(1)},
		{From: "B", To: "The End", Distance: models.Some(2), CumulativeDistance: models.Some(3)},
	}

	got := keys(Select(rows, LegColumns()))

	expect := []models.ColumnKey{
		models.ColumnCumulativeDistance,
		models.ColumnFrom,
		models.ColumnTo,
		models.ColumnDistance,
		models.ColumnDescription,
	}
	if diff := pretty.Diff(expect, got); len(diff) > 0 {
		t.Errorf("unexpected columns: %v", diff)
	}
}

func TestSelectKeepsOptionalColumnWithOneValue(t *testing.T) {
	rows := []models.Row{
		{From: "A"},
		{From: "B", Users: "hikers, horses"},
		{From: "C", Gain: models.Some(0)},
	}

	got := keys(Select(rows, LegColumns()))

	expect := []models.ColumnKey{
		models.ColumnCumulativeDistance,
		models.ColumnFrom,
		models.ColumnTo,
		models.ColumnDistance,
		models.ColumnGain,
		models.ColumnDescription,
		models.ColumnUsers,
	}
	if diff := pretty.Diff(expect, got); len(diff) > 0 {
		t.Errorf("unexpected columns: %v", diff)
	}
}

func TestSelectFollowsRowChanges(t *testing.T) {
	rows := []models.Row{{From: "A"}}
	before := keys(Select(rows, LegColumns()))

	rows[0].Surface = "gravel"
	after := keys(Select(rows, LegColumns()))

	if len(after) != len(before)+1 {
		t.Errorf("expected surface to appear: before %v after %v", before, after)
	}
}

func TestLocationColumnsKeepElevation(t *testing.T) {
	rows := []models.Row{{Location: "Start"}}

	got := keys(Select(rows, LocationColumns()))

	expect := []models.ColumnKey{
		models.ColumnLocation,
		models.ColumnCumulativeDistance,
		models.ColumnDistance,
		models.ColumnGain,
		models.ColumnLoss,
		models.ColumnDescription,
	}
	if diff := pretty.Diff(expect, got); len(diff) > 0 {
		t.Errorf("unexpected columns: %v", diff)
	}
}

func TestBuildMatrix(t *testing.T) {
	segments := []models.Segment{
		{Title: "A", Distance: models.Some(1609.34), Gain: models.Some(100)},
		{Title: "B", Distance: models.Some(1609.34)},
	}
	rows, err := aggregator.Legs(segments)
	if err != nil {
		t.Fatalf("Legs: %v", err)
	}

	table, err := Build(aggregator.LayoutLegs, rows)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	header := table.Header()
	expectHeader := []string{
		"Cumulative distance to ending point (mi)",
		"Starting point",
		"Ending point",
		"Distance (mi)",
		"Elevation gain (feet)",
		"Notes about starting point",
	}
	if diff := pretty.Diff(expectHeader, header); len(diff) > 0 {
		t.Errorf("unexpected header: %v", diff)
	}

	matrix := table.Matrix()
	var got [][]string
	for _, cells := range matrix {
		var line []string
		for _, cell := range cells {
			line = append(line, cell.String())
		}
		got = append(got, line)
	}
	expect := [][]string{
		{"1.0", "A", "B", "1.0", "328", ""},
		{"2.0", "B", "The End", "1.0", "", ""},
	}
	if diff := pretty.Diff(expect, got); len(diff) > 0 {
		t.Errorf("unexpected matrix: %v", diff)
	}
}

func TestBuildClimate(t *testing.T) {
	records := []models.ClimateRecord{
		{Query: models.Query{Lat: 45.5, Long: -122.6, Date: "2019-02-01"}, Observation: models.Observation{MaxTemp: models.Some(7.5)}},
	}

	table := BuildClimate(records)

	if len(table.Columns) != len(ClimateColumns()) {
		t.Errorf("climate columns are all mandatory, got %v", keys(table.Columns))
	}
	if cell := table.Matrix()[0][2]; cell.String() != "2019-02-01" {
		t.Errorf("date cell = %q", cell.String())
	}
}

func TestRestoreKeepsStoredColumns(t *testing.T) {
	rows := []models.Row{{From: "A", To: "The End", Users: "hikers"}}
	stored := []models.ColumnKey{models.ColumnFrom, models.ColumnUsers, "unknown"}

	table, err := Restore(aggregator.LayoutLegs, stored, rows)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	expect := []models.ColumnKey{models.ColumnFrom, models.ColumnUsers}
	if diff := pretty.Diff(expect, keys(table.Columns)); len(diff) > 0 {
		t.Errorf("columns mismatch: %v", diff)
	}
	if got := table.Matrix()[0][1].String(); got != "hikers" {
		t.Errorf("expected users cell, got %q", got)
	}
}
