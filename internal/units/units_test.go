package units

import (
	"math"
	"testing"

	"route-spreadsheet-go/pkg/models"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name  string
		input models.Measure
		miles models.Measure
		feet  models.Measure
	}{
		{"one mile", models.Some(1609.34), models.Some(1.0), models.Some(5280)},
		{"zero is not blank", models.Some(0), models.Some(0), models.Some(0)},
		{"hundred meters", models.Some(100), models.Some(0.1), models.Some(328)},
		{"blank", models.Blank(), models.Blank(), models.Blank()},
		{"nan", models.Some(math.NaN()), models.Blank(), models.Blank()},
		{"infinity", models.Some(math.Inf(1)), models.Blank(), models.Blank()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToMiles(tt.input); got != tt.miles {
				t.Errorf("ToMiles(%v) = %v, want %v", tt.input, got, tt.miles)
			}
			if got := ToFeet(tt.input); got != tt.feet {
				t.Errorf("ToFeet(%v) = %v, want %v", tt.input, got, tt.feet)
			}
		})
	}
}

func TestBlankNeverBecomesZero(t *testing.T) {
	for _, m := range []models.Measure{models.Blank(), models.Some(math.NaN()), {Value: 12, Valid: false}} {
		if got := ToMiles(m); got.Valid {
			t.Errorf("ToMiles(%v) = %v, want blank", m, got)
		}
		if got := ToFeet(m); got.Valid {
			t.Errorf("ToFeet(%v) = %v, want blank", m, got)
		}
	}
}

func TestParseMeasure(t *testing.T) {
	tests := map[string]models.Measure{
		"":      models.Blank(),
		"   ":   models.Blank(),
		"n/a":   models.Blank(),
		"NaN":   models.Blank(),
		"0":     models.Some(0),
		" 12.5": models.Some(12.5),
	}
	for input, expect := range tests {
		if got := ParseMeasure(input); got != expect {
			t.Errorf("ParseMeasure(%q) = %v, want %v", input, got, expect)
		}
	}
}

func TestRound(t *testing.T) {
	if got := Round(1.25, 1); got != 1.3 {
		t.Errorf("Round(1.25, 1) = %v", got)
	}
	if got := Round(327.5, 0); got != 328 {
		t.Errorf("Round(327.5, 0) = %v", got)
	}
}
