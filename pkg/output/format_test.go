package output

import (
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/saas-breakeven/internal/projection"
)

func TestCsvString(t *testing.T) {
	points := []projection.Point{
		{Month: 0, Users: 10, NewUsers: 10, ChurnedUsers: 0, Revenue: 300, Costs: 150, Profit: 150, CumulativeChurnRatePct: 0},
		{Month: 1, Users: 10, NewUsers: 1, ChurnedUsers: 1, Revenue: 300, Costs: 150, Profit: 150, CumulativeChurnRatePct: 9.09},
	}

	csv := CsvString(points)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("line count = %d, expected 3", len(lines))
	}
	if lines[0] != `"month","users","newUsers","churnedUsers","revenue","costs","profit","cumulativeChurnRate"` {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != `"0","10","10","0","300.00","150.00","150.00","0.00"` {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	if lines[2] != `"1","10","1","1","300.00","150.00","150.00","9.09"` {
		t.Errorf("unexpected second row: %s", lines[2])
	}
}

func TestCsvStringEmpty(t *testing.T) {
	csv := CsvString(nil)
	if !strings.HasPrefix(csv, `"month"`) || strings.Count(csv, "\n") != 1 {
		t.Errorf("expected a header-only document, got %q", csv)
	}
}

func TestFormatRatio(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		expected string
	}{
		{"Finite", 3.5, "3.5x"},
		{"Rounded", 12.04, "12.0x"},
		{"Infinite", math.Inf(1), "∞"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRatio(tt.ratio); got != tt.expected {
				t.Errorf("formatRatio(%v) = %q, expected %q", tt.ratio, got, tt.expected)
			}
		})
	}
}

func TestFormatMonths(t *testing.T) {
	tests := []struct {
		name     string
		months   float64
		expected string
	}{
		{"Finite", 6.5, "6.5 months"},
		{"Zero", 0, "0.0 months"},
		{"Infinite", math.Inf(1), "never"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMonths(tt.months); got != tt.expected {
				t.Errorf("formatMonths(%v) = %q, expected %q", tt.months, got, tt.expected)
			}
		})
	}
}
