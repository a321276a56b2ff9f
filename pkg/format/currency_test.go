package format

import (
	"math"
	"testing"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "R$0.00"},
		{"Small amount", 14.9, "R$14.90"},
		{"Thousands separator", 1234.56, "R$1,234.56"},
		{"Millions", 1234567.89, "R$1,234,567.89"},
		{"Negative", -1234.56, "-R$1,234.56"},
		{"Infinity", math.Inf(1), "∞"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "0.00"},
		{"Thousands separator", 9876.5, "9,876.50"},
		{"Negative", -42.1, "-42.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NumericCurrency(tt.amount); got != tt.expected {
				t.Errorf("NumericCurrency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}
