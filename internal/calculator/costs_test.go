package calculator

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		money      Money
		dollarRate float64
		expected   float64
	}{
		{
			name:       "BRL is identity regardless of rate",
			money:      Money{Amount: 100, Currency: BRL},
			dollarRate: 5.73,
			expected:   100,
		},
		{
			name:       "BRL identity at extreme rate",
			money:      Money{Amount: 100, Currency: BRL},
			dollarRate: 1000,
			expected:   100,
		},
		{
			name:       "USD multiplies by rate",
			money:      Money{Amount: 10, Currency: USD},
			dollarRate: 5,
			expected:   50,
		},
		{
			name:       "USD at zero rate collapses to zero",
			money:      Money{Amount: 10, Currency: USD},
			dollarRate: 0,
			expected:   0,
		},
		{
			name:       "Unknown currency treated as unit of account",
			money:      Money{Amount: 42, Currency: Currency("EUR")},
			dollarRate: 5,
			expected:   42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.money, tt.dollarRate)
			if result != tt.expected {
				t.Errorf("Normalize(%v, %v) = %v, expected %v", tt.money, tt.dollarRate, result, tt.expected)
			}
		})
	}
}

func TestCostAggregation(t *testing.T) {
	state := State{
		DollarRate: 5,
		MonthlyCosts: []CostItem{
			{ID: "m1", Name: "Hosting", Value: Money{Amount: 10, Currency: USD}},
			{ID: "m2", Name: "Accounting", Value: Money{Amount: 200, Currency: BRL}},
		},
		AnnualCosts: []CostItem{
			{ID: "a1", Name: "Domain", Value: Money{Amount: 120, Currency: BRL}},
		},
		PerUserCosts: []CostItem{
			{ID: "p1", Name: "API", Value: Money{Amount: 1, Currency: USD}},
		},
	}

	if got := state.TotalFixedMonthly(); got != 250 {
		t.Errorf("TotalFixedMonthly() = %v, expected 250", got)
	}
	if got := state.TotalAnnualAmortized(); got != 10 {
		t.Errorf("TotalAnnualAmortized() = %v, expected 10", got)
	}
	if got := state.TotalFixedCosts(); got != 260 {
		t.Errorf("TotalFixedCosts() = %v, expected 260", got)
	}
	if got := state.PerUserVariableCost(); got != 5 {
		t.Errorf("PerUserVariableCost() = %v, expected 5", got)
	}
	if got := state.TotalMonthlyCosts(10); got != 310 {
		t.Errorf("TotalMonthlyCosts(10) = %v, expected 310", got)
	}
}

func TestTotalMonthlyCostsAtZeroUsersEqualsFixedCosts(t *testing.T) {
	tests := []struct {
		name  string
		state State
	}{
		{
			name:  "Empty lists",
			state: State{DollarRate: 5},
		},
		{
			name: "Fixed costs only",
			state: State{
				DollarRate: 5,
				MonthlyCosts: []CostItem{
					{ID: "m1", Value: Money{Amount: 100, Currency: BRL}},
				},
				AnnualCosts: []CostItem{
					{ID: "a1", Value: Money{Amount: 60, Currency: BRL}},
				},
			},
		},
		{
			name: "With per-user costs",
			state: State{
				DollarRate: 5,
				MonthlyCosts: []CostItem{
					{ID: "m1", Value: Money{Amount: 100, Currency: USD}},
				},
				PerUserCosts: []CostItem{
					{ID: "p1", Value: Money{Amount: 3, Currency: BRL}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, want := tt.state.TotalMonthlyCosts(0), tt.state.TotalFixedCosts(); got != want {
				t.Errorf("TotalMonthlyCosts(0) = %v, expected TotalFixedCosts() = %v", got, want)
			}
		})
	}
}

func TestEmptyCostListsYieldZero(t *testing.T) {
	state := State{DollarRate: 5.73}
	if got := state.TotalFixedCosts(); got != 0 {
		t.Errorf("TotalFixedCosts() = %v, expected 0 for empty lists", got)
	}
	if got := state.PerUserVariableCost(); got != 0 {
		t.Errorf("PerUserVariableCost() = %v, expected 0 for empty lists", got)
	}
	if got := state.TotalMonthlyCosts(math.MaxInt32); got != 0 {
		t.Errorf("TotalMonthlyCosts(maxInt) = %v, expected 0 for empty lists", got)
	}
}
