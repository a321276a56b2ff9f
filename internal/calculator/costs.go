package calculator

import "github.com/iwvelando/saas-breakeven/pkg/constants"

// Normalize converts an amount into the unit of account. BRL amounts pass
// through unchanged; USD amounts are multiplied by the dollar rate. The rate
// must be positive for meaningful results; the engine does not validate it.
func Normalize(m Money, dollarRate float64) float64 {
	if m.Currency == USD {
		return m.Amount * dollarRate
	}
	return m.Amount
}

// TotalFixedMonthly sums the normalized fixed monthly costs.
func (s State) TotalFixedMonthly() float64 {
	var sum float64
	for _, cost := range s.MonthlyCosts {
		sum += Normalize(cost.Value, s.DollarRate)
	}
	return sum
}

// TotalAnnualAmortized sums the normalized annual costs amortized to a
// monthly figure.
func (s State) TotalAnnualAmortized() float64 {
	var sum float64
	for _, cost := range s.AnnualCosts {
		sum += Normalize(cost.Value, s.DollarRate) / constants.MonthsPerYear
	}
	return sum
}

// TotalFixedCosts is the complete fixed monthly cost base: monthly costs plus
// amortized annual costs.
func (s State) TotalFixedCosts() float64 {
	return s.TotalFixedMonthly() + s.TotalAnnualAmortized()
}

// PerUserVariableCost sums the normalized variable costs for a single
// subscriber, before multiplying by any subscriber count.
func (s State) PerUserVariableCost() float64 {
	var sum float64
	for _, cost := range s.PerUserCosts {
		sum += Normalize(cost.Value, s.DollarRate)
	}
	return sum
}

// TotalMonthlyCosts is the full monthly cost at the given subscriber count.
// At zero subscribers only the fixed costs remain.
func (s State) TotalMonthlyCosts(users float64) float64 {
	return s.TotalFixedCosts() + s.PerUserVariableCost()*users
}
