package calculator

import "github.com/google/uuid"

// NewState returns a State seeded with the default session inputs.
func NewState() State {
	return State{
		DollarRate: 5.73,
		SubscriptionPlans: []SubscriptionPlan{
			{ID: uuid.NewString(), Name: "Basic Plan", Price: Money{Amount: 14.9, Currency: BRL}, Weight: 1},
			{ID: uuid.NewString(), Name: "Premium Plan", Price: Money{Amount: 34.9, Currency: BRL}, Weight: 1},
		},
		MonthlyCosts: []CostItem{
			{ID: uuid.NewString(), Name: "Hosting", Value: Money{Amount: 19, Currency: USD}},
			{ID: uuid.NewString(), Name: "Database", Value: Money{Amount: 25, Currency: USD}},
			{ID: uuid.NewString(), Name: "Dev Tools", Value: Money{Amount: 50, Currency: USD}},
			{ID: uuid.NewString(), Name: "Accounting", Value: Money{Amount: 207.9, Currency: BRL}},
		},
		AnnualCosts: []CostItem{
			{ID: uuid.NewString(), Name: "Domain", Value: Money{Amount: 49.9, Currency: USD}},
		},
		PerUserCosts: []CostItem{
			{ID: uuid.NewString(), Name: "OpenAI", Value: Money{Amount: 1, Currency: USD}},
		},
		PaymentGatewayPercentage: 3.99,
		PaymentGatewayFixed:      Money{Amount: 0.39, Currency: BRL},
		TaxRate:                  15.5,
		MonthlyChurnRate:         0,
		AcquisitionCostPerUser:   Money{Amount: 0, Currency: BRL},
	}
}

// cloneState copies a State deeply enough that mutating the copy's lists
// never aliases the original.
func cloneState(s State) State {
	out := s
	out.SubscriptionPlans = append([]SubscriptionPlan(nil), s.SubscriptionPlans...)
	out.MonthlyCosts = append([]CostItem(nil), s.MonthlyCosts...)
	out.AnnualCosts = append([]CostItem(nil), s.AnnualCosts...)
	out.PerUserCosts = append([]CostItem(nil), s.PerUserCosts...)
	return out
}
