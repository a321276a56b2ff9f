// Package testutil provides common utility functions for testing.
package testutil

import "github.com/iwvelando/saas-breakeven/internal/calculator"

// SinglePlanState builds a minimal state with one BRL plan and one fixed
// monthly BRL cost, no fees, taxes, or churn.
func SinglePlanState(price, monthlyCost float64) calculator.State {
	return calculator.State{
		DollarRate: 5.0,
		SubscriptionPlans: []calculator.SubscriptionPlan{
			{ID: "plan-1", Name: "Only Plan", Price: calculator.Money{Amount: price, Currency: calculator.BRL}, Weight: 1},
		},
		MonthlyCosts: []calculator.CostItem{
			{ID: "cost-1", Name: "Fixed", Value: calculator.Money{Amount: monthlyCost, Currency: calculator.BRL}},
		},
	}
}

// FindCost returns the cost item with the given name, or nil.
func FindCost(items []calculator.CostItem, name string) *calculator.CostItem {
	for i := range items {
		if items[i].Name == name {
			return &items[i]
		}
	}
	return nil
}

// FindPlan returns the plan with the given name, or nil.
func FindPlan(plans []calculator.SubscriptionPlan, name string) *calculator.SubscriptionPlan {
	for i := range plans {
		if plans[i].Name == name {
			return &plans[i]
		}
	}
	return nil
}
