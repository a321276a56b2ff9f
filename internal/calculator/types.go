// Package calculator implements the financial calculation engine for a
// subscription business: monetary normalization, cost aggregation, the
// revenue and fee/tax models, the break-even solver, and unit economics.
//
// All monetary aggregation happens in the unit of account (BRL); USD amounts
// are converted with the user-supplied dollar rate. Degenerate inputs map to
// defined sentinel values (positive infinity, zero) rather than errors.
package calculator

import "math"

// Currency identifies the currency an amount is denominated in.
type Currency string

const (
	// BRL is the unit of account; amounts in BRL pass through normalization
	// unchanged.
	BRL Currency = "BRL"

	// USD amounts are converted at the configured dollar rate.
	USD Currency = "USD"
)

// Money is an amount tagged with its currency.
type Money struct {
	Amount   float64
	Currency Currency
}

// SubscriptionPlan is one priced offering. Weight is a relative distribution
// share between plans; it need not sum to anything in particular, and a zero
// weight means unset and counts as one share.
type SubscriptionPlan struct {
	ID     string
	Name   string
	Price  Money
	Weight float64
}

// CostItem is a named cost entry in one of the three cost categories.
type CostItem struct {
	ID    string
	Name  string
	Value Money
}

// CostCategory distinguishes the three disjoint cost lists.
type CostCategory int

const (
	// MonthlyCost is a fixed cost billed every month.
	MonthlyCost CostCategory = iota

	// AnnualCost is a fixed cost billed yearly, amortized over twelve months.
	AnnualCost

	// PerUserCost is a variable cost that scales linearly with subscribers.
	PerUserCost
)

// State is the root aggregate of calculator inputs. It is treated as an
// immutable snapshot: edits go through Apply, which returns a new State, and
// results are derived by an explicit Recompute call.
type State struct {
	DollarRate               float64
	SubscriptionPlans        []SubscriptionPlan
	MonthlyCosts             []CostItem
	AnnualCosts              []CostItem
	PerUserCosts             []CostItem
	PaymentGatewayPercentage float64
	PaymentGatewayFixed      Money
	TaxRate                  float64
	MonthlyChurnRate         float64
	AcquisitionCostPerUser   Money
}

// Results is the derived snapshot recomputed wholesale from a State. Fields
// that depend on break-even hold positive infinity when break-even is
// unreachable; callers check BreakEvenAchievable before treating them as
// finite numbers.
type Results struct {
	BreakEvenUsers          float64
	WorkingCapital          float64
	MonthlyRevenue          float64
	MonthlyCosts            float64
	MonthlyProfit           float64
	MonthlyTaxes            float64
	MonthlyGateway          float64
	CustomerLifetimeValue   float64
	CustomerAcquisitionCost float64
	Ltv2CacRatio            float64
	PaybackPeriodMonths     float64
}

// BreakEvenAchievable reports whether the contribution margin is positive,
// i.e. whether a finite break-even subscriber count exists.
func (r Results) BreakEvenAchievable() bool {
	return !math.IsInf(r.BreakEvenUsers, 1)
}
