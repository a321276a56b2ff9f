package calculator

import (
	"github.com/iwvelando/saas-breakeven/pkg/constants"
	"github.com/iwvelando/saas-breakeven/pkg/mathutil"
)

// AverageRevenuePerUser is the weighted mean of normalized plan prices, using
// each plan's declared distribution share as the weight. An empty plan list
// or a non-positive total weight yields zero; break-even then becomes
// unreachable downstream.
func (s State) AverageRevenuePerUser() float64 {
	if len(s.SubscriptionPlans) == 0 {
		return 0
	}

	var totalWeight, weightedRevenue float64
	for _, plan := range s.SubscriptionPlans {
		weight := plan.Weight
		if weight == 0 {
			weight = constants.DefaultPlanWeight
		}
		totalWeight += weight
		weightedRevenue += Normalize(plan.Price, s.DollarRate) * weight
	}

	if totalWeight <= 0 {
		return 0
	}
	return weightedRevenue / totalWeight
}

// NetRevenuePerUser deducts the tax percentage, the gateway percentage, and
// the flat gateway fee from gross revenue per subscriber. Both percentages
// are computed against the gross base and deducted in one pass; they never
// compound on a shrinking base.
func (s State) NetRevenuePerUser(gross float64) float64 {
	taxes := mathutil.ApplyPercentage(gross, s.TaxRate)
	gatewayCut := mathutil.ApplyPercentage(gross, s.PaymentGatewayPercentage)
	return gross - taxes - gatewayCut - Normalize(s.PaymentGatewayFixed, s.DollarRate)
}

// ContributionMargin is net revenue per subscriber minus the variable cost of
// serving one subscriber. Non-positive margin means break-even is
// unreachable.
func (s State) ContributionMargin() float64 {
	return s.NetRevenuePerUser(s.AverageRevenuePerUser()) - s.PerUserVariableCost()
}

// GrossMarginPercent is the share of gross revenue left after variable costs.
func (s State) GrossMarginPercent() float64 {
	gross := s.AverageRevenuePerUser()
	if gross == 0 {
		return 0
	}
	return mathutil.CalculatePercentage(gross-s.PerUserVariableCost(), gross)
}
