package calculator

import (
	"math"

	"go.uber.org/zap"

	"github.com/iwvelando/saas-breakeven/pkg/constants"
	"github.com/iwvelando/saas-breakeven/pkg/mathutil"
)

// Recompute derives a complete Results snapshot from a State. It is a pure
// function of the snapshot: every field is recomputed on every call and no
// state is carried between invocations.
//
// When the contribution margin is non-positive, break-even is unreachable and
// every break-even-dependent field is set to positive infinity; unit
// economics are still computed since they only depend on churn, CAC, and net
// revenue.
func Recompute(logger *zap.Logger, state State) Results {
	if logger == nil {
		logger = zap.NewNop()
	}

	gross := state.AverageRevenuePerUser()
	net := state.NetRevenuePerUser(gross)
	variable := state.PerUserVariableCost()
	fixed := state.TotalFixedCosts()
	margin := net - variable
	cac := Normalize(state.AcquisitionCostPerUser, state.DollarRate)

	results := Results{
		CustomerAcquisitionCost: cac,
		CustomerLifetimeValue:   lifetimeValue(net, state.MonthlyChurnRate),
		PaybackPeriodMonths:     paybackPeriod(cac, margin),
	}
	results.Ltv2CacRatio = ltvToCac(results.CustomerLifetimeValue, cac)

	if margin <= 0 {
		inf := math.Inf(1)
		results.BreakEvenUsers = inf
		results.WorkingCapital = inf
		results.MonthlyRevenue = inf
		results.MonthlyCosts = inf
		results.MonthlyProfit = inf
		results.MonthlyTaxes = inf
		results.MonthlyGateway = inf
		logger.Debug("break-even unreachable",
			zap.String("op", "calculator.Recompute"),
			zap.Float64("netRevenuePerUser", net),
			zap.Float64("perUserVariableCost", variable),
		)
		return results
	}

	users := math.Ceil(fixed / margin)
	gatewayFixed := Normalize(state.PaymentGatewayFixed, state.DollarRate)

	results.BreakEvenUsers = users
	results.MonthlyRevenue = users * gross
	results.MonthlyCosts = state.TotalMonthlyCosts(users)
	results.MonthlyProfit = margin*users - fixed
	results.MonthlyTaxes = users * mathutil.ApplyPercentage(gross, state.TaxRate)
	results.MonthlyGateway = users * (mathutil.ApplyPercentage(gross, state.PaymentGatewayPercentage) + gatewayFixed)
	results.WorkingCapital = results.MonthlyCosts * constants.WorkingCapitalMonths

	logger.Debug("results recomputed",
		zap.String("op", "calculator.Recompute"),
		zap.Float64("breakEvenUsers", users),
		zap.Float64("contributionMargin", margin),
		zap.Float64("monthlyProfit", results.MonthlyProfit),
	)
	return results
}
