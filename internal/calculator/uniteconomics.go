package calculator

import (
	"math"

	"github.com/iwvelando/saas-breakeven/pkg/constants"
)

// lifetimeValue is net revenue per subscriber times the expected tenure in
// months (the reciprocal of the monthly churn rate). Zero churn means an
// infinitely long customer and an infinite lifetime value; this is a defined
// degenerate case, not an error.
func lifetimeValue(netRevenuePerUser, churnRatePct float64) float64 {
	if churnRatePct <= 0 {
		return math.Inf(1)
	}
	lifetimeMonths := constants.PercentageMultiplier / churnRatePct
	return netRevenuePerUser * lifetimeMonths
}

// ltvToCac is the LTV:CAC ratio, infinite when acquisition is free.
func ltvToCac(ltv, cac float64) float64 {
	if cac <= 0 {
		return math.Inf(1)
	}
	return ltv / cac
}

// paybackPeriod is the months of contribution margin needed to recover the
// acquisition cost, infinite when the margin is non-positive.
func paybackPeriod(cac, margin float64) float64 {
	if margin <= 0 {
		return math.Inf(1)
	}
	return cac / margin
}

// LtvCacRating maps an LTV:CAC ratio to a display rating. Ratings are
// informative only; they are not part of the calculation contract.
func LtvCacRating(ratio float64) string {
	switch {
	case ratio < 1:
		return "unsustainable"
	case ratio < 3:
		return "concerning"
	case ratio < 5:
		return "good"
	default:
		return "excellent"
	}
}

// PaybackRating maps a payback period in months to a display rating.
func PaybackRating(months float64) string {
	switch {
	case math.IsInf(months, 1):
		return "never"
	case months > 18:
		return "bad"
	case months > 12:
		return "concerning"
	case months > 6:
		return "good"
	default:
		return "excellent"
	}
}
