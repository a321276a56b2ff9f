// Package projection simulates month-by-month subscriber growth with churn
// and derives milestone snapshots, cohort retention curves, and the 40% rule
// analysis on top of the calculation engine.
package projection

import (
	"math"

	"go.uber.org/zap"

	"github.com/iwvelando/saas-breakeven/internal/calculator"
	"github.com/iwvelando/saas-breakeven/pkg/constants"
	"github.com/iwvelando/saas-breakeven/pkg/mathutil"
)

// Milestones are the fixed subscriber counts snapshotted in every projection.
var Milestones = []int{100, 200, 300, 400, 500, 1000, 5000, 10000, 50000, 100000}

// Params are the projection-only inputs on top of the calculator state.
type Params struct {
	InitialUsers  int
	GrowthRatePct float64
}

// Point is one simulated month. RetainedUsers is the raw recurrence result
// before flooring at zero; Users is the floored subscriber count carried into
// the next month.
type Point struct {
	Month                  int
	Users                  int
	Revenue                float64
	Costs                  float64
	Profit                 float64
	NewUsers               int
	ChurnedUsers           int
	RetainedUsers          int
	CumulativeChurnRatePct float64
}

// MilestonePoint is a steady-state snapshot at a fixed subscriber count, with
// no growth path implied.
type MilestonePoint struct {
	Users   int
	Revenue float64
	Costs   float64
	Profit  float64
}

// CohortPoint tracks how much of a hypothetical 100-subscriber cohort
// survives after the given number of months.
type CohortPoint struct {
	Month         int
	RetainedUsers int
}

// FortyPercentRow reports the 40% rule check at one subscriber count: total
// operating costs against gross revenue, annualized. Fee and tax deductions
// are not netted out of the cost side; this is a reporting convenience, not a
// core invariant.
type FortyPercentRow struct {
	Users          int
	AnnualRevenue  float64
	CostPercentage float64
	Compliant      bool
}

// Projection is the full derived output for one simulation run.
type Projection struct {
	MonthsToBreakEven float64
	Points            []Point
	Milestones        []MilestonePoint
	Cohort            []CohortPoint
	FortyPercentRule  []FortyPercentRow
}

// Achievable reports whether the projection could run at all. When the
// contribution margin is non-positive there is nothing to project and every
// collection is empty.
func (p Projection) Achievable() bool {
	return len(p.Points) > 0
}

// Run simulates the growth trajectory for the configured horizon. The run is
// deterministic given (params, state) and carries no state between
// invocations. A state whose break-even is unreachable short-circuits to an
// empty projection with an infinite months-to-break-even.
func Run(logger *zap.Logger, state calculator.State, results calculator.Results, params Params) Projection {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !results.BreakEvenAchievable() {
		logger.Debug("skipping projection because break-even is unreachable",
			zap.String("op", "projection.Run"),
		)
		return Projection{MonthsToBreakEven: math.Inf(1)}
	}

	proj := Projection{
		MonthsToBreakEven: monthsToBreakEven(state, results, params),
		Points:            simulate(state, params),
		Cohort:            cohortRetention(state.MonthlyChurnRate),
	}

	proj.Milestones = make([]MilestonePoint, 0, len(Milestones))
	proj.FortyPercentRule = make([]FortyPercentRow, 0, len(Milestones))
	for _, users := range Milestones {
		proj.Milestones = append(proj.Milestones, milestoneAt(state, users))
		proj.FortyPercentRule = append(proj.FortyPercentRule, FortyPercentRuleAt(state, users))
	}

	logger.Debug("projection computed",
		zap.String("op", "projection.Run"),
		zap.Int("months", len(proj.Points)),
		zap.Float64("monthsToBreakEven", proj.MonthsToBreakEven),
	)
	return proj
}

// simulate produces the monthly points for months 0 through the projection
// horizon. Month 0 seeds the trajectory: all initial subscribers count as new
// and nobody has churned yet.
func simulate(state calculator.State, params Params) []Point {
	points := make([]Point, 0, constants.ProjectionHorizonMonths+1)
	totalChurned := 0
	totalAcquired := 0

	for month := 0; month <= constants.ProjectionHorizonMonths; month++ {
		var newUsers, churnedUsers, retained int
		if month == 0 {
			newUsers = params.InitialUsers
			retained = params.InitialUsers
		} else {
			prev := points[month-1].Users
			newUsers = int(math.Floor(float64(prev) * params.GrowthRatePct / constants.PercentageMultiplier))
			churnedUsers = int(math.Floor(float64(prev) * state.MonthlyChurnRate / constants.PercentageMultiplier))
			retained = prev + newUsers - churnedUsers
		}
		users := retained
		if users < 0 {
			users = 0
		}

		totalChurned += churnedUsers
		totalAcquired += newUsers

		point := pointAt(state, users)
		point.Month = month
		point.NewUsers = newUsers
		point.ChurnedUsers = churnedUsers
		point.RetainedUsers = retained
		if month > 0 {
			point.CumulativeChurnRatePct = mathutil.CalculatePercentage(float64(totalChurned), float64(totalAcquired))
		}
		points = append(points, point)
	}

	return points
}

// monthsToBreakEven runs the same growth/churn recurrence without the cost
// projections, capped at the search limit. Returns positive infinity when the
// break-even count is never reached within the cap.
func monthsToBreakEven(state calculator.State, results calculator.Results, params Params) float64 {
	months := 0
	users := params.InitialUsers

	for float64(users) < results.BreakEvenUsers && months < constants.BreakEvenSearchCapMonths {
		months++
		newUsers := int(math.Floor(float64(users) * params.GrowthRatePct / constants.PercentageMultiplier))
		churned := int(math.Floor(float64(users) * state.MonthlyChurnRate / constants.PercentageMultiplier))
		users += newUsers - churned
		if users < 0 {
			users = 0
		}
	}

	if float64(users) < results.BreakEvenUsers {
		return math.Inf(1)
	}
	return float64(months)
}

// cohortRetention decays a fixed starting cohort by compound retention. This
// is analytically separate from the growth simulation: no acquisition, only
// churn.
func cohortRetention(churnRatePct float64) []CohortPoint {
	retentionRate := 1 - churnRatePct/constants.PercentageMultiplier
	cohort := make([]CohortPoint, 0, constants.CohortTrackingMonths+1)
	for month := 0; month <= constants.CohortTrackingMonths; month++ {
		surviving := constants.CohortSize * math.Pow(retentionRate, float64(month))
		cohort = append(cohort, CohortPoint{
			Month:         month,
			RetainedUsers: int(math.Round(surviving)),
		})
	}
	return cohort
}

// pointAt computes the steady-state financials at a subscriber count.
// Revenue is gross; profit is the contribution margin times subscribers minus
// fixed costs, consistent with the break-even solver's fee/tax ordering.
func pointAt(state calculator.State, users int) Point {
	gross := state.AverageRevenuePerUser()
	margin := state.ContributionMargin()
	return Point{
		Users:   users,
		Revenue: float64(users) * gross,
		Costs:   state.TotalMonthlyCosts(float64(users)),
		Profit:  margin*float64(users) - state.TotalFixedCosts(),
	}
}

func milestoneAt(state calculator.State, users int) MilestonePoint {
	point := pointAt(state, users)
	return MilestonePoint{
		Users:   users,
		Revenue: point.Revenue,
		Costs:   point.Costs,
		Profit:  point.Profit,
	}
}

// FortyPercentRuleAt checks the 40% rule at an arbitrary caller-supplied
// subscriber count.
func FortyPercentRuleAt(state calculator.State, users int) FortyPercentRow {
	point := pointAt(state, users)
	costPct := mathutil.CalculatePercentage(point.Costs, point.Revenue)
	return FortyPercentRow{
		Users:          users,
		AnnualRevenue:  point.Revenue * constants.MonthsPerYear,
		CostPercentage: costPct,
		Compliant:      point.Revenue > 0 && costPct <= constants.FortyPercentRuleThreshold,
	}
}
