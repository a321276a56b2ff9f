// Package output provides utilities for formatting and displaying calculator
// results and projections.
package output

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/saas-breakeven/internal/calculator"
	"github.com/iwvelando/saas-breakeven/internal/projection"
	"github.com/iwvelando/saas-breakeven/pkg/format"
)

// PrettyFormat outputs a human-readable summary of the results and, when
// provided, the projection tables.
func PrettyFormat(results calculator.Results, proj *projection.Projection) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Break-even analysis ---\n")
	if results.BreakEvenAchievable() {
		_, _ = p.Printf("Break-even subscribers | %d\n", int(results.BreakEvenUsers))
		fmt.Printf("Monthly revenue        | %s\n", format.Currency(results.MonthlyRevenue))
		fmt.Printf("Monthly costs          | %s\n", format.Currency(results.MonthlyCosts))
		fmt.Printf("Monthly profit         | %s\n", format.Currency(results.MonthlyProfit))
		fmt.Printf("Monthly taxes          | %s\n", format.Currency(results.MonthlyTaxes))
		fmt.Printf("Monthly gateway fees   | %s\n", format.Currency(results.MonthlyGateway))
		fmt.Printf("Working capital (3mo)  | %s\n", format.Currency(results.WorkingCapital))
	} else {
		fmt.Printf("Break-even subscribers | not achievable\n")
	}

	fmt.Printf("\n--- Unit economics ---\n")
	fmt.Printf("Customer lifetime value | %s\n", format.Currency(results.CustomerLifetimeValue))
	fmt.Printf("Acquisition cost (CAC)  | %s\n", format.Currency(results.CustomerAcquisitionCost))
	fmt.Printf("LTV:CAC ratio           | %s (%s)\n",
		formatRatio(results.Ltv2CacRatio), calculator.LtvCacRating(results.Ltv2CacRatio))
	fmt.Printf("Payback period          | %s (%s)\n",
		formatMonths(results.PaybackPeriodMonths), calculator.PaybackRating(results.PaybackPeriodMonths))

	if proj == nil {
		return
	}

	fmt.Printf("\n--- Growth projection ---\n")
	if !proj.Achievable() {
		fmt.Printf("No projection: break-even is not achievable with the current inputs\n")
		return
	}
	fmt.Printf("Months to break-even | %s\n", formatMonths(proj.MonthsToBreakEven))
	fmt.Printf("\nMonth | Users   | New     | Churned | Revenue        | Costs          | Profit\n")
	fmt.Printf("_____ | _____   | ___     | _______ | _______        | _____          | ______\n")
	for _, point := range proj.Points {
		_, _ = p.Printf("%5d | %7d | %7d | %7d | %s | %s | %s\n",
			point.Month, point.Users, point.NewUsers, point.ChurnedUsers,
			format.Currency(point.Revenue), format.Currency(point.Costs), format.Currency(point.Profit))
	}

	fmt.Printf("\n--- Milestones ---\n")
	fmt.Printf("Users   | Revenue        | Costs          | Profit         | 40%% rule\n")
	for i, milestone := range proj.Milestones {
		compliance := "no"
		if i < len(proj.FortyPercentRule) && proj.FortyPercentRule[i].Compliant {
			compliance = "yes"
		}
		_, _ = p.Printf("%7d | %s | %s | %s | %s\n",
			milestone.Users, format.Currency(milestone.Revenue),
			format.Currency(milestone.Costs), format.Currency(milestone.Profit), compliance)
	}

	fmt.Printf("\n--- Cohort retention (cohort of 100) ---\n")
	fmt.Printf("Month | Retained\n")
	for _, point := range proj.Cohort {
		fmt.Printf("%5d | %8d\n", point.Month, point.RetainedUsers)
	}
}

// CsvFormat outputs the monthly projection in comma-separated value format.
func CsvFormat(proj projection.Projection) {
	fmt.Print(CsvString(proj.Points))
}

// CsvString renders the monthly projection points as a CSV document.
func CsvString(points []projection.Point) string {
	var builder strings.Builder
	builder.WriteString(`"month","users","newUsers","churnedUsers","revenue","costs","profit","cumulativeChurnRate"`)
	builder.WriteString("\n")
	for _, point := range points {
		builder.WriteString(fmt.Sprintf(`"%d","%d","%d","%d","%.2f","%.2f","%.2f","%.2f"`,
			point.Month, point.Users, point.NewUsers, point.ChurnedUsers,
			point.Revenue, point.Costs, point.Profit, point.CumulativeChurnRatePct))
		builder.WriteString("\n")
	}
	return builder.String()
}

func formatRatio(ratio float64) string {
	if math.IsInf(ratio, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.1fx", ratio)
}

func formatMonths(months float64) string {
	if math.IsInf(months, 1) {
		return "never"
	}
	return fmt.Sprintf("%.1f months", months)
}
