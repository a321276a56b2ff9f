// Package constants provides shared constants for the saas-breakeven application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// WorkingCapitalMonths is the cash-runway buffer applied to monthly costs
	// at the break-even point
	WorkingCapitalMonths = 3

	// DefaultPlanWeight is the distribution share assumed for plans with no
	// declared weight
	DefaultPlanWeight = 1.0
)

// Projection constants
const (
	// ProjectionHorizonMonths is the number of simulated months in a growth
	// projection (month 0 is also emitted, so 37 points total)
	ProjectionHorizonMonths = 36

	// BreakEvenSearchCapMonths caps the months-to-break-even search; past
	// this the answer is reported as never
	BreakEvenSearchCapMonths = 120

	// CohortTrackingMonths is how long a retention cohort is tracked
	CohortTrackingMonths = 12

	// CohortSize is the size of the hypothetical retention cohort
	CohortSize = 100

	// FortyPercentRuleThreshold is the cost-to-revenue percentage ceiling for
	// the 40% rule compliance check
	FortyPercentRuleThreshold = 40.0

	// DefaultInitialUsers is the projection starting subscriber count when
	// none is configured
	DefaultInitialUsers = 10

	// DefaultGrowthRate is the projection monthly growth percentage when none
	// is configured
	DefaultGrowthRate = 8.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size for
	// JSON payloads (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)
