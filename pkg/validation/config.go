// Package validation provides configuration validation utilities. All checks
// return warnings rather than errors: the calculation engine is defined for
// degenerate inputs, so out-of-range values are surfaced but never block a
// computation.
package validation

import (
	"fmt"
	"strings"
)

// KnownCurrencies are the currency codes the engine recognizes; anything else
// normalizes as the unit of account.
var KnownCurrencies = []string{"BRL", "USD"}

// ValidateDollarRate warns when the exchange rate would collapse or invert
// foreign-currency amounts.
func ValidateDollarRate(rate float64) []string {
	if rate <= 0 {
		return []string{fmt.Sprintf("dollarRate is %g; USD amounts will normalize to zero or negative values", rate)}
	}
	return nil
}

// ValidatePercentage warns when a percentage field is outside the 0-100 range.
func ValidatePercentage(name string, value float64) []string {
	if value < 0 || value > 100 {
		return []string{fmt.Sprintf("%s is %g; expected a percentage between 0 and 100", name, value)}
	}
	return nil
}

// ValidateAmount warns on negative monetary amounts; the engine propagates
// them arithmetically instead of rejecting them.
func ValidateAmount(name string, amount float64) []string {
	if amount < 0 {
		return []string{fmt.Sprintf("%s is negative (%g)", name, amount)}
	}
	return nil
}

// ValidateCurrency warns on currency codes outside the known enum.
func ValidateCurrency(name, code string) []string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil
	}
	for _, known := range KnownCurrencies {
		if strings.EqualFold(trimmed, known) {
			return nil
		}
	}
	return []string{fmt.Sprintf("%s uses unknown currency %q; it will be treated as the unit of account", name, code)}
}

// ValidateInitialUsers warns when the projection would start from an empty or
// negative subscriber base.
func ValidateInitialUsers(users int) []string {
	if users <= 0 {
		return []string{fmt.Sprintf("projection.initialUsers is %d; the growth simulation will never leave zero", users)}
	}
	return nil
}

// ValidateOutputFormat checks whether the requested output format is
// supported. This is the one fatal validation: there is no defined fallback
// rendering.
func ValidateOutputFormat(format string) error {
	switch format {
	case "pretty", "csv":
		return nil
	default:
		return fmt.Errorf("invalid output format: %s", format)
	}
}
