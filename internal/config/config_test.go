package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/saas-breakeven/internal/calculator"
)

const sampleConfig = `---
dollarRate: 5.0
subscriptionPlans:
  - name: Basic
    price: 14.90
    currency: BRL
    weight: 3
  - name: Premium
    price: 34.90
    currency: BRL
monthlyCosts:
  - name: Hosting
    value: 10
    currency: USD
annualCosts:
  - name: Domain
    value: 120
    currency: BRL
perUserCosts:
  - name: API
    value: 1
    currency: USD
paymentGatewayPercentage: 3.99
paymentGatewayFixed: 0.39
taxRate: 15.5
monthlyChurnRate: 3
acquisitionCostPerUser: 25
projection:
  initialUsers: 20
  growthRate: 12
`

func TestLoadConfigurationFromReader(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if conf.DollarRate != 5.0 {
		t.Errorf("DollarRate = %v, expected 5.0", conf.DollarRate)
	}
	if len(conf.SubscriptionPlans) != 2 {
		t.Fatalf("plan count = %d, expected 2", len(conf.SubscriptionPlans))
	}
	if conf.SubscriptionPlans[0].Weight != 3 {
		t.Errorf("plan weight = %v, expected 3", conf.SubscriptionPlans[0].Weight)
	}
	if conf.PaymentGatewayPercentage != 3.99 {
		t.Errorf("PaymentGatewayPercentage = %v, expected 3.99", conf.PaymentGatewayPercentage)
	}
	if conf.Projection.InitialUsers != 20 {
		t.Errorf("Projection.InitialUsers = %d, expected 20", conf.Projection.InitialUsers)
	}
	if conf.Projection.GrowthRate != 12 {
		t.Errorf("Projection.GrowthRate = %v, expected 12", conf.Projection.GrowthRate)
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.TaxRate != 15.5 {
		t.Errorf("TaxRate = %v, expected 15.5", conf.TaxRate)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Errorf("LoadConfiguration() with missing file returned nil error")
	}
}

func TestProjectionDefaults(t *testing.T) {
	minimal := `---
dollarRate: 5.0
subscriptionPlans:
  - name: Basic
    price: 10
    currency: BRL
`
	conf, err := LoadConfigurationFromReader(strings.NewReader(minimal))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if conf.Projection.InitialUsers != 10 {
		t.Errorf("default InitialUsers = %d, expected 10", conf.Projection.InitialUsers)
	}
	if conf.Projection.GrowthRate != 8 {
		t.Errorf("default GrowthRate = %v, expected 8", conf.Projection.GrowthRate)
	}
}

func TestStateConversion(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	state := conf.State()

	if state.DollarRate != 5.0 {
		t.Errorf("state DollarRate = %v, expected 5.0", state.DollarRate)
	}
	if len(state.SubscriptionPlans) != 2 {
		t.Fatalf("state plan count = %d, expected 2", len(state.SubscriptionPlans))
	}

	// Unset weight defaults to one share.
	if state.SubscriptionPlans[1].Weight != 1 {
		t.Errorf("unset plan weight = %v, expected 1", state.SubscriptionPlans[1].Weight)
	}

	if state.MonthlyCosts[0].Value.Currency != calculator.USD {
		t.Errorf("monthly cost currency = %v, expected USD", state.MonthlyCosts[0].Value.Currency)
	}
	if state.PaymentGatewayFixed.Amount != 0.39 || state.PaymentGatewayFixed.Currency != calculator.BRL {
		t.Errorf("PaymentGatewayFixed = %+v, expected 0.39 BRL", state.PaymentGatewayFixed)
	}
	if state.AcquisitionCostPerUser.Amount != 25 {
		t.Errorf("AcquisitionCostPerUser = %v, expected 25", state.AcquisitionCostPerUser.Amount)
	}

	ids := make(map[string]struct{})
	for _, plan := range state.SubscriptionPlans {
		if plan.ID == "" {
			t.Errorf("plan %q has empty ID", plan.Name)
		}
		if _, dup := ids[plan.ID]; dup {
			t.Errorf("duplicate ID %q", plan.ID)
		}
		ids[plan.ID] = struct{}{}
	}
	for _, cost := range state.MonthlyCosts {
		if _, dup := ids[cost.ID]; dup {
			t.Errorf("duplicate ID %q", cost.ID)
		}
		ids[cost.ID] = struct{}{}
	}
}

func TestCurrencyParsing(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected calculator.Currency
	}{
		{"Uppercase USD", "USD", calculator.USD},
		{"Lowercase usd", "usd", calculator.USD},
		{"Padded USD", " usd ", calculator.USD},
		{"BRL", "BRL", calculator.BRL},
		{"Empty defaults to BRL", "", calculator.BRL},
		{"Unknown defaults to BRL", "EUR", calculator.BRL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseCurrency(tt.code); got != tt.expected {
				t.Errorf("parseCurrency(%q) = %v, expected %v", tt.code, got, tt.expected)
			}
		})
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name             string
		mutate           func(*Configuration)
		expectedFragment string
	}{
		{
			name:             "Valid config has no warnings",
			mutate:           func(c *Configuration) {},
			expectedFragment: "",
		},
		{
			name:             "Non-positive dollar rate",
			mutate:           func(c *Configuration) { c.DollarRate = 0 },
			expectedFragment: "dollarRate",
		},
		{
			name:             "No plans",
			mutate:           func(c *Configuration) { c.SubscriptionPlans = nil },
			expectedFragment: "no subscription plans",
		},
		{
			name:             "Churn above 100",
			mutate:           func(c *Configuration) { c.MonthlyChurnRate = 150 },
			expectedFragment: "monthlyChurnRate",
		},
		{
			name:             "Negative plan price",
			mutate:           func(c *Configuration) { c.SubscriptionPlans[0].Price = -5 },
			expectedFragment: "price",
		},
		{
			name:             "Unknown currency",
			mutate:           func(c *Configuration) { c.MonthlyCosts[0].Currency = "EUR" },
			expectedFragment: "unknown currency",
		},
		{
			name:             "Negative plan weight",
			mutate:           func(c *Configuration) { c.SubscriptionPlans[0].Weight = -1 },
			expectedFragment: "negative weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
			if err != nil {
				t.Fatalf("LoadConfigurationFromReader() error = %v", err)
			}
			tt.mutate(conf)

			warnings := conf.ValidateConfiguration()
			if tt.expectedFragment == "" {
				if len(warnings) != 0 {
					t.Errorf("expected no warnings, got %v", warnings)
				}
				return
			}

			found := false
			for _, warning := range warnings {
				if strings.Contains(warning, tt.expectedFragment) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected a warning containing %q, got %v", tt.expectedFragment, warnings)
			}
		})
	}
}
