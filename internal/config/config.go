// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config into engine state.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/iwvelando/saas-breakeven/internal/calculator"
	"github.com/iwvelando/saas-breakeven/pkg/constants"
	"github.com/iwvelando/saas-breakeven/pkg/validation"
)

// Configuration holds all configuration for saas-breakeven.
type Configuration struct {
	DollarRate               float64
	SubscriptionPlans        []PlanConfig
	MonthlyCosts             []CostConfig
	AnnualCosts              []CostConfig
	PerUserCosts             []CostConfig
	PaymentGatewayPercentage float64
	PaymentGatewayFixed      float64
	TaxRate                  float64
	MonthlyChurnRate         float64
	AcquisitionCostPerUser   float64
	Projection               ProjectionConfig `yaml:"projection,omitempty"`
	Logging                  LoggingConfig    `yaml:"logging,omitempty"`
	Output                   OutputConfig     `yaml:"output,omitempty"`
}

// PlanConfig is one subscription plan as declared in the config file.
type PlanConfig struct {
	Name     string
	Price    float64
	Currency string
	Weight   float64
}

// CostConfig is one cost entry as declared in the config file.
type CostConfig struct {
	Name     string
	Value    float64
	Currency string
}

// ProjectionConfig holds the projection-only parameters.
type ProjectionConfig struct {
	InitialUsers int     `yaml:"initialUsers,omitempty"`
	GrowthRate   float64 `yaml:"growthRate,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshalConfiguration(v)
}

// LoadConfigurationFromReader loads YAML configuration from an in-memory
// source, e.g. an HTTP request body.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshalConfiguration(v)
}

func unmarshalConfiguration(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.applyDefaults()
	return &configuration, nil
}

func (c *Configuration) applyDefaults() {
	if c.Projection.InitialUsers == 0 {
		c.Projection.InitialUsers = constants.DefaultInitialUsers
	}
	if c.Projection.GrowthRate == 0 {
		c.Projection.GrowthRate = constants.DefaultGrowthRate
	}
}

// State converts the configuration into engine state, assigning a fresh
// identifier to every plan and cost item.
func (c *Configuration) State() calculator.State {
	state := calculator.State{
		DollarRate:               c.DollarRate,
		PaymentGatewayPercentage: c.PaymentGatewayPercentage,
		PaymentGatewayFixed:      calculator.Money{Amount: c.PaymentGatewayFixed, Currency: calculator.BRL},
		TaxRate:                  c.TaxRate,
		MonthlyChurnRate:         c.MonthlyChurnRate,
		AcquisitionCostPerUser:   calculator.Money{Amount: c.AcquisitionCostPerUser, Currency: calculator.BRL},
	}

	for _, plan := range c.SubscriptionPlans {
		weight := plan.Weight
		if weight == 0 {
			weight = constants.DefaultPlanWeight
		}
		state.SubscriptionPlans = append(state.SubscriptionPlans, calculator.SubscriptionPlan{
			ID:     uuid.NewString(),
			Name:   plan.Name,
			Price:  calculator.Money{Amount: plan.Price, Currency: parseCurrency(plan.Currency)},
			Weight: weight,
		})
	}

	state.MonthlyCosts = costItems(c.MonthlyCosts)
	state.AnnualCosts = costItems(c.AnnualCosts)
	state.PerUserCosts = costItems(c.PerUserCosts)
	return state
}

// Params returns the projection parameters from the configuration.
func (c *Configuration) Params() (initialUsers int, growthRate float64) {
	return c.Projection.InitialUsers, c.Projection.GrowthRate
}

func costItems(configs []CostConfig) []calculator.CostItem {
	items := make([]calculator.CostItem, 0, len(configs))
	for _, cost := range configs {
		items = append(items, calculator.CostItem{
			ID:    uuid.NewString(),
			Name:  cost.Name,
			Value: calculator.Money{Amount: cost.Value, Currency: parseCurrency(cost.Currency)},
		})
	}
	return items
}

// parseCurrency maps a config string onto the currency enum. Anything that is
// not USD normalizes as the unit of account; validation reports unknown codes
// as warnings.
func parseCurrency(code string) calculator.Currency {
	if strings.EqualFold(strings.TrimSpace(code), string(calculator.USD)) {
		return calculator.USD
	}
	return calculator.BRL
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings never block a computation; the engine is defined
// for degenerate inputs.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	warnings = append(warnings, validation.ValidateDollarRate(c.DollarRate)...)
	warnings = append(warnings, validation.ValidatePercentage("paymentGatewayPercentage", c.PaymentGatewayPercentage)...)
	warnings = append(warnings, validation.ValidatePercentage("taxRate", c.TaxRate)...)
	warnings = append(warnings, validation.ValidatePercentage("monthlyChurnRate", c.MonthlyChurnRate)...)
	warnings = append(warnings, validation.ValidatePercentage("projection.growthRate", c.Projection.GrowthRate)...)
	warnings = append(warnings, validation.ValidateInitialUsers(c.Projection.InitialUsers)...)

	if len(c.SubscriptionPlans) == 0 {
		warnings = append(warnings, "no subscription plans configured; average revenue per user will be zero and break-even unreachable")
	}
	for _, plan := range c.SubscriptionPlans {
		warnings = append(warnings, validation.ValidateAmount(fmt.Sprintf("plan '%s' price", plan.Name), plan.Price)...)
		warnings = append(warnings, validation.ValidateCurrency(fmt.Sprintf("plan '%s'", plan.Name), plan.Currency)...)
		if plan.Weight < 0 {
			warnings = append(warnings, fmt.Sprintf("plan '%s' has a negative weight (%g)", plan.Name, plan.Weight))
		}
	}
	for category, costs := range map[string][]CostConfig{
		"monthly": c.MonthlyCosts,
		"annual":  c.AnnualCosts,
		"perUser": c.PerUserCosts,
	} {
		for _, cost := range costs {
			warnings = append(warnings, validation.ValidateAmount(fmt.Sprintf("%s cost '%s'", category, cost.Name), cost.Value)...)
			warnings = append(warnings, validation.ValidateCurrency(fmt.Sprintf("%s cost '%s'", category, cost.Name), cost.Currency)...)
		}
	}

	return warnings
}
