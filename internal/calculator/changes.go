package calculator

import (
	"github.com/google/uuid"

	"github.com/iwvelando/saas-breakeven/pkg/constants"
)

// Change is a single edit operation against a State. Applying a change never
// mutates the input State; callers follow Apply with an explicit Recompute.
type Change interface {
	apply(State) State
}

// Apply returns a new State with the change applied.
func Apply(state State, change Change) State {
	return change.apply(cloneState(state))
}

// AddPlan appends a subscription plan. A zero weight defaults to one share.
type AddPlan struct {
	Name   string
	Price  Money
	Weight float64
}

func (c AddPlan) apply(s State) State {
	weight := c.Weight
	if weight == 0 {
		weight = constants.DefaultPlanWeight
	}
	s.SubscriptionPlans = append(s.SubscriptionPlans, SubscriptionPlan{
		ID:     uuid.NewString(),
		Name:   c.Name,
		Price:  c.Price,
		Weight: weight,
	})
	return s
}

// RemovePlan removes the plan with the given ID; unknown IDs are ignored.
type RemovePlan struct {
	ID string
}

func (c RemovePlan) apply(s State) State {
	kept := s.SubscriptionPlans[:0]
	for _, plan := range s.SubscriptionPlans {
		if plan.ID != c.ID {
			kept = append(kept, plan)
		}
	}
	s.SubscriptionPlans = kept
	return s
}

// RenamePlan sets the display name of a plan.
type RenamePlan struct {
	ID   string
	Name string
}

func (c RenamePlan) apply(s State) State {
	for i := range s.SubscriptionPlans {
		if s.SubscriptionPlans[i].ID == c.ID {
			s.SubscriptionPlans[i].Name = c.Name
		}
	}
	return s
}

// RepricePlan sets the price (amount and currency) of a plan.
type RepricePlan struct {
	ID    string
	Price Money
}

func (c RepricePlan) apply(s State) State {
	for i := range s.SubscriptionPlans {
		if s.SubscriptionPlans[i].ID == c.ID {
			s.SubscriptionPlans[i].Price = c.Price
		}
	}
	return s
}

// ReweighPlan sets the relative distribution share of a plan.
type ReweighPlan struct {
	ID     string
	Weight float64
}

func (c ReweighPlan) apply(s State) State {
	for i := range s.SubscriptionPlans {
		if s.SubscriptionPlans[i].ID == c.ID {
			s.SubscriptionPlans[i].Weight = c.Weight
		}
	}
	return s
}

// AddCost appends a cost item to one of the three cost categories.
type AddCost struct {
	Category CostCategory
	Name     string
	Value    Money
}

func (c AddCost) apply(s State) State {
	list := costList(&s, c.Category)
	*list = append(*list, CostItem{
		ID:    uuid.NewString(),
		Name:  c.Name,
		Value: c.Value,
	})
	return s
}

// RemoveCost removes a cost item by ID from its category.
type RemoveCost struct {
	Category CostCategory
	ID       string
}

func (c RemoveCost) apply(s State) State {
	list := costList(&s, c.Category)
	kept := (*list)[:0]
	for _, item := range *list {
		if item.ID != c.ID {
			kept = append(kept, item)
		}
	}
	*list = kept
	return s
}

// RenameCost sets the display name of a cost item.
type RenameCost struct {
	Category CostCategory
	ID       string
	Name     string
}

func (c RenameCost) apply(s State) State {
	list := costList(&s, c.Category)
	for i := range *list {
		if (*list)[i].ID == c.ID {
			(*list)[i].Name = c.Name
		}
	}
	return s
}

// RevalueCost sets the value (amount and currency) of a cost item.
type RevalueCost struct {
	Category CostCategory
	ID       string
	Value    Money
}

func (c RevalueCost) apply(s State) State {
	list := costList(&s, c.Category)
	for i := range *list {
		if (*list)[i].ID == c.ID {
			(*list)[i].Value = c.Value
		}
	}
	return s
}

// SetDollarRate sets the exchange rate used for USD normalization.
type SetDollarRate struct {
	Rate float64
}

func (c SetDollarRate) apply(s State) State {
	s.DollarRate = c.Rate
	return s
}

// SetGatewayPercentage sets the payment gateway percentage fee.
type SetGatewayPercentage struct {
	Percentage float64
}

func (c SetGatewayPercentage) apply(s State) State {
	s.PaymentGatewayPercentage = c.Percentage
	return s
}

// SetGatewayFixed sets the flat per-transaction gateway fee.
type SetGatewayFixed struct {
	Fee Money
}

func (c SetGatewayFixed) apply(s State) State {
	s.PaymentGatewayFixed = c.Fee
	return s
}

// SetTaxRate sets the tax percentage applied to gross revenue.
type SetTaxRate struct {
	Rate float64
}

func (c SetTaxRate) apply(s State) State {
	s.TaxRate = c.Rate
	return s
}

// SetChurnRate sets the monthly churn percentage.
type SetChurnRate struct {
	Rate float64
}

func (c SetChurnRate) apply(s State) State {
	s.MonthlyChurnRate = c.Rate
	return s
}

// SetAcquisitionCost sets the customer acquisition cost.
type SetAcquisitionCost struct {
	Cost Money
}

func (c SetAcquisitionCost) apply(s State) State {
	s.AcquisitionCostPerUser = c.Cost
	return s
}

func costList(s *State, category CostCategory) *[]CostItem {
	switch category {
	case AnnualCost:
		return &s.AnnualCosts
	case PerUserCost:
		return &s.PerUserCosts
	default:
		return &s.MonthlyCosts
	}
}
