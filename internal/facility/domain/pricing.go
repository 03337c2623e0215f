package facility

import "math"

// baseWindowHours is the duration covered by the base charge.
const baseWindowHours = 2.0

// PricingRule is the rate pair for one vehicle class: a flat base fee covering
// the first two hours and an hourly overage rate beyond them.
type PricingRule struct {
	Base   float64
	Hourly float64
}

// Charge computes the fee for a stay of the given fractional hours.
// Amounts are rounded half away from zero to two decimals.
func (r PricingRule) Charge(hours float64) float64 {
	if hours <= baseWindowHours {
		return roundMoney(r.Base)
	}
	return roundMoney(r.Base + (hours-baseWindowHours)*r.Hourly)
}

// PricingTable maps vehicle classes to their rates. Set once at ledger
// construction, immutable afterwards.
type PricingTable map[VehicleClass]PricingRule

// DefaultPricingTable returns the standard facility rates.
func DefaultPricingTable() PricingTable {
	return PricingTable{
		ClassBike:  {Base: 10, Hourly: 5},
		ClassCar:   {Base: 20, Hourly: 10},
		ClassEV:    {Base: 25, Hourly: 12},
		ClassHeavy: {Base: 50, Hourly: 25},
	}
}

// Validate checks the table is non-empty with non-negative rates.
func (t PricingTable) Validate() error {
	if len(t) == 0 {
		return ErrEmptyPricing
	}
	for _, rule := range t {
		if rule.Base < 0 || rule.Hourly < 0 {
			return ErrNegativeRate
		}
	}
	return nil
}

func (t PricingTable) clone() PricingTable {
	out := make(PricingTable, len(t))
	for class, rule := range t {
		out[class] = rule
	}
	return out
}

func roundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
