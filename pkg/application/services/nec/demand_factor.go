package nec

import (
	"math"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

// DemandFactor credits the first threshold VA at 100% and the remainder at rate
func DemandFactor(va, threshold, rate float64) float64 {
	if math.IsNaN(va) {
		return math.NaN()
	}
	return math.Min(threshold, va) + rate*math.Max(0, va-threshold)
}

func (c *Calculator) demandFactor(va float64) float64 {
	return DemandFactor(va, c.policy.DemandFactorThresholdVA, c.policy.DemandFactorRemainder)
}

// dominantMode reports whether a load takes part in the non-coincident total
func dominantMode(name entities.LoadName, heatingDominant bool) bool {
	class := name.Class()
	switch {
	case class.IsHeating():
		return heatingDominant
	case class == entities.ClassCooling:
		return !heatingDominant
	default:
		return true
	}
}

// newLoadWeight returns the factor applied to new load of an item
func (c *Calculator) newLoadWeight(name entities.LoadName, heatingDominant bool) float64 {
	if !dominantMode(name, heatingDominant) {
		return 0
	}
	switch name.Class() {
	case entities.ClassEVSE:
		return c.policy.NewEVSEFactor
	case entities.ClassHeatingResistance:
		return c.policy.NewHeatingResistanceFactor
	default:
		return c.policy.NewLoadFactor
	}
}
