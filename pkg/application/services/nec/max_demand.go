package nec

import (
	"math"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

// ExistingTotal87 returns 125% of the measured annual peak. Vacant units are
// excluded because their peak does not reflect occupied use.
func (c *Calculator) ExistingTotal87(rec *entities.BuildingRecord) float64 {
	if !rec.Completed() || rec.Vacancy == entities.Vacant {
		return math.NaN()
	}
	return c.policy.PeakDemandMultiplier * rec.PeakElectricityW
}

// PostUpgradeTotal87 adds the load change of an upgrade to the existing
// 220.87 total. Under NEC 2023 every increase is added in full; under the
// 2026 revision each change is weighted like new load under 220.83, the HVAC
// mode with the larger change counts and the total never drops below zero.
func (c *Calculator) PostUpgradeTotal87(existing float64, pre, post *entities.LoadVector) float64 {
	if math.IsNaN(existing) || math.IsNaN(pre.Sum()) || math.IsNaN(post.Sum()) {
		return math.NaN()
	}

	if !c.policy.ItemizeHVAC {
		added := 0.0
		for _, item := range post.Items() {
			added += math.Max(0, item.VA-pre.Get(item.Name))
		}
		return existing + added
	}

	delta := math.Max(c.weightedDelta(pre, post, true), c.weightedDelta(pre, post, false))
	return math.Max(0, existing+delta)
}

func (c *Calculator) weightedDelta(pre, post *entities.LoadVector, heatingDominant bool) float64 {
	delta := 0.0
	for _, item := range post.Items() {
		delta += c.newLoadWeight(item.Name, heatingDominant) * (item.VA - pre.Get(item.Name))
	}
	return delta
}
