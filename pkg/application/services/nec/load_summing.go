package nec

import (
	"math"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

// ExistingTotal83 returns the 220.83 total of a load vector: the demand
// factor over the non-coincident sum
func (c *Calculator) ExistingTotal83(v *entities.LoadVector) float64 {
	return c.demandFactor(v.NoncoincidentTotal())
}

// PostUpgradeTotal83 returns the 220.83 total after an upgrade.
//
// For single-item HVAC vectors new HVAC equipment is credited at 100% and
// the demand factor applies to the rest. For itemized vectors every item is
// split into an existing and a new portion: existing load takes the demand
// factor and new load takes the policy's new-load weights. Only one HVAC
// mode counts, whichever yields the larger total.
func (c *Calculator) PostUpgradeTotal83(pre, post *entities.LoadVector, changes []ItemChange) float64 {
	if math.IsNaN(pre.Sum()) || math.IsNaN(post.Sum()) {
		return math.NaN()
	}

	if !post.Itemized() {
		if newHVAC(changes) {
			hvac := post.Get(entities.LoadHVAC)
			return hvac + c.demandFactor(post.Sum()-hvac)
		}
		return c.demandFactor(post.Sum())
	}
	return math.Max(c.splitTotal83(changes, true), c.splitTotal83(changes, false))
}

func (c *Calculator) splitTotal83(changes []ItemChange, heatingDominant bool) float64 {
	existing, added := 0.0, 0.0
	for _, ch := range changes {
		if !dominantMode(ch.Name, heatingDominant) {
			continue
		}
		existing += ch.Existing
		added += c.newLoadWeight(ch.Name, heatingDominant) * ch.New
	}
	return c.demandFactor(existing) + added
}

// newHVAC reports whether the upgrade installed HVAC equipment or raised its load
func newHVAC(changes []ItemChange) bool {
	for _, ch := range changes {
		if ch.Name != entities.LoadHVAC {
			continue
		}
		return ch.State == New || ch.State == Replaced || ch.Post > ch.Pre
	}
	return false
}
