package nec

import (
	"fmt"
	"math"

	"github.com/buildstock/panelload/pkg/application/dto"
	"github.com/buildstock/panelload/pkg/domain/entities"
)

// UpgradeOptions describe how an upgrade's load changes are credited
type UpgradeOptions struct {
	// RetainExistingAsBackup keeps replaced HVAC equipment as existing load
	RetainExistingAsBackup bool
	// ExpectLoadChange makes an applicable upgrade with no load change an error
	ExpectLoadChange bool
}

// Evaluate computes every requested method for one building. post is the
// upgraded record, or nil for a baseline-only run. An upgrade that does not
// apply to the building leaves its loads unchanged.
func (c *Calculator) Evaluate(pre, post *entities.BuildingRecord, methods []entities.Method, opts UpgradeOptions) (*dto.PanelResult, error) {
	result := dto.NewPanelResult(pre.ID, post != nil)
	changed := false

	for _, m := range methods {
		preLoads, err := c.LoadVector(pre, m)
		if err != nil {
			return nil, err
		}

		mr := &dto.MethodResult{
			Method:          m,
			PreUpgradeLoads: preLoads,
			PostUpgradeVA:   math.NaN(),
		}
		switch m {
		case entities.LoadSumming:
			mr.PreUpgradeVA = c.ExistingTotal83(preLoads)
		case entities.MaximumDemand:
			mr.PreUpgradeVA = c.ExistingTotal87(pre)
		}

		if post != nil {
			postLoads := preLoads
			var swap Swap
			if post.UpgradeApplicable {
				if postLoads, err = c.LoadVector(post, m); err != nil {
					return nil, err
				}
				swap = EquipmentSwap(pre, post)
			}
			changes := LoadChanges(preLoads, postLoads, swap, opts.RetainExistingAsBackup)
			changed = changed || Changed(changes)

			switch m {
			case entities.LoadSumming:
				mr.PostUpgradeVA = c.PostUpgradeTotal83(preLoads, postLoads, changes)
			case entities.MaximumDemand:
				mr.PostUpgradeVA = c.PostUpgradeTotal87(mr.PreUpgradeVA, preLoads, postLoads)
			}
			mr.PostUpgradeLoads = postLoads
			if len(result.Methods) == 0 {
				result.ReplacedLoads = ReplacedLoads(changes)
			}
		}
		result.Methods = append(result.Methods, mr)
	}

	if post != nil && post.UpgradeApplicable && opts.ExpectLoadChange &&
		pre.Completed() && post.Completed() && !changed {
		return nil, fmt.Errorf("building %d, upgrade %q: %w", pre.ID, post.UpgradeName, entities.ErrNoLoadChange)
	}
	return result, nil
}
