// Package nec computes itemized dwelling loads and NEC 220.83 / 220.87 panel
// totals for single building records.
package nec

import (
	"fmt"
	"math"

	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/domain/repositories"
)

// AutoCircuits selects the NEC minimum number of branch circuits
const AutoCircuits = 0

// CircuitOptions sets the kitchen small-appliance and laundry circuit counts
type CircuitOptions struct {
	Kitchen int
	Laundry int
}

// Calculator evaluates building records against a nameplate table under one code edition.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	ratings  repositories.RatingRepository
	policy   entities.Policy
	circuits CircuitOptions
}

// NewCalculator creates a calculator
func NewCalculator(ratings repositories.RatingRepository, policy entities.Policy, circuits CircuitOptions) (*Calculator, error) {
	if ratings == nil {
		return nil, fmt.Errorf("rating repository cannot be nil")
	}
	c := &Calculator{ratings: ratings, policy: policy, circuits: circuits}
	if _, err := c.KitchenCircuitsLoad(circuits.Kitchen); err != nil {
		return nil, err
	}
	if _, err := c.LaundryCircuitsLoad(circuits.Laundry); err != nil {
		return nil, err
	}
	return c, nil
}

// Policy returns the code edition policy of the calculator
func (c *Calculator) Policy() entities.Policy {
	return c.policy
}

func (c *Calculator) rating(category entities.LoadCategory, appliance string, capacityKBtuh float64) (float64, error) {
	r, err := c.ratings.GetRating(category, appliance)
	if err != nil {
		return 0, err
	}
	return r.VA(capacityKBtuh), nil
}

func checkMethod(m entities.Method) error {
	if m != entities.LoadSumming && m != entities.MaximumDemand {
		return fmt.Errorf("%w: %d", entities.ErrUnsupportedMethod, int(m))
	}
	return nil
}

type loadFunc func(*Calculator, *entities.BuildingRecord, entities.Method) (float64, error)

var generalLoadFuncs = map[entities.LoadName]loadFunc{
	entities.LoadLighting:        (*Calculator).Lighting,
	entities.LoadKitchen:         (*Calculator).Kitchen,
	entities.LoadLaundry:         (*Calculator).Laundry,
	entities.LoadWaterHeater:     (*Calculator).WaterHeater,
	entities.LoadDishwasher:      (*Calculator).Dishwasher,
	entities.LoadDryer:           (*Calculator).Dryer,
	entities.LoadRangeOven:       (*Calculator).RangeOven,
	entities.LoadHotTubSpa:       (*Calculator).HotTubSpa,
	entities.LoadPoolHeater:      (*Calculator).PoolHeater,
	entities.LoadPoolPump:        (*Calculator).PoolPump,
	entities.LoadWellPump:        (*Calculator).WellPump,
	entities.LoadGarbageDisposal: (*Calculator).GarbageDisposal,
	entities.LoadGarageDoor:      (*Calculator).GarageDoor,
	entities.LoadVentilation:     (*Calculator).Ventilation,
	entities.LoadEVSE:            (*Calculator).EVSE,
}

// LoadVector returns the itemized loads of a record under a method. Records
// that did not complete successfully yield a vector of NaN.
func (c *Calculator) LoadVector(rec *entities.BuildingRecord, method entities.Method) (*entities.LoadVector, error) {
	if err := checkMethod(method); err != nil {
		return nil, err
	}
	names := c.policy.LoadNames()
	if !rec.Completed() {
		return entities.NaNVector(names), nil
	}

	v := entities.NewLoadVector(len(names))
	for _, name := range entities.GeneralLoads {
		va, err := generalLoadFuncs[name](c, rec, method)
		if err != nil {
			return nil, fmt.Errorf("building %d: %s: %w", rec.ID, name, err)
		}
		v.Set(name, va)
	}

	hvac, err := c.HVAC(rec, method)
	if err != nil {
		return nil, fmt.Errorf("building %d: %w", rec.ID, err)
	}
	if c.policy.ItemizeHVAC {
		for _, item := range hvac.Items() {
			v.Set(item.Name, item.VA)
		}
	} else {
		v.Set(entities.LoadHVAC, math.Max(hvac.HeatingTotal(), hvac.CoolingTotal()))
	}
	return v, nil
}
