package nec

import (
	"math"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

// ducted heating and cooling as seen by this dwelling's panel
func ductedHeating(rec *entities.BuildingRecord) bool {
	return rec.HasDucts && rec.Heating.Ducted &&
		!rec.SharedSystem.SharesHeating() &&
		(rec.Heating.IsElectric() || rec.Heating.Type == entities.HeatingFuel)
}

func ductedCooling(rec *entities.BuildingRecord) bool {
	return rec.HasDucts && rec.Cooling.Ducted &&
		!rec.SharedSystem.SharesCooling() &&
		(rec.Cooling.Type == entities.CoolingCentralAC || rec.Cooling.Type == entities.CoolingHeatPump)
}

// AirHandlers returns the heating and cooling air handler loads.
//
//   - Ducted heat pump or electric resistance heating uses a 240V air handler
//     sized by the larger of heating and ducted cooling capacity. Ducted
//     cooling shares it.
//   - A ducted fuel furnace keeps its 120V blower, sized by heating capacity.
//     Ducted cooling runs through the same blower.
//   - Ducted cooling without ducted heating gets its own 240V air handler.
//   - Non-ducted systems have no air handler.
//
// When the unit is shared both loads carry the same value; only the dominant
// mode is ever counted.
func (c *Calculator) AirHandlers(rec *entities.BuildingRecord) (heating, cooling float64, err error) {
	if !rec.Completed() {
		return math.NaN(), math.NaN(), nil
	}
	caps := rec.Capacities
	heatDucted := ductedHeating(rec)
	coolDucted := ductedCooling(rec)

	switch {
	case heatDucted && rec.Heating.IsElectric():
		capacity := caps.HeatingPrimary
		if coolDucted {
			capacity = math.Max(capacity, caps.CoolingPrimary)
		}
		heating, err = c.rating(entities.CategoryAirHandler, "240V", capacity)
		if coolDucted {
			cooling = heating
		}
	case heatDucted:
		heating, err = c.rating(entities.CategoryAirHandler, "120V", caps.HeatingPrimary)
		if coolDucted {
			cooling = heating
		}
	case coolDucted:
		cooling, err = c.rating(entities.CategoryAirHandler, "240V", caps.CoolingPrimary)
	}
	if err != nil {
		return 0, 0, err
	}
	return heating, cooling, nil
}
