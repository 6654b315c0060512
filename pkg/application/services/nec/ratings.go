package nec

import (
	"github.com/buildstock/panelload/pkg/domain/entities"
)

// RequiredRatings lists every nameplate row the calculator can look up
func RequiredRatings() []entities.RatingKey {
	rows := map[entities.LoadCategory][]string{
		entities.CategoryKitchen: {"small appliance circuit"},
		entities.CategoryLaundry: {"laundry circuit"},
		entities.CategoryWaterHeater: {
			"electric storage",
			"tankless, 1 bath", "tankless, 2 bath", "tankless, 3+ bath",
			"heat pump, 240V", "heat pump, 120V dedicated", "heat pump, 120V shared",
		},
		entities.CategoryDishwasher:      {"dishwasher"},
		entities.CategoryDryer:           {"resistance, 240V", "heat pump, 240V", "heat pump, 120V"},
		entities.CategoryRangeOven:       {"resistance, 240V", "induction, 240V", "induction, 120V"},
		entities.CategoryHotTubSpa:       {"electric heater", "pump"},
		entities.CategoryPoolHeater:      {"electric resistance", "heat pump"},
		entities.CategoryPoolPump:        {poolPumpAppliance(entities.PoolPump075HP), poolPumpAppliance(entities.PoolPump100HP)},
		entities.CategoryWellPump:        {"typical efficiency", "high efficiency"},
		entities.CategoryGarbageDisposal: {"0.5 HP"},
		entities.CategoryGarageDoor:      {"0.5 HP"},
		entities.CategoryEVSE:            {"level 1", "level 2"},
		entities.CategoryHeatPump:        {"ducted", "non-ducted"},
		entities.CategoryCentralAC:       {"central ac"},
		entities.CategoryRoomAC:          {"room ac"},
		entities.CategoryAirHandler:      {"240V", "120V"},
	}
	for _, v := range []entities.Ventilation{
		entities.VentilationExhaust,
		entities.VentilationSupply,
		entities.VentilationBalanced,
		entities.VentilationERV,
		entities.VentilationHRV,
	} {
		rows[entities.CategoryVentilation] = append(rows[entities.CategoryVentilation], v.String())
	}

	order := []entities.LoadCategory{
		entities.CategoryKitchen, entities.CategoryLaundry, entities.CategoryWaterHeater,
		entities.CategoryDishwasher, entities.CategoryDryer, entities.CategoryRangeOven,
		entities.CategoryHotTubSpa, entities.CategoryPoolHeater, entities.CategoryPoolPump,
		entities.CategoryWellPump, entities.CategoryGarbageDisposal, entities.CategoryGarageDoor,
		entities.CategoryVentilation, entities.CategoryEVSE, entities.CategoryHeatPump,
		entities.CategoryCentralAC, entities.CategoryRoomAC, entities.CategoryAirHandler,
	}
	var keys []entities.RatingKey
	for _, category := range order {
		for _, appliance := range rows[category] {
			keys = append(keys, entities.RatingKey{Category: category, Appliance: appliance})
		}
	}
	return keys
}
