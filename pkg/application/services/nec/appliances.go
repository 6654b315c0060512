package nec

import (
	"fmt"
	"math"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

const (
	// garage area per car bay, 12 ft x 24 ft
	garageBayAreaSqFt = 12 * 24

	minKitchenCircuits = 2
	minLaundryCircuits = 1
)

// Lighting returns the general lighting and receptacle load over the
// conditioned floor area plus the garage
func (c *Calculator) Lighting(rec *entities.BuildingRecord, _ entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	area := rec.FloorAreaConditioned + float64(rec.GarageBays*garageBayAreaSqFt)
	return c.policy.LightingVAPerSqFt * area, nil
}

// KitchenCircuitsLoad returns the load of n small-appliance branch circuits.
// AutoCircuits selects the minimum of two.
func (c *Calculator) KitchenCircuitsLoad(n int) (float64, error) {
	return c.circuitsLoad(entities.CategoryKitchen, "small appliance circuit", n, minKitchenCircuits)
}

// LaundryCircuitsLoad returns the load of n laundry branch circuits.
// AutoCircuits selects the minimum of one.
func (c *Calculator) LaundryCircuitsLoad(n int) (float64, error) {
	return c.circuitsLoad(entities.CategoryLaundry, "laundry circuit", n, minLaundryCircuits)
}

func (c *Calculator) circuitsLoad(category entities.LoadCategory, appliance string, n, minimum int) (float64, error) {
	if n == AutoCircuits {
		n = minimum
	}
	if n < minimum {
		return 0, fmt.Errorf("%w: %d %s circuits requested, at least %d required", entities.ErrCircuitFloor, n, category, minimum)
	}
	va, err := c.rating(category, appliance, 0)
	if err != nil {
		return 0, err
	}
	return va * float64(n), nil
}

// Kitchen returns the small-appliance circuit load
func (c *Calculator) Kitchen(rec *entities.BuildingRecord, _ entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	return c.KitchenCircuitsLoad(c.circuits.Kitchen)
}

// Laundry returns the laundry circuit load
func (c *Calculator) Laundry(rec *entities.BuildingRecord, _ entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	return c.LaundryCircuitsLoad(c.circuits.Laundry)
}

// tanklessAppliance picks the tankless size from a bathroom count proxied by bedrooms
func tanklessAppliance(bedrooms int) string {
	baths := float64(bedrooms)/2 + 0.5
	switch {
	case baths < 2:
		return "tankless, 1 bath"
	case baths < 3:
		return "tankless, 2 bath"
	default:
		return "tankless, 3+ bath"
	}
}

// WaterHeater returns the electric water heater load. A heat pump water
// heater sharing a 120V receptacle is not counted under 220.83.
func (c *Calculator) WaterHeater(rec *entities.BuildingRecord, method entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	if err := checkMethod(method); err != nil {
		return 0, err
	}
	wh := rec.WaterHeater
	if wh.Fuel != entities.Electricity {
		return 0, nil
	}

	switch wh.Kind {
	case entities.WaterHeaterStorage:
		return c.rating(entities.CategoryWaterHeater, "electric storage", 0)
	case entities.WaterHeaterTankless:
		return c.rating(entities.CategoryWaterHeater, tanklessAppliance(rec.Bedrooms), 0)
	case entities.WaterHeaterHeatPump:
		switch wh.Voltage {
		case entities.Volt120Shared:
			if method == entities.LoadSumming {
				return 0, nil
			}
			return c.rating(entities.CategoryWaterHeater, "heat pump, 120V shared", 0)
		case entities.Volt120Dedicated:
			return c.rating(entities.CategoryWaterHeater, "heat pump, 120V dedicated", 0)
		default:
			return c.rating(entities.CategoryWaterHeater, "heat pump, 240V", 0)
		}
	}
	return 0, nil
}

// Dishwasher returns the dishwasher load
func (c *Calculator) Dishwasher(rec *entities.BuildingRecord, _ entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	if !rec.Dishwasher {
		return 0, nil
	}
	return c.rating(entities.CategoryDishwasher, "dishwasher", 0)
}

// Dryer returns the electric clothes dryer load; 120V heat pump dryers are
// not counted under 220.83
func (c *Calculator) Dryer(rec *entities.BuildingRecord, method entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	if err := checkMethod(method); err != nil {
		return 0, err
	}
	d := rec.Dryer
	if d.Fuel != entities.Electricity {
		return 0, nil
	}

	switch d.Tech {
	case entities.TechResistance:
		return c.rating(entities.CategoryDryer, "resistance, 240V", 0)
	case entities.TechHeatPump:
		if d.Voltage.Is120V() {
			if method == entities.LoadSumming {
				return 0, nil
			}
			return c.rating(entities.CategoryDryer, "heat pump, 120V", 0)
		}
		return c.rating(entities.CategoryDryer, "heat pump, 240V", 0)
	}
	return 0, nil
}

// RangeOven returns the electric cooking range load; 120V induction ranges
// are not counted under 220.83
func (c *Calculator) RangeOven(rec *entities.BuildingRecord, method entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	if err := checkMethod(method); err != nil {
		return 0, err
	}
	r := rec.CookingRange
	if r.Fuel != entities.Electricity {
		return 0, nil
	}

	switch r.Tech {
	case entities.TechResistance:
		return c.rating(entities.CategoryRangeOven, "resistance, 240V", 0)
	case entities.TechInduction:
		if r.Voltage.Is120V() {
			if method == entities.LoadSumming {
				return 0, nil
			}
			return c.rating(entities.CategoryRangeOven, "induction, 120V", 0)
		}
		return c.rating(entities.CategoryRangeOven, "induction, 240V", 0)
	}
	return 0, nil
}

// HotTubSpa returns the spa circulation pump load plus its heater when electric
func (c *Calculator) HotTubSpa(rec *entities.BuildingRecord, _ entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	if rec.HotTubSpa == entities.FuelNone {
		return 0, nil
	}
	pump, err := c.rating(entities.CategoryHotTubSpa, "pump", 0)
	if err != nil {
		return 0, err
	}
	if rec.HotTubSpa != entities.Electricity {
		return pump, nil
	}
	heater, err := c.rating(entities.CategoryHotTubSpa, "electric heater", 0)
	if err != nil {
		return 0, err
	}
	return pump + heater, nil
}

// PoolHeater returns the electric pool heater load
func (c *Calculator) PoolHeater(rec *entities.BuildingRecord, _ entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	if !rec.Pool {
		return 0, nil
	}
	switch rec.PoolHeater {
	case entities.PoolHeaterElectricResistance:
		return c.rating(entities.CategoryPoolHeater, "electric resistance", 0)
	case entities.PoolHeaterHeatPump:
		return c.rating(entities.CategoryPoolHeater, "heat pump", 0)
	}
	return 0, nil
}

// poolPumpAppliance maps a labeled pump size to its nameplate size. The
// building-stock model labels pumps one size below nameplate.
func poolPumpAppliance(p entities.PoolPump) string {
	switch p {
	case entities.PoolPump075HP:
		return "1 HP"
	case entities.PoolPump100HP:
		return "1.5 HP"
	}
	return ""
}

// PoolPump returns the pool pump load
func (c *Calculator) PoolPump(rec *entities.BuildingRecord, _ entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	if !rec.Pool || rec.PoolPump == entities.PoolPumpNone {
		return 0, nil
	}
	return c.rating(entities.CategoryPoolPump, poolPumpAppliance(rec.PoolPump), 0)
}

// WellPump returns the well pump load
func (c *Calculator) WellPump(rec *entities.BuildingRecord, _ entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	switch rec.WellPump {
	case entities.WellPumpTypical:
		return c.rating(entities.CategoryWellPump, "typical efficiency", 0)
	case entities.WellPumpHighEfficiency:
		return c.rating(entities.CategoryWellPump, "high efficiency", 0)
	}
	return 0, nil
}

// GarbageDisposal returns the garbage disposal load
func (c *Calculator) GarbageDisposal(rec *entities.BuildingRecord, _ entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	if !rec.HasGarbageDisposal {
		return 0, nil
	}
	return c.rating(entities.CategoryGarbageDisposal, "0.5 HP", 0)
}

// GarageDoor returns one opener per garage bay
func (c *Calculator) GarageDoor(rec *entities.BuildingRecord, _ entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	if rec.GarageBays <= 0 {
		return 0, nil
	}
	va, err := c.rating(entities.CategoryGarageDoor, "0.5 HP", 0)
	if err != nil {
		return 0, err
	}
	return va * float64(rec.GarageBays), nil
}

// Ventilation returns the mechanical ventilation fan load
func (c *Calculator) Ventilation(rec *entities.BuildingRecord, _ entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	if rec.Ventilation == entities.VentilationNone {
		return 0, nil
	}
	return c.rating(entities.CategoryVentilation, rec.Ventilation.String(), 0)
}

// EVSE returns the vehicle charger load. Level 1 chargers are not counted under 220.83.
func (c *Calculator) EVSE(rec *entities.BuildingRecord, method entities.Method) (float64, error) {
	if !rec.Completed() {
		return math.NaN(), nil
	}
	if err := checkMethod(method); err != nil {
		return 0, err
	}
	switch rec.EVSE {
	case entities.EVSELevel1:
		if method == entities.LoadSumming {
			return 0, nil
		}
		return c.rating(entities.CategoryEVSE, "level 1", 0)
	case entities.EVSELevel2:
		return c.rating(entities.CategoryEVSE, "level 2", 0)
	}
	return 0, nil
}
