package entities

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LoadName is the output name of one itemized electrical load
type LoadName string

const (
	LoadLighting        LoadName = "load_lighting"
	LoadKitchen         LoadName = "load_kitchen"
	LoadLaundry         LoadName = "load_laundry"
	LoadWaterHeater     LoadName = "load_water_heater"
	LoadDishwasher      LoadName = "load_dishwasher"
	LoadDryer           LoadName = "load_dryer"
	LoadRangeOven       LoadName = "load_range_oven"
	LoadHotTubSpa       LoadName = "load_hot_tub_spa"
	LoadPoolHeater      LoadName = "load_pool_heater"
	LoadPoolPump        LoadName = "load_pool_pump"
	LoadWellPump        LoadName = "load_well_pump"
	LoadGarbageDisposal LoadName = "load_garbage_disposal"
	LoadGarageDoor      LoadName = "load_garage_door"
	LoadVentilation     LoadName = "load_ventilation"
	LoadEVSE            LoadName = "load_evse"

	// LoadHVAC is the single larger-of-heating-or-cooling item of 2023 vectors
	LoadHVAC LoadName = "load_hvac"

	LoadPrimaryHeatingHeatPump     LoadName = "load_primary_heating_heat_pump"
	LoadPrimaryHeatingResistance   LoadName = "load_primary_heating_resistance"
	LoadSecondaryHeatingHeatPump   LoadName = "load_secondary_heating_heat_pump"
	LoadSecondaryHeatingResistance LoadName = "load_secondary_heating_resistance"
	LoadHeatingBackup              LoadName = "load_heating_backup"
	LoadHeatingAirHandler          LoadName = "load_heating_air_handler"
	LoadCooling                    LoadName = "load_cooling"
	LoadCoolingAirHandler          LoadName = "load_cooling_air_handler"
)

// GeneralLoads are the non-HVAC items, in output order
var GeneralLoads = []LoadName{
	LoadLighting,
	LoadKitchen,
	LoadLaundry,
	LoadWaterHeater,
	LoadDishwasher,
	LoadDryer,
	LoadRangeOven,
	LoadHotTubSpa,
	LoadPoolHeater,
	LoadPoolPump,
	LoadWellPump,
	LoadGarbageDisposal,
	LoadGarageDoor,
	LoadVentilation,
	LoadEVSE,
}

// HVACItemLoads are the HVAC sub-items of itemized vectors, in output order
var HVACItemLoads = []LoadName{
	LoadPrimaryHeatingHeatPump,
	LoadPrimaryHeatingResistance,
	LoadSecondaryHeatingHeatPump,
	LoadSecondaryHeatingResistance,
	LoadHeatingBackup,
	LoadHeatingAirHandler,
	LoadCooling,
	LoadCoolingAirHandler,
}

// LoadClass decides which demand factor a new load receives
type LoadClass int

const (
	ClassGeneral LoadClass = iota
	ClassEVSE
	ClassHVAC
	ClassHeatingResistance
	ClassHeating
	ClassCooling
)

// Class returns the demand-factor class of a load
func (n LoadName) Class() LoadClass {
	switch n {
	case LoadEVSE:
		return ClassEVSE
	case LoadHVAC:
		return ClassHVAC
	case LoadPrimaryHeatingResistance, LoadSecondaryHeatingResistance, LoadHeatingBackup:
		return ClassHeatingResistance
	case LoadPrimaryHeatingHeatPump, LoadSecondaryHeatingHeatPump, LoadHeatingAirHandler:
		return ClassHeating
	case LoadCooling, LoadCoolingAirHandler:
		return ClassCooling
	default:
		return ClassGeneral
	}
}

// IsHeating reports whether the load belongs to space heating
func (c LoadClass) IsHeating() bool {
	return c == ClassHeatingResistance || c == ClassHeating
}

// LoadItem is a single named electrical load
type LoadItem struct {
	Name LoadName
	VA   float64
}

// LoadVector is the ordered set of load items of one building
type LoadVector struct {
	items []LoadItem
	index map[LoadName]int
}

// NewLoadVector creates an empty vector
func NewLoadVector(expectedItems int) *LoadVector {
	return &LoadVector{
		items: make([]LoadItem, 0, expectedItems),
		index: make(map[LoadName]int, expectedItems),
	}
}

// Set adds a load or replaces its value
func (v *LoadVector) Set(name LoadName, va float64) {
	if i, ok := v.index[name]; ok {
		v.items[i].VA = va
		return
	}
	v.index[name] = len(v.items)
	v.items = append(v.items, LoadItem{Name: name, VA: va})
}

// Get returns a load's value, 0 when the vector does not carry it
func (v *LoadVector) Get(name LoadName) float64 {
	if i, ok := v.index[name]; ok {
		return v.items[i].VA
	}
	return 0
}

// Has reports whether the vector carries the load
func (v *LoadVector) Has(name LoadName) bool {
	_, ok := v.index[name]
	return ok
}

// Len returns the number of items
func (v *LoadVector) Len() int {
	return len(v.items)
}

// Items returns a copy of the items in order
func (v *LoadVector) Items() []LoadItem {
	out := make([]LoadItem, len(v.items))
	copy(out, v.items)
	return out
}

// Names returns the item names in order
func (v *LoadVector) Names() []LoadName {
	names := make([]LoadName, len(v.items))
	for i, item := range v.items {
		names[i] = item.Name
	}
	return names
}

// Values returns the item values in order
func (v *LoadVector) Values() []float64 {
	values := make([]float64, len(v.items))
	for i, item := range v.items {
		values[i] = item.VA
	}
	return values
}

// Sum returns the plain sum of all items
func (v *LoadVector) Sum() float64 {
	return floats.Sum(v.Values())
}

// Itemized reports whether HVAC is carried as sub-items rather than a single load_hvac
func (v *LoadVector) Itemized() bool {
	return !v.Has(LoadHVAC)
}

// HeatingTotal returns the sum of the heating sub-items
func (v *LoadVector) HeatingTotal() float64 {
	total := 0.0
	for _, item := range v.items {
		if item.Name.Class().IsHeating() {
			total += item.VA
		}
	}
	return total
}

// CoolingTotal returns the sum of the cooling sub-items
func (v *LoadVector) CoolingTotal() float64 {
	total := 0.0
	for _, item := range v.items {
		if item.Name.Class() == ClassCooling {
			total += item.VA
		}
	}
	return total
}

// HeatingDominant reports whether heating is the larger HVAC mode; ties go to heating
func (v *LoadVector) HeatingDominant() bool {
	return v.HeatingTotal() >= v.CoolingTotal()
}

// HVACTotal returns the non-coincident HVAC load: load_hvac for 2023
// vectors, the larger of heating and cooling for itemized vectors
func (v *LoadVector) HVACTotal() float64 {
	if !v.Itemized() {
		return v.Get(LoadHVAC)
	}
	return math.Max(v.HeatingTotal(), v.CoolingTotal())
}

// NonHVACTotal returns the sum of every item that is not HVAC
func (v *LoadVector) NonHVACTotal() float64 {
	total := 0.0
	for _, item := range v.items {
		if item.Name.Class() == ClassGeneral || item.Name.Class() == ClassEVSE {
			total += item.VA
		}
	}
	return total
}

// NoncoincidentTotal returns the sum with only the larger HVAC mode counted
func (v *LoadVector) NoncoincidentTotal() float64 {
	return v.NonHVACTotal() + v.HVACTotal()
}

// NaNVector returns a vector with every named load set to NaN
func NaNVector(names []LoadName) *LoadVector {
	v := NewLoadVector(len(names))
	for _, n := range names {
		v.Set(n, math.NaN())
	}
	return v
}
