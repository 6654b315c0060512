package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The building-stock model describes equipment with free-text option
// strings. Every option is parsed here, once, into the closed enums the
// engine switches on; anything else is a *VocabularyError.

var (
	usageToken    = regexp.MustCompile(`^\d+% Usage$`)
	ratedKWh      = regexp.MustCompile(`^\d+ Rated kWh$`)
	vintageDecade = regexp.MustCompile(`^(\d{4})s$`)
)

// splitOption splits an option string on commas and drops usage-level
// tokens such as "80% Usage", which never affect nameplate ratings.
func splitOption(s string) []string {
	var tokens []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" || usageToken.MatchString(t) {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func lookup[T any](field, s string, table map[string]T) (T, error) {
	v, ok := table[strings.TrimSpace(s)]
	if !ok {
		var zero T
		return zero, vocabularyError(field, s)
	}
	return v, nil
}

// ParseCompletionStatus parses the completed_status column
func ParseCompletionStatus(s string) (CompletionStatus, error) {
	return lookup("completed_status", s, map[string]CompletionStatus{
		"Success": StatusSuccess,
		"Fail":    StatusFail,
		"Invalid": StatusInvalid,
	})
}

// ParseBuildingType parses geometry_building_type_recs
func ParseBuildingType(s string) (BuildingType, error) {
	return lookup("geometry_building_type_recs", s, map[string]BuildingType{
		"Single-Family Detached":        SingleFamilyDetached,
		"Single-Family Attached":        SingleFamilyAttached,
		"Multi-Family with 2 - 4 Units": MultiFamily2To4,
		"Multi-Family with 5+ Units":    MultiFamily5Plus,
		"Mobile Home":                   MobileHome,
	})
}

// ParseVintage parses a vintage bucket ("<1940", "1950s", ...) into the first
// year of its decade
func ParseVintage(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "<1940" {
		return 1930, nil
	}
	m := vintageDecade.FindStringSubmatch(s)
	if m == nil {
		return 0, vocabularyError("vintage", s)
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, vocabularyError("vintage", s)
	}
	return year, nil
}

// ParseVacancy parses vacancy_status
func ParseVacancy(s string) (Vacancy, error) {
	return lookup("vacancy_status", s, map[string]Vacancy{
		"Occupied": Occupied,
		"Vacant":   Vacant,
	})
}

// ParseFuel parses a fuel column
func ParseFuel(field, s string) (Fuel, error) {
	return lookup(field, s, map[string]Fuel{
		"None":        FuelNone,
		"Electricity": Electricity,
		"Natural Gas": NaturalGas,
		"Propane":     Propane,
		"Fuel Oil":    FuelOil,
		"Other Fuel":  OtherFuel,
	})
}

// ParseGarage parses geometry_garage into a number of car bays
func ParseGarage(s string) (int, error) {
	return lookup("geometry_garage", s, map[string]int{
		"None":  0,
		"1 Car": 1,
		"2 Car": 2,
		"3 Car": 3,
	})
}

// ParseYesNo parses a Yes/No column
func ParseYesNo(field, s string) (bool, error) {
	return lookup(field, s, map[string]bool{
		"Yes": true,
		"No":  false,
	})
}

// ParseHeatingEfficiency classifies hvac_heating_efficiency and
// hvac_secondary_heating_efficiency descriptions
func ParseHeatingEfficiency(field, s string) (HeatingType, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "None":
		return HeatingNone, nil
	case s == "Shared Heating":
		return HeatingShared, nil
	case strings.HasPrefix(s, "GSHP"):
		return HeatingNone, fmt.Errorf("%w: %s %q", ErrUnsupportedEquipment, field, s)
	case strings.HasPrefix(s, "ASHP,"), strings.HasPrefix(s, "MSHP,"):
		return HeatingHeatPump, nil
	case strings.HasPrefix(s, "Electric "):
		return HeatingElectricResistance, nil
	case strings.HasPrefix(s, "Fuel "):
		return HeatingFuel, nil
	default:
		return HeatingNone, vocabularyError(field, s)
	}
}

// ParseHeatingDistribution parses hvac_heating_type into whether the primary
// heating is ducted
func ParseHeatingDistribution(s string) (bool, error) {
	return lookup("hvac_heating_type", s, map[string]bool{
		"Ducted Heat Pump":     true,
		"Ducted Heating":       true,
		"Non-Ducted Heat Pump": false,
		"Non-Ducted Heating":   false,
		"None":                 false,
	})
}

// ParseCoolingEfficiency classifies hvac_cooling_efficiency
func ParseCoolingEfficiency(s string) (CoolingType, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "None":
		return CoolingNone, nil
	case s == "Shared Cooling":
		return CoolingShared, nil
	case s == "Heat Pump", s == "Ducted Heat Pump", s == "Non-Ducted Heat Pump":
		return CoolingHeatPump, nil
	case strings.HasPrefix(s, "Evaporative Cooler"):
		return CoolingNone, fmt.Errorf("%w: hvac_cooling_efficiency %q", ErrUnsupportedEquipment, s)
	case strings.HasPrefix(s, "Room AC,"):
		return CoolingRoomAC, nil
	case strings.HasPrefix(s, "AC,"):
		return CoolingCentralAC, nil
	default:
		return CoolingNone, vocabularyError("hvac_cooling_efficiency", s)
	}
}

// ParseCoolingDistribution parses hvac_cooling_type into whether cooling is ducted
func ParseCoolingDistribution(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "Evaporative Cooler") {
		return false, fmt.Errorf("%w: hvac_cooling_type %q", ErrUnsupportedEquipment, s)
	}
	return lookup("hvac_cooling_type", s, map[string]bool{
		"Central AC":           true,
		"Ducted Heat Pump":     true,
		"Room AC":              false,
		"Non-Ducted Heat Pump": false,
		"None":                 false,
	})
}

// ParseSharedSystem parses hvac_has_shared_system
func ParseSharedSystem(s string) (SharedSystem, error) {
	return lookup("hvac_has_shared_system", s, map[string]SharedSystem{
		"None":                SharedNone,
		"Heating Only":        SharedHeatingOnly,
		"Cooling Only":        SharedCoolingOnly,
		"Heating and Cooling": SharedHeatingAndCooling,
	})
}

// ParseWaterHeater classifies a water heater from its fuel and efficiency columns
func ParseWaterHeater(fuel, efficiency string) (WaterHeater, error) {
	f, err := ParseFuel("water_heater_fuel", fuel)
	if err != nil {
		return WaterHeater{}, err
	}
	wh := WaterHeater{Fuel: f}

	tokens := splitOption(efficiency)
	if len(tokens) == 0 {
		return wh, vocabularyError("water_heater_efficiency", efficiency)
	}
	head := tokens[0]
	switch {
	case head == "None":
		return wh, nil
	case head == "Other Fuel":
		wh.Kind = WaterHeaterStorage
		return wh, nil
	case head == "Electric Heat Pump":
		wh.Kind = WaterHeaterHeatPump
		for _, t := range tokens[1:] {
			switch t {
			case "120V Shared":
				wh.Voltage = Volt120Shared
			case "120V Dedicated":
				wh.Voltage = Volt120Dedicated
			}
		}
		return wh, nil
	}

	for _, prefix := range []string{"Electric ", "Natural Gas ", "Propane ", "Fuel Oil "} {
		if !strings.HasPrefix(head, prefix) {
			continue
		}
		switch strings.TrimPrefix(head, prefix) {
		case "Standard", "Premium":
			wh.Kind = WaterHeaterStorage
			return wh, nil
		case "Tankless":
			wh.Kind = WaterHeaterTankless
			return wh, nil
		}
	}
	return wh, vocabularyError("water_heater_efficiency", efficiency)
}

func applianceFuel(field, head string) (Fuel, ApplianceTech, error) {
	switch head {
	case "None", "Void":
		return FuelNone, TechNone, nil
	case "Electric", "Electric Resistance":
		return Electricity, TechResistance, nil
	case "Electric Induction":
		return Electricity, TechInduction, nil
	case "Gas", "Natural Gas":
		return NaturalGas, TechFuel, nil
	case "Propane":
		return Propane, TechFuel, nil
	}
	return FuelNone, TechNone, vocabularyError(field, head)
}

// ParseDryer classifies clothes_dryer
func ParseDryer(s string) (Dryer, error) {
	tokens := splitOption(s)
	if len(tokens) == 0 {
		return Dryer{}, vocabularyError("clothes_dryer", s)
	}
	fuel, tech, err := applianceFuel("clothes_dryer", tokens[0])
	if err != nil || tech == TechInduction {
		return Dryer{}, vocabularyError("clothes_dryer", s)
	}
	d := Dryer{Fuel: fuel, Tech: tech}
	for _, t := range tokens[1:] {
		switch t {
		case "Premium", "EnergyStar":
		case "Heat Pump":
			if fuel != Electricity {
				return Dryer{}, vocabularyError("clothes_dryer", s)
			}
			d.Tech = TechHeatPump
		case "120V":
			d.Voltage = Volt120Dedicated
		default:
			return Dryer{}, vocabularyError("clothes_dryer", s)
		}
	}
	return d, nil
}

// ParseCookingRange classifies cooking_range
func ParseCookingRange(s string) (CookingRange, error) {
	tokens := splitOption(s)
	if len(tokens) == 0 {
		return CookingRange{}, vocabularyError("cooking_range", s)
	}
	fuel, tech, err := applianceFuel("cooking_range", tokens[0])
	if err != nil {
		return CookingRange{}, vocabularyError("cooking_range", s)
	}
	r := CookingRange{Fuel: fuel, Tech: tech}
	for _, t := range tokens[1:] {
		switch t {
		case "120V":
			r.Voltage = Volt120Dedicated
		default:
			return CookingRange{}, vocabularyError("cooking_range", s)
		}
	}
	return r, nil
}

// ParseEVSE parses electric_vehicle
func ParseEVSE(s string) (EVSELevel, error) {
	return lookup("electric_vehicle", s, map[string]EVSELevel{
		"None":            EVSENone,
		"Level 1 Charger": EVSELevel1,
		"Level 2 Charger": EVSELevel2,
	})
}

// ParsePool parses misc_pool
func ParsePool(s string) (bool, error) {
	return lookup("misc_pool", s, map[string]bool{
		"None":     false,
		"Has Pool": true,
	})
}

// ParsePoolHeater parses misc_pool_heater
func ParsePoolHeater(s string) (PoolHeater, error) {
	return lookup("misc_pool_heater", s, map[string]PoolHeater{
		"None":               PoolHeaterNone,
		"Electricity":        PoolHeaterElectricResistance,
		"Electric Heat Pump": PoolHeaterHeatPump,
		"Natural Gas":        PoolHeaterFuel,
		"Other Fuel":         PoolHeaterFuel,
		"Solar":              PoolHeaterSolar,
	})
}

// ParsePoolPump parses misc_pool_pump
func ParsePoolPump(s string) (PoolPump, error) {
	return lookup("misc_pool_pump", s, map[string]PoolPump{
		"None":         PoolPumpNone,
		"0.75 HP Pump": PoolPump075HP,
		"1.0 HP Pump":  PoolPump100HP,
	})
}

// ParseHotTubSpa parses misc_hot_tub_spa into its heater fuel
func ParseHotTubSpa(s string) (Fuel, error) {
	return lookup("misc_hot_tub_spa", s, map[string]Fuel{
		"None":        FuelNone,
		"Electricity": Electricity,
		"Natural Gas": NaturalGas,
		"Other Fuel":  OtherFuel,
	})
}

// ParseWellPump parses misc_well_pump
func ParseWellPump(s string) (WellPump, error) {
	return lookup("misc_well_pump", s, map[string]WellPump{
		"None":               WellPumpNone,
		"Typical Efficiency": WellPumpTypical,
		"High Efficiency":    WellPumpHighEfficiency,
	})
}

// ParseVentilation parses mechanical_ventilation
func ParseVentilation(s string) (Ventilation, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "None":
		return VentilationNone, nil
	case s == "Exhaust":
		return VentilationExhaust, nil
	case s == "Supply":
		return VentilationSupply, nil
	case s == "Balanced":
		return VentilationBalanced, nil
	case strings.HasPrefix(s, "ERV"):
		return VentilationERV, nil
	case strings.HasPrefix(s, "HRV"):
		return VentilationHRV, nil
	}
	return VentilationNone, vocabularyError("mechanical_ventilation", s)
}

// ParseDishwasher parses dishwasher into presence
func ParseDishwasher(s string) (bool, error) {
	tokens := splitOption(s)
	if len(tokens) == 1 {
		switch {
		case tokens[0] == "None", tokens[0] == "Void":
			return false, nil
		case ratedKWh.MatchString(tokens[0]):
			return true, nil
		}
	}
	return false, vocabularyError("dishwasher", s)
}

// ParseClothesWasher parses clothes_washer into presence
func ParseClothesWasher(s string) (bool, error) {
	tokens := splitOption(s)
	if len(tokens) == 1 {
		switch tokens[0] {
		case "None", "Void":
			return false, nil
		case "Standard", "EnergyStar":
			return true, nil
		}
	}
	return false, vocabularyError("clothes_washer", s)
}
