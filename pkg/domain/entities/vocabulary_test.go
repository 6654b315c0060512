package entities

import (
	"errors"
	"testing"
)

func TestParseHeatingEfficiency(t *testing.T) {
	testCases := []struct {
		value string
		want  HeatingType
	}{
		{"None", HeatingNone},
		{"Shared Heating", HeatingShared},
		{"ASHP, SEER 15, 8.5 HSPF", HeatingHeatPump},
		{"MSHP, SEER 14.5, 8.2 HSPF", HeatingHeatPump},
		{"Electric Baseboard, 100% Efficiency", HeatingElectricResistance},
		{"Fuel Furnace, 80% AFUE", HeatingFuel},
	}
	for _, tc := range testCases {
		got, err := ParseHeatingEfficiency("hvac_heating_efficiency", tc.value)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.value, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: expected %s, got %s", tc.value, tc.want, got)
		}
	}

	_, err := ParseHeatingEfficiency("hvac_heating_efficiency", "GSHP, EER 16.6, COP 3.6")
	if !errors.Is(err, ErrUnsupportedEquipment) {
		t.Errorf("Expected ErrUnsupportedEquipment, got %v", err)
	}

	_, err = ParseHeatingEfficiency("hvac_heating_efficiency", "Wood Stove")
	var vErr *VocabularyError
	if !errors.As(err, &vErr) {
		t.Errorf("Expected *VocabularyError, got %v", err)
	}
}

func TestParseWaterHeater(t *testing.T) {
	testCases := []struct {
		fuel       string
		efficiency string
		want       WaterHeater
	}{
		{"Natural Gas", "Natural Gas Standard", WaterHeater{Fuel: NaturalGas, Kind: WaterHeaterStorage}},
		{"Electricity", "Electric Tankless", WaterHeater{Fuel: Electricity, Kind: WaterHeaterTankless}},
		{"Electricity", "Electric Heat Pump, 50 gal, 3.45 UEF", WaterHeater{Fuel: Electricity, Kind: WaterHeaterHeatPump}},
		{"Electricity", "Electric Heat Pump, 50 gal, 120V Shared", WaterHeater{Fuel: Electricity, Kind: WaterHeaterHeatPump, Voltage: Volt120Shared}},
		{"Other Fuel", "Other Fuel", WaterHeater{Fuel: OtherFuel, Kind: WaterHeaterStorage}},
		{"None", "None", WaterHeater{Fuel: FuelNone}},
	}
	for _, tc := range testCases {
		got, err := ParseWaterHeater(tc.fuel, tc.efficiency)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.efficiency, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: expected %+v, got %+v", tc.efficiency, tc.want, got)
		}
	}

	if _, err := ParseWaterHeater("Electricity", "Solar Thermal"); err == nil {
		t.Error("Expected error for unknown water heater")
	}
}

func TestParseDryer(t *testing.T) {
	testCases := []struct {
		value   string
		want    Dryer
		wantErr bool
	}{
		{value: "Electric, 80% Usage", want: Dryer{Fuel: Electricity, Tech: TechResistance}},
		{value: "Electric, Premium, Heat Pump, Ventless, 120% Usage", wantErr: true},
		{value: "Electric, Heat Pump, 120V", want: Dryer{Fuel: Electricity, Tech: TechHeatPump, Voltage: Volt120Dedicated}},
		{value: "Gas, 100% Usage", want: Dryer{Fuel: NaturalGas, Tech: TechFuel}},
		{value: "None", want: Dryer{}},
		{value: "Gas, Heat Pump", wantErr: true},
		{value: "Electric Induction", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseDryer(tc.value)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tc.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.value, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: expected %+v, got %+v", tc.value, tc.want, got)
		}
	}
}

func TestParseVintage(t *testing.T) {
	testCases := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "<1940", want: 1930},
		{value: "1940s", want: 1940},
		{value: "2010s", want: 2010},
		{value: "1990-1999", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseVintage(tc.value)
		if (err != nil) != tc.wantErr {
			t.Errorf("%q: unexpected error state %v", tc.value, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: expected %d, got %d", tc.value, tc.want, got)
		}
	}
}

func TestParseCoolingEfficiency(t *testing.T) {
	if c, err := ParseCoolingEfficiency("Room AC, EER 10.7"); err != nil || c != CoolingRoomAC {
		t.Errorf("Expected Room AC, got %s (%v)", c, err)
	}
	if c, err := ParseCoolingEfficiency("AC, SEER 13"); err != nil || c != CoolingCentralAC {
		t.Errorf("Expected Central AC, got %s (%v)", c, err)
	}
	if _, err := ParseCoolingEfficiency("Evaporative Cooler"); !errors.Is(err, ErrUnsupportedEquipment) {
		t.Errorf("Expected ErrUnsupportedEquipment, got %v", err)
	}
}

func TestParseDishwasher(t *testing.T) {
	if ok, err := ParseDishwasher("290 Rated kWh, 80% Usage"); err != nil || !ok {
		t.Errorf("Expected dishwasher present, got %v (%v)", ok, err)
	}
	if ok, err := ParseDishwasher("None"); err != nil || ok {
		t.Errorf("Expected no dishwasher, got %v (%v)", ok, err)
	}
}
