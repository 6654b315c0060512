package nec

import (
	"math"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

// HVACLoads are the space conditioning loads of one building, in VA
type HVACLoads struct {
	PrimaryHeatingHeatPump     float64
	PrimaryHeatingResistance   float64
	SecondaryHeatingHeatPump   float64
	SecondaryHeatingResistance float64
	HeatingBackup              float64
	HeatingAirHandler          float64
	Cooling                    float64
	CoolingAirHandler          float64
}

func nanHVACLoads() HVACLoads {
	nan := math.NaN()
	return HVACLoads{nan, nan, nan, nan, nan, nan, nan, nan}
}

// Items returns the loads as named items in output order
func (h HVACLoads) Items() []entities.LoadItem {
	return []entities.LoadItem{
		{Name: entities.LoadPrimaryHeatingHeatPump, VA: h.PrimaryHeatingHeatPump},
		{Name: entities.LoadPrimaryHeatingResistance, VA: h.PrimaryHeatingResistance},
		{Name: entities.LoadSecondaryHeatingHeatPump, VA: h.SecondaryHeatingHeatPump},
		{Name: entities.LoadSecondaryHeatingResistance, VA: h.SecondaryHeatingResistance},
		{Name: entities.LoadHeatingBackup, VA: h.HeatingBackup},
		{Name: entities.LoadHeatingAirHandler, VA: h.HeatingAirHandler},
		{Name: entities.LoadCooling, VA: h.Cooling},
		{Name: entities.LoadCoolingAirHandler, VA: h.CoolingAirHandler},
	}
}

// HeatingTotal returns the sum of every heating load
func (h HVACLoads) HeatingTotal() float64 {
	return h.PrimaryHeatingHeatPump + h.PrimaryHeatingResistance +
		h.SecondaryHeatingHeatPump + h.SecondaryHeatingResistance +
		h.HeatingBackup + h.HeatingAirHandler
}

// CoolingTotal returns the sum of every cooling load
func (h HVACLoads) CoolingTotal() float64 {
	return h.Cooling + h.CoolingAirHandler
}

// resistanceVA converts electric resistance capacity to watts
func resistanceVA(capacityKBtuh float64) float64 {
	return math.Max(0, capacityKBtuh) * entities.WattsPerKBtuh
}

func (c *Calculator) heatPumpVA(ducted bool, capacityKBtuh float64) (float64, error) {
	appliance := "non-ducted"
	if ducted {
		appliance = "ducted"
	}
	return c.rating(entities.CategoryHeatPump, appliance, capacityKBtuh)
}

// HVAC returns the itemized space conditioning loads of a record. Elements
// served by a shared system draw from another panel and contribute nothing.
func (c *Calculator) HVAC(rec *entities.BuildingRecord, _ entities.Method) (HVACLoads, error) {
	if !rec.Completed() {
		return nanHVACLoads(), nil
	}

	var h HVACLoads
	var err error
	caps := rec.Capacities

	if !rec.SharedSystem.SharesHeating() {
		switch rec.Heating.Type {
		case entities.HeatingHeatPump:
			if h.PrimaryHeatingHeatPump, err = c.heatPumpVA(rec.Heating.Ducted, caps.HeatingPrimary); err != nil {
				return h, err
			}
			if rec.HeatPumpBackupFuel == entities.Electricity {
				h.HeatingBackup = resistanceVA(caps.HeatPumpBackup)
			}
		case entities.HeatingElectricResistance:
			h.PrimaryHeatingResistance = resistanceVA(caps.HeatingPrimary)
		}
	}

	switch rec.SecondaryHeating.Type {
	case entities.HeatingHeatPump:
		if h.SecondaryHeatingHeatPump, err = c.heatPumpVA(rec.SecondaryHeating.Ducted, caps.HeatingSecondary); err != nil {
			return h, err
		}
	case entities.HeatingElectricResistance:
		h.SecondaryHeatingResistance = resistanceVA(caps.HeatingSecondary)
	}

	if !rec.SharedSystem.SharesCooling() {
		switch rec.Cooling.Type {
		case entities.CoolingHeatPump:
			h.Cooling, err = c.heatPumpVA(rec.Cooling.Ducted, caps.CoolingPrimary)
		case entities.CoolingCentralAC:
			h.Cooling, err = c.rating(entities.CategoryCentralAC, "central ac", caps.CoolingPrimary)
		case entities.CoolingRoomAC:
			h.Cooling, err = c.rating(entities.CategoryRoomAC, "room ac", caps.CoolingPrimary)
		}
		if err != nil {
			return h, err
		}
	}

	h.HeatingAirHandler, h.CoolingAirHandler, err = c.AirHandlers(rec)
	return h, err
}
