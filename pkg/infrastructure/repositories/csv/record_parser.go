package csv

import (
	"fmt"
	"math"

	"github.com/spf13/cast"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

// ParseOptions controls how a row becomes a BuildingRecord
type ParseOptions struct {
	// Peak is the resolved peak electricity column; nil leaves PeakElectricityW NaN
	Peak *PeakColumn
}

// rowParser accumulates the first error so field parsing reads as a flat list
type rowParser struct {
	row Row
	err error
}

func (p *rowParser) value(column string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.row.Get(column)
	if !ok {
		p.err = fmt.Errorf("%w: %s", entities.ErrMissingColumn, column)
		return "", false
	}
	return v, true
}

func (p *rowParser) fail(column string, err error) {
	if p.err == nil && err != nil {
		p.err = fmt.Errorf("%s: %w", column, err)
	}
}

func (p *rowParser) float(column string, blankAsZero bool) float64 {
	v, ok := p.value(column)
	if !ok {
		return 0
	}
	if v == "" && blankAsZero {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		p.fail(column, err)
		return 0
	}
	return f
}

func (p *rowParser) int(column string) int {
	v, ok := p.value(column)
	if !ok {
		return 0
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		// bedrooms are sometimes written as "3.0"
		f, ferr := cast.ToFloat64E(v)
		if ferr != nil || f != math.Trunc(f) {
			p.fail(column, err)
			return 0
		}
		i = int(f)
	}
	return i
}

func parse[T any](p *rowParser, field string, fn func(string) (T, error)) T {
	column := Existing(field)
	var zero T
	v, ok := p.value(column)
	if !ok {
		return zero
	}
	out, err := fn(v)
	if err != nil {
		p.fail(column, err)
		return zero
	}
	return out
}

// ParseBuilding parses one results row. Rows that did not complete
// successfully carry only their ID and status.
func ParseBuilding(row Row, opts ParseOptions) (*entities.BuildingRecord, error) {
	p := &rowParser{row: row}
	rec := &entities.BuildingRecord{PeakElectricityW: math.NaN()}

	idStr, _ := p.value(ColumnBuildingID)
	statusStr, _ := p.value(ColumnCompletedStatus)
	if p.err != nil {
		return nil, p.err
	}
	id, err := cast.ToInt64E(idStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ColumnBuildingID, err)
	}
	rec.ID = entities.BuildingID(id)

	rec.Status, err = entities.ParseCompletionStatus(statusStr)
	if err != nil {
		return nil, fmt.Errorf("building %d: %w", id, err)
	}

	if v, ok := row.Get(ColumnUpgradeName); ok {
		rec.UpgradeName = v
	}
	if v, ok := row.Get(ColumnApplicable); ok && v != "" {
		rec.UpgradeApplicable, err = cast.ToBoolE(v)
		if err != nil {
			return nil, fmt.Errorf("building %d: %s: %w", id, ColumnApplicable, err)
		}
	}

	if !rec.Completed() {
		return rec, nil
	}

	rec.BuildingType = parse(p, FieldBuildingType, entities.ParseBuildingType)
	rec.VintageDecade = parse(p, FieldVintage, entities.ParseVintage)
	rec.Vacancy = parse(p, FieldVacancy, entities.ParseVacancy)
	rec.FloorAreaConditioned = p.float(ColumnFloorArea, false)
	rec.GarageBays = parse(p, FieldGarage, entities.ParseGarage)
	rec.Bedrooms = p.int(Existing(FieldBedrooms))

	rec.Heating.Type = parse(p, FieldHeatingEfficiency, func(s string) (entities.HeatingType, error) {
		return entities.ParseHeatingEfficiency(FieldHeatingEfficiency, s)
	})
	rec.Heating.Ducted = parse(p, FieldHeatingType, entities.ParseHeatingDistribution)
	rec.SecondaryHeating.Type = parse(p, FieldSecondaryHeatingEfficiency, func(s string) (entities.HeatingType, error) {
		return entities.ParseHeatingEfficiency(FieldSecondaryHeatingEfficiency, s)
	})
	rec.Cooling.Type = parse(p, FieldCoolingEfficiency, entities.ParseCoolingEfficiency)
	rec.Cooling.Ducted = parse(p, FieldCoolingType, entities.ParseCoolingDistribution)
	rec.HasDucts = parse(p, FieldHasDucts, func(s string) (bool, error) {
		return entities.ParseYesNo(FieldHasDucts, s)
	})
	rec.SharedSystem = parse(p, FieldSharedSystem, entities.ParseSharedSystem)

	rec.Capacities = entities.Capacities{
		HeatingPrimary:   p.float(ColumnHeatingCapacity, true),
		HeatingSecondary: p.float(ColumnSecondaryHeatingCapacity, true),
		CoolingPrimary:   p.float(ColumnCoolingCapacity, true),
		HeatPumpBackup:   p.float(ColumnBackupCapacity, true),
	}

	rec.HeatPumpBackupFuel = entities.Electricity
	if v, ok := row.Get(Existing(FieldHeatPumpBackupFuel)); ok && v != "" {
		fuel, err := entities.ParseFuel(FieldHeatPumpBackupFuel, v)
		p.fail(Existing(FieldHeatPumpBackupFuel), err)
		rec.HeatPumpBackupFuel = fuel
	}

	whFuel, _ := p.value(Existing(FieldWaterHeaterFuel))
	whEff, _ := p.value(Existing(FieldWaterHeaterEfficiency))
	if p.err == nil {
		wh, err := entities.ParseWaterHeater(whFuel, whEff)
		p.fail(Existing(FieldWaterHeaterEfficiency), err)
		rec.WaterHeater = wh
	}

	rec.Dishwasher = parse(p, FieldDishwasher, entities.ParseDishwasher)
	rec.ClothesWasher = parse(p, FieldClothesWasher, entities.ParseClothesWasher)
	rec.Dryer = parse(p, FieldClothesDryer, entities.ParseDryer)
	rec.CookingRange = parse(p, FieldCookingRange, entities.ParseCookingRange)
	rec.EVSE = parse(p, FieldElectricVehicle, entities.ParseEVSE)
	rec.Pool = parse(p, FieldPool, entities.ParsePool)
	rec.PoolHeater = parse(p, FieldPoolHeater, entities.ParsePoolHeater)
	rec.PoolPump = parse(p, FieldPoolPump, entities.ParsePoolPump)
	rec.HotTubSpa = parse(p, FieldHotTubSpa, entities.ParseHotTubSpa)
	rec.WellPump = parse(p, FieldWellPump, entities.ParseWellPump)
	rec.Ventilation = parse(p, FieldVentilation, entities.ParseVentilation)

	if v, ok := row.Get(Existing(FieldHasGarbageDisposal)); ok && v != "" {
		has, err := entities.ParseYesNo(FieldHasGarbageDisposal, v)
		p.fail(Existing(FieldHasGarbageDisposal), err)
		rec.HasGarbageDisposal = has
	}

	if opts.Peak != nil {
		if v, ok := row.Get(opts.Peak.Name); ok && v != "" {
			peak, err := cast.ToFloat64E(v)
			p.fail(opts.Peak.Name, err)
			rec.PeakElectricityW = peak * opts.Peak.Scale
		}
	}

	if p.err != nil {
		return nil, fmt.Errorf("building %d: %w", rec.ID, p.err)
	}
	return rec, nil
}
