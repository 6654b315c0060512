package csv

import (
	"fmt"
	"strings"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

const (
	ColumnBuildingID      = "building_id"
	ColumnCompletedStatus = "completed_status"

	ColumnFloorArea                = "upgrade_costs.floor_area_conditioned_ft_2"
	ColumnHeatingCapacity          = "upgrade_costs.size_heating_system_primary_k_btu_h"
	ColumnSecondaryHeatingCapacity = "upgrade_costs.size_heating_system_secondary_k_btu_h"
	ColumnCoolingCapacity          = "upgrade_costs.size_cooling_system_primary_k_btu_h"
	ColumnBackupCapacity           = "upgrade_costs.size_heat_pump_backup_primary_k_btu_h"

	ColumnApplicable  = "apply_upgrade.applicable"
	ColumnUpgradeName = "apply_upgrade.upgrade_name"

	existingPrefix = "build_existing_model."
	upgradePrefix  = "upgrade."
)

// Building characteristic fields, stored under build_existing_model.<field>
const (
	FieldBuildingType               = "geometry_building_type_recs"
	FieldVintage                    = "vintage"
	FieldVacancy                    = "vacancy_status"
	FieldGarage                     = "geometry_garage"
	FieldBedrooms                   = "bedrooms"
	FieldHeatingEfficiency          = "hvac_heating_efficiency"
	FieldHeatingType                = "hvac_heating_type"
	FieldSecondaryHeatingEfficiency = "hvac_secondary_heating_efficiency"
	FieldCoolingEfficiency          = "hvac_cooling_efficiency"
	FieldCoolingType                = "hvac_cooling_type"
	FieldHasDucts                   = "hvac_has_ducts"
	FieldSharedSystem               = "hvac_has_shared_system"
	FieldHeatPumpBackupFuel         = "hvac_heat_pump_backup_fuel"
	FieldWaterHeaterFuel            = "water_heater_fuel"
	FieldWaterHeaterEfficiency      = "water_heater_efficiency"
	FieldDishwasher                 = "dishwasher"
	FieldClothesWasher              = "clothes_washer"
	FieldClothesDryer               = "clothes_dryer"
	FieldCookingRange               = "cooking_range"
	FieldElectricVehicle            = "electric_vehicle"
	FieldPool                       = "misc_pool"
	FieldPoolHeater                 = "misc_pool_heater"
	FieldPoolPump                   = "misc_pool_pump"
	FieldHotTubSpa                  = "misc_hot_tub_spa"
	FieldWellPump                   = "misc_well_pump"
	FieldVentilation                = "mechanical_ventilation"
	FieldHasGarbageDisposal         = "has_garbage_disposal"
)

// Existing returns the baseline column of a characteristic field
func Existing(field string) string {
	return existingPrefix + field
}

// Upgrade returns the upgrade override column of a characteristic field
func Upgrade(field string) string {
	return upgradePrefix + field
}

// RequiredColumns lists every column a results table must carry
func RequiredColumns() []string {
	columns := []string{
		ColumnBuildingID,
		ColumnCompletedStatus,
		ColumnFloorArea,
		ColumnHeatingCapacity,
		ColumnSecondaryHeatingCapacity,
		ColumnCoolingCapacity,
		ColumnBackupCapacity,
	}
	for _, f := range []string{
		FieldBuildingType, FieldVintage, FieldVacancy, FieldGarage, FieldBedrooms,
		FieldHeatingEfficiency, FieldHeatingType, FieldSecondaryHeatingEfficiency,
		FieldCoolingEfficiency, FieldCoolingType, FieldHasDucts, FieldSharedSystem,
		FieldWaterHeaterFuel, FieldWaterHeaterEfficiency, FieldDishwasher,
		FieldClothesWasher, FieldClothesDryer, FieldCookingRange, FieldElectricVehicle,
		FieldPool, FieldPoolHeater, FieldPoolPump, FieldHotTubSpa, FieldWellPump,
		FieldVentilation,
	} {
		columns = append(columns, Existing(f))
	}
	return columns
}

// ValidateColumns fails with every required column the table lacks
func ValidateColumns(t *Table) error {
	missing := t.MissingColumns(RequiredColumns())
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", entities.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// PeakColumn is a recognized annual peak electricity column and its scale to watts
type PeakColumn struct {
	Name  string
	Scale float64
}

// PeakColumns are the recognized peak electricity columns, in preference order
var PeakColumns = []PeakColumn{
	{Name: "report_simulation_output.peak_electricity_annual_total_w", Scale: 1},
	{Name: "qoi_report.qoi_peak_magnitude_use_kw", Scale: 1000},
}

// ResolvePeakColumn returns the first recognized peak column of the table
func ResolvePeakColumn(t *Table) (PeakColumn, error) {
	for _, c := range PeakColumns {
		if t.HasColumn(c.Name) {
			return c, nil
		}
	}
	names := make([]string, len(PeakColumns))
	for i, c := range PeakColumns {
		names[i] = c.Name
	}
	return PeakColumn{}, fmt.Errorf("%w: expected one of %s", entities.ErrMissingPeakColumn, strings.Join(names, ", "))
}

// ApplyUpgradeOverrides copies every non-empty upgrade.<field> value onto
// build_existing_model.<field>
func ApplyUpgradeOverrides(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	for k, v := range row {
		if !strings.HasPrefix(k, upgradePrefix) || strings.TrimSpace(v) == "" {
			continue
		}
		out[Existing(strings.TrimPrefix(k, upgradePrefix))] = v
	}
	return out
}
