package testing

import (
	"math"
	"sort"
	"strconv"

	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/memory"
)

// BuildRatingRepository loads the embedded nameplate table into a memory repository
func BuildRatingRepository() (*memory.RatingRepository, error) {
	ratings, err := csv.DefaultRatings()
	if err != nil {
		return nil, err
	}
	repo := memory.NewRatingRepository(len(ratings))
	if err := repo.LoadRatings(ratings); err != nil {
		return nil, err
	}
	return repo, nil
}

// BuildAllGasHome returns a 1000 ft² single-family home with gas space and
// water heating, gas cooking and drying, central AC and no garage
func BuildAllGasHome(id entities.BuildingID) *entities.BuildingRecord {
	return &entities.BuildingRecord{
		ID:                   id,
		Status:               entities.StatusSuccess,
		BuildingType:         entities.SingleFamilyDetached,
		VintageDecade:        1970,
		Vacancy:              entities.Occupied,
		FloorAreaConditioned: 1000,
		Bedrooms:             3,
		Heating:              entities.HeatingSystem{Type: entities.HeatingFuel, Ducted: true},
		Cooling:              entities.CoolingSystem{Type: entities.CoolingCentralAC, Ducted: true},
		HasDucts:             true,
		Capacities:           entities.Capacities{HeatingPrimary: 60, CoolingPrimary: 36},
		HeatPumpBackupFuel:   entities.Electricity,
		WaterHeater:          entities.WaterHeater{Fuel: entities.NaturalGas, Kind: entities.WaterHeaterStorage},
		Dishwasher:           true,
		ClothesWasher:        true,
		Dryer:                entities.Dryer{Fuel: entities.NaturalGas, Tech: entities.TechFuel},
		CookingRange:         entities.CookingRange{Fuel: entities.NaturalGas, Tech: entities.TechFuel},
		HotTubSpa:            entities.FuelNone,
		PeakElectricityW:     5200,
	}
}

// BuildAllElectricHome returns a 2000 ft² single-family home with a ducted
// heat pump and electric backup, electric appliances, a Level 2 charger and
// a two-car garage
func BuildAllElectricHome(id entities.BuildingID) *entities.BuildingRecord {
	rec := BuildAllGasHome(id)
	rec.FloorAreaConditioned = 2000
	rec.GarageBays = 2
	rec.Heating = entities.HeatingSystem{Type: entities.HeatingHeatPump, Ducted: true}
	rec.Cooling = entities.CoolingSystem{Type: entities.CoolingHeatPump, Ducted: true}
	rec.Capacities = entities.Capacities{HeatingPrimary: 36, CoolingPrimary: 36, HeatPumpBackup: 34.1}
	rec.WaterHeater = entities.WaterHeater{Fuel: entities.Electricity, Kind: entities.WaterHeaterStorage}
	rec.Dryer = entities.Dryer{Fuel: entities.Electricity, Tech: entities.TechResistance}
	rec.CookingRange = entities.CookingRange{Fuel: entities.Electricity, Tech: entities.TechResistance}
	rec.EVSE = entities.EVSELevel2
	rec.PeakElectricityW = 11000
	return rec
}

// BuildIncompleteRecord returns a record whose simulation failed
func BuildIncompleteRecord(id entities.BuildingID) *entities.BuildingRecord {
	return &entities.BuildingRecord{ID: id, Status: entities.StatusFail, PeakElectricityW: math.NaN()}
}

// PeakColumn is the watt peak column written by AllGasRow
const PeakColumn = "report_simulation_output.peak_electricity_annual_total_w"

// AllGasRow returns the results-table row of BuildAllGasHome
func AllGasRow(id entities.BuildingID) csv.Row {
	return csv.Row{
		csv.ColumnBuildingID:                              strconv.FormatInt(int64(id), 10),
		csv.ColumnCompletedStatus:                         "Success",
		csv.ColumnFloorArea:                               "1000",
		csv.ColumnHeatingCapacity:                         "60",
		csv.ColumnSecondaryHeatingCapacity:                "0",
		csv.ColumnCoolingCapacity:                         "36",
		csv.ColumnBackupCapacity:                          "0",
		csv.Existing(csv.FieldBuildingType):               "Single-Family Detached",
		csv.Existing(csv.FieldVintage):                    "1970s",
		csv.Existing(csv.FieldVacancy):                    "Occupied",
		csv.Existing(csv.FieldGarage):                     "None",
		csv.Existing(csv.FieldBedrooms):                   "3",
		csv.Existing(csv.FieldHeatingEfficiency):          "Fuel Furnace, 80% AFUE",
		csv.Existing(csv.FieldHeatingType):                "Ducted Heating",
		csv.Existing(csv.FieldSecondaryHeatingEfficiency): "None",
		csv.Existing(csv.FieldCoolingEfficiency):          "AC, SEER 13",
		csv.Existing(csv.FieldCoolingType):                "Central AC",
		csv.Existing(csv.FieldHasDucts):                   "Yes",
		csv.Existing(csv.FieldSharedSystem):               "None",
		csv.Existing(csv.FieldWaterHeaterFuel):            "Natural Gas",
		csv.Existing(csv.FieldWaterHeaterEfficiency):      "Natural Gas Standard",
		csv.Existing(csv.FieldDishwasher):                 "290 Rated kWh, 80% Usage",
		csv.Existing(csv.FieldClothesWasher):              "Standard, 100% Usage",
		csv.Existing(csv.FieldClothesDryer):               "Gas, 100% Usage",
		csv.Existing(csv.FieldCookingRange):               "Gas, 100% Usage",
		csv.Existing(csv.FieldElectricVehicle):            "None",
		csv.Existing(csv.FieldPool):                       "None",
		csv.Existing(csv.FieldPoolHeater):                 "None",
		csv.Existing(csv.FieldPoolPump):                   "None",
		csv.Existing(csv.FieldHotTubSpa):                  "None",
		csv.Existing(csv.FieldWellPump):                   "None",
		csv.Existing(csv.FieldVentilation):                "None",
		PeakColumn:                                        "5200",
	}
}

// HeatPumpUpgradeRow returns an upgrade-table row replacing the all-gas
// home's furnace and AC with a 36 kBtu/h ducted heat pump
func HeatPumpUpgradeRow(id entities.BuildingID, upgradeName string) csv.Row {
	return csv.Row{
		csv.ColumnBuildingID:                     strconv.FormatInt(int64(id), 10),
		csv.ColumnCompletedStatus:                "Success",
		csv.ColumnApplicable:                     "True",
		csv.ColumnUpgradeName:                    upgradeName,
		csv.ColumnHeatingCapacity:                "36",
		csv.ColumnCoolingCapacity:                "36",
		csv.Upgrade(csv.FieldHeatingEfficiency):  "ASHP, SEER 15, 9.0 HSPF",
		csv.Upgrade(csv.FieldHeatingType):        "Ducted Heat Pump",
		csv.Upgrade(csv.FieldCoolingEfficiency):  "Heat Pump",
		csv.Upgrade(csv.FieldCoolingType):        "Ducted Heat Pump",
		csv.Upgrade(csv.FieldHeatPumpBackupFuel): "None",
	}
}

// NotApplicableUpgradeRow returns the upgrade-table row of a building the
// upgrade does not apply to
func NotApplicableUpgradeRow(id entities.BuildingID) csv.Row {
	return csv.Row{
		csv.ColumnBuildingID:      strconv.FormatInt(int64(id), 10),
		csv.ColumnCompletedStatus: "Invalid",
		csv.ColumnApplicable:      "False",
	}
}

// BuildTable assembles rows into a table whose header is the sorted union
// of their columns; absent cells are empty
func BuildTable(rows ...csv.Row) *csv.Table {
	seen := make(map[string]bool)
	var header []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}
	sort.Strings(header)

	t := csv.NewTable(header)
	for _, row := range rows {
		record := make([]string, len(header))
		for i, h := range header {
			record[i] = row[h]
		}
		// widths always match the header
		_ = t.Append(record)
	}
	return t
}
