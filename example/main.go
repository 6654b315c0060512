package main

import (
	"fmt"
	"log"

	"github.com/buildstock/panelload/pkg/application/services/nec"
	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/memory"
)

func main() {
	ratings, err := csv.DefaultRatings()
	if err != nil {
		log.Fatal(err)
	}
	repo := memory.NewRatingRepository(len(ratings))
	if err := repo.LoadRatings(ratings); err != nil {
		log.Fatal(err)
	}

	policy, err := entities.PolicyFor(entities.NEC2026Proposed)
	if err != nil {
		log.Fatal(err)
	}
	calc, err := nec.NewCalculator(repo, policy, nec.CircuitOptions{})
	if err != nil {
		log.Fatal(err)
	}

	// A 1,800 ft² gas-heated home with central AC
	pre := &entities.BuildingRecord{
		ID:                   1,
		Status:               entities.StatusSuccess,
		BuildingType:         entities.SingleFamilyDetached,
		VintageDecade:        1980,
		FloorAreaConditioned: 1800,
		Bedrooms:             3,
		Heating:              entities.HeatingSystem{Type: entities.HeatingFuel, Ducted: true},
		Cooling:              entities.CoolingSystem{Type: entities.CoolingCentralAC, Ducted: true},
		HasDucts:             true,
		Capacities:           entities.Capacities{HeatingPrimary: 80, CoolingPrimary: 36},
		WaterHeater:          entities.WaterHeater{Fuel: entities.NaturalGas, Kind: entities.WaterHeaterStorage},
		Dishwasher:           true,
		ClothesWasher:        true,
		Dryer:                entities.Dryer{Fuel: entities.NaturalGas, Tech: entities.TechFuel},
		CookingRange:         entities.CookingRange{Fuel: entities.NaturalGas, Tech: entities.TechFuel},
		PeakElectricityW:     6200,
	}

	// ...electrified with a ducted heat pump, a heat pump dryer and a level 2 charger
	post := pre.Clone()
	post.UpgradeApplicable = true
	post.UpgradeName = "whole-home electrification"
	post.Heating = entities.HeatingSystem{Type: entities.HeatingHeatPump, Ducted: true}
	post.Cooling = entities.CoolingSystem{Type: entities.CoolingHeatPump, Ducted: true}
	post.Capacities = entities.Capacities{HeatingPrimary: 36, CoolingPrimary: 36, HeatPumpBackup: 34}
	post.HeatPumpBackupFuel = entities.Electricity
	post.Dryer = entities.Dryer{Fuel: entities.Electricity, Tech: entities.TechHeatPump}
	post.EVSE = entities.EVSELevel2

	methods := []entities.Method{entities.LoadSumming, entities.MaximumDemand}
	result, err := calc.Evaluate(pre, post, methods, nec.UpgradeOptions{ExpectLoadChange: true})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Building %d under %s\n", result.BuildingID, policy.CodeYear)
	for _, mr := range result.Methods {
		fmt.Printf("  %s: %.0f VA (%.1f A) -> %.0f VA (%.1f A)\n",
			mr.Method, mr.PreUpgradeVA, mr.PreUpgradeAmps(), mr.PostUpgradeVA, mr.PostUpgradeAmps())
	}
	fmt.Printf("  Replaced: %v\n", result.ReplacedLoads)

	fmt.Println("  Post-upgrade loads:")
	for _, item := range result.Method(entities.LoadSumming).PostUpgradeLoads.Items() {
		if item.VA > 0 {
			fmt.Printf("    %-36s %8.0f VA\n", item.Name, item.VA)
		}
	}
}
