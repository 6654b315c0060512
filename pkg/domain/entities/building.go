package entities

// BuildingID identifies one dwelling unit in a building-stock dataset
type BuildingID int64

// CompletionStatus is the simulation status of a building record
type CompletionStatus int

const (
	StatusSuccess CompletionStatus = iota
	StatusFail
	StatusInvalid
)

// String method for CompletionStatus enum
func (s CompletionStatus) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFail:
		return "Fail"
	case StatusInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// BuildingType is the RECS building type of a dwelling unit
type BuildingType int

const (
	SingleFamilyDetached BuildingType = iota
	SingleFamilyAttached
	MultiFamily2To4
	MultiFamily5Plus
	MobileHome
)

// String method for BuildingType enum
func (b BuildingType) String() string {
	switch b {
	case SingleFamilyDetached:
		return "Single-Family Detached"
	case SingleFamilyAttached:
		return "Single-Family Attached"
	case MultiFamily2To4:
		return "Multi-Family with 2 - 4 Units"
	case MultiFamily5Plus:
		return "Multi-Family with 5+ Units"
	case MobileHome:
		return "Mobile Home"
	default:
		return "Unknown"
	}
}

// Vacancy is the occupancy status of a dwelling unit
type Vacancy int

const (
	Occupied Vacancy = iota
	Vacant
)

// String method for Vacancy enum
func (v Vacancy) String() string {
	if v == Vacant {
		return "Vacant"
	}
	return "Occupied"
}

// Fuel is an energy carrier
type Fuel int

const (
	FuelNone Fuel = iota
	Electricity
	NaturalGas
	Propane
	FuelOil
	OtherFuel
)

// String method for Fuel enum
func (f Fuel) String() string {
	switch f {
	case FuelNone:
		return "None"
	case Electricity:
		return "Electricity"
	case NaturalGas:
		return "Natural Gas"
	case Propane:
		return "Propane"
	case FuelOil:
		return "Fuel Oil"
	case OtherFuel:
		return "Other Fuel"
	default:
		return "Unknown"
	}
}

// Capacities holds simulated equipment sizes in kBtu/h
type Capacities struct {
	HeatingPrimary   float64
	HeatingSecondary float64
	CoolingPrimary   float64
	HeatPumpBackup   float64
}

// BuildingRecord is one dwelling unit's simulated characteristics, parsed
// once at ingestion. Records that did not complete successfully carry only
// ID and Status.
type BuildingRecord struct {
	ID     BuildingID
	Status CompletionStatus

	BuildingType         BuildingType
	VintageDecade        int // first year of the vintage decade, 1930 for "<1940"
	Vacancy              Vacancy
	FloorAreaConditioned float64 // ft²
	GarageBays           int
	Bedrooms             int

	Heating            HeatingSystem
	SecondaryHeating   HeatingSystem
	Cooling            CoolingSystem
	HasDucts           bool
	SharedSystem       SharedSystem
	Capacities         Capacities
	HeatPumpBackupFuel Fuel

	WaterHeater   WaterHeater
	Dishwasher    bool
	ClothesWasher bool
	Dryer         Dryer
	CookingRange  CookingRange
	EVSE          EVSELevel
	Pool          bool
	PoolHeater    PoolHeater
	PoolPump      PoolPump
	HotTubSpa     Fuel
	WellPump      WellPump
	Ventilation   Ventilation

	HasGarbageDisposal bool

	// PeakElectricityW is the annual 15-minute peak electricity draw, NaN when absent
	PeakElectricityW float64

	UpgradeApplicable bool
	UpgradeName       string
}

// Completed reports whether the record was simulated successfully
func (r *BuildingRecord) Completed() bool {
	return r != nil && r.Status == StatusSuccess
}

// IsPost1940 reports whether the building was built in 1940 or later
func (r *BuildingRecord) IsPost1940() bool {
	return r.VintageDecade >= 1940
}

// Clone returns a copy of the record
func (r *BuildingRecord) Clone() *BuildingRecord {
	c := *r
	return &c
}
