package entities

// HeatingType classifies a heating system by how it draws electricity
type HeatingType int

const (
	HeatingNone HeatingType = iota
	HeatingHeatPump
	HeatingElectricResistance
	HeatingFuel
	HeatingShared
)

// String method for HeatingType enum
func (h HeatingType) String() string {
	switch h {
	case HeatingNone:
		return "None"
	case HeatingHeatPump:
		return "Heat Pump"
	case HeatingElectricResistance:
		return "Electric Resistance"
	case HeatingFuel:
		return "Fuel"
	case HeatingShared:
		return "Shared Heating"
	default:
		return "Unknown"
	}
}

// HeatingSystem is a classified heating system
type HeatingSystem struct {
	Type   HeatingType
	Ducted bool
}

// IsElectric reports whether the system draws from the dwelling's panel
func (h HeatingSystem) IsElectric() bool {
	return h.Type == HeatingHeatPump || h.Type == HeatingElectricResistance
}

// CoolingType classifies a cooling system
type CoolingType int

const (
	CoolingNone CoolingType = iota
	CoolingRoomAC
	CoolingCentralAC
	CoolingHeatPump
	CoolingShared
)

// String method for CoolingType enum
func (c CoolingType) String() string {
	switch c {
	case CoolingNone:
		return "None"
	case CoolingRoomAC:
		return "Room AC"
	case CoolingCentralAC:
		return "Central AC"
	case CoolingHeatPump:
		return "Heat Pump"
	case CoolingShared:
		return "Shared Cooling"
	default:
		return "Unknown"
	}
}

// CoolingSystem is a classified cooling system
type CoolingSystem struct {
	Type   CoolingType
	Ducted bool
}

// SharedSystem records which HVAC services are served by a shared (building-level) system
type SharedSystem int

const (
	SharedNone SharedSystem = iota
	SharedHeatingOnly
	SharedCoolingOnly
	SharedHeatingAndCooling
)

// String method for SharedSystem enum
func (s SharedSystem) String() string {
	switch s {
	case SharedNone:
		return "None"
	case SharedHeatingOnly:
		return "Heating Only"
	case SharedCoolingOnly:
		return "Cooling Only"
	case SharedHeatingAndCooling:
		return "Heating and Cooling"
	default:
		return "Unknown"
	}
}

// SharesHeating reports whether heating is supplied by a shared system
func (s SharedSystem) SharesHeating() bool {
	return s == SharedHeatingOnly || s == SharedHeatingAndCooling
}

// SharesCooling reports whether cooling is supplied by a shared system
func (s SharedSystem) SharesCooling() bool {
	return s == SharedCoolingOnly || s == SharedHeatingAndCooling
}

// VoltageClass is the supply arrangement of an appliance
type VoltageClass int

const (
	Volt240 VoltageClass = iota
	Volt120Dedicated
	Volt120Shared
)

// String method for VoltageClass enum
func (v VoltageClass) String() string {
	switch v {
	case Volt240:
		return "240V"
	case Volt120Dedicated:
		return "120V dedicated"
	case Volt120Shared:
		return "120V shared"
	default:
		return "Unknown"
	}
}

// Is120V reports whether the appliance runs on a 120V circuit
func (v VoltageClass) Is120V() bool {
	return v == Volt120Dedicated || v == Volt120Shared
}

// WaterHeaterKind is the technology of a water heater
type WaterHeaterKind int

const (
	WaterHeaterNone WaterHeaterKind = iota
	WaterHeaterStorage
	WaterHeaterTankless
	WaterHeaterHeatPump
)

// WaterHeater is a classified water heater
type WaterHeater struct {
	Fuel    Fuel
	Kind    WaterHeaterKind
	Voltage VoltageClass
}

// ApplianceTech is the heating technology of a dryer or cooking range
type ApplianceTech int

const (
	TechNone ApplianceTech = iota
	TechResistance
	TechHeatPump
	TechInduction
	TechFuel
)

// Dryer is a classified clothes dryer
type Dryer struct {
	Fuel    Fuel
	Tech    ApplianceTech
	Voltage VoltageClass
}

// CookingRange is a classified cooking range/oven
type CookingRange struct {
	Fuel    Fuel
	Tech    ApplianceTech
	Voltage VoltageClass
}

// EVSELevel is the electric vehicle charger level
type EVSELevel int

const (
	EVSENone EVSELevel = iota
	EVSELevel1
	EVSELevel2
)

// PoolHeater is the pool heating technology
type PoolHeater int

const (
	PoolHeaterNone PoolHeater = iota
	PoolHeaterElectricResistance
	PoolHeaterHeatPump
	PoolHeaterFuel
	PoolHeaterSolar
)

// PoolPump is the declared pool pump size as labeled by the building-stock model
type PoolPump int

const (
	PoolPumpNone PoolPump = iota
	PoolPump075HP
	PoolPump100HP
)

// WellPump is the well pump option
type WellPump int

const (
	WellPumpNone WellPump = iota
	WellPumpTypical
	WellPumpHighEfficiency
)

// Ventilation is the mechanical ventilation type
type Ventilation int

const (
	VentilationNone Ventilation = iota
	VentilationExhaust
	VentilationSupply
	VentilationBalanced
	VentilationERV
	VentilationHRV
)

// String method for Ventilation enum
func (v Ventilation) String() string {
	switch v {
	case VentilationNone:
		return "None"
	case VentilationExhaust:
		return "exhaust"
	case VentilationSupply:
		return "supply"
	case VentilationBalanced:
		return "balanced"
	case VentilationERV:
		return "erv"
	case VentilationHRV:
		return "hrv"
	default:
		return "Unknown"
	}
}
