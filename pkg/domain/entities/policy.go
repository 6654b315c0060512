package entities

import (
	"fmt"
	"strings"
)

// PanelVoltage is the service voltage used to convert VA to amperes
const PanelVoltage = 240.0

// WattsPerKBtuh converts electric resistance heating capacity to watts
const WattsPerKBtuh = 293.071

// Amperage converts a total load to panel amperes
func Amperage(va float64) float64 {
	return va / PanelVoltage
}

// CodeYear is the NEC edition whose rules are applied
type CodeYear int

const (
	NEC2023 CodeYear = 2023
	// NEC2026Proposed is the proposed 2026 revision of articles 220.83/220.87
	NEC2026Proposed CodeYear = 2026
)

// String method for CodeYear enum
func (y CodeYear) String() string {
	switch y {
	case NEC2023:
		return "NEC 2023"
	case NEC2026Proposed:
		return "NEC 2026 (proposed)"
	default:
		return "Unknown"
	}
}

// ParseCodeYear parses "2023" or "2026"
func ParseCodeYear(s string) (CodeYear, error) {
	switch strings.TrimSpace(s) {
	case "2023":
		return NEC2023, nil
	case "2026":
		return NEC2026Proposed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCodeYear, s)
	}
}

// Method is the NEC calculation method for existing dwellings
type Method int

const (
	// LoadSumming is NEC 220.83: nameplate ratings with tiered demand factors
	LoadSumming Method = iota
	// MaximumDemand is NEC 220.87: 125% of the measured annual peak plus new load
	MaximumDemand
)

// String method for Method enum
func (m Method) String() string {
	switch m {
	case LoadSumming:
		return "220_83"
	case MaximumDemand:
		return "220_87"
	default:
		return "unknown"
	}
}

// ParseMethod parses "83", "87", "220.83" or "220.87"
func ParseMethod(s string) (Method, error) {
	switch strings.TrimSpace(s) {
	case "83", "220.83", "220_83":
		return LoadSumming, nil
	case "87", "220.87", "220_87":
		return MaximumDemand, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}
}

// Policy holds the constants that vary between code editions
type Policy struct {
	CodeYear CodeYear

	// LightingVAPerSqFt is the general lighting and receptacle load per ft²
	LightingVAPerSqFt float64

	// DemandFactorThresholdVA is the first tier credited at 100%
	DemandFactorThresholdVA float64
	// DemandFactorRemainder applies to load above the threshold
	DemandFactorRemainder float64

	// ItemizeHVAC carries HVAC as sub-items instead of one load_hvac item
	ItemizeHVAC bool

	// NewEVSEFactor applies to new EVSE load
	NewEVSEFactor float64
	// NewHeatingResistanceFactor applies to new resistance heating when heating dominates
	NewHeatingResistanceFactor float64
	// NewLoadFactor applies to every other new load
	NewLoadFactor float64

	// PeakDemandMultiplier scales the measured peak under 220.87
	PeakDemandMultiplier float64
}

// PolicyFor returns the policy of a code edition
func PolicyFor(year CodeYear) (Policy, error) {
	switch year {
	case NEC2023:
		return Policy{
			CodeYear:                   NEC2023,
			LightingVAPerSqFt:          3,
			DemandFactorThresholdVA:    8000,
			DemandFactorRemainder:      0.4,
			NewEVSEFactor:              1,
			NewHeatingResistanceFactor: 1,
			NewLoadFactor:              1,
			PeakDemandMultiplier:       1.25,
		}, nil
	case NEC2026Proposed:
		return Policy{
			CodeYear:                   NEC2026Proposed,
			LightingVAPerSqFt:          2,
			DemandFactorThresholdVA:    8000,
			DemandFactorRemainder:      0.4,
			ItemizeHVAC:                true,
			NewEVSEFactor:              0.8,
			NewHeatingResistanceFactor: 0.8,
			NewLoadFactor:              0.5,
			PeakDemandMultiplier:       1.25,
		}, nil
	default:
		return Policy{}, fmt.Errorf("%w: %d", ErrUnsupportedCodeYear, int(year))
	}
}

// LoadNames returns the item names carried by vectors under this policy
func (p Policy) LoadNames() []LoadName {
	names := make([]LoadName, 0, len(GeneralLoads)+len(HVACItemLoads))
	names = append(names, GeneralLoads...)
	if p.ItemizeHVAC {
		return append(names, HVACItemLoads...)
	}
	return append(names, LoadHVAC)
}
