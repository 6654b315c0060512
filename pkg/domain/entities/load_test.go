package entities

import (
	"math"
	"testing"
)

func TestLoadVector_Order(t *testing.T) {
	v := NewLoadVector(3)
	v.Set(LoadLighting, 3000)
	v.Set(LoadEVSE, 7680)
	v.Set(LoadLighting, 2000)

	names := v.Names()
	if len(names) != 2 || names[0] != LoadLighting || names[1] != LoadEVSE {
		t.Errorf("Expected insertion order to be kept, got %v", names)
	}
	if v.Get(LoadLighting) != 2000 {
		t.Errorf("Expected Set to replace, got %v", v.Get(LoadLighting))
	}
	if v.Get(LoadDryer) != 0 || v.Has(LoadDryer) {
		t.Error("Expected absent load to read as 0")
	}
	if v.Sum() != 9680 {
		t.Errorf("Expected sum 9680, got %v", v.Sum())
	}
}

func TestLoadVector_HVAC(t *testing.T) {
	legacy := NewLoadVector(2)
	legacy.Set(LoadLighting, 3000)
	legacy.Set(LoadHVAC, 5784)
	if legacy.Itemized() {
		t.Error("Expected load_hvac vector not to be itemized")
	}
	if legacy.NoncoincidentTotal() != 8784 {
		t.Errorf("Expected 8784, got %v", legacy.NoncoincidentTotal())
	}

	itemized := NewLoadVector(8)
	itemized.Set(LoadLighting, 2000)
	itemized.Set(LoadPrimaryHeatingHeatPump, 4800)
	itemized.Set(LoadHeatingBackup, 9993)
	itemized.Set(LoadHeatingAirHandler, 1344)
	itemized.Set(LoadCooling, 4800)
	itemized.Set(LoadCoolingAirHandler, 1344)

	if !itemized.Itemized() {
		t.Error("Expected itemized vector")
	}
	if itemized.HeatingTotal() != 16137 || itemized.CoolingTotal() != 6144 {
		t.Errorf("Unexpected mode totals %v / %v", itemized.HeatingTotal(), itemized.CoolingTotal())
	}
	if !itemized.HeatingDominant() {
		t.Error("Expected heating to dominate")
	}
	if itemized.NonHVACTotal() != 2000 {
		t.Errorf("Expected non-HVAC total 2000, got %v", itemized.NonHVACTotal())
	}
	if itemized.NoncoincidentTotal() != 18137 {
		t.Errorf("Expected 18137, got %v", itemized.NoncoincidentTotal())
	}
}

func TestLoadName_Class(t *testing.T) {
	testCases := []struct {
		name LoadName
		want LoadClass
	}{
		{LoadLighting, ClassGeneral},
		{LoadEVSE, ClassEVSE},
		{LoadHVAC, ClassHVAC},
		{LoadHeatingBackup, ClassHeatingResistance},
		{LoadSecondaryHeatingResistance, ClassHeatingResistance},
		{LoadHeatingAirHandler, ClassHeating},
		{LoadCoolingAirHandler, ClassCooling},
	}
	for _, tc := range testCases {
		if got := tc.name.Class(); got != tc.want {
			t.Errorf("%s: expected class %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestNaNVector(t *testing.T) {
	policy, _ := PolicyFor(NEC2026Proposed)
	v := NaNVector(policy.LoadNames())
	if v.Len() != 23 {
		t.Errorf("Expected 23 items, got %d", v.Len())
	}
	if !math.IsNaN(v.Sum()) || !math.IsNaN(v.Get(LoadEVSE)) {
		t.Error("Expected NaN items")
	}
}

func TestPolicyFor(t *testing.T) {
	p23, err := PolicyFor(NEC2023)
	if err != nil {
		t.Fatalf("Expected NEC 2023 policy: %v", err)
	}
	if p23.LightingVAPerSqFt != 3 || p23.ItemizeHVAC || len(p23.LoadNames()) != 16 {
		t.Errorf("Unexpected NEC 2023 policy %+v", p23)
	}

	p26, _ := PolicyFor(NEC2026Proposed)
	if p26.LightingVAPerSqFt != 2 || !p26.ItemizeHVAC || p26.NewEVSEFactor != 0.8 || p26.NewLoadFactor != 0.5 {
		t.Errorf("Unexpected NEC 2026 policy %+v", p26)
	}

	if _, err := PolicyFor(CodeYear(2020)); err == nil {
		t.Error("Expected error for unknown code year")
	}
	if Amperage(24000) != 100 {
		t.Errorf("Expected 100 A, got %v", Amperage(24000))
	}
}

func TestParseMethod(t *testing.T) {
	for _, s := range []string{"83", "220.83", "220_83"} {
		if m, err := ParseMethod(s); err != nil || m != LoadSumming {
			t.Errorf("ParseMethod(%q): expected LoadSumming, got %v (%v)", s, m, err)
		}
	}
	if m, err := ParseMethod("87"); err != nil || m != MaximumDemand {
		t.Errorf("Expected MaximumDemand, got %v (%v)", m, err)
	}
	if _, err := ParseMethod("85"); err == nil {
		t.Error("Expected error for unknown method")
	}
	if y, err := ParseCodeYear("2026"); err != nil || y != NEC2026Proposed {
		t.Errorf("Expected 2026, got %v (%v)", y, err)
	}
}
