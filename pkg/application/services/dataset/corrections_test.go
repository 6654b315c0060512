package dataset

import (
	"context"
	"testing"

	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
	testhelpers "github.com/buildstock/panelload/pkg/infrastructure/testing"
)

func TestRemoveMultifamilyWellPumps(t *testing.T) {
	mf := testhelpers.BuildAllGasHome(1)
	mf.BuildingType = entities.MultiFamily5Plus
	mf.WellPump = entities.WellPumpTypical

	sfd := testhelpers.BuildAllGasHome(2)
	sfd.WellPump = entities.WellPumpTypical

	failed := testhelpers.BuildIncompleteRecord(3)

	if n := RemoveMultifamilyWellPumps([]*entities.BuildingRecord{mf, sfd, failed}); n != 1 {
		t.Errorf("Expected 1 correction, got %d", n)
	}
	if mf.WellPump != entities.WellPumpNone {
		t.Error("Expected multifamily well pump to be removed")
	}
	if sfd.WellPump != entities.WellPumpTypical {
		t.Error("Expected single-family well pump to be kept")
	}
}

func buildHomes(n int, vintage int) []*entities.BuildingRecord {
	records := make([]*entities.BuildingRecord, n)
	for i := range records {
		records[i] = testhelpers.BuildAllGasHome(entities.BuildingID(i + 1))
		records[i].VintageDecade = vintage
	}
	return records
}

func assigned(records []*entities.BuildingRecord) map[entities.BuildingID]bool {
	out := make(map[entities.BuildingID]bool)
	for _, r := range records {
		if r.HasGarbageDisposal {
			out[r.ID] = true
		}
	}
	return out
}

func TestAssignGarbageDisposals(t *testing.T) {
	records := buildHomes(50, 1970)
	old := buildHomes(10, 1930)
	for i, r := range old {
		r.ID = entities.BuildingID(1000 + i)
	}
	all := append(append([]*entities.BuildingRecord{}, records...), old...)

	if n := AssignGarbageDisposals(all, 0.52, 1940, 8); n != 26 {
		t.Errorf("Expected 26 assignments, got %d", n)
	}
	if got := len(assigned(all)); got != 26 {
		t.Errorf("Expected 26 disposals, got %d", got)
	}
	for _, r := range old {
		if r.HasGarbageDisposal {
			t.Errorf("Expected pre-1940 building %d to be skipped", r.ID)
		}
	}
}

func TestAssignGarbageDisposals_Deterministic(t *testing.T) {
	a := buildHomes(30, 1980)
	b := buildHomes(30, 1980)
	// input order does not matter, only the seed and IDs
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	AssignGarbageDisposals(a, 0.52, 1940, 42)
	AssignGarbageDisposals(b, 0.52, 1940, 42)

	ga, gb := assigned(a), assigned(b)
	if len(ga) != len(gb) {
		t.Fatalf("Expected equal assignment counts, got %d and %d", len(ga), len(gb))
	}
	for id := range ga {
		if !gb[id] {
			t.Errorf("Building %d assigned in one run only", id)
		}
	}

	c := buildHomes(30, 1980)
	AssignGarbageDisposals(c, 0.52, 1940, 43)
	same := true
	gc := assigned(c)
	for id := range ga {
		if !gc[id] {
			same = false
		}
	}
	if same {
		t.Error("Expected a different seed to change the assignment")
	}
}

func TestRun_GarbageDisposalColumnHonored(t *testing.T) {
	with := testhelpers.AllGasRow(1)
	with[csv.Existing(csv.FieldHasGarbageDisposal)] = "Yes"
	without := testhelpers.AllGasRow(2)
	without[csv.Existing(csv.FieldHasGarbageDisposal)] = "No"

	cfg := DefaultConfig()
	cfg.GarbageDisposalFraction = 1
	d := newDriver(t, cfg, nil)

	result, err := d.Run(context.Background(), testhelpers.BuildTable(with, without), nil)
	if err != nil {
		t.Fatalf("Failed to run: %v", err)
	}
	first, _ := result.Baseline.GetBuilding(1)
	second, _ := result.Baseline.GetBuilding(2)
	if !first.HasGarbageDisposal || second.HasGarbageDisposal {
		t.Errorf("Expected the input column to be kept, got %v and %v", first.HasGarbageDisposal, second.HasGarbageDisposal)
	}
}

func TestRun_GarbageDisposalCarriedToUpgrade(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GarbageDisposalFraction = 1
	d := newDriver(t, cfg, nil)

	result, err := d.Run(context.Background(), baselineTable(1),
		testhelpers.BuildTable(testhelpers.HeatPumpUpgradeRow(1, heatPumpUpgrade)))
	if err != nil {
		t.Fatalf("Failed to run: %v", err)
	}
	lsm := result.Results[0].Method(entities.LoadSumming)
	if lsm.PreUpgradeLoads.Get(entities.LoadGarbageDisposal) != 1176 {
		t.Errorf("Expected disposal load 1176, got %v", lsm.PreUpgradeLoads.Get(entities.LoadGarbageDisposal))
	}
	if lsm.PostUpgradeLoads.Get(entities.LoadGarbageDisposal) != 1176 {
		t.Errorf("Expected disposal to carry over to the upgrade, got %v", lsm.PostUpgradeLoads.Get(entities.LoadGarbageDisposal))
	}
}
