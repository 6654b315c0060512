package dataset

import (
	"math"
	"math/rand"
	"sort"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

// Correction names as recorded in the run journal
const (
	CorrectionWellPump        = "well_pump_multifamily_5plus"
	CorrectionGarbageDisposal = "garbage_disposal_assignment"
)

// RemoveMultifamilyWellPumps clears well pumps of units in 5+ unit buildings,
// which the building-stock model assigns in error. Returns the number of
// records changed.
func RemoveMultifamilyWellPumps(records []*entities.BuildingRecord) int {
	n := 0
	for _, rec := range records {
		if rec.Completed() && rec.BuildingType == entities.MultiFamily5Plus && rec.WellPump != entities.WellPumpNone {
			rec.WellPump = entities.WellPumpNone
			n++
		}
	}
	return n
}

// AssignGarbageDisposals gives a garbage disposal to round(fraction × n) of
// the n completed records built in minVintage or later. Eligible records are
// ordered by ID before a seeded shuffle, so the assignment depends only on
// the seed and the set of IDs. Returns the number of records assigned.
func AssignGarbageDisposals(records []*entities.BuildingRecord, fraction float64, minVintage int, seed int64) int {
	var eligible []*entities.BuildingRecord
	for _, rec := range records {
		if rec.Completed() && rec.VintageDecade >= minVintage {
			eligible = append(eligible, rec)
		}
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].ID < eligible[j].ID })

	count := int(math.Round(fraction * float64(len(eligible))))
	perm := rand.New(rand.NewSource(seed)).Perm(len(eligible))
	for _, i := range perm[:count] {
		eligible[i].HasGarbageDisposal = true
	}
	return count
}
