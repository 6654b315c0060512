package nec

import (
	"math"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

// ItemState classifies how an upgrade affected one load item
type ItemState int

const (
	// Unchanged loads are entirely existing
	Unchanged ItemState = iota
	// Replaced loads had existing equipment removed; the post value is all new
	Replaced
	// New loads had no existing equipment
	New
	// Retained loads keep existing equipment as backup; only the increase is new
	Retained
	// Increased loads keep their existing portion; only the increase is new
	Increased
	// Reduced loads shrink in place; what remains is existing
	Reduced
)

// String method for ItemState enum
func (s ItemState) String() string {
	switch s {
	case Unchanged:
		return "Unchanged"
	case Replaced:
		return "Replaced"
	case New:
		return "New"
	case Retained:
		return "Retained"
	case Increased:
		return "Increased"
	case Reduced:
		return "Reduced"
	default:
		return "Unknown"
	}
}

// Swap records which HVAC services an upgrade installed different equipment for
type Swap struct {
	Heating bool
	Cooling bool
}

// EquipmentSwap compares the primary HVAC systems of two records
func EquipmentSwap(pre, post *entities.BuildingRecord) Swap {
	return Swap{
		Heating: pre.Heating != post.Heating,
		Cooling: pre.Cooling != post.Cooling,
	}
}

// covers reports whether the swap removed the equipment behind a load
func (s Swap) covers(name entities.LoadName) bool {
	class := name.Class()
	switch {
	case class == entities.ClassHVAC:
		return s.Heating || s.Cooling
	case class.IsHeating():
		return s.Heating
	case class == entities.ClassCooling:
		return s.Cooling
	default:
		return false
	}
}

// ItemChange splits one post-upgrade item into existing and new portions
type ItemChange struct {
	Name     entities.LoadName
	State    ItemState
	Pre      float64
	Post     float64
	Existing float64
	New      float64
}

// LoadChanges compares pre and post vectors item by item. Vectors holding
// NaN have no comparable items and yield nil.
//
// Only loads whose equipment the swap removed are credited as wholly new.
// Any other item keeps its pre value as existing load and only an increase
// is new, so raising a post value never lowers the total. With
// retainExistingAsBackup the swapped equipment stays installed as well.
func LoadChanges(pre, post *entities.LoadVector, swap Swap, retainExistingAsBackup bool) []ItemChange {
	if math.IsNaN(pre.Sum()) || math.IsNaN(post.Sum()) {
		return nil
	}

	changes := make([]ItemChange, 0, post.Len())
	for _, item := range post.Items() {
		ch := ItemChange{Name: item.Name, Pre: pre.Get(item.Name), Post: item.VA}
		swapped := swap.covers(item.Name)
		switch {
		case ch.Post == ch.Pre && (ch.Pre == 0 || !swapped):
			ch.State = Unchanged
			ch.Existing = ch.Pre
		case ch.Pre == 0:
			ch.State = New
			ch.New = ch.Post
		case swapped && retainExistingAsBackup:
			ch.State = Retained
			ch.Existing = ch.Pre
			ch.New = math.Max(0, ch.Post-ch.Pre)
		case swapped:
			ch.State = Replaced
			ch.New = ch.Post
		case ch.Post > ch.Pre:
			ch.State = Increased
			ch.Existing = ch.Pre
			ch.New = ch.Post - ch.Pre
		default:
			ch.State = Reduced
			ch.Existing = ch.Post
		}
		changes = append(changes, ch)
	}
	return changes
}

// Changed reports whether any item differs between pre and post
func Changed(changes []ItemChange) bool {
	for _, ch := range changes {
		if ch.State != Unchanged {
			return true
		}
	}
	return false
}

// ReplacedLoads returns the names of items whose existing equipment was removed
func ReplacedLoads(changes []ItemChange) []entities.LoadName {
	var names []entities.LoadName
	for _, ch := range changes {
		if ch.State == Replaced {
			names = append(names, ch.Name)
		}
	}
	return names
}
