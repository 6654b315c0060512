package memory

import (
	"fmt"

	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/domain/repositories"
)

// BuildingRepository provides in-memory building record storage that
// preserves load order
type BuildingRepository struct {
	buildings    []*entities.BuildingRecord
	buildingsMap map[entities.BuildingID]int
}

// NewBuildingRepository creates a new in-memory building repository
func NewBuildingRepository(expectedBuildings int) *BuildingRepository {
	return &BuildingRepository{
		buildings:    make([]*entities.BuildingRecord, 0, expectedBuildings),
		buildingsMap: make(map[entities.BuildingID]int, expectedBuildings),
	}
}

// Verify interface compliance
var _ repositories.BuildingRepository = (*BuildingRepository)(nil)

// LoadBuildings loads records into the repository
func (r *BuildingRepository) LoadBuildings(buildings []*entities.BuildingRecord) error {
	for _, b := range buildings {
		if err := r.AddBuilding(b); err != nil {
			return err
		}
	}
	return nil
}

// AddBuilding adds a record; building IDs must be unique
func (r *BuildingRepository) AddBuilding(b *entities.BuildingRecord) error {
	if b == nil {
		return fmt.Errorf("building record cannot be nil")
	}
	if _, exists := r.buildingsMap[b.ID]; exists {
		return fmt.Errorf("duplicate building_id: %d", b.ID)
	}
	r.buildingsMap[b.ID] = len(r.buildings)
	r.buildings = append(r.buildings, b)
	return nil
}

// GetBuilding returns the record of a building
func (r *BuildingRepository) GetBuilding(id entities.BuildingID) (*entities.BuildingRecord, error) {
	index, exists := r.buildingsMap[id]
	if !exists {
		return nil, fmt.Errorf("building not found: %d", id)
	}
	return r.buildings[index], nil
}

// GetAllBuildings returns all records in load order
func (r *BuildingRepository) GetAllBuildings() ([]*entities.BuildingRecord, error) {
	out := make([]*entities.BuildingRecord, len(r.buildings))
	copy(out, r.buildings)
	return out, nil
}

// Len returns the number of records
func (r *BuildingRepository) Len() int {
	return len(r.buildings)
}
