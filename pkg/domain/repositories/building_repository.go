package repositories

import "github.com/buildstock/panelload/pkg/domain/entities"

// BuildingRepository provides access to parsed building records
type BuildingRepository interface {
	GetBuilding(id entities.BuildingID) (*entities.BuildingRecord, error)
	GetAllBuildings() ([]*entities.BuildingRecord, error)
	LoadBuildings(buildings []*entities.BuildingRecord) error
	Len() int
}
