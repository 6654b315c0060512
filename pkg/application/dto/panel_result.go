package dto

import (
	"github.com/buildstock/panelload/pkg/domain/entities"
)

// MethodResult is the outcome of one NEC method for one building
type MethodResult struct {
	Method           entities.Method
	PreUpgradeVA     float64
	PostUpgradeVA    float64
	PreUpgradeLoads  *entities.LoadVector
	PostUpgradeLoads *entities.LoadVector
}

// PreUpgradeAmps returns the pre-upgrade total in panel amperes
func (r *MethodResult) PreUpgradeAmps() float64 {
	return entities.Amperage(r.PreUpgradeVA)
}

// PostUpgradeAmps returns the post-upgrade total in panel amperes
func (r *MethodResult) PostUpgradeAmps() float64 {
	return entities.Amperage(r.PostUpgradeVA)
}

// PanelResult contains the complete output for one building
type PanelResult struct {
	BuildingID    entities.BuildingID
	HasUpgrade    bool
	Methods       []*MethodResult
	ReplacedLoads []entities.LoadName
}

// NewPanelResult creates an empty result for a building
func NewPanelResult(id entities.BuildingID, hasUpgrade bool) *PanelResult {
	return &PanelResult{
		BuildingID: id,
		HasUpgrade: hasUpgrade,
		Methods:    make([]*MethodResult, 0, 2),
	}
}

// Method returns the result of a method, nil when it was not evaluated
func (r *PanelResult) Method(m entities.Method) *MethodResult {
	for _, mr := range r.Methods {
		if mr.Method == m {
			return mr
		}
	}
	return nil
}
