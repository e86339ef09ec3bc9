package team

import (
	"time"

	teamDatamodel "github.com/frahmantamala/maintenance-management/internal/core/datamodel/team"
)

const (
	SpecializationMechanical = "MECHANICAL"
	SpecializationElectrical = "ELECTRICAL"
	SpecializationIT         = "IT"
	SpecializationHVAC       = "HVAC"
	SpecializationGeneral    = "GENERAL"
)

var Specializations = []string{
	SpecializationMechanical,
	SpecializationElectrical,
	SpecializationIT,
	SpecializationHVAC,
	SpecializationGeneral,
}

type MaintenanceTeam struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	Specialization string       `json:"specialization"`
	IsActive       bool         `json:"is_active"`
	Technicians    []Technician `json:"technicians,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Technician is the directory view of a team member, enough for rosters and
// assignment pickers.
type Technician struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func ToDataModel(t *MaintenanceTeam) *teamDatamodel.MaintenanceTeam {
	return &teamDatamodel.MaintenanceTeam{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		Specialization: t.Specialization,
		IsActive:       t.IsActive,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func FromDataModel(t *teamDatamodel.MaintenanceTeam) *MaintenanceTeam {
	return &MaintenanceTeam{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		Specialization: t.Specialization,
		IsActive:       t.IsActive,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
