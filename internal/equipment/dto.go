package equipment

import (
	"time"

	"github.com/frahmantamala/maintenance-management/internal"
	"github.com/frahmantamala/maintenance-management/internal/core/common/validation"
)

type CreateEquipmentDTO struct {
	Name                string    `json:"name"`
	SerialNumber        string    `json:"serial_number"`
	Category            string    `json:"category"`
	PurchaseDate        time.Time `json:"purchase_date"`
	WarrantyExpiry      time.Time `json:"warranty_expiry"`
	Location            string    `json:"location"`
	Department          string    `json:"department"`
	AssignedEmployeeID  int64     `json:"assigned_employee_id"`
	MaintenanceTeamID   int64     `json:"maintenance_team_id"`
	DefaultTechnicianID *int64    `json:"default_technician_id,omitempty"`
	Specifications      string    `json:"specifications,omitempty"`
}

func (dto *CreateEquipmentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("serial_number", dto.SerialNumber).Required().MaxLength(100)
	v.Field("category", dto.Category).Required().OneOf(Categories, internal.ErrCodeInvalidCategory)
	v.Field("purchase_date", dto.PurchaseDate).Required().NotFuture()
	v.Field("location", dto.Location).Required()
	v.Field("department", dto.Department).Required()
	v.Field("maintenance_team_id", dto.MaintenanceTeamID).Required()

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateEquipmentDTO struct {
	Name                *string    `json:"name,omitempty"`
	Category            *string    `json:"category,omitempty"`
	WarrantyExpiry      *time.Time `json:"warranty_expiry,omitempty"`
	Location            *string    `json:"location,omitempty"`
	Department          *string    `json:"department,omitempty"`
	AssignedEmployeeID  *int64     `json:"assigned_employee_id,omitempty"`
	MaintenanceTeamID   *int64     `json:"maintenance_team_id,omitempty"`
	DefaultTechnicianID *int64     `json:"default_technician_id,omitempty"`
	Specifications      *string    `json:"specifications,omitempty"`
}

func (dto *UpdateEquipmentDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(255)
	}
	if dto.Category != nil {
		v.Field("category", *dto.Category).OneOf(Categories, internal.ErrCodeInvalidCategory)
	}

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ScrapEquipmentDTO struct {
	Reason string `json:"reason,omitempty"`
}

type ListFilters struct {
	Category           string
	Status             string
	Department         string
	AssignedEmployeeID *int64
	TeamID             *int64
}
