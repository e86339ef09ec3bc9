package request

import (
	"time"

	requestDatamodel "github.com/frahmantamala/maintenance-management/internal/core/datamodel/request"
)

const (
	StatusNew        = "NEW"
	StatusInProgress = "IN_PROGRESS"
	StatusRepaired   = "REPAIRED"
	StatusScrap      = "SCRAP"
)

var Statuses = []string{StatusNew, StatusInProgress, StatusRepaired, StatusScrap}

const (
	TypeCorrective = "CORRECTIVE"
	TypePreventive = "PREVENTIVE"
)

var Types = []string{TypeCorrective, TypePreventive}

const (
	PriorityLow      = "LOW"
	PriorityMedium   = "MEDIUM"
	PriorityHigh     = "HIGH"
	PriorityCritical = "CRITICAL"
)

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

type MaintenanceRequest struct {
	ID                   int64      `json:"id"`
	Subject              string     `json:"subject"`
	Description          string     `json:"description"`
	EquipmentID          int64      `json:"equipment_id"`
	MaintenanceTeamID    int64      `json:"maintenance_team_id"`
	AssignedTechnicianID *int64     `json:"assigned_technician_id,omitempty"`
	RequestType          string     `json:"request_type"`
	Status               string     `json:"status"`
	Priority             string     `json:"priority"`
	ScheduledDate        *time.Time `json:"scheduled_date,omitempty"`
	CompletedDate        *time.Time `json:"completed_date,omitempty"`
	HoursSpent           *float64   `json:"hours_spent,omitempty"`
	Notes                string     `json:"notes,omitempty"`
	CreatedByID          int64      `json:"created_by_id"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (r *MaintenanceRequest) IsTerminal() bool {
	return r.Status == StatusScrap
}

func ToDataModel(r *MaintenanceRequest) *requestDatamodel.MaintenanceRequest {
	return &requestDatamodel.MaintenanceRequest{
		ID:                   r.ID,
		Subject:              r.Subject,
		Description:          r.Description,
		EquipmentID:          r.EquipmentID,
		MaintenanceTeamID:    r.MaintenanceTeamID,
		AssignedTechnicianID: r.AssignedTechnicianID,
		RequestType:          r.RequestType,
		Status:               r.Status,
		Priority:             r.Priority,
		ScheduledDate:        r.ScheduledDate,
		CompletedDate:        r.CompletedDate,
		HoursSpent:           r.HoursSpent,
		Notes:                r.Notes,
		CreatedByID:          r.CreatedByID,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func FromDataModel(r *requestDatamodel.MaintenanceRequest) *MaintenanceRequest {
	return &MaintenanceRequest{
		ID:                   r.ID,
		Subject:              r.Subject,
		Description:          r.Description,
		EquipmentID:          r.EquipmentID,
		MaintenanceTeamID:    r.MaintenanceTeamID,
		AssignedTechnicianID: r.AssignedTechnicianID,
		RequestType:          r.RequestType,
		Status:               r.Status,
		Priority:             r.Priority,
		ScheduledDate:        r.ScheduledDate,
		CompletedDate:        r.CompletedDate,
		HoursSpent:           r.HoursSpent,
		Notes:                r.Notes,
		CreatedByID:          r.CreatedByID,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func FromDataModelSlice(items []*requestDatamodel.MaintenanceRequest) []*MaintenanceRequest {
	result := make([]*MaintenanceRequest, len(items))
	for i, r := range items {
		result[i] = FromDataModel(r)
	}
	return result
}
