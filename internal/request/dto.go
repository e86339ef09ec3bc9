package request

import (
	"time"

	"github.com/frahmantamala/maintenance-management/internal"
	"github.com/frahmantamala/maintenance-management/internal/core/common/validation"
)

type CreateRequestDTO struct {
	Subject       string     `json:"subject"`
	Description   string     `json:"description"`
	EquipmentID   int64      `json:"equipment_id"`
	RequestType   string     `json:"request_type"`
	Priority      string     `json:"priority,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
}

func (dto *CreateRequestDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("subject", dto.Subject).Required().MaxLength(255)
	v.Field("description", dto.Description).Required()
	v.Field("equipment_id", dto.EquipmentID).Required()
	v.Field("request_type", dto.RequestType).Required().OneOf(Types, internal.ErrCodeInvalidRequestType)
	v.Field("priority", dto.Priority).OneOf(Priorities, internal.ErrCodeInvalidPriority)

	if err := v.Validate(); err != nil {
		return err
	}

	// preventive work is planned work; it cannot exist without a date
	if dto.RequestType == TypePreventive && dto.ScheduledDate == nil {
		return internal.ErrScheduledDateRequired
	}
	return nil
}

type UpdateStatusDTO struct {
	Status     string   `json:"status"`
	HoursSpent *float64 `json:"hours_spent,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Reason     string   `json:"reason,omitempty"`
}

func (dto *UpdateStatusDTO) Validate() error {
	v := validation.NewValidator()
	// an unknown status literal is not a validation failure here; the
	// transition table rejects it naming both endpoints
	v.Field("status", dto.Status).Required()
	v.Field("hours_spent", dto.HoursSpent).NonNegativeFloat(internal.ErrCodeInvalidHoursSpent)

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type AssignTechnicianDTO struct {
	TechnicianID int64 `json:"technician_id"`
}

func (dto *AssignTechnicianDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("technician_id", dto.TechnicianID).Required()

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ListFilters struct {
	Status        string
	RequestType   string
	Priority      string
	EquipmentID   *int64
	TeamID        *int64
	TechnicianID  *int64
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
}

// CalendarRange bounds the scheduled-date window for calendar views. Zero
// bounds are open ended.
type CalendarRange struct {
	From time.Time
	To   time.Time
}
