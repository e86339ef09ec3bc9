package request

import "time"

// MaintenanceRequest keeps a single equipment reference. The legacy data
// model stored the target as a one-element list; relational storage makes
// the single foreign key explicit.
type MaintenanceRequest struct {
	ID                   int64      `gorm:"primaryKey"`
	Subject              string     `gorm:"column:subject;not null"`
	Description          string     `gorm:"column:description;not null"`
	EquipmentID          int64      `gorm:"column:equipment_id;not null;index"`
	MaintenanceTeamID    int64      `gorm:"column:maintenance_team_id;not null;index"`
	AssignedTechnicianID *int64     `gorm:"column:assigned_technician_id;index"`
	RequestType          string     `gorm:"column:request_type;not null"`
	Status               string     `gorm:"column:status;not null;default:NEW"`
	Priority             string     `gorm:"column:priority;not null;default:MEDIUM"`
	ScheduledDate        *time.Time `gorm:"column:scheduled_date"`
	CompletedDate        *time.Time `gorm:"column:completed_date"`
	HoursSpent           *float64   `gorm:"column:hours_spent"`
	Notes                string     `gorm:"column:notes"`
	CreatedByID          int64      `gorm:"column:created_by_id;not null;index"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}
