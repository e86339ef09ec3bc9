package equipment

import "time"

type Equipment struct {
	ID                  int64      `gorm:"primaryKey"`
	Name                string     `gorm:"column:name;not null"`
	SerialNumber        string     `gorm:"column:serial_number;uniqueIndex;not null"`
	Category            string     `gorm:"column:category;not null"`
	PurchaseDate        time.Time  `gorm:"column:purchase_date;type:date"`
	WarrantyExpiry      time.Time  `gorm:"column:warranty_expiry;type:date"`
	Location            string     `gorm:"column:location;not null"`
	Department          string     `gorm:"column:department;not null"`
	AssignedEmployeeID  int64      `gorm:"column:assigned_employee_id;not null"`
	MaintenanceTeamID   int64      `gorm:"column:maintenance_team_id;not null"`
	DefaultTechnicianID *int64     `gorm:"column:default_technician_id"`
	Status              string     `gorm:"column:status;not null;default:ACTIVE"`
	ScrapReason         *string    `gorm:"column:scrap_reason"`
	ScrapDate           *time.Time `gorm:"column:scrap_date"`
	Specifications      string     `gorm:"column:specifications"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Equipment) TableName() string {
	return "equipment"
}
