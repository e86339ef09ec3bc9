package team

import "time"

type MaintenanceTeam struct {
	ID             int64     `gorm:"primaryKey"`
	Name           string    `gorm:"column:name;uniqueIndex;not null"`
	Description    string    `gorm:"column:description"`
	Specialization string    `gorm:"column:specialization;not null"`
	IsActive       bool      `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (MaintenanceTeam) TableName() string {
	return "maintenance_teams"
}

// TeamTechnician is the roster row linking a technician to a team.
// A technician appears in at most one roster at a time; the registry
// enforces that through the unique index on user_id.
type TeamTechnician struct {
	ID        int64     `gorm:"primaryKey"`
	TeamID    int64     `gorm:"column:team_id;not null;index"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (TeamTechnician) TableName() string {
	return "team_technicians"
}
