package user

import "time"

type User struct {
	ID                int64     `gorm:"primaryKey"`
	Email             string    `gorm:"column:email;uniqueIndex;not null"`
	Name              string    `gorm:"column:name;not null"`
	PasswordHash      string    `gorm:"column:password_hash;not null"`
	Role              string    `gorm:"column:role;not null;default:EMPLOYEE"`
	Department        string    `gorm:"column:department"`
	MaintenanceTeamID *int64    `gorm:"column:maintenance_team_id"`
	IsActive          bool      `gorm:"column:is_active;default:true"`
	CreatedAt         time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt         time.Time `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}
