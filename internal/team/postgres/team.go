package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	internal "github.com/frahmantamala/maintenance-management/internal"
	teamDatamodel "github.com/frahmantamala/maintenance-management/internal/core/datamodel/team"
	userDatamodel "github.com/frahmantamala/maintenance-management/internal/core/datamodel/user"
	"github.com/frahmantamala/maintenance-management/internal/team"
)

// TeamRepository implements team.RepositoryAPI using GORM
type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) team.RepositoryAPI {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(t *team.MaintenanceTeam) error {
	dm := team.ToDataModel(t)
	dm.CreatedAt = time.Now()
	dm.UpdatedAt = dm.CreatedAt
	if err := r.db.Create(dm).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.NewConflictError("team name already in use", internal.ErrCodeDuplicateTeamName)
		}
		return err
	}
	t.ID = dm.ID
	t.CreatedAt = dm.CreatedAt
	t.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *TeamRepository) GetByID(id int64) (*team.MaintenanceTeam, error) {
	var dm teamDatamodel.MaintenanceTeam
	if err := r.db.Where("id = ?", id).First(&dm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrTeamNotFound
		}
		return nil, err
	}
	return team.FromDataModel(&dm), nil
}

func (r *TeamRepository) List(filters team.ListFilters) ([]*team.MaintenanceTeam, error) {
	query := r.db.Model(&teamDatamodel.MaintenanceTeam{})
	if filters.Specialization != "" {
		query = query.Where("specialization = ?", filters.Specialization)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}

	var items []*teamDatamodel.MaintenanceTeam
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	teams := make([]*team.MaintenanceTeam, len(items))
	for i, dm := range items {
		teams[i] = team.FromDataModel(dm)
	}
	return teams, nil
}

func (r *TeamRepository) Update(t *team.MaintenanceTeam) error {
	t.UpdatedAt = time.Now()
	return r.db.Save(team.ToDataModel(t)).Error
}

func (r *TeamRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userDatamodel.User{}).
			Where("maintenance_team_id = ?", id).
			Update("maintenance_team_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).
			Delete(&teamDatamodel.TeamTechnician{}).Error; err != nil {
			return err
		}
		return tx.Delete(&teamDatamodel.MaintenanceTeam{}, id).Error
	})
}

func (r *TeamRepository) AddTechnician(teamID, userID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// moving teams replaces the previous roster row
		if err := tx.Where("user_id = ?", userID).
			Delete(&teamDatamodel.TeamTechnician{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&teamDatamodel.TeamTechnician{
			TeamID: teamID,
			UserID: userID,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&userDatamodel.User{}).
			Where("id = ?", userID).
			Update("maintenance_team_id", teamID).Error
	})
}

func (r *TeamRepository) RemoveTechnician(teamID, userID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ? AND user_id = ?", teamID, userID).
			Delete(&teamDatamodel.TeamTechnician{}).Error; err != nil {
			return err
		}
		return tx.Model(&userDatamodel.User{}).
			Where("id = ? AND maintenance_team_id = ?", userID, teamID).
			Update("maintenance_team_id", nil).Error
	})
}

func (r *TeamRepository) IsMember(teamID, userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&teamDatamodel.TeamTechnician{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *TeamRepository) ListTechnicians(teamID int64) ([]team.Technician, error) {
	var technicians []team.Technician
	err := r.db.Model(&userDatamodel.User{}).
		Select("users.id, users.name, users.email").
		Joins("JOIN team_technicians ON team_technicians.user_id = users.id").
		Where("team_technicians.team_id = ?", teamID).
		Order("users.name ASC").
		Scan(&technicians).Error
	return technicians, err
}

func (r *TeamRepository) GetUserRole(userID int64) (string, error) {
	var role string
	err := r.db.Model(&userDatamodel.User{}).
		Select("role").
		Where("id = ?", userID).
		Scan(&role).Error
	if err != nil {
		return "", err
	}
	if role == "" {
		return "", internal.ErrUserNotFound
	}
	return role, nil
}
