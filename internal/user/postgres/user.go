package postgres

import (
	"errors"

	"gorm.io/gorm"

	internal "github.com/frahmantamala/maintenance-management/internal"
	"github.com/frahmantamala/maintenance-management/internal/auth"
	userDatamodel "github.com/frahmantamala/maintenance-management/internal/core/datamodel/user"
	"github.com/frahmantamala/maintenance-management/internal/user"
)

// UserRepository implements user.RepositoryAPI using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*auth.User, error) {
	var dm userDatamodel.User
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&dm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return toAuthUser(&dm), nil
}

func (r *UserRepository) List(filters user.ListFilters) ([]*auth.User, error) {
	query := r.db.Model(&userDatamodel.User{}).Where("is_active = ?", true)

	if filters.Role != "" {
		query = query.Where("role = ?", filters.Role)
	}
	if filters.TeamID != nil {
		query = query.Where("maintenance_team_id = ?", *filters.TeamID)
	}

	var items []*userDatamodel.User
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	users := make([]*auth.User, len(items))
	for i, dm := range items {
		users[i] = toAuthUser(dm)
	}
	return users, nil
}

func toAuthUser(dm *userDatamodel.User) *auth.User {
	return &auth.User{
		ID:         dm.ID,
		Email:      dm.Email,
		Name:       dm.Name,
		Role:       dm.Role,
		Department: dm.Department,
		TeamID:     dm.MaintenanceTeamID,
	}
}
