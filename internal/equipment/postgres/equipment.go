package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	internal "github.com/frahmantamala/maintenance-management/internal"
	equipmentDatamodel "github.com/frahmantamala/maintenance-management/internal/core/datamodel/equipment"
	requestDatamodel "github.com/frahmantamala/maintenance-management/internal/core/datamodel/request"
	"github.com/frahmantamala/maintenance-management/internal/equipment"
)

// EquipmentRepository implements equipment.RepositoryAPI using GORM
type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) equipment.RepositoryAPI {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(e *equipment.Equipment) error {
	dm := equipment.ToDataModel(e)
	dm.CreatedAt = time.Now()
	dm.UpdatedAt = dm.CreatedAt
	if err := r.db.Create(dm).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.NewConflictError("serial number already registered", internal.ErrCodeDuplicateSerial)
		}
		return err
	}
	e.ID = dm.ID
	e.CreatedAt = dm.CreatedAt
	e.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *EquipmentRepository) GetByID(id int64) (*equipment.Equipment, error) {
	var dm equipmentDatamodel.Equipment
	if err := r.db.Where("id = ?", id).First(&dm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEquipmentNotFound
		}
		return nil, err
	}
	return equipment.FromDataModel(&dm), nil
}

func (r *EquipmentRepository) List(filters equipment.ListFilters) ([]*equipment.Equipment, error) {
	query := r.db.Model(&equipmentDatamodel.Equipment{})

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Department != "" {
		query = query.Where("department = ?", filters.Department)
	}
	if filters.AssignedEmployeeID != nil {
		query = query.Where("assigned_employee_id = ?", *filters.AssignedEmployeeID)
	}
	if filters.TeamID != nil {
		query = query.Where("maintenance_team_id = ?", *filters.TeamID)
	}

	var items []*equipmentDatamodel.Equipment
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return equipment.FromDataModelSlice(items), nil
}

func (r *EquipmentRepository) Update(e *equipment.Equipment) error {
	e.UpdatedAt = time.Now()
	return r.db.Save(equipment.ToDataModel(e)).Error
}

func (r *EquipmentRepository) Delete(id int64) error {
	return r.db.Delete(&equipmentDatamodel.Equipment{}, id).Error
}

// CountOpenRequests counts maintenance requests for the equipment that have
// not reached a terminal or completed status.
func (r *EquipmentRepository) CountOpenRequests(equipmentID int64) (int64, error) {
	var count int64
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Where("equipment_id = ? AND status IN ?", equipmentID, []string{"NEW", "IN_PROGRESS"}).
		Count(&count).Error
	return count, err
}
