package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	internal "github.com/frahmantamala/maintenance-management/internal"
	"github.com/frahmantamala/maintenance-management/internal/auth"
	requestDatamodel "github.com/frahmantamala/maintenance-management/internal/core/datamodel/request"
	"github.com/frahmantamala/maintenance-management/internal/request"
)

// RequestRepository implements request.RepositoryAPI using GORM
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) request.RepositoryAPI {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(req *request.MaintenanceRequest) error {
	dm := request.ToDataModel(req)
	dm.CreatedAt = time.Now()
	dm.UpdatedAt = dm.CreatedAt
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	req.ID = dm.ID
	req.CreatedAt = dm.CreatedAt
	req.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *RequestRepository) GetByID(id int64) (*request.MaintenanceRequest, error) {
	var dm requestDatamodel.MaintenanceRequest
	if err := r.db.Where("id = ?", id).First(&dm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRequestNotFound
		}
		return nil, err
	}
	return request.FromDataModel(&dm), nil
}

func (r *RequestRepository) Update(req *request.MaintenanceRequest) error {
	req.UpdatedAt = time.Now()
	return r.db.Save(request.ToDataModel(req)).Error
}

func (r *RequestRepository) List(scope auth.RequestScope, filters request.ListFilters) ([]*request.MaintenanceRequest, error) {
	query := r.db.Model(&requestDatamodel.MaintenanceRequest{})
	query = applyScope(query, scope)

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.RequestType != "" {
		query = query.Where("request_type = ?", filters.RequestType)
	}
	if filters.Priority != "" {
		query = query.Where("priority = ?", filters.Priority)
	}
	if filters.EquipmentID != nil {
		query = query.Where("equipment_id = ?", *filters.EquipmentID)
	}
	if filters.TeamID != nil {
		query = query.Where("maintenance_team_id = ?", *filters.TeamID)
	}
	if filters.TechnicianID != nil {
		query = query.Where("assigned_technician_id = ?", *filters.TechnicianID)
	}
	if filters.ScheduledFrom != nil {
		query = query.Where("scheduled_date >= ?", *filters.ScheduledFrom)
	}
	if filters.ScheduledTo != nil {
		query = query.Where("scheduled_date <= ?", *filters.ScheduledTo)
	}

	var items []*requestDatamodel.MaintenanceRequest
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return request.FromDataModelSlice(items), nil
}

func (r *RequestRepository) ListByEquipment(equipmentID int64) ([]*request.MaintenanceRequest, error) {
	var items []*requestDatamodel.MaintenanceRequest
	err := r.db.Where("equipment_id = ?", equipmentID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return request.FromDataModelSlice(items), nil
}

func (r *RequestRepository) ListCalendar(scope auth.RequestScope, rng request.CalendarRange) ([]*request.MaintenanceRequest, error) {
	query := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Where("scheduled_date IS NOT NULL")
	query = applyScope(query, scope)

	if !rng.From.IsZero() {
		query = query.Where("scheduled_date >= ?", rng.From)
	}
	if !rng.To.IsZero() {
		query = query.Where("scheduled_date <= ?", rng.To)
	}

	var items []*requestDatamodel.MaintenanceRequest
	if err := query.Order("scheduled_date ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return request.FromDataModelSlice(items), nil
}

// applyScope narrows a listing query for restricted scopes. Technicians see
// requests assigned to them or owned by their team; the OR is intentional so
// an assignment outside the home team stays visible.
func applyScope(query *gorm.DB, scope auth.RequestScope) *gorm.DB {
	if !scope.Restricted {
		return query
	}
	if scope.TeamID != nil {
		return query.Where("assigned_technician_id = ? OR maintenance_team_id = ?",
			scope.TechnicianID, *scope.TeamID)
	}
	return query.Where("assigned_technician_id = ?", scope.TechnicianID)
}
