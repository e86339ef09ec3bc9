package postgres

import (
	"time"

	"gorm.io/gorm"

	equipmentDatamodel "github.com/frahmantamala/maintenance-management/internal/core/datamodel/equipment"
	requestDatamodel "github.com/frahmantamala/maintenance-management/internal/core/datamodel/request"
	"github.com/frahmantamala/maintenance-management/internal/dashboard"
)

var openStatuses = []string{"NEW", "IN_PROGRESS"}

// DashboardRepository implements dashboard.RepositoryAPI with read-only
// aggregate queries
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) dashboard.RepositoryAPI {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountAssignedActiveEquipment(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&equipmentDatamodel.Equipment{}).
		Where("assigned_employee_id = ? AND status = ?", userID, "ACTIVE").
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountRequestsCreatedBy(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Where("created_by_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountPendingRequestsCreatedBy(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Where("created_by_id = ? AND status IN ?", userID, openStatuses).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) RecentRequestsCreatedBy(userID int64, limit int) ([]dashboard.RequestSummary, error) {
	var rows []dashboard.RequestSummary
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Select("maintenance_requests.id, maintenance_requests.subject, equipment.name AS equipment_name, maintenance_requests.status, maintenance_requests.created_at").
		Joins("LEFT JOIN equipment ON equipment.id = maintenance_requests.equipment_id").
		Where("maintenance_requests.created_by_id = ?", userID).
		Order("maintenance_requests.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *DashboardRepository) CountAssignedTo(technicianID int64) (int64, error) {
	var count int64
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Where("assigned_technician_id = ?", technicianID).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountUnassignedTeamRequests(teamID int64) (int64, error) {
	var count int64
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Where("maintenance_team_id = ? AND assigned_technician_id IS NULL AND status IN ?", teamID, openStatuses).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountCompletedBetween(technicianID int64, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Where("assigned_technician_id = ? AND completed_date >= ? AND completed_date < ?", technicianID, from, to).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountOverdueAssignedTo(technicianID int64, now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Where("assigned_technician_id = ? AND scheduled_date < ? AND status IN ?", technicianID, now, openStatuses).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) WorkQueueFor(technicianID int64, limit int) ([]dashboard.WorkItem, error) {
	var rows []dashboard.WorkItem
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Select("maintenance_requests.id, maintenance_requests.subject, equipment.name AS equipment_name, maintenance_requests.status, maintenance_requests.priority, maintenance_requests.scheduled_date AS due_date").
		Joins("LEFT JOIN equipment ON equipment.id = maintenance_requests.equipment_id").
		Where("maintenance_requests.assigned_technician_id = ?", technicianID).
		Order("maintenance_requests.scheduled_date ASC NULLS LAST").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *DashboardRepository) CountOpenRequests() (int64, error) {
	var count int64
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Where("status IN ?", openStatuses).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountAllRequests() (int64, error) {
	var count int64
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountRequestsByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountOverdueRequests(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Where("scheduled_date < ? AND status IN ?", now, openStatuses).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountPreventiveScheduledBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Where("request_type = ? AND scheduled_date >= ? AND scheduled_date < ?", "PREVENTIVE", from, to).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) TeamStats() ([]dashboard.TeamStat, error) {
	var rows []dashboard.TeamStat
	err := r.db.Table("maintenance_teams").
		Select(`maintenance_teams.name,
			COUNT(DISTINCT CASE WHEN maintenance_requests.status IN ('NEW', 'IN_PROGRESS') THEN maintenance_requests.id END) AS active_requests,
			COUNT(DISTINCT team_technicians.user_id) AS technician_count`).
		Joins("LEFT JOIN maintenance_requests ON maintenance_requests.maintenance_team_id = maintenance_teams.id").
		Joins("LEFT JOIN team_technicians ON team_technicians.team_id = maintenance_teams.id").
		Group("maintenance_teams.id, maintenance_teams.name").
		Order("maintenance_teams.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *DashboardRepository) RecentActivity(limit int) ([]dashboard.ActivityItem, error) {
	var rows []dashboard.ActivityItem
	err := r.db.Model(&requestDatamodel.MaintenanceRequest{}).
		Select("maintenance_requests.id, maintenance_requests.subject, COALESCE(users.name, 'System') AS user_name, maintenance_requests.updated_at").
		Joins("LEFT JOIN users ON users.id = maintenance_requests.assigned_technician_id").
		Order("maintenance_requests.updated_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
