package dashboard

import (
	"log/slog"
	"math"
	"time"

	"github.com/frahmantamala/maintenance-management/internal"
	"github.com/frahmantamala/maintenance-management/internal/auth"
)

const recentLimit = 5

type RepositoryAPI interface {
	CountAssignedActiveEquipment(userID int64) (int64, error)
	CountRequestsCreatedBy(userID int64) (int64, error)
	CountPendingRequestsCreatedBy(userID int64) (int64, error)
	RecentRequestsCreatedBy(userID int64, limit int) ([]RequestSummary, error)

	CountAssignedTo(technicianID int64) (int64, error)
	CountUnassignedTeamRequests(teamID int64) (int64, error)
	CountCompletedBetween(technicianID int64, from, to time.Time) (int64, error)
	CountOverdueAssignedTo(technicianID int64, now time.Time) (int64, error)
	WorkQueueFor(technicianID int64, limit int) ([]WorkItem, error)

	CountOpenRequests() (int64, error)
	CountAllRequests() (int64, error)
	CountRequestsByStatus(status string) (int64, error)
	CountOverdueRequests(now time.Time) (int64, error)
	CountPreventiveScheduledBetween(from, to time.Time) (int64, error)
	TeamStats() ([]TeamStat, error)
	RecentActivity(limit int) ([]ActivityItem, error)
}

type ServiceAPI interface {
	GetDashboard(actor *auth.User) (interface{}, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(logger *slog.Logger, repo RepositoryAPI) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetDashboard assembles the view matching the actor's role. Employees see
// their own equipment and requests, technicians see their work queue, and
// managers and admins share the fleet-wide rollup.
func (s *Service) GetDashboard(actor *auth.User) (interface{}, error) {
	switch actor.Role {
	case auth.RoleEmployee:
		return s.employeeDashboard(actor)
	case auth.RoleTechnician:
		return s.technicianDashboard(actor)
	default:
		return s.managerDashboard()
	}
}

func (s *Service) employeeDashboard(actor *auth.User) (*EmployeeDashboard, error) {
	equipmentCount, err := s.repo.CountAssignedActiveEquipment(actor.ID)
	if err != nil {
		return nil, s.failed(err, "employee equipment count")
	}
	total, err := s.repo.CountRequestsCreatedBy(actor.ID)
	if err != nil {
		return nil, s.failed(err, "employee request count")
	}
	pending, err := s.repo.CountPendingRequestsCreatedBy(actor.ID)
	if err != nil {
		return nil, s.failed(err, "employee pending count")
	}
	recent, err := s.repo.RecentRequestsCreatedBy(actor.ID, recentLimit)
	if err != nil {
		return nil, s.failed(err, "employee recent requests")
	}

	return &EmployeeDashboard{
		MyEquipment:     equipmentCount,
		MyRequests:      total,
		PendingRequests: pending,
		RecentRequests:  recent,
	}, nil
}

func (s *Service) technicianDashboard(actor *auth.User) (*TechnicianDashboard, error) {
	myTasks, err := s.repo.CountAssignedTo(actor.ID)
	if err != nil {
		return nil, s.failed(err, "technician task count")
	}

	var teamTasks int64
	if actor.TeamID != nil {
		teamTasks, err = s.repo.CountUnassignedTeamRequests(*actor.TeamID)
		if err != nil {
			return nil, s.failed(err, "team backlog count")
		}
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	completedToday, err := s.repo.CountCompletedBetween(actor.ID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, s.failed(err, "completed today count")
	}

	overdue, err := s.repo.CountOverdueAssignedTo(actor.ID, now)
	if err != nil {
		return nil, s.failed(err, "overdue count")
	}

	queue, err := s.repo.WorkQueueFor(actor.ID, recentLimit)
	if err != nil {
		return nil, s.failed(err, "work queue")
	}

	return &TechnicianDashboard{
		MyTasks:        myTasks,
		TeamTasks:      teamTasks,
		CompletedToday: completedToday,
		OverdueCount:   overdue,
		WorkQueue:      queue,
	}, nil
}

func (s *Service) managerDashboard() (*ManagerDashboard, error) {
	open, err := s.repo.CountOpenRequests()
	if err != nil {
		return nil, s.failed(err, "open request count")
	}

	now := time.Now()
	overdue, err := s.repo.CountOverdueRequests(now)
	if err != nil {
		return nil, s.failed(err, "overdue request count")
	}

	total, err := s.repo.CountAllRequests()
	if err != nil {
		return nil, s.failed(err, "total request count")
	}
	repaired, err := s.repo.CountRequestsByStatus("REPAIRED")
	if err != nil {
		return nil, s.failed(err, "repaired request count")
	}
	performance := 0
	if total > 0 {
		performance = int(math.Round(float64(repaired) / float64(total) * 100))
	}

	// current week starting Sunday
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -int(now.Weekday()))
	preventive, err := s.repo.CountPreventiveScheduledBetween(weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return nil, s.failed(err, "preventive schedule count")
	}

	teamStats, err := s.repo.TeamStats()
	if err != nil {
		return nil, s.failed(err, "team stats")
	}
	for i := range teamStats {
		techs := teamStats[i].TechnicianCount
		if techs < 1 {
			techs = 1
		}
		load := float64(teamStats[i].ActiveRequests) / float64(techs) * 20
		teamStats[i].Workload = math.Min(load, 100)
	}

	activity, err := s.repo.RecentActivity(recentLimit)
	if err != nil {
		return nil, s.failed(err, "recent activity")
	}

	return &ManagerDashboard{
		TotalRequests:       open,
		OverdueRequests:     overdue,
		TeamPerformance:     performance,
		PreventiveScheduled: preventive,
		TeamStats:           teamStats,
		RecentActivity:      activity,
	}, nil
}

func (s *Service) failed(err error, what string) error {
	s.logger.Error("dashboard query failed", "query", what, "error", err)
	return internal.NewInternalError("failed to build dashboard", err)
}
