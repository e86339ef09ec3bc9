package team

import (
	"log/slog"

	"github.com/frahmantamala/maintenance-management/internal"
	"github.com/frahmantamala/maintenance-management/internal/auth"
)

type RepositoryAPI interface {
	Create(t *MaintenanceTeam) error
	GetByID(id int64) (*MaintenanceTeam, error)
	List(filters ListFilters) ([]*MaintenanceTeam, error)
	Update(t *MaintenanceTeam) error
	// Delete removes the team, its roster rows and all user references to it
	// in one transaction.
	Delete(id int64) error
	AddTechnician(teamID, userID int64) error
	RemoveTechnician(teamID, userID int64) error
	IsMember(teamID, userID int64) (bool, error)
	ListTechnicians(teamID int64) ([]Technician, error)
	GetUserRole(userID int64) (string, error)
}

type ServiceAPI interface {
	CreateTeam(dto CreateTeamDTO) (*MaintenanceTeam, error)
	GetTeam(id int64) (*MaintenanceTeam, error)
	ListTeams(filters ListFilters) ([]*MaintenanceTeam, error)
	UpdateTeam(id int64, dto UpdateTeamDTO) (*MaintenanceTeam, error)
	DeleteTeam(id int64) error
	AddTechnician(teamID, userID int64) (*MaintenanceTeam, error)
	RemoveTechnician(teamID, userID int64) (*MaintenanceTeam, error)
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

func (s *Service) CreateTeam(dto CreateTeamDTO) (*MaintenanceTeam, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t := &MaintenanceTeam{
		Name:           dto.Name,
		Description:    dto.Description,
		Specialization: dto.Specialization,
		IsActive:       true,
	}

	if err := s.repo.Create(t); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to create team", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create team", err)
	}

	s.logger.Info("maintenance team created", "team_id", t.ID, "name", t.Name)
	return t, nil
}

func (s *Service) GetTeam(id int64) (*MaintenanceTeam, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrTeamNotFound
	}
	return s.withRoster(t), nil
}

func (s *Service) ListTeams(filters ListFilters) ([]*MaintenanceTeam, error) {
	teams, err := s.repo.List(filters)
	if err != nil {
		s.logger.Error("failed to list teams", "error", err)
		return nil, internal.NewInternalError("failed to list teams", err)
	}
	for i, t := range teams {
		teams[i] = s.withRoster(t)
	}
	return teams, nil
}

func (s *Service) UpdateTeam(id int64, dto UpdateTeamDTO) (*MaintenanceTeam, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrTeamNotFound
	}

	if dto.Name != nil {
		t.Name = *dto.Name
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}
	if dto.Specialization != nil {
		t.Specialization = *dto.Specialization
	}
	if dto.IsActive != nil {
		t.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update team", "error", err, "team_id", id)
		return nil, internal.NewInternalError("failed to update team", err)
	}

	return s.withRoster(t), nil
}

// DeleteTeam removes the team and clears every technician's reference to it.
// Equipment and requests keep their team id; readers must tolerate the
// dangling reference.
func (s *Service) DeleteTeam(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrTeamNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete team", "error", err, "team_id", id)
		return internal.NewInternalError("failed to delete team", err)
	}

	s.logger.Info("maintenance team deleted", "team_id", id)
	return nil
}

// AddTechnician puts a user with the TECHNICIAN role on the team roster.
// Adding someone already on the roster is a no-op.
func (s *Service) AddTechnician(teamID, userID int64) (*MaintenanceTeam, error) {
	t, err := s.repo.GetByID(teamID)
	if err != nil {
		return nil, internal.ErrTeamNotFound
	}

	role, err := s.repo.GetUserRole(userID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	if role != auth.RoleTechnician {
		return nil, internal.ErrNotATechnician
	}

	member, err := s.repo.IsMember(teamID, userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to check team membership", err)
	}
	if !member {
		if err := s.repo.AddTechnician(teamID, userID); err != nil {
			s.logger.Error("failed to add technician", "error", err, "team_id", teamID, "user_id", userID)
			return nil, internal.NewInternalError("failed to add technician", err)
		}
		s.logger.Info("technician added to team", "team_id", teamID, "user_id", userID)
	}

	return s.withRoster(t), nil
}

func (s *Service) RemoveTechnician(teamID, userID int64) (*MaintenanceTeam, error) {
	t, err := s.repo.GetByID(teamID)
	if err != nil {
		return nil, internal.ErrTeamNotFound
	}

	if err := s.repo.RemoveTechnician(teamID, userID); err != nil {
		s.logger.Error("failed to remove technician", "error", err, "team_id", teamID, "user_id", userID)
		return nil, internal.NewInternalError("failed to remove technician", err)
	}

	s.logger.Info("technician removed from team", "team_id", teamID, "user_id", userID)
	return s.withRoster(t), nil
}

func (s *Service) withRoster(t *MaintenanceTeam) *MaintenanceTeam {
	technicians, err := s.repo.ListTechnicians(t.ID)
	if err != nil {
		s.logger.Warn("failed to load team roster", "error", err, "team_id", t.ID)
		return t
	}
	t.Technicians = technicians
	return t
}
