package user

import (
	"log/slog"

	"github.com/frahmantamala/maintenance-management/internal"
	"github.com/frahmantamala/maintenance-management/internal/auth"
)

type ListFilters struct {
	Role   string
	TeamID *int64
}

type RepositoryAPI interface {
	GetByID(id int64) (*auth.User, error)
	List(filters ListFilters) ([]*auth.User, error)
}

type ServiceAPI interface {
	GetUser(id int64) (*auth.User, error)
	ListUsers(filters ListFilters) ([]*auth.User, error)
}

// Service is the read-only user directory backing rosters, assignment
// pickers and the current-user endpoint. Account management happens out of
// band; nothing here mutates users.
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

func (s *Service) GetUser(id int64) (*auth.User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) ListUsers(filters ListFilters) ([]*auth.User, error) {
	users, err := s.repo.List(filters)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return users, nil
}
