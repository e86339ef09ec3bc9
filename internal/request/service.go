package request

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/maintenance-management/internal"
	"github.com/frahmantamala/maintenance-management/internal/auth"
	"github.com/frahmantamala/maintenance-management/internal/core/events"
	"github.com/frahmantamala/maintenance-management/internal/equipment"
)

type RepositoryAPI interface {
	Create(r *MaintenanceRequest) error
	GetByID(id int64) (*MaintenanceRequest, error)
	Update(r *MaintenanceRequest) error
	List(scope auth.RequestScope, filters ListFilters) ([]*MaintenanceRequest, error)
	ListByEquipment(equipmentID int64) ([]*MaintenanceRequest, error)
	ListCalendar(scope auth.RequestScope, rng CalendarRange) ([]*MaintenanceRequest, error)
}

// EquipmentAPI is the slice of the equipment registry the engine needs when
// creating requests. Satisfied by equipment.Service.
type EquipmentAPI interface {
	GetEquipment(id int64) (*equipment.Equipment, error)
}

// UserDirectoryAPI resolves users for technician assignment. Satisfied by the
// auth service.
type UserDirectoryAPI interface {
	GetUser(id int64) (*auth.User, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	PublishSync(ctx context.Context, event events.Event) error
}

type ServiceAPI interface {
	CreateRequest(actor *auth.User, dto CreateRequestDTO) (*MaintenanceRequest, error)
	GetRequest(actor *auth.User, id int64) (*MaintenanceRequest, error)
	ListRequests(actor *auth.User, filters ListFilters) ([]*MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, actor *auth.User, id int64, dto UpdateStatusDTO) (*MaintenanceRequest, error)
	AssignTechnician(actor *auth.User, id int64, technicianID int64) (*MaintenanceRequest, error)
	ListByEquipment(equipmentID int64) ([]*MaintenanceRequest, error)
	ListCalendar(actor *auth.User, rng CalendarRange) ([]*MaintenanceRequest, error)
}

type Service struct {
	repo      RepositoryAPI
	equipment EquipmentAPI
	users     UserDirectoryAPI
	policy    *auth.RolePolicy
	eventBus  EventPublisher
	logger    *slog.Logger
}

func NewService(
	logger *slog.Logger,
	repo RepositoryAPI,
	equipmentAPI EquipmentAPI,
	users UserDirectoryAPI,
	policy *auth.RolePolicy,
	eventBus EventPublisher,
) *Service {
	return &Service{
		repo:      repo,
		equipment: equipmentAPI,
		users:     users,
		policy:    policy,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// CreateRequest opens a maintenance request against a piece of equipment.
// The owning team comes from the equipment record, never from the caller.
func (s *Service) CreateRequest(actor *auth.User, dto CreateRequestDTO) (*MaintenanceRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("request validation failed", "error", err)
		return nil, err
	}

	eq, err := s.equipment.GetEquipment(dto.EquipmentID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to load equipment", "error", err, "equipment_id", dto.EquipmentID)
		return nil, internal.NewInternalError("failed to load equipment", err)
	}
	if eq.IsScrapped() {
		return nil, internal.ErrEquipmentScrapped
	}

	priority := dto.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	req := &MaintenanceRequest{
		Subject:           dto.Subject,
		Description:       dto.Description,
		EquipmentID:       eq.ID,
		MaintenanceTeamID: eq.MaintenanceTeamID,
		RequestType:       dto.RequestType,
		Status:            StatusNew,
		Priority:          priority,
		ScheduledDate:     dto.ScheduledDate,
		CreatedByID:       actor.ID,
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to create request", "error", err, "equipment_id", dto.EquipmentID)
		return nil, internal.NewInternalError("failed to create maintenance request", err)
	}

	s.logger.Info("maintenance request created",
		"request_id", req.ID,
		"equipment_id", req.EquipmentID,
		"team_id", req.MaintenanceTeamID,
		"created_by", actor.ID)
	return req, nil
}

// GetRequest returns a single request. Missing requests answer not-found
// before any access decision, so a technician probing foreign ids cannot
// distinguish "absent" from "forbidden" by error shape alone, but an existing
// request outside their team is a distinct forbidden answer.
func (s *Service) GetRequest(actor *auth.User, id int64) (*MaintenanceRequest, error) {
	req, err := s.fetchRequest(id)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanAccessRequest(actor, req.MaintenanceTeamID, req.AssignedTechnicianID) {
		return nil, internal.ErrRequestAccessDenied
	}

	return req, nil
}

func (s *Service) ListRequests(actor *auth.User, filters ListFilters) ([]*MaintenanceRequest, error) {
	scope := s.policy.ScopeForUser(actor)

	items, err := s.repo.List(scope, filters)
	if err != nil {
		s.logger.Error("failed to list requests", "error", err)
		return nil, internal.NewInternalError("failed to list maintenance requests", err)
	}
	return items, nil
}

// UpdateStatus drives the request through the status machine. Entering
// REPAIRED stamps the completion date if it is not already set; entering
// SCRAP retires the linked equipment through the scrap event, synchronously,
// so the cascade completes within this call.
func (s *Service) UpdateStatus(ctx context.Context, actor *auth.User, id int64, dto UpdateStatusDTO) (*MaintenanceRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	req, err := s.fetchRequest(id)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanAccessRequest(actor, req.MaintenanceTeamID, req.AssignedTechnicianID) {
		return nil, internal.ErrRequestAccessDenied
	}

	if !IsValidTransition(req.Status, dto.Status) {
		return nil, internal.NewInvalidTransitionError(req.Status, dto.Status)
	}

	previous := req.Status
	req.Status = dto.Status
	if dto.Notes != "" {
		req.Notes = dto.Notes
	}
	if dto.HoursSpent != nil {
		req.HoursSpent = dto.HoursSpent
	}
	if dto.Status == StatusRepaired && req.CompletedDate == nil {
		now := time.Now()
		req.CompletedDate = &now
	}

	if err := s.repo.Update(req); err != nil {
		s.logger.Error("failed to update request status", "error", err, "request_id", id)
		return nil, internal.NewInternalError("failed to update maintenance request", err)
	}

	s.logger.Info("request status updated",
		"request_id", req.ID,
		"from", previous,
		"to", req.Status,
		"actor_id", actor.ID)

	switch req.Status {
	case StatusScrap:
		event := events.NewRequestScrappedEvent(req.ID, req.EquipmentID, actor.ID, dto.Reason)
		if err := s.eventBus.PublishSync(ctx, event); err != nil {
			// the request is already scrapped; the equipment cascade failing
			// is recoverable by scrapping the equipment directly
			s.logger.Error("scrap cascade failed", "error", err, "request_id", req.ID)
		}
	case StatusRepaired:
		event := events.NewRequestRepairedEvent(req.ID, req.EquipmentID, actor.ID, req.HoursSpent)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish repaired event", "error", err, "request_id", req.ID)
		}
	}

	return req, nil
}

// AssignTechnician puts a technician from the owning team on the request.
// Assigning to a fresh request starts the work, so NEW advances to
// IN_PROGRESS as part of the same call.
func (s *Service) AssignTechnician(actor *auth.User, id int64, technicianID int64) (*MaintenanceRequest, error) {
	if !s.policy.CanAssignTechnician(actor) {
		return nil, internal.ErrInsufficientRole
	}

	req, err := s.fetchRequest(id)
	if err != nil {
		return nil, err
	}

	if req.IsTerminal() {
		return nil, internal.NewInvalidStateError("cannot assign technician to a scrapped request", internal.ErrCodeInvalidTransition)
	}

	tech, err := s.users.GetUser(technicianID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	if !tech.IsTechnician() {
		return nil, internal.ErrNotATechnician
	}
	if !tech.BelongsToTeam(req.MaintenanceTeamID) {
		return nil, internal.ErrTechnicianNotInTeam
	}

	req.AssignedTechnicianID = &tech.ID
	if req.Status == StatusNew {
		req.Status = StatusInProgress
	}

	if err := s.repo.Update(req); err != nil {
		s.logger.Error("failed to assign technician", "error", err, "request_id", id, "technician_id", technicianID)
		return nil, internal.NewInternalError("failed to assign technician", err)
	}

	s.logger.Info("technician assigned",
		"request_id", req.ID,
		"technician_id", technicianID,
		"status", req.Status,
		"actor_id", actor.ID)
	return req, nil
}

// fetchRequest loads a request, passing the repository's not-found through
// untouched and wrapping anything else as internal.
func (s *Service) fetchRequest(id int64) (*MaintenanceRequest, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to load maintenance request", "error", err, "request_id", id)
		return nil, internal.NewInternalError("failed to load maintenance request", err)
	}
	return req, nil
}

// ListByEquipment returns the full maintenance history of a piece of
// equipment. Any authenticated user may read it.
func (s *Service) ListByEquipment(equipmentID int64) ([]*MaintenanceRequest, error) {
	items, err := s.repo.ListByEquipment(equipmentID)
	if err != nil {
		s.logger.Error("failed to list requests by equipment", "error", err, "equipment_id", equipmentID)
		return nil, internal.NewInternalError("failed to list maintenance requests", err)
	}
	return items, nil
}

func (s *Service) ListCalendar(actor *auth.User, rng CalendarRange) ([]*MaintenanceRequest, error) {
	scope := s.policy.ScopeForUser(actor)

	items, err := s.repo.ListCalendar(scope, rng)
	if err != nil {
		s.logger.Error("failed to list calendar", "error", err)
		return nil, internal.NewInternalError("failed to list scheduled requests", err)
	}
	return items, nil
}
