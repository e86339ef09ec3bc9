package equipment

import (
	"log/slog"

	"github.com/frahmantamala/maintenance-management/internal"
)

type RepositoryAPI interface {
	Create(e *Equipment) error
	GetByID(id int64) (*Equipment, error)
	List(filters ListFilters) ([]*Equipment, error)
	Update(e *Equipment) error
	Delete(id int64) error
	CountOpenRequests(equipmentID int64) (int64, error)
}

type ServiceAPI interface {
	CreateEquipment(dto CreateEquipmentDTO) (*Equipment, error)
	GetEquipment(id int64) (*Equipment, error)
	ListEquipment(filters ListFilters) ([]*Equipment, error)
	UpdateEquipment(id int64, dto UpdateEquipmentDTO) (*Equipment, error)
	DeleteEquipment(id int64) error
	ScrapEquipment(id int64, reason string) (*Equipment, error)
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

func (s *Service) CreateEquipment(dto CreateEquipmentDTO) (*Equipment, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("equipment validation failed", "error", err)
		return nil, err
	}

	eq := &Equipment{
		Name:                dto.Name,
		SerialNumber:        dto.SerialNumber,
		Category:            dto.Category,
		PurchaseDate:        dto.PurchaseDate,
		WarrantyExpiry:      dto.WarrantyExpiry,
		Location:            dto.Location,
		Department:          dto.Department,
		AssignedEmployeeID:  dto.AssignedEmployeeID,
		MaintenanceTeamID:   dto.MaintenanceTeamID,
		DefaultTechnicianID: dto.DefaultTechnicianID,
		Specifications:      dto.Specifications,
		Status:              StatusActive,
	}

	if err := s.repo.Create(eq); err != nil {
		s.logger.Error("failed to create equipment", "error", err, "serial_number", dto.SerialNumber)
		return nil, internal.NewInternalError("failed to create equipment", err)
	}

	s.logger.Info("equipment created", "equipment_id", eq.ID, "serial_number", eq.SerialNumber)
	return eq, nil
}

func (s *Service) GetEquipment(id int64) (*Equipment, error) {
	eq, err := s.fetchEquipment(id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountOpenRequests(id)
	if err != nil {
		s.logger.Warn("failed to count open requests", "error", err, "equipment_id", id)
	} else {
		eq.OpenRequestsCount = count
	}

	return eq, nil
}

func (s *Service) ListEquipment(filters ListFilters) ([]*Equipment, error) {
	items, err := s.repo.List(filters)
	if err != nil {
		s.logger.Error("failed to list equipment", "error", err)
		return nil, internal.NewInternalError("failed to list equipment", err)
	}
	return items, nil
}

func (s *Service) UpdateEquipment(id int64, dto UpdateEquipmentDTO) (*Equipment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	eq, err := s.fetchEquipment(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		eq.Name = *dto.Name
	}
	if dto.Category != nil {
		eq.Category = *dto.Category
	}
	if dto.WarrantyExpiry != nil {
		eq.WarrantyExpiry = *dto.WarrantyExpiry
	}
	if dto.Location != nil {
		eq.Location = *dto.Location
	}
	if dto.Department != nil {
		eq.Department = *dto.Department
	}
	if dto.AssignedEmployeeID != nil {
		eq.AssignedEmployeeID = *dto.AssignedEmployeeID
	}
	if dto.MaintenanceTeamID != nil {
		eq.MaintenanceTeamID = *dto.MaintenanceTeamID
	}
	if dto.DefaultTechnicianID != nil {
		eq.DefaultTechnicianID = dto.DefaultTechnicianID
	}
	if dto.Specifications != nil {
		eq.Specifications = *dto.Specifications
	}

	if err := s.repo.Update(eq); err != nil {
		s.logger.Error("failed to update equipment", "error", err, "equipment_id", id)
		return nil, internal.NewInternalError("failed to update equipment", err)
	}

	return eq, nil
}

// DeleteEquipment removes equipment regardless of open maintenance requests.
// Requests keep the dangling reference; consumers must tolerate lookups that
// no longer resolve.
func (s *Service) DeleteEquipment(id int64) error {
	if _, err := s.fetchEquipment(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete equipment", "error", err, "equipment_id", id)
		return internal.NewInternalError("failed to delete equipment", err)
	}

	s.logger.Info("equipment deleted", "equipment_id", id)
	return nil
}

func (s *Service) ScrapEquipment(id int64, reason string) (*Equipment, error) {
	eq, err := s.fetchEquipment(id)
	if err != nil {
		return nil, err
	}

	if eq.IsScrapped() {
		return eq, nil
	}

	eq.MarkAsScrap(reason)

	if err := s.repo.Update(eq); err != nil {
		s.logger.Error("failed to scrap equipment", "error", err, "equipment_id", id)
		return nil, internal.NewInternalError("failed to scrap equipment", err)
	}

	s.logger.Info("equipment scrapped", "equipment_id", id, "reason", *eq.ScrapReason)
	return eq, nil
}

// fetchEquipment loads equipment, passing the repository's not-found through
// untouched and wrapping anything else as internal.
func (s *Service) fetchEquipment(id int64) (*Equipment, error) {
	eq, err := s.repo.GetByID(id)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to load equipment", "error", err, "equipment_id", id)
		return nil, internal.NewInternalError("failed to load equipment", err)
	}
	return eq, nil
}
