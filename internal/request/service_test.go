package request_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/maintenance-management/internal"
	"github.com/frahmantamala/maintenance-management/internal/auth"
	"github.com/frahmantamala/maintenance-management/internal/core/events"
	"github.com/frahmantamala/maintenance-management/internal/equipment"
	"github.com/frahmantamala/maintenance-management/internal/request"
)

func TestRequestService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Request Service Suite")
}

// Mock repository for testing
type mockRequestRepository struct {
	requests    map[int64]*request.MaintenanceRequest
	nextID      int64
	createError error
	getError    error
	updateError error
	lastScope   *auth.RequestScope
}

func newMockRequestRepository() *mockRequestRepository {
	return &mockRequestRepository{
		requests: make(map[int64]*request.MaintenanceRequest),
		nextID:   1,
	}
}

func (m *mockRequestRepository) Create(r *request.MaintenanceRequest) error {
	if m.createError != nil {
		return m.createError
	}
	r.ID = m.nextID
	m.nextID++
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.requests[r.ID] = r
	return nil
}

func (m *mockRequestRepository) GetByID(id int64) (*request.MaintenanceRequest, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	r, exists := m.requests[id]
	if !exists {
		return nil, internal.ErrRequestNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *mockRequestRepository) Update(r *request.MaintenanceRequest) error {
	if m.updateError != nil {
		return m.updateError
	}
	r.UpdatedAt = time.Now()
	m.requests[r.ID] = r
	return nil
}

func (m *mockRequestRepository) List(scope auth.RequestScope, filters request.ListFilters) ([]*request.MaintenanceRequest, error) {
	m.lastScope = &scope
	var result []*request.MaintenanceRequest
	for _, r := range m.requests {
		if scope.Restricted {
			assigned := r.AssignedTechnicianID != nil && *r.AssignedTechnicianID == scope.TechnicianID
			onTeam := scope.TeamID != nil && r.MaintenanceTeamID == *scope.TeamID
			if !assigned && !onTeam {
				continue
			}
		}
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *mockRequestRepository) ListByEquipment(equipmentID int64) ([]*request.MaintenanceRequest, error) {
	var result []*request.MaintenanceRequest
	for _, r := range m.requests {
		if r.EquipmentID == equipmentID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockRequestRepository) ListCalendar(scope auth.RequestScope, rng request.CalendarRange) ([]*request.MaintenanceRequest, error) {
	m.lastScope = &scope
	var result []*request.MaintenanceRequest
	for _, r := range m.requests {
		if r.ScheduledDate == nil {
			continue
		}
		if !rng.From.IsZero() && r.ScheduledDate.Before(rng.From) {
			continue
		}
		if !rng.To.IsZero() && r.ScheduledDate.After(rng.To) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

// Mock equipment registry for testing
type mockEquipmentAPI struct {
	equipment map[int64]*equipment.Equipment
	getError  error
}

func newMockEquipmentAPI() *mockEquipmentAPI {
	return &mockEquipmentAPI{equipment: make(map[int64]*equipment.Equipment)}
}

func (m *mockEquipmentAPI) GetEquipment(id int64) (*equipment.Equipment, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	eq, exists := m.equipment[id]
	if !exists {
		return nil, internal.ErrEquipmentNotFound
	}
	return eq, nil
}

// Mock user directory for testing
type mockUserDirectory struct {
	users map[int64]*auth.User
}

func newMockUserDirectory() *mockUserDirectory {
	return &mockUserDirectory{users: make(map[int64]*auth.User)}
}

func (m *mockUserDirectory) GetUser(id int64) (*auth.User, error) {
	u, exists := m.users[id]
	if !exists {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func ptrInt64(v int64) *int64 { return &v }

var _ = Describe("RequestService", func() {
	var (
		service         *request.Service
		repo            *mockRequestRepository
		equipmentAPI    *mockEquipmentAPI
		users           *mockUserDirectory
		eventBus        *events.EventBus
		scrapEvents     []*events.RequestScrappedEvent
		scrapHandlerErr error
		logger          *slog.Logger

		admin      *auth.User
		manager    *auth.User
		technician *auth.User
		employee   *auth.User
	)

	const teamID = int64(10)
	const otherTeamID = int64(20)

	BeforeEach(func() {
		repo = newMockRequestRepository()
		equipmentAPI = newMockEquipmentAPI()
		users = newMockUserDirectory()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		scrapEvents = nil
		scrapHandlerErr = nil
		eventBus = events.NewEventBus(logger)
		eventBus.Subscribe(events.EventTypeRequestScrapped, func(ctx context.Context, event events.Event) error {
			if scrapHandlerErr != nil {
				return scrapHandlerErr
			}
			scrapEvents = append(scrapEvents, event.(*events.RequestScrappedEvent))
			return nil
		})

		admin = &auth.User{ID: 1, Role: auth.RoleAdmin}
		manager = &auth.User{ID: 2, Role: auth.RoleManager}
		technician = &auth.User{ID: 3, Role: auth.RoleTechnician, TeamID: ptrInt64(teamID)}
		employee = &auth.User{ID: 4, Role: auth.RoleEmployee}

		users.users[technician.ID] = technician

		equipmentAPI.equipment[100] = &equipment.Equipment{
			ID:                100,
			Name:              "Hydraulic Pump A",
			Status:            equipment.StatusActive,
			MaintenanceTeamID: teamID,
		}

		service = request.NewService(logger, repo, equipmentAPI, users, auth.NewRolePolicy(), eventBus)
	})

	Describe("CreateRequest", func() {
		It("derives the owning team from the equipment", func() {
			req, err := service.CreateRequest(employee, request.CreateRequestDTO{
				Subject:     "Pump is leaking",
				Description: "Oil pooling under the intake",
				EquipmentID: 100,
				RequestType: request.TypeCorrective,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(req.MaintenanceTeamID).To(Equal(teamID))
			Expect(req.Status).To(Equal(request.StatusNew))
			Expect(req.Priority).To(Equal(request.PriorityMedium))
			Expect(req.CreatedByID).To(Equal(employee.ID))
		})

		It("rejects requests for scrapped equipment", func() {
			equipmentAPI.equipment[100].Status = equipment.StatusScrapped

			_, err := service.CreateRequest(employee, request.CreateRequestDTO{
				Subject:     "Pump is leaking",
				Description: "Oil pooling under the intake",
				EquipmentID: 100,
				RequestType: request.TypeCorrective,
			})
			Expect(err).To(MatchError(internal.ErrEquipmentScrapped))
		})

		It("rejects missing equipment", func() {
			_, err := service.CreateRequest(employee, request.CreateRequestDTO{
				Subject:     "Phantom",
				Description: "No such machine",
				EquipmentID: 999,
				RequestType: request.TypeCorrective,
			})
			Expect(err).To(MatchError(internal.ErrEquipmentNotFound))
		})

		It("requires a scheduled date for preventive work", func() {
			_, err := service.CreateRequest(employee, request.CreateRequestDTO{
				Subject:     "Quarterly inspection",
				Description: "Check seals and filters",
				EquipmentID: 100,
				RequestType: request.TypePreventive,
			})
			Expect(err).To(MatchError(internal.ErrScheduledDateRequired))
		})

		It("accepts preventive work with a scheduled date", func() {
			date := time.Now().Add(48 * time.Hour)
			req, err := service.CreateRequest(employee, request.CreateRequestDTO{
				Subject:       "Quarterly inspection",
				Description:   "Check seals and filters",
				EquipmentID:   100,
				RequestType:   request.TypePreventive,
				ScheduledDate: &date,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(req.ScheduledDate).NotTo(BeNil())
		})

		It("accepts the CRITICAL priority", func() {
			req, err := service.CreateRequest(employee, request.CreateRequestDTO{
				Subject:     "Pump seized",
				Description: "Line is down",
				EquipmentID: 100,
				RequestType: request.TypeCorrective,
				Priority:    request.PriorityCritical,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(req.Priority).To(Equal("CRITICAL"))
		})

		It("surfaces an equipment lookup failure as internal, not not-found", func() {
			equipmentAPI.getError = errors.New("connection reset")

			_, err := service.CreateRequest(employee, request.CreateRequestDTO{
				Subject:     "Pump is leaking",
				Description: "Oil pooling under the intake",
				EquipmentID: 100,
				RequestType: request.TypeCorrective,
			})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})

		It("rejects an unknown request type", func() {
			_, err := service.CreateRequest(employee, request.CreateRequestDTO{
				Subject:     "Bad type",
				Description: "Should fail validation",
				EquipmentID: 100,
				RequestType: "PREDICTIVE",
			})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("GetRequest", func() {
		var reqID int64

		BeforeEach(func() {
			req, err := service.CreateRequest(employee, request.CreateRequestDTO{
				Subject:     "Pump is leaking",
				Description: "Oil pooling under the intake",
				EquipmentID: 100,
				RequestType: request.TypeCorrective,
			})
			Expect(err).NotTo(HaveOccurred())
			reqID = req.ID
		})

		It("answers not-found for a missing request", func() {
			_, err := service.GetRequest(admin, 999)
			Expect(err).To(MatchError(internal.ErrRequestNotFound))
		})

		It("surfaces a repository failure as internal, not not-found", func() {
			repo.getError = errors.New("connection reset")

			_, err := service.GetRequest(admin, reqID)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})

		It("lets the team technician read it", func() {
			req, err := service.GetRequest(technician, reqID)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.ID).To(Equal(reqID))
		})

		It("forbids a technician from another team, distinct from not-found", func() {
			outsider := &auth.User{ID: 7, Role: auth.RoleTechnician, TeamID: ptrInt64(otherTeamID)}

			_, err := service.GetRequest(outsider, reqID)
			Expect(err).To(MatchError(internal.ErrRequestAccessDenied))

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(403))
		})

		It("lets an assigned technician read a foreign-team request", func() {
			outsider := &auth.User{ID: 7, Role: auth.RoleTechnician, TeamID: ptrInt64(otherTeamID)}
			stored := repo.requests[reqID]
			stored.AssignedTechnicianID = ptrInt64(outsider.ID)

			req, err := service.GetRequest(outsider, reqID)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.ID).To(Equal(reqID))
		})

		It("lets employees and managers read any request", func() {
			_, err := service.GetRequest(employee, reqID)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.GetRequest(manager, reqID)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("ListRequests", func() {
		It("does not restrict employees, managers or admins", func() {
			for _, u := range []*auth.User{employee, manager, admin} {
				_, err := service.ListRequests(u, request.ListFilters{})
				Expect(err).NotTo(HaveOccurred())
				Expect(repo.lastScope.Restricted).To(BeFalse())
			}
		})

		It("restricts technicians to assigned-or-team scope", func() {
			_, err := service.ListRequests(technician, request.ListFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastScope.Restricted).To(BeTrue())
			Expect(repo.lastScope.TechnicianID).To(Equal(technician.ID))
			Expect(*repo.lastScope.TeamID).To(Equal(teamID))
		})

		It("includes foreign-team requests the technician is assigned to", func() {
			foreign := &request.MaintenanceRequest{
				Subject:              "Foreign assignment",
				Description:          "Assigned across teams",
				EquipmentID:          200,
				MaintenanceTeamID:    otherTeamID,
				AssignedTechnicianID: ptrInt64(technician.ID),
				RequestType:          request.TypeCorrective,
				Status:               request.StatusInProgress,
				Priority:             request.PriorityMedium,
				CreatedByID:          employee.ID,
			}
			Expect(repo.Create(foreign)).To(Succeed())

			items, err := service.ListRequests(technician, request.ListFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].Subject).To(Equal("Foreign assignment"))
		})
	})

	Describe("UpdateStatus", func() {
		var reqID int64

		BeforeEach(func() {
			req, err := service.CreateRequest(employee, request.CreateRequestDTO{
				Subject:     "Pump is leaking",
				Description: "Oil pooling under the intake",
				EquipmentID: 100,
				RequestType: request.TypeCorrective,
			})
			Expect(err).NotTo(HaveOccurred())
			reqID = req.ID
		})

		It("rejects an invalid transition and names both endpoints", func() {
			_, err := service.UpdateStatus(context.Background(), manager, reqID, request.UpdateStatusDTO{
				Status: request.StatusRepaired,
			})
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidTransition))
			Expect(appErr.Message).To(ContainSubstring("NEW"))
			Expect(appErr.Message).To(ContainSubstring("REPAIRED"))
		})

		It("rejects an unknown status literal as an invalid transition", func() {
			_, err := service.UpdateStatus(context.Background(), manager, reqID, request.UpdateStatusDTO{
				Status: "BOGUS",
			})
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidTransition))
			Expect(appErr.Message).To(ContainSubstring("NEW"))
			Expect(appErr.Message).To(ContainSubstring("BOGUS"))
		})

		It("rejects a self transition", func() {
			_, err := service.UpdateStatus(context.Background(), manager, reqID, request.UpdateStatusDTO{
				Status: request.StatusNew,
			})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidTransition))
		})

		It("stamps the completed date when entering REPAIRED", func() {
			_, err := service.UpdateStatus(context.Background(), manager, reqID, request.UpdateStatusDTO{
				Status: request.StatusInProgress,
			})
			Expect(err).NotTo(HaveOccurred())

			hours := 3.5
			req, err := service.UpdateStatus(context.Background(), manager, reqID, request.UpdateStatusDTO{
				Status:     request.StatusRepaired,
				HoursSpent: &hours,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(req.CompletedDate).NotTo(BeNil())
			Expect(*req.HoursSpent).To(Equal(3.5))
		})

		It("keeps the repair completion date when scrapping afterwards", func() {
			_, err := service.UpdateStatus(context.Background(), manager, reqID, request.UpdateStatusDTO{
				Status: request.StatusInProgress,
			})
			Expect(err).NotTo(HaveOccurred())

			repaired, err := service.UpdateStatus(context.Background(), manager, reqID, request.UpdateStatusDTO{
				Status: request.StatusRepaired,
			})
			Expect(err).NotTo(HaveOccurred())
			repairedAt := *repaired.CompletedDate

			scrapped, err := service.UpdateStatus(context.Background(), manager, reqID, request.UpdateStatusDTO{
				Status: request.StatusScrap,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(scrapped.CompletedDate).NotTo(BeNil())
			Expect(*scrapped.CompletedDate).To(Equal(repairedAt))
		})

		It("publishes the scrap event with the request context", func() {
			req, err := service.UpdateStatus(context.Background(), manager, reqID, request.UpdateStatusDTO{
				Status: request.StatusScrap,
				Reason: "Beyond repair",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(req.Status).To(Equal(request.StatusScrap))
			// scrapping unrepaired work closes it without a repair completion
			Expect(req.CompletedDate).To(BeNil())

			Expect(scrapEvents).To(HaveLen(1))
			Expect(scrapEvents[0].RequestID).To(Equal(reqID))
			Expect(scrapEvents[0].EquipmentID).To(Equal(int64(100)))
			Expect(scrapEvents[0].ActorID).To(Equal(manager.ID))
			Expect(scrapEvents[0].Reason).To(Equal("Beyond repair"))
		})

		It("keeps the request scrapped when the cascade handler fails", func() {
			scrapHandlerErr = errors.New("equipment registry down")

			req, err := service.UpdateStatus(context.Background(), manager, reqID, request.UpdateStatusDTO{
				Status: request.StatusScrap,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(req.Status).To(Equal(request.StatusScrap))
		})

		It("forbids a technician from another team", func() {
			outsider := &auth.User{ID: 7, Role: auth.RoleTechnician, TeamID: ptrInt64(otherTeamID)}

			_, err := service.UpdateStatus(context.Background(), outsider, reqID, request.UpdateStatusDTO{
				Status: request.StatusInProgress,
			})
			Expect(err).To(MatchError(internal.ErrRequestAccessDenied))
		})
	})

	Describe("AssignTechnician", func() {
		var reqID int64

		BeforeEach(func() {
			req, err := service.CreateRequest(employee, request.CreateRequestDTO{
				Subject:     "Pump is leaking",
				Description: "Oil pooling under the intake",
				EquipmentID: 100,
				RequestType: request.TypeCorrective,
			})
			Expect(err).NotTo(HaveOccurred())
			reqID = req.ID
		})

		It("requires admin or manager", func() {
			for _, u := range []*auth.User{technician, employee} {
				_, err := service.AssignTechnician(u, reqID, technician.ID)
				Expect(err).To(MatchError(internal.ErrInsufficientRole))
			}
		})

		It("assigns a team technician and advances NEW to IN_PROGRESS", func() {
			req, err := service.AssignTechnician(manager, reqID, technician.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*req.AssignedTechnicianID).To(Equal(technician.ID))
			Expect(req.Status).To(Equal(request.StatusInProgress))
		})

		It("does not change status when already in progress", func() {
			_, err := service.UpdateStatus(context.Background(), manager, reqID, request.UpdateStatusDTO{
				Status: request.StatusInProgress,
			})
			Expect(err).NotTo(HaveOccurred())

			req, err := service.AssignTechnician(admin, reqID, technician.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.Status).To(Equal(request.StatusInProgress))
		})

		It("rejects a technician from another team", func() {
			outsider := &auth.User{ID: 8, Role: auth.RoleTechnician, TeamID: ptrInt64(otherTeamID)}
			users.users[outsider.ID] = outsider

			_, err := service.AssignTechnician(manager, reqID, outsider.ID)
			Expect(err).To(MatchError(internal.ErrTechnicianNotInTeam))
		})

		It("rejects a user without the technician role", func() {
			users.users[employee.ID] = employee

			_, err := service.AssignTechnician(manager, reqID, employee.ID)
			Expect(err).To(MatchError(internal.ErrNotATechnician))
		})

		It("rejects assignment on a scrapped request", func() {
			_, err := service.UpdateStatus(context.Background(), manager, reqID, request.UpdateStatusDTO{
				Status: request.StatusScrap,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.AssignTechnician(manager, reqID, technician.ID)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInvalidState))
		})
	})

	Describe("ListByEquipment", func() {
		It("returns the history without role narrowing", func() {
			_, err := service.CreateRequest(employee, request.CreateRequestDTO{
				Subject:     "Pump is leaking",
				Description: "Oil pooling under the intake",
				EquipmentID: 100,
				RequestType: request.TypeCorrective,
			})
			Expect(err).NotTo(HaveOccurred())

			items, err := service.ListByEquipment(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
		})
	})

	Describe("ListCalendar", func() {
		It("applies the technician scope to scheduled requests", func() {
			date := time.Now().Add(24 * time.Hour)
			_, err := service.CreateRequest(employee, request.CreateRequestDTO{
				Subject:       "Quarterly inspection",
				Description:   "Check seals and filters",
				EquipmentID:   100,
				RequestType:   request.TypePreventive,
				ScheduledDate: &date,
			})
			Expect(err).NotTo(HaveOccurred())

			items, err := service.ListCalendar(technician, request.CalendarRange{})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(repo.lastScope.Restricted).To(BeTrue())
		})
	})
})
