package request_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/maintenance-management/internal/auth"
	"github.com/frahmantamala/maintenance-management/internal/request"
)

// Stub service capturing what the handler parsed
type stubRequestService struct {
	lastFilters request.ListFilters
	lastRange   request.CalendarRange
}

func (s *stubRequestService) CreateRequest(actor *auth.User, dto request.CreateRequestDTO) (*request.MaintenanceRequest, error) {
	return &request.MaintenanceRequest{}, nil
}

func (s *stubRequestService) GetRequest(actor *auth.User, id int64) (*request.MaintenanceRequest, error) {
	return &request.MaintenanceRequest{ID: id}, nil
}

func (s *stubRequestService) ListRequests(actor *auth.User, filters request.ListFilters) ([]*request.MaintenanceRequest, error) {
	s.lastFilters = filters
	return nil, nil
}

func (s *stubRequestService) UpdateStatus(ctx context.Context, actor *auth.User, id int64, dto request.UpdateStatusDTO) (*request.MaintenanceRequest, error) {
	return &request.MaintenanceRequest{ID: id}, nil
}

func (s *stubRequestService) AssignTechnician(actor *auth.User, id int64, technicianID int64) (*request.MaintenanceRequest, error) {
	return &request.MaintenanceRequest{ID: id}, nil
}

func (s *stubRequestService) ListByEquipment(equipmentID int64) ([]*request.MaintenanceRequest, error) {
	return nil, nil
}

func (s *stubRequestService) ListCalendar(actor *auth.User, rng request.CalendarRange) ([]*request.MaintenanceRequest, error) {
	s.lastRange = rng
	return nil, nil
}

var _ = Describe("RequestHandler", func() {
	var (
		handler *request.Handler
		stub    *stubRequestService
		actor   *auth.User
	)

	BeforeEach(func() {
		stub = &stubRequestService{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = request.NewHandler(logger, stub)
		actor = &auth.User{ID: 4, Role: auth.RoleEmployee}
	})

	listRequests := func(target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req = req.WithContext(auth.ContextWithUser(req.Context(), actor))
		w := httptest.NewRecorder()
		handler.ListRequests(w, req)
		return w
	}

	listCalendar := func(target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req = req.WithContext(auth.ContextWithUser(req.Context(), actor))
		w := httptest.NewRecorder()
		handler.ListCalendar(w, req)
		return w
	}

	Describe("ListRequests filter parsing", func() {
		It("passes well-formed filters through", func() {
			w := listRequests("/requests?equipment_id=100&team_id=10&technician_id=3")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(*stub.lastFilters.EquipmentID).To(Equal(int64(100)))
			Expect(*stub.lastFilters.TeamID).To(Equal(int64(10)))
			Expect(*stub.lastFilters.TechnicianID).To(Equal(int64(3)))
		})

		It("rejects a malformed equipment_id", func() {
			w := listRequests("/requests?equipment_id=pump")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a malformed start_date", func() {
			w := listRequests("/requests?start_date=yesterday")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("ListCalendar parameter parsing", func() {
		It("turns month and year into an inclusive month range", func() {
			w := listCalendar("/requests/calendar?month=3&year=2026")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(stub.lastRange.From.Month()).To(Equal(time.March))
			Expect(stub.lastRange.From.Day()).To(Equal(1))
			Expect(stub.lastRange.To.Day()).To(Equal(31))
		})

		It("rejects an out-of-range month", func() {
			w := listCalendar("/requests/calendar?month=13&year=2026")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
