package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	internal "github.com/frahmantamala/maintenance-management/internal"
	"github.com/frahmantamala/maintenance-management/internal/auth"
	"github.com/frahmantamala/maintenance-management/internal/request"
)

func TestRequestRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RequestRepository Suite")
}

type SQLiteRequest struct {
	ID                   int64      `gorm:"primaryKey"`
	Subject              string     `gorm:"column:subject;not null"`
	Description          string     `gorm:"column:description;not null"`
	EquipmentID          int64      `gorm:"column:equipment_id;not null"`
	MaintenanceTeamID    int64      `gorm:"column:maintenance_team_id;not null"`
	AssignedTechnicianID *int64     `gorm:"column:assigned_technician_id"`
	RequestType          string     `gorm:"column:request_type;not null"`
	Status               string     `gorm:"column:status;not null;default:NEW"`
	Priority             string     `gorm:"column:priority;not null;default:MEDIUM"`
	ScheduledDate        *time.Time `gorm:"column:scheduled_date"`
	CompletedDate        *time.Time `gorm:"column:completed_date"`
	HoursSpent           *float64   `gorm:"column:hours_spent"`
	Notes                string     `gorm:"column:notes"`
	CreatedByID          int64      `gorm:"column:created_by_id;not null"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}

func (SQLiteRequest) TableName() string {
	return "maintenance_requests"
}

var _ = Describe("RequestRepository", func() {
	var (
		db   *gorm.DB
		repo request.RepositoryAPI
	)

	newRequest := func(mutate func(*request.MaintenanceRequest)) *request.MaintenanceRequest {
		req := &request.MaintenanceRequest{
			Subject:           "Pump leaking oil",
			Description:       "Oil pooling under the intake housing",
			EquipmentID:       100,
			MaintenanceTeamID: 10,
			RequestType:       request.TypeCorrective,
			Status:            request.StatusNew,
			Priority:          request.PriorityMedium,
			CreatedByID:       1,
		}
		if mutate != nil {
			mutate(req)
		}
		Expect(repo.Create(req)).To(Succeed())
		return req
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteRequest{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewRequestRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create and GetByID", func() {
		It("should round-trip a request", func() {
			created := newRequest(nil)
			Expect(created.ID).To(BeNumerically(">", 0))

			retrieved, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Subject).To(Equal("Pump leaking oil"))
			Expect(retrieved.Status).To(Equal(request.StatusNew))
			Expect(retrieved.MaintenanceTeamID).To(Equal(int64(10)))
		})

		It("should return ErrRequestNotFound for non-existent ID", func() {
			retrieved, err := repo.GetByID(99999)
			Expect(err).To(Equal(internal.ErrRequestNotFound))
			Expect(retrieved).To(BeNil())
		})
	})

	Describe("Update", func() {
		It("should persist status and completion fields", func() {
			created := newRequest(nil)

			completed := time.Now()
			hours := 2.5
			created.Status = request.StatusRepaired
			created.CompletedDate = &completed
			created.HoursSpent = &hours

			Expect(repo.Update(created)).To(Succeed())

			retrieved, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Status).To(Equal(request.StatusRepaired))
			Expect(retrieved.CompletedDate).NotTo(BeNil())
			Expect(*retrieved.HoursSpent).To(Equal(2.5))
		})
	})

	Describe("List", func() {
		var technicianID int64

		BeforeEach(func() {
			technicianID = 5

			// assigned to the technician, different team
			newRequest(func(r *request.MaintenanceRequest) {
				r.Subject = "Assigned elsewhere"
				r.MaintenanceTeamID = 20
				r.AssignedTechnicianID = &technicianID
			})
			// unassigned, technician's team
			newRequest(func(r *request.MaintenanceRequest) {
				r.Subject = "Team backlog"
			})
			// unrelated
			newRequest(func(r *request.MaintenanceRequest) {
				r.Subject = "Other team"
				r.MaintenanceTeamID = 30
			})
		})

		It("returns everything for an unrestricted scope", func() {
			items, err := repo.List(auth.RequestScope{}, request.ListFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(3))
		})

		It("returns assigned or team-owned requests for a technician scope", func() {
			teamID := int64(10)
			items, err := repo.List(auth.RequestScope{
				Restricted:   true,
				TechnicianID: technicianID,
				TeamID:       &teamID,
			}, request.ListFilters{})
			Expect(err).NotTo(HaveOccurred())

			subjects := make([]string, 0, len(items))
			for _, item := range items {
				subjects = append(subjects, item.Subject)
			}
			Expect(subjects).To(ConsistOf("Assigned elsewhere", "Team backlog"))
		})

		It("falls back to assignment only for a teamless technician", func() {
			items, err := repo.List(auth.RequestScope{
				Restricted:   true,
				TechnicianID: technicianID,
			}, request.ListFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].Subject).To(Equal("Assigned elsewhere"))
		})

		It("applies status filters inside the scope", func() {
			items, err := repo.List(auth.RequestScope{}, request.ListFilters{Status: request.StatusRepaired})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(BeEmpty())
		})
	})

	Describe("ListByEquipment", func() {
		It("returns the equipment's requests regardless of scope", func() {
			newRequest(nil)
			newRequest(func(r *request.MaintenanceRequest) {
				r.EquipmentID = 200
			})

			items, err := repo.ListByEquipment(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].EquipmentID).To(Equal(int64(100)))
		})
	})

	Describe("ListCalendar", func() {
		It("only returns scheduled requests inside the range", func() {
			inRange := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
			outOfRange := inRange.AddDate(0, 1, 0)

			newRequest(func(r *request.MaintenanceRequest) {
				r.Subject = "March service"
				r.RequestType = request.TypePreventive
				r.ScheduledDate = &inRange
			})
			newRequest(func(r *request.MaintenanceRequest) {
				r.Subject = "April service"
				r.RequestType = request.TypePreventive
				r.ScheduledDate = &outOfRange
			})
			newRequest(nil) // no scheduled date

			items, err := repo.ListCalendar(auth.RequestScope{}, request.CalendarRange{
				From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].Subject).To(Equal("March service"))
		})
	})
})
