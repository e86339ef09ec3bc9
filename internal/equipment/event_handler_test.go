package equipment_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/maintenance-management/internal/core/events"
	"github.com/frahmantamala/maintenance-management/internal/equipment"
)

var _ = Describe("EventHandler", func() {
	var (
		repo    *mockEquipmentRepository
		service *equipment.Service
		bus     *events.EventBus
		id      int64
	)

	BeforeEach(func() {
		repo = newMockEquipmentRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = equipment.NewService(logger, repo)
		bus = events.NewEventBus(logger)
		equipment.NewEventHandler(logger, service).RegisterHandlers(bus)

		eq, err := service.CreateEquipment(equipment.CreateEquipmentDTO{
			Name:              "Conveyor 3",
			SerialNumber:      "CNV-0003",
			Category:          equipment.CategoryMachinery,
			PurchaseDate:      time.Now().AddDate(-1, 0, 0),
			Location:          "Hall 1",
			Department:        "Packaging",
			MaintenanceTeamID: 10,
		})
		Expect(err).NotTo(HaveOccurred())
		id = eq.ID
	})

	It("scraps the equipment when a request scrap event arrives", func() {
		event := events.NewRequestScrappedEvent(55, id, 2, "Belt snapped, frame bent")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		eq, err := service.GetEquipment(id)
		Expect(err).NotTo(HaveOccurred())
		Expect(eq.Status).To(Equal(equipment.StatusScrapped))
		Expect(*eq.ScrapReason).To(Equal("Belt snapped, frame bent"))
	})

	It("synthesizes a reason naming the request when none is given", func() {
		event := events.NewRequestScrappedEvent(55, id, 2, "")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		eq, err := service.GetEquipment(id)
		Expect(err).NotTo(HaveOccurred())
		Expect(*eq.ScrapReason).To(ContainSubstring("#55"))
	})

	It("fails the sync publish when the equipment is missing", func() {
		event := events.NewRequestScrappedEvent(55, 999, 2, "gone")

		Expect(bus.PublishSync(context.Background(), event)).NotTo(Succeed())
	})
})
