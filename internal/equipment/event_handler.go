package equipment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/maintenance-management/internal/core/events"
)

// EventHandler retires equipment when a maintenance request is scrapped.
// It subscribes to the scrap event so the cascade stays inside the equipment
// registry instead of the request engine reaching into equipment state.
type EventHandler struct {
	service ServiceAPI
	logger  *slog.Logger
}

func NewEventHandler(logger *slog.Logger, service ServiceAPI) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

func (h *EventHandler) RegisterHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeRequestScrapped, h.handleRequestScrapped)
}

func (h *EventHandler) handleRequestScrapped(ctx context.Context, event events.Event) error {
	scrapped, ok := event.(*events.RequestScrappedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	h.logger.Info("scrapping equipment for scrapped request",
		"request_id", scrapped.RequestID,
		"equipment_id", scrapped.EquipmentID)

	reason := scrapped.Reason
	if reason == "" {
		reason = fmt.Sprintf("Scrapped via maintenance request #%d", scrapped.RequestID)
	}

	if _, err := h.service.ScrapEquipment(scrapped.EquipmentID, reason); err != nil {
		return fmt.Errorf("scrap equipment %d: %w", scrapped.EquipmentID, err)
	}

	return nil
}
