package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeRequestScrapped = "request.scrapped"
	EventTypeRequestRepaired = "request.repaired"
)

// RequestScrappedEvent is published when a maintenance request reaches the
// SCRAP status. The equipment registry subscribes to it and retires the
// linked equipment as part of the same logical operation.
type RequestScrappedEvent struct {
	BaseEvent
	RequestID   int64  `json:"request_id"`
	EquipmentID int64  `json:"equipment_id"`
	ActorID     int64  `json:"actor_id"`
	Reason      string `json:"reason"`
}

func NewRequestScrappedEvent(requestID, equipmentID, actorID int64, reason string) *RequestScrappedEvent {
	return &RequestScrappedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRequestScrapped,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":   requestID,
				"equipment_id": equipmentID,
				"actor_id":     actorID,
				"reason":       reason,
			},
		},
		RequestID:   requestID,
		EquipmentID: equipmentID,
		ActorID:     actorID,
		Reason:      reason,
	}
}

// RequestRepairedEvent is published when a request enters REPAIRED.
// Read-side consumers (dashboards, reporting) may subscribe; nothing in the
// core depends on it.
type RequestRepairedEvent struct {
	BaseEvent
	RequestID   int64    `json:"request_id"`
	EquipmentID int64    `json:"equipment_id"`
	ActorID     int64    `json:"actor_id"`
	HoursSpent  *float64 `json:"hours_spent,omitempty"`
}

func NewRequestRepairedEvent(requestID, equipmentID, actorID int64, hoursSpent *float64) *RequestRepairedEvent {
	return &RequestRepairedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRequestRepaired,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":   requestID,
				"equipment_id": equipmentID,
				"actor_id":     actorID,
			},
		},
		RequestID:   requestID,
		EquipmentID: equipmentID,
		ActorID:     actorID,
		HoursSpent:  hoursSpent,
	}
}
