package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/staff-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffCreated EventType = "staff_created"
	EventStaffUpdated EventType = "staff_updated"
	EventStaffDeleted EventType = "staff_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	StaffID   int64       `json:"staff_id"`
	ActorID   *int64      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh ID and the current time.
func NewEvent(eventType EventType, staffID int64, actorID *int64, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		StaffID:   staffID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// StaffPayload describes the staff record an event refers to.
type StaffPayload struct {
	Email string           `json:"email"`
	Role  domain.StaffRole `json:"role"`
}

// StaffUpdatedPayload lists the fields changed by an update.
type StaffUpdatedPayload struct {
	StaffPayload
	ChangedFields []string `json:"changed_fields"`
}
