package events

import (
	"time"

	"github.com/spec-kit/event-service/internal/domain"
)

// EventType enumerates supported lifecycle notifications. The values are the
// wire "type" strings pushed to websocket clients.
type EventType string

const (
	EventCreated  EventType = "event_created"
	EventUpdated  EventType = "event_updated"
	EventDeleted  EventType = "event_deleted"
	EventApproved EventType = "event_approved"
	RSVPAdded     EventType = "rsvp_added"
	RSVPUpdated   EventType = "rsvp_updated"
)

// AllTypes lists every lifecycle type.
var AllTypes = []EventType{EventCreated, EventUpdated, EventDeleted, EventApproved, RSVPAdded, RSVPUpdated}

// Actor identifies who caused the event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EventID   string      `json:"event_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// DeletedPayload is the payload of EventDeleted.
type DeletedPayload struct {
	ID string `json:"id"`
}
