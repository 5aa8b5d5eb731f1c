package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/event-service/internal/domain"
	apperrors "github.com/spec-kit/event-service/pkg/util/errorutil"
)

var eventDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// CreateEventRequest payload.
type CreateEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Location    string `json:"location" validate:"required"`
}

func (CreateEventRequest) InvalidMessage() string { return "All fields are required" }

// UpdateEventRequest payload. Empty fields are left unchanged.
type UpdateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

// Patch converts the request into a domain patch.
func (r UpdateEventRequest) Patch() (domain.EventPatch, error) {
	var patch domain.EventPatch
	if v := strings.TrimSpace(r.Title); v != "" {
		patch.Title = &v
	}
	if v := strings.TrimSpace(r.Description); v != "" {
		patch.Description = &v
	}
	if v := strings.TrimSpace(r.Location); v != "" {
		patch.Location = &v
	}
	if v := strings.TrimSpace(r.Date); v != "" {
		date, err := ParseEventDate(v)
		if err != nil {
			return domain.EventPatch{}, err
		}
		patch.Date = &date
	}
	return patch, nil
}

// ParseEventDate accepts RFC 3339 timestamps, datetime-local values and plain dates.
func ParseEventDate(value string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.NewValidationError("Invalid event date", map[string]any{"date": value})
}

// EventResponse is the wire form of an event. It is also the websocket payload.
type EventResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Date        time.Time           `json:"date"`
	Location    string              `json:"location"`
	OrganizerID string              `json:"organizerId"`
	Approved    bool                `json:"approved"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Organizer   *domain.UserSummary `json:"organizer,omitempty"`
	RSVPs       []RSVPResponse      `json:"rsvps,omitempty"`
}

// EventEnvelope wraps a single event.
type EventEnvelope struct {
	Message string        `json:"message,omitempty"`
	Event   EventResponse `json:"event"`
}

// EventListResponse wraps a listing.
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Count  int             `json:"count"`
}

// NewEventResponse maps an event and any loaded RSVPs.
func NewEventResponse(e *domain.Event) EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		OrganizerID: e.OrganizerID,
		Approved:    e.Approved,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Organizer:   e.Organizer,
	}
	if len(e.RSVPs) > 0 {
		resp.RSVPs = NewRSVPResponses(e.RSVPs)
	}
	return resp
}

// NewEventListResponse maps a listing.
func NewEventListResponse(events []domain.Event) EventListResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, NewEventResponse(&events[i]))
	}
	return EventListResponse{Events: out, Count: len(out)}
}
