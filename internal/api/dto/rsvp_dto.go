package dto

import (
	"time"

	"github.com/spec-kit/event-service/internal/domain"
)

// RSVPRequest payload.
type RSVPRequest struct {
	Status domain.RSVPStatus `json:"status" validate:"required,oneof=GOING MAYBE NOT_GOING"`
}

func (RSVPRequest) InvalidMessage() string { return "Invalid RSVP status" }

// RSVPResponse is the wire form of an RSVP. It is also the websocket payload.
type RSVPResponse struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	EventID   string               `json:"eventId"`
	Status    domain.RSVPStatus    `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
	User      *domain.UserSummary  `json:"user,omitempty"`
	Event     *domain.EventSummary `json:"event,omitempty"`
}

// RSVPEnvelope wraps a single RSVP.
type RSVPEnvelope struct {
	Message string       `json:"message"`
	RSVP    RSVPResponse `json:"rsvp"`
}

// RSVPListResponse wraps a listing.
type RSVPListResponse struct {
	RSVPs []RSVPResponse `json:"rsvps"`
	Count int            `json:"count"`
}

// FavoriteResponse is the wire form of a favorite.
type FavoriteResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	EventID   string         `json:"eventId"`
	CreatedAt time.Time      `json:"createdAt"`
	Event     *EventResponse `json:"event,omitempty"`
}

// FavoriteEnvelope wraps a single favorite.
type FavoriteEnvelope struct {
	Message  string           `json:"message"`
	Favorite FavoriteResponse `json:"favorite"`
}

// FavoriteListResponse wraps a listing.
type FavoriteListResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
	Count     int                `json:"count"`
}

// MessageResponse carries a bare confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewRSVPResponse maps an RSVP.
func NewRSVPResponse(r *domain.RSVP) RSVPResponse {
	return RSVPResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		EventID:   r.EventID,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		User:      r.User,
		Event:     r.Event,
	}
}

// NewRSVPResponses maps a slice of RSVPs.
func NewRSVPResponses(rsvps []domain.RSVP) []RSVPResponse {
	out := make([]RSVPResponse, 0, len(rsvps))
	for i := range rsvps {
		out = append(out, NewRSVPResponse(&rsvps[i]))
	}
	return out
}

// NewFavoriteResponse maps a favorite.
func NewFavoriteResponse(f *domain.Favorite) FavoriteResponse {
	resp := FavoriteResponse{ID: f.ID, UserID: f.UserID, EventID: f.EventID, CreatedAt: f.CreatedAt}
	if f.Event != nil {
		event := NewEventResponse(f.Event)
		resp.Event = &event
	}
	return resp
}

// NewFavoriteListResponse maps a listing.
func NewFavoriteListResponse(favorites []domain.Favorite) FavoriteListResponse {
	out := make([]FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		out = append(out, NewFavoriteResponse(&favorites[i]))
	}
	return FavoriteListResponse{Favorites: out, Count: len(out)}
}
