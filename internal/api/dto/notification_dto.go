package dto

import "github.com/spec-kit/event-service/internal/domain"

// NotificationPayload renders lifecycle payloads with the same shapes as the
// REST responses. Other payloads pass through unchanged.
func NotificationPayload(payload any) any {
	switch p := payload.(type) {
	case *domain.Event:
		return NewEventResponse(p)
	case *domain.RSVP:
		return NewRSVPResponse(p)
	}
	return payload
}
