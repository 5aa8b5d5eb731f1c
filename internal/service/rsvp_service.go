package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/event-service/internal/domain"
	"github.com/spec-kit/event-service/internal/events"
	"github.com/spec-kit/event-service/internal/repository"
	apperrors "github.com/spec-kit/event-service/pkg/util/errorutil"
)

// RSVPService records attendance answers.
type RSVPService struct {
	events repository.EventRepository
	rsvps  repository.RSVPRepository
	publisher
}

// RSVPDependencies bundles collaborators for the RSVP service.
type RSVPDependencies struct {
	EventRepo  repository.EventRepository
	RSVPRepo   repository.RSVPRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewRSVPService constructs the service.
func NewRSVPService(deps RSVPDependencies) *RSVPService {
	return &RSVPService{
		events:    deps.EventRepo,
		rsvps:     deps.RSVPRepo,
		publisher: publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// Respond creates or overwrites the caller's RSVP for an approved event.
func (s *RSVPService) Respond(ctx context.Context, actor domain.Identity, eventID string, status domain.RSVPStatus) (*domain.RSVP, domain.UpsertOutcome, error) {
	if !status.Valid() {
		return nil, 0, apperrors.NewValidationError("Invalid RSVP status", nil)
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, 0, repoError(err, "Event")
	}
	if !event.Approved {
		return nil, 0, apperrors.NewInvalidState("Event is not approved yet")
	}

	rsvp := &domain.RSVP{UserID: actor.UserID, EventID: eventID, Status: status}
	outcome, err := s.rsvps.Upsert(ctx, rsvp)
	if err != nil {
		return nil, 0, repoError(err, "Event")
	}
	rsvp.User = &domain.UserSummary{ID: actor.UserID, Email: actor.Email}
	rsvp.Event = &domain.EventSummary{ID: event.ID, Title: event.Title}

	eventType := events.RSVPAdded
	if outcome == domain.Updated {
		eventType = events.RSVPUpdated
	}
	s.publish(ctx, events.Event{
		Type:    eventType,
		EventID: eventID,
		Actor:   actorOf(actor),
		Payload: rsvp,
	})
	return rsvp, outcome, nil
}

// ListForEvent returns the RSVPs of an existing event.
func (s *RSVPService) ListForEvent(ctx context.Context, eventID string) ([]domain.RSVP, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, repoError(err, "Event")
	}
	rsvps, err := s.rsvps.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return rsvps, nil
}

// ListForUser returns the caller's RSVPs, newest first.
func (s *RSVPService) ListForUser(ctx context.Context, userID string) ([]domain.RSVP, error) {
	rsvps, err := s.rsvps.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return rsvps, nil
}
