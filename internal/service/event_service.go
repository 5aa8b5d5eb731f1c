package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/event-service/internal/auth"
	"github.com/spec-kit/event-service/internal/domain"
	"github.com/spec-kit/event-service/internal/events"
	"github.com/spec-kit/event-service/internal/repository"
	apperrors "github.com/spec-kit/event-service/pkg/util/errorutil"
)

// EventService coordinates event submission, moderation and listing.
type EventService struct {
	events repository.EventRepository
	rsvps  repository.RSVPRepository
	publisher
}

// EventDependencies bundles collaborators for the event service.
type EventDependencies struct {
	EventRepo  repository.EventRepository
	RSVPRepo   repository.RSVPRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// EventInput describes a new event.
type EventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
}

// NewEventService constructs the service.
func NewEventService(deps EventDependencies) *EventService {
	return &EventService{
		events:    deps.EventRepo,
		rsvps:     deps.RSVPRepo,
		publisher: publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// List returns approved events, or every event when an admin viewer asks for all.
func (s *EventService) List(ctx context.Context, viewer *domain.Identity, includeAll bool) ([]domain.Event, error) {
	showAll := includeAll && viewer != nil && viewer.Role.IsAdmin()
	return s.list(ctx, repository.EventFilter{ApprovedOnly: !showAll})
}

// ListAll returns every event regardless of approval.
func (s *EventService) ListAll(ctx context.Context) ([]domain.Event, error) {
	return s.list(ctx, repository.EventFilter{})
}

// ListOrganized returns the events the actor organizes, pending ones included.
func (s *EventService) ListOrganized(ctx context.Context, actor domain.Identity) ([]domain.Event, error) {
	organizerID := actor.UserID
	return s.list(ctx, repository.EventFilter{OrganizerID: &organizerID})
}

func (s *EventService) list(ctx context.Context, filter repository.EventFilter) ([]domain.Event, error) {
	list, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := s.attachRSVPs(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns one event with its RSVPs.
func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Event")
	}
	rsvps, err := s.rsvps.ListByEvent(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	event.RSVPs = rsvps
	return event, nil
}

// Create stores a submission. Admin submissions are approved immediately.
func (s *EventService) Create(ctx context.Context, actor domain.Identity, input EventInput) (*domain.Event, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Location = strings.TrimSpace(input.Location)
	if input.Title == "" || input.Description == "" || input.Location == "" || input.Date.IsZero() {
		return nil, apperrors.NewValidationError("All fields are required", nil)
	}

	event := &domain.Event{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Location:    input.Location,
		OrganizerID: actor.UserID,
		Approved:    actor.Role.IsAdmin(),
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, repoError(err, "Organizer")
	}
	event.Organizer = &domain.UserSummary{ID: actor.UserID, Email: actor.Email, Role: actor.Role}

	s.publish(ctx, events.Event{
		Type:    events.EventCreated,
		EventID: event.ID,
		Actor:   actorOf(actor),
		Payload: event,
	})
	return event, nil
}

// Update applies a partial change. Only the organizer of record or an admin may edit.
func (s *EventService) Update(ctx context.Context, actor domain.Identity, id string, patch domain.EventPatch) (*domain.Event, error) {
	if !auth.OrganizerOrAdmin.Allows(actor.Role) {
		return nil, apperrors.NewForbidden("Only organizers and admins can update events")
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Event")
	}
	if !canManage(actor, event) {
		return nil, apperrors.NewForbidden("You can only update your own events")
	}

	if !patch.Empty() {
		patch.Apply(event)
		if err := s.events.Update(ctx, event); err != nil {
			return nil, repoError(err, "Event")
		}
	}
	if event.RSVPs, err = s.rsvps.ListByEvent(ctx, id); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUpdated,
		EventID: event.ID,
		Actor:   actorOf(actor),
		Payload: event,
	})
	return event, nil
}

// Delete removes an event together with its RSVPs and favorites.
func (s *EventService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if !auth.OrganizerOrAdmin.Allows(actor.Role) {
		return apperrors.NewForbidden("Only organizers and admins can delete events")
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return repoError(err, "Event")
	}
	if !canManage(actor, event) {
		return apperrors.NewForbidden("You can only delete your own events")
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return repoError(err, "Event")
	}

	s.publish(ctx, events.Event{
		Type:    events.EventDeleted,
		EventID: id,
		Actor:   actorOf(actor),
		Payload: events.DeletedPayload{ID: id},
	})
	return nil
}

// Approve moves an event to approved. Approving twice is a no-op that re-broadcasts.
func (s *EventService) Approve(ctx context.Context, actor domain.Identity, id string) (*domain.Event, error) {
	if !auth.AdminOnly.Allows(actor.Role) {
		return nil, apperrors.NewForbidden("Only admins can approve events")
	}
	event, err := s.events.Approve(ctx, id)
	if err != nil {
		return nil, repoError(err, "Event")
	}
	if event.RSVPs, err = s.rsvps.ListByEvent(ctx, id); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventApproved,
		EventID: event.ID,
		Actor:   actorOf(actor),
		Payload: event,
	})
	return event, nil
}

func (s *EventService) attachRSVPs(ctx context.Context, list []domain.Event) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, 0, len(list))
	for i := range list {
		ids = append(ids, list[i].ID)
	}
	rsvps, err := s.rsvps.ListByEvents(ctx, ids)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	byEvent := make(map[string][]domain.RSVP, len(list))
	for _, r := range rsvps {
		byEvent[r.EventID] = append(byEvent[r.EventID], r)
	}
	for i := range list {
		list[i].RSVPs = byEvent[list[i].ID]
	}
	return nil
}

func canManage(actor domain.Identity, event *domain.Event) bool {
	return event.OrganizerID == actor.UserID || actor.Role.IsAdmin()
}
