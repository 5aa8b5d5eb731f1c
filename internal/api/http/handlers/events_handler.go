package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-service/internal/api/dto"
	"github.com/spec-kit/event-service/internal/auth"
	"github.com/spec-kit/event-service/internal/domain"
	"github.com/spec-kit/event-service/internal/service"
	apperrors "github.com/spec-kit/event-service/pkg/util/errorutil"
)

// EventsHandler exposes event endpoints.
type EventsHandler struct {
	events *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(events *service.EventService) *EventsHandler {
	return &EventsHandler{events: events}
}

// List handles GET /api/events. Admins may pass ?all=true to include pending events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	var viewer *domain.Identity
	if p, ok := auth.PrincipalFromContext(c); ok {
		id := p.Identity()
		viewer = &id
	}

	list, err := h.events.List(c.UserContext(), viewer, c.Query("all") == "true")
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEventListResponse(list))
}

// ListAll handles GET /api/events/all.
func (h *EventsHandler) ListAll(c *fiber.Ctx) error {
	list, err := h.events.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEventListResponse(list))
}

// ListMine handles GET /api/events/user/events.
func (h *EventsHandler) ListMine(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	list, err := h.events.ListOrganized(c.UserContext(), p.Identity())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEventListResponse(list))
}

// Get handles GET /api/events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	event, err := h.events.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.EventEnvelope{Event: dto.NewEventResponse(event)})
}

// Create handles POST /api/events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateEventRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	date, err := dto.ParseEventDate(req.Date)
	if err != nil {
		return err
	}

	event, err := h.events.Create(c.UserContext(), p.Identity(), service.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.EventEnvelope{
		Message: "Event created successfully",
		Event:   dto.NewEventResponse(event),
	})
}

// Update handles PUT /api/events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request payload", nil)
	}
	patch, err := req.Patch()
	if err != nil {
		return err
	}

	id, err := eventID(c)
	if err != nil {
		return err
	}
	event, err := h.events.Update(c.UserContext(), p.Identity(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(dto.EventEnvelope{
		Message: "Event updated successfully",
		Event:   dto.NewEventResponse(event),
	})
}

// Delete handles DELETE /api/events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}
	if err := h.events.Delete(c.UserContext(), p.Identity(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Event deleted successfully"})
}

// Approve handles POST /api/events/:id/approve.
func (h *EventsHandler) Approve(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}
	event, err := h.events.Approve(c.UserContext(), p.Identity(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.EventEnvelope{
		Message: "Event approved successfully",
		Event:   dto.NewEventResponse(event),
	})
}
