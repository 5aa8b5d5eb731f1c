package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-service/internal/api/dto"
	"github.com/spec-kit/event-service/internal/service"
)

// RSVPHandler exposes RSVP endpoints.
type RSVPHandler struct {
	rsvps *service.RSVPService
}

// NewRSVPHandler constructs handler.
func NewRSVPHandler(rsvps *service.RSVPService) *RSVPHandler {
	return &RSVPHandler{rsvps: rsvps}
}

// Respond handles POST /api/events/:id/rsvp.
func (h *RSVPHandler) Respond(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.RSVPRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	id, err := eventID(c)
	if err != nil {
		return err
	}
	rsvp, _, err := h.rsvps.Respond(c.UserContext(), p.Identity(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.RSVPEnvelope{
		Message: "RSVP updated successfully",
		RSVP:    dto.NewRSVPResponse(rsvp),
	})
}

// ListForEvent handles GET /api/events/:id/rsvps.
func (h *RSVPHandler) ListForEvent(c *fiber.Ctx) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	rsvps, err := h.rsvps.ListForEvent(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.RSVPListResponse{RSVPs: dto.NewRSVPResponses(rsvps), Count: len(rsvps)})
}

// ListMine handles GET /api/events/user/rsvps.
func (h *RSVPHandler) ListMine(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	rsvps, err := h.rsvps.ListForUser(c.UserContext(), p.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.RSVPListResponse{RSVPs: dto.NewRSVPResponses(rsvps), Count: len(rsvps)})
}
