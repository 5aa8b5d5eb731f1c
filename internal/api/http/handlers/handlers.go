package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/event-service/internal/api/dto"
	"github.com/spec-kit/event-service/internal/auth"
	apperrors "github.com/spec-kit/event-service/pkg/util/errorutil"
)

// parseBody decodes and validates a JSON payload.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid request payload", nil)
	}
	return dto.Validate(out)
}

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("Unauthorized")
	}
	return p, nil
}

// eventID returns the :id path segment. Ids that are not UUIDs cannot name a
// stored event, so they are reported as missing before any query runs.
func eventID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", apperrors.NewNotFound("Event", nil)
	}
	return id, nil
}
