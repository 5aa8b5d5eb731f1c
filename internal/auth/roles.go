package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-service/internal/domain"
	apperrors "github.com/spec-kit/event-service/pkg/util/errorutil"
)

// AllowList is an explicit set of roles permitted by a check. Admin is only allowed
// where it is listed.
type AllowList []domain.Role

var (
	AnyAuthenticated = AllowList{domain.RoleAttendee, domain.RoleOrganizer, domain.RoleAdmin}
	OrganizerOrAdmin = AllowList{domain.RoleOrganizer, domain.RoleAdmin}
	AdminOnly        = AllowList{domain.RoleAdmin}
)

// Allows reports whether role is a member of the list.
func (l AllowList) Allows(role domain.Role) bool {
	for _, candidate := range l {
		if candidate == role {
			return true
		}
	}
	return false
}

// RequireRole ensures the principal's role is in the allow-list. It must run after Guard.Authenticate.
func RequireRole(allowed AllowList) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Unauthorized")
		}
		if !allowed.Allows(principal.Role) {
			return apperrors.NewForbidden("Insufficient permissions")
		}
		return c.Next()
	}
}
