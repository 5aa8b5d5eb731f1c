package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-service/internal/domain"
	"github.com/spec-kit/event-service/internal/repository"
	apperrors "github.com/spec-kit/event-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	ID    string
	Email string
	Role  domain.Role
}

// Identity converts the principal into a domain identity.
func (p *Principal) Identity() domain.Identity {
	return domain.Identity{UserID: p.ID, Email: p.Email, Role: p.Role}
}

// Guard validates bearer tokens and loads principals.
type Guard struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewGuard constructs the middleware.
func NewGuard(tokens *TokenManager, users repository.UserRepository) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Authenticate enforces authentication for protected routes.
func (g *Guard) Authenticate(c *fiber.Ctx) error {
	principal, err := g.resolve(c)
	if err != nil {
		return err
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// Optional attaches a principal when a valid token is presented and continues anonymously otherwise.
func (g *Guard) Optional(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) == "" {
		return c.Next()
	}
	principal, err := g.resolve(c)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeUnauthorized) {
			return c.Next()
		}
		return err
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

func (g *Guard) resolve(c *fiber.Ctx) (*Principal, error) {
	token, err := BearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return nil, apperrors.NewUnauthorized(err.Error())
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Invalid or expired token")
	}

	// The token stays valid after account removal, so the user is re-read on every call.
	user, err := g.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("User not found")
		}
		return nil, apperrors.NewInternalError(err)
	}

	return &Principal{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("No token provided")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
