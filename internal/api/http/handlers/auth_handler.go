package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-service/internal/api/dto"
	"github.com/spec-kit/event-service/internal/service"
)

// AuthHandler exposes account endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Signup(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.SignupResponse{
		Message:              "User created successfully. Please check your email for verification.",
		User:                 dto.NewUserResponse(res.User),
		RequiresVerification: true,
		EmailPreview:         res.EmailPreview,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Message:   "Login successful",
		User:      dto.NewUserResponse(res.User),
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

// Verify handles POST /api/auth/verify.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Verify(c.UserContext(), req.Email, req.VerificationToken)
	if err != nil {
		return err
	}

	return c.JSON(dto.VerifyResponse{
		Message: "User verified successfully",
		User:    dto.NewUserResponse(user),
	})
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	profile, err := h.auth.Profile(c.UserContext(), p.ID)
	if err != nil {
		return err
	}

	return c.JSON(dto.ProfileResponse{User: dto.ProfileUser{
		ID:        profile.User.ID,
		Email:     profile.User.Email,
		Role:      profile.User.Role,
		CreatedAt: profile.User.CreatedAt,
		Count: dto.ProfileCounts{
			OrganizedEvents: profile.OrganizedEvents,
			RSVPs:           profile.RSVPs,
		},
	}})
}
