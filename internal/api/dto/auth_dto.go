package dto

import (
	"time"

	"github.com/spec-kit/event-service/internal/domain"
)

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (SignupRequest) InvalidMessage() string { return "Email and password are required" }

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (LoginRequest) InvalidMessage() string { return "Email and password are required" }

// VerifyRequest payload for account verification.
type VerifyRequest struct {
	Email             string `json:"email" validate:"required"`
	VerificationToken string `json:"verificationToken" validate:"required"`
}

func (VerifyRequest) InvalidMessage() string { return "Email and verification token are required" }

// UserResponse is the public view of an account.
type UserResponse struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	IsVerified bool        `json:"isVerified"`
}

// SignupResponse is returned by POST /api/auth/signup.
type SignupResponse struct {
	Message              string       `json:"message"`
	User                 UserResponse `json:"user"`
	RequiresVerification bool         `json:"requiresVerification"`
	EmailPreview         string       `json:"emailPreview,omitempty"`
}

// LoginResponse is returned by POST /api/auth/login.
type LoginResponse struct {
	Message   string       `json:"message"`
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// VerifyResponse is returned by POST /api/auth/verify.
type VerifyResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// ProfileResponse is returned by GET /api/auth/profile.
type ProfileResponse struct {
	User ProfileUser `json:"user"`
}

// ProfileUser is the caller with activity counts.
type ProfileUser struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	Role      domain.Role   `json:"role"`
	CreatedAt time.Time     `json:"createdAt"`
	Count     ProfileCounts `json:"_count"`
}

// ProfileCounts summarizes the caller's activity.
type ProfileCounts struct {
	OrganizedEvents int `json:"organizedEvents"`
	RSVPs           int `json:"rsvps"`
}

// NewUserResponse maps an account.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Role: u.Role, IsVerified: u.Verified}
}
