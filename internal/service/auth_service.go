package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/event-service/internal/auth"
	"github.com/spec-kit/event-service/internal/config"
	"github.com/spec-kit/event-service/internal/domain"
	"github.com/spec-kit/event-service/internal/repository"
	apperrors "github.com/spec-kit/event-service/pkg/util/errorutil"
)

// VerificationMailer delivers the signup verification message.
type VerificationMailer interface {
	SendVerification(ctx context.Context, to, token string) (previewURL string, err error)
}

// AuthService coordinates signup, login and verification flows.
type AuthService struct {
	users             repository.UserRepository
	events            repository.EventRepository
	rsvps             repository.RSVPRepository
	tokens            *auth.TokenManager
	mailer            VerificationMailer
	logger            *zap.Logger
	bcryptCost        int
	verificationToken string
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	EventRepo repository.EventRepository
	RSVPRepo  repository.RSVPRepository
	Tokens    *auth.TokenManager
	Mailer    VerificationMailer
	Logger    *zap.Logger
}

// SignupResult is the outcome of a successful signup.
type SignupResult struct {
	User         *domain.User
	EmailPreview string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Profile is an account with activity counts.
type Profile struct {
	User            *domain.User
	OrganizedEvents int
	RSVPs           int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:             deps.UserRepo,
		events:            deps.EventRepo,
		rsvps:             deps.RSVPRepo,
		tokens:            deps.Tokens,
		mailer:            deps.Mailer,
		logger:            logger,
		bcryptCost:        cfg.BcryptCost,
		verificationToken: cfg.VerificationToken,
	}
}

// Signup creates an unverified attendee and sends the verification mail.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*SignupResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("Email and password are required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("User already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAttendee,
		Verified:     false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent signup can win the unique index after the lookup above.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("User already exists", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	result := &SignupResult{User: user}
	if s.mailer != nil {
		preview, err := s.mailer.SendVerification(ctx, user.Email, s.verificationToken)
		if err != nil {
			s.logger.Warn("verification email failed", zap.String("user_id", user.ID), zap.Error(err))
		}
		result.EmailPreview = preview
	}
	return result, nil
}

// Login checks credentials and issues a session token for verified accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("Email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			auth.BurnCompare(password)
			return nil, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("Invalid credentials")
	}
	if !user.Verified {
		return nil, apperrors.New(apperrors.CodeForbidden,
			"Account not verified. Please check your email for verification.",
			http.StatusForbidden).
			With("requiresVerification", true).
			With("userRole", user.Role)
	}

	token, exp, err := s.tokens.Issue(domain.Identity{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// Verify marks the account verified when the presented token matches.
func (s *AuthService) Verify(ctx context.Context, email, token string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || token == "" {
		return nil, apperrors.NewValidationError("Email and verification token are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, repoError(err, "User")
	}
	if user.Verified {
		return nil, apperrors.NewValidationError("User already verified", nil)
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.verificationToken)) != 1 {
		return nil, apperrors.NewValidationError("Invalid verification token", nil)
	}

	updated, err := s.users.MarkVerified(ctx, user.ID)
	if err != nil {
		return nil, repoError(err, "User")
	}
	return updated, nil
}

// Profile returns the account with its organized event and RSVP counts.
func (s *AuthService) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User")
	}
	organized, err := s.events.CountByOrganizer(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	rsvps, err := s.rsvps.CountByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Profile{User: user, OrganizedEvents: organized, RSVPs: rsvps}, nil
}
