package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-service/internal/domain"
	"github.com/spec-kit/event-service/internal/testutil"
	apperrors "github.com/spec-kit/event-service/pkg/util/errorutil"
)

func TestSignupCreatesUnverifiedAttendee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.auth.Signup(ctx, " ada@example.com ", "secret")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, domain.RoleAttendee, res.User.Role)
	assert.False(t, res.User.Verified)
	assert.NotEqual(t, "secret", res.User.PasswordHash)

	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Text, "mock-token")
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Signup(ctx, "ada@example.com", "one")
	require.NoError(t, err)

	_, err = f.auth.Signup(ctx, "ada@example.com", "two")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)
}

func TestSignupRequiresFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Signup(context.Background(), "", "secret")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestLoginFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Signup(ctx, "ada@example.com", "secret")
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, "ada@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)

	_, err = f.auth.Login(ctx, "nobody@example.com", "secret")
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)

	_, err = f.auth.Login(ctx, "ada@example.com", "secret")
	de := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
	assert.Equal(t, true, de.Details["requiresVerification"])
	assert.Equal(t, domain.RoleAttendee, de.Details["userRole"])

	_, err = f.auth.Verify(ctx, "ada@example.com", "mock-token")
	require.NoError(t, err)

	res, err := f.auth.Login(ctx, "ada@example.com", "secret")
	require.NoError(t, err)
	claims, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleAttendee, claims.Role)
}

func TestVerifyTransitionsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Signup(ctx, "ada@example.com", "secret")
	require.NoError(t, err)

	_, err = f.auth.Verify(ctx, "ada@example.com", "guess")
	de := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "Invalid verification token", de.Message)

	user, err := f.auth.Verify(ctx, "ada@example.com", "mock-token")
	require.NoError(t, err)
	assert.True(t, user.Verified)

	_, err = f.auth.Verify(ctx, "ada@example.com", "mock-token")
	de = apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "User already verified", de.Message)

	_, err = f.auth.Verify(ctx, "ghost@example.com", "mock-token")
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}

func TestProfileCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	org := testutil.CreateUser(t, f.store, "org@example.com", domain.RoleOrganizer, true)
	event := testutil.CreateEvent(t, f.store, org.ID, "Meetup", true)
	testutil.CreateEvent(t, f.store, org.ID, "Workshop", false)
	_, _, err := f.rsvps.Respond(ctx, identity(org), event.ID, domain.RSVPGoing)
	require.NoError(t, err)

	profile, err := f.auth.Profile(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.OrganizedEvents)
	assert.Equal(t, 1, profile.RSVPs)
}
