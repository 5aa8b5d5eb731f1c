package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-service/internal/domain"
)

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	id := domain.Identity{UserID: "u1", Email: "ada@example.com", Role: domain.RoleOrganizer}

	token, exp, err := tm.Issue(id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id.UserID, claims.UserID)
	assert.Equal(t, id.Email, claims.Email)
	assert.Equal(t, id.Role, claims.Role)
	assert.Equal(t, "u1", claims.Subject)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	tm.now = func() time.Time { return issuedAt }

	token, _, err := tm.Issue(domain.Identity{UserID: "u1", Role: domain.RoleAttendee})
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	token, _, err := NewTokenManager("one", time.Hour).Issue(domain.Identity{UserID: "u1"})
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	for _, token := range []string{"", "abc", strings.Repeat("x.", 3)} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "secret"))
	assert.ErrorIs(t, ComparePassword(hash, "other"), ErrPasswordMismatch)
	assert.ErrorIs(t, ComparePassword("", "secret"), ErrPasswordMismatch)

	BurnCompare("anything")
}
