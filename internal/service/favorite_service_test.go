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

func TestFavoriteToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	org := testutil.CreateUser(t, f.store, "org@example.com", domain.RoleOrganizer, true)
	att := testutil.CreateUser(t, f.store, "att@example.com", domain.RoleAttendee, true)
	ev := testutil.CreateEvent(t, f.store, org.ID, "Meetup", false)

	fav, err := f.favorites.Add(ctx, att.ID, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meetup", fav.Event.Title)

	_, err = f.favorites.Add(ctx, att.ID, ev.ID)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeConflict, de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "Event already in favorites", de.Message)

	require.NoError(t, f.favorites.Remove(ctx, att.ID, ev.ID))

	err = f.favorites.Remove(ctx, att.ID, ev.ID)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)

	_, err = f.favorites.Add(ctx, att.ID, ev.ID)
	require.NoError(t, err)

	list, err := f.favorites.List(ctx, att.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "org@example.com", list[0].Event.Organizer.Email)
}

func TestFavoriteUnknownEvent(t *testing.T) {
	f := newFixture(t)
	att := testutil.CreateUser(t, f.store, "att@example.com", domain.RoleAttendee, true)

	_, err := f.favorites.Add(context.Background(), att.ID, "missing")
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}
