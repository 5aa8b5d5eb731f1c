package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-service/internal/domain"
	"github.com/spec-kit/event-service/internal/testutil"
	apperrors "github.com/spec-kit/event-service/pkg/util/errorutil"
)

func sampleInput(title string) EventInput {
	return EventInput{
		Title:       title,
		Description: "An evening of talks",
		Date:        time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
		Location:    "Library",
	}
}

func TestCreateApprovalDependsOnRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, f.store, "admin@example.com", domain.RoleAdmin, true)
	org := testutil.CreateUser(t, f.store, "org@example.com", domain.RoleOrganizer, true)
	att := testutil.CreateUser(t, f.store, "att@example.com", domain.RoleAttendee, true)

	byAdmin, err := f.events.Create(ctx, identity(admin), sampleInput("Admin event"))
	require.NoError(t, err)
	assert.True(t, byAdmin.Approved)

	for _, u := range []*domain.User{org, att} {
		ev, err := f.events.Create(ctx, identity(u), sampleInput("Submitted"))
		require.NoError(t, err)
		assert.False(t, ev.Approved, u.Role)
		assert.Equal(t, u.ID, ev.OrganizerID)
	}
}

func TestCreateRequiresAllFields(t *testing.T) {
	f := newFixture(t)
	org := testutil.CreateUser(t, f.store, "org@example.com", domain.RoleOrganizer, true)

	input := sampleInput("Meetup")
	input.Location = "  "
	_, err := f.events.Create(context.Background(), identity(org), input)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestAdminCreateBroadcastsOnce(t *testing.T) {
	f := newFixture(t)
	admin := testutil.CreateUser(t, f.store, "admin@example.com", domain.RoleAdmin, true)
	first, second := f.listen(t), f.listen(t)

	ev, err := f.events.Create(context.Background(), identity(admin), sampleInput("Launch party"))
	require.NoError(t, err)

	for _, l := range []*listener{first, second} {
		msgs := l.messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "event_created", msgs[0]["type"])
		data := msgs[0]["data"].(map[string]any)
		assert.Equal(t, ev.ID, data["id"])
		assert.Equal(t, "Launch party", data["title"])
		assert.Equal(t, true, data["approved"])
	}
}

func TestListHidesPendingUnlessAdminAsksForAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, f.store, "admin@example.com", domain.RoleAdmin, true)
	org := testutil.CreateUser(t, f.store, "org@example.com", domain.RoleOrganizer, true)
	testutil.CreateEvent(t, f.store, org.ID, "Approved", true)
	testutil.CreateEvent(t, f.store, org.ID, "Pending", false)

	anon, err := f.events.List(ctx, nil, true)
	require.NoError(t, err)
	assert.Len(t, anon, 1)

	orgView := identity(org)
	asOrganizer, err := f.events.List(ctx, &orgView, true)
	require.NoError(t, err)
	assert.Len(t, asOrganizer, 1)

	adminView := identity(admin)
	adminDefault, err := f.events.List(ctx, &adminView, false)
	require.NoError(t, err)
	assert.Len(t, adminDefault, 1)

	adminAll, err := f.events.List(ctx, &adminView, true)
	require.NoError(t, err)
	require.Len(t, adminAll, 2)
	assert.Equal(t, "Pending", adminAll[0].Title)

	all, err := f.events.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListAttachesRSVPs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	org := testutil.CreateUser(t, f.store, "org@example.com", domain.RoleOrganizer, true)
	att := testutil.CreateUser(t, f.store, "att@example.com", domain.RoleAttendee, true)
	ev := testutil.CreateEvent(t, f.store, org.ID, "Meetup", true)
	_, _, err := f.rsvps.Respond(ctx, identity(att), ev.ID, domain.RSVPGoing)
	require.NoError(t, err)

	list, err := f.events.List(ctx, nil, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].RSVPs, 1)
	assert.Equal(t, "att@example.com", list[0].RSVPs[0].User.Email)

	got, err := f.events.Get(ctx, ev.ID)
	require.NoError(t, err)
	assert.Len(t, got.RSVPs, 1)
	assert.Equal(t, "org@example.com", got.Organizer.Email)

	_, err = f.events.Get(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}

func TestUpdateOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, f.store, "admin@example.com", domain.RoleAdmin, true)
	owner := testutil.CreateUser(t, f.store, "owner@example.com", domain.RoleOrganizer, true)
	other := testutil.CreateUser(t, f.store, "other@example.com", domain.RoleOrganizer, true)
	att := testutil.CreateUser(t, f.store, "att@example.com", domain.RoleAttendee, true)
	ev := testutil.CreateEvent(t, f.store, owner.ID, "Meetup", true)

	title := "Renamed"
	patch := domain.EventPatch{Title: &title}

	_, err := f.events.Update(ctx, identity(other), ev.ID, patch)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)

	_, err = f.events.Update(ctx, identity(att), ev.ID, patch)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)

	updated, err := f.events.Update(ctx, identity(owner), ev.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Town Hall", updated.Location)

	location := "Park"
	updated, err = f.events.Update(ctx, identity(admin), ev.ID, domain.EventPatch{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Park", updated.Location)

	_, err = f.events.Update(ctx, identity(admin), "missing", patch)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}

func TestDeleteCascadesAndBroadcasts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.store, "owner@example.com", domain.RoleOrganizer, true)
	other := testutil.CreateUser(t, f.store, "other@example.com", domain.RoleOrganizer, true)
	att := testutil.CreateUser(t, f.store, "att@example.com", domain.RoleAttendee, true)
	ev := testutil.CreateEvent(t, f.store, owner.ID, "Meetup", true)

	_, _, err := f.rsvps.Respond(ctx, identity(att), ev.ID, domain.RSVPGoing)
	require.NoError(t, err)
	_, err = f.favorites.Add(ctx, att.ID, ev.ID)
	require.NoError(t, err)

	err = f.events.Delete(ctx, identity(other), ev.ID)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)

	l := f.listen(t)
	require.NoError(t, f.events.Delete(ctx, identity(owner), ev.ID))

	assert.Equal(t, 0, f.store.RSVPCount())
	assert.Equal(t, 0, f.store.FavoriteCount())

	msgs := l.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "event_deleted", msgs[0]["type"])
	assert.Equal(t, ev.ID, msgs[0]["data"].(map[string]any)["id"])

	err = f.events.Delete(ctx, identity(owner), ev.ID)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}

func TestApproveIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, f.store, "admin@example.com", domain.RoleAdmin, true)
	org := testutil.CreateUser(t, f.store, "org@example.com", domain.RoleOrganizer, true)
	ev := testutil.CreateEvent(t, f.store, org.ID, "Meetup", false)
	l := f.listen(t)

	_, err := f.events.Approve(ctx, identity(org), ev.ID)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)

	for i := 0; i < 2; i++ {
		approved, err := f.events.Approve(ctx, identity(admin), ev.ID)
		require.NoError(t, err)
		assert.True(t, approved.Approved)
	}

	msgs := l.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "event_approved", msgs[0]["type"])

	_, err = f.events.Approve(ctx, identity(admin), "missing")
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}

func TestListOrganizedIncludesPendingAndSkipsOthers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	org := testutil.CreateUser(t, f.store, "org@example.com", domain.RoleOrganizer, true)
	other := testutil.CreateUser(t, f.store, "other@example.com", domain.RoleOrganizer, true)
	testutil.CreateEvent(t, f.store, org.ID, "Approved", true)
	testutil.CreateEvent(t, f.store, org.ID, "Pending", false)
	testutil.CreateEvent(t, f.store, other.ID, "Elsewhere", true)

	list, err := f.events.ListOrganized(ctx, identity(org))
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, ev := range list {
		assert.Equal(t, org.ID, ev.OrganizerID)
	}
	assert.Equal(t, "Pending", list[0].Title)
}
