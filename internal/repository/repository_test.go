package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-service/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23505"}), ErrDuplicate)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23503"}), ErrNotFound)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "22P02"}), ErrNotFound)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}

func TestUserRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("ada@example.com", "hash", domain.RoleAttendee, false).
		WillReturnRows(mock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("u1", now, now))

	user := &domain.User{Email: "ada@example.com", PasswordHash: "hash", Role: domain.RoleAttendee}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, "u1", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("ada@example.com", "hash", domain.RoleAttendee, false).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &domain.User{Email: "ada@example.com", PasswordHash: "hash", Role: domain.RoleAttendee})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=\\$1").
		WithArgs("ada@example.com").
		WillReturnRows(mock.NewRows([]string{"id", "email", "password_hash", "role", "verified", "created_at", "updated_at"}).
			AddRow("u1", "ada@example.com", "hash", domain.RoleOrganizer, true, now, now))

	user, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOrganizer, user.Role)
	assert.True(t, user.Verified)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=\\$1").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryRejectsUnknownRole(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=\\$1").
		WithArgs("u1").
		WillReturnRows(mock.NewRows([]string{"id", "email", "password_hash", "role", "verified", "created_at", "updated_at"}).
			AddRow("u1", "ada@example.com", "hash", domain.Role("SUPERUSER"), true, now, now))

	_, err := repo.GetByID(context.Background(), "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "SUPERUSER")
}

func TestEventRepositoryList(t *testing.T) {
	mock := newMock(t)
	repo := NewEventRepository(mock)
	now := time.Now()

	mock.ExpectQuery("FROM events e JOIN users u").
		WithArgs(true, pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{
			"id", "title", "description", "date", "location", "organizer_id", "approved",
			"created_at", "updated_at", "email", "role",
		}).AddRow("e1", "Meetup", "Talks", now, "Library", "u1", true, now, now, "org@example.com", domain.RoleOrganizer))

	list, err := repo.List(context.Background(), EventFilter{ApprovedOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "org@example.com", list[0].Organizer.Email)
	assert.Equal(t, "u1", list[0].Organizer.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryDeleteMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewEventRepository(mock)

	mock.ExpectExec("DELETE FROM events").
		WithArgs("e1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "e1"), ErrNotFound)
}

func TestEventRepositoryApprove(t *testing.T) {
	mock := newMock(t)
	repo := NewEventRepository(mock)
	now := time.Now()

	mock.ExpectExec("UPDATE events SET approved=TRUE").
		WithArgs("e1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("WHERE e.id=\\$1").
		WithArgs("e1").
		WillReturnRows(mock.NewRows([]string{
			"id", "title", "description", "date", "location", "organizer_id", "approved",
			"created_at", "updated_at", "email", "role",
		}).AddRow("e1", "Meetup", "Talks", now, "Library", "u1", true, now, now, "org@example.com", domain.RoleOrganizer))

	event, err := repo.Approve(context.Background(), "e1")
	require.NoError(t, err)
	assert.True(t, event.Approved)

	mock.ExpectExec("UPDATE events SET approved=TRUE").
		WithArgs("e2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	_, err = repo.Approve(context.Background(), "e2")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRSVPRepositoryUpsertOutcome(t *testing.T) {
	mock := newMock(t)
	repo := NewRSVPRepository(mock)
	created := time.Now()
	updated := created.Add(time.Minute)

	mock.ExpectQuery("ON CONFLICT \\(user_id, event_id\\) DO UPDATE").
		WithArgs("u1", "e1", domain.RSVPGoing).
		WillReturnRows(mock.NewRows([]string{"id", "created_at", "updated_at", "inserted"}).AddRow("r1", created, created, true))
	mock.ExpectQuery("ON CONFLICT \\(user_id, event_id\\) DO UPDATE").
		WithArgs("u1", "e1", domain.RSVPMaybe).
		WillReturnRows(mock.NewRows([]string{"id", "created_at", "updated_at", "inserted"}).AddRow("r1", created, updated, false))

	first := &domain.RSVP{UserID: "u1", EventID: "e1", Status: domain.RSVPGoing}
	outcome, err := repo.Upsert(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, domain.Created, outcome)

	second := &domain.RSVP{UserID: "u1", EventID: "e1", Status: domain.RSVPMaybe}
	outcome, err = repo.Upsert(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, domain.Updated, outcome)
	assert.Equal(t, first.ID, second.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRSVPRepositoryUpsertUnknownEvent(t *testing.T) {
	mock := newMock(t)
	repo := NewRSVPRepository(mock)

	mock.ExpectQuery("INSERT INTO rsvps").
		WithArgs("u1", "missing", domain.RSVPGoing).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.Upsert(context.Background(), &domain.RSVP{UserID: "u1", EventID: "missing", Status: domain.RSVPGoing})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRSVPRepositoryListByEventsSkipsEmpty(t *testing.T) {
	mock := newMock(t)
	repo := NewRSVPRepository(mock)

	list, err := repo.ListByEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRSVPRepositoryListByUser(t *testing.T) {
	mock := newMock(t)
	repo := NewRSVPRepository(mock)
	now := time.Now()

	mock.ExpectQuery("WHERE r.user_id=\\$1").
		WithArgs("u1").
		WillReturnRows(mock.NewRows([]string{"id", "user_id", "event_id", "status", "created_at", "updated_at", "email", "title"}).
			AddRow("r1", "u1", "e1", domain.RSVPNotGoing, now, now, "ada@example.com", "Meetup"))

	list, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Meetup", list[0].Event.Title)
	assert.Equal(t, "ada@example.com", list[0].User.Email)
}

func TestFavoriteRepository(t *testing.T) {
	mock := newMock(t)
	repo := NewFavoriteRepository(mock)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO favorites").
		WithArgs("u1", "e1").
		WillReturnRows(mock.NewRows([]string{"id", "created_at"}).AddRow("f1", now))
	mock.ExpectQuery("INSERT INTO favorites").
		WithArgs("u1", "e1").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectExec("DELETE FROM favorites").
		WithArgs("u1", "e1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	fav := &domain.Favorite{UserID: "u1", EventID: "e1"}
	require.NoError(t, repo.Create(context.Background(), fav))
	assert.Equal(t, "f1", fav.ID)

	assert.ErrorIs(t, repo.Create(context.Background(), &domain.Favorite{UserID: "u1", EventID: "e1"}), ErrDuplicate)
	assert.ErrorIs(t, repo.Delete(context.Background(), "u1", "e1"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryListByOrganizer(t *testing.T) {
	mock := newMock(t)
	repo := NewEventRepository(mock)
	organizerID := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

	mock.ExpectQuery("e.organizer_id = \\$2").
		WithArgs(false, &organizerID).
		WillReturnRows(mock.NewRows([]string{
			"id", "title", "description", "date", "location", "organizer_id", "approved",
			"created_at", "updated_at", "email", "role",
		}))

	list, err := repo.List(context.Background(), EventFilter{OrganizerID: &organizerID})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}
