package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-service/internal/domain"
)

// RSVPRepository manages per-user attendance answers.
type RSVPRepository interface {
	Upsert(ctx context.Context, rsvp *domain.RSVP) (domain.UpsertOutcome, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.RSVP, error)
	ListByEvents(ctx context.Context, eventIDs []string) ([]domain.RSVP, error)
	ListByUser(ctx context.Context, userID string) ([]domain.RSVP, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type rsvpRepository struct {
	db DBTX
}

// NewRSVPRepository constructs repository.
func NewRSVPRepository(db DBTX) RSVPRepository {
	return &rsvpRepository{db: db}
}

// Upsert inserts the (user, event) answer or overwrites its status. The unique
// constraint on (user_id, event_id) keeps one row per pair under concurrent calls;
// xmax is zero only for a freshly inserted tuple.
func (r *rsvpRepository) Upsert(ctx context.Context, rsvp *domain.RSVP) (domain.UpsertOutcome, error) {
	const query = `
        INSERT INTO rsvps (user_id, event_id, status)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, event_id) DO UPDATE SET
            status = EXCLUDED.status,
            updated_at = NOW()
        RETURNING id, created_at, updated_at, (xmax = 0) AS inserted`

	var inserted bool
	if err := r.db.QueryRow(ctx, query, rsvp.UserID, rsvp.EventID, rsvp.Status).Scan(
		&rsvp.ID,
		&rsvp.CreatedAt,
		&rsvp.UpdatedAt,
		&inserted,
	); err != nil {
		return 0, translate(err)
	}
	if inserted {
		return domain.Created, nil
	}
	return domain.Updated, nil
}

func (r *rsvpRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.RSVP, error) {
	const query = `
        SELECT r.id, r.user_id, r.event_id, r.status, r.created_at, r.updated_at,
               u.email, e.title
        FROM rsvps r
        JOIN users u ON u.id = r.user_id
        JOIN events e ON e.id = r.event_id
        WHERE r.event_id=$1
        ORDER BY r.created_at DESC`
	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return scanRSVPs(rows)
}

// ListByEvents loads the RSVPs of several events in one round trip.
func (r *rsvpRepository) ListByEvents(ctx context.Context, eventIDs []string) ([]domain.RSVP, error) {
	if len(eventIDs) == 0 {
		return []domain.RSVP{}, nil
	}
	const query = `
        SELECT r.id, r.user_id, r.event_id, r.status, r.created_at, r.updated_at,
               u.email, e.title
        FROM rsvps r
        JOIN users u ON u.id = r.user_id
        JOIN events e ON e.id = r.event_id
        WHERE r.event_id = ANY($1::uuid[])
        ORDER BY r.created_at DESC`
	rows, err := r.db.Query(ctx, query, eventIDs)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return scanRSVPs(rows)
}

func (r *rsvpRepository) ListByUser(ctx context.Context, userID string) ([]domain.RSVP, error) {
	const query = `
        SELECT r.id, r.user_id, r.event_id, r.status, r.created_at, r.updated_at,
               u.email, e.title
        FROM rsvps r
        JOIN users u ON u.id = r.user_id
        JOIN events e ON e.id = r.event_id
        WHERE r.user_id=$1
        ORDER BY r.created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return scanRSVPs(rows)
}

func (r *rsvpRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rsvps WHERE user_id=$1`, userID).Scan(&count)
	return count, translate(err)
}

func scanRSVPs(rows pgx.Rows) ([]domain.RSVP, error) {
	result := []domain.RSVP{}
	for rows.Next() {
		var (
			rsvp  domain.RSVP
			user  domain.UserSummary
			event domain.EventSummary
		)
		if err := rows.Scan(
			&rsvp.ID,
			&rsvp.UserID,
			&rsvp.EventID,
			&rsvp.Status,
			&rsvp.CreatedAt,
			&rsvp.UpdatedAt,
			&user.Email,
			&event.Title,
		); err != nil {
			return nil, err
		}
		user.ID = rsvp.UserID
		event.ID = rsvp.EventID
		rsvp.User = &user
		rsvp.Event = &event
		result = append(result, rsvp)
	}
	return result, rows.Err()
}
