package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-service/internal/domain"
)

// EventFilter narrows event listings.
type EventFilter struct {
	ApprovedOnly bool
	OrganizerID  *string
}

// EventRepository encapsulates event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	Approve(ctx context.Context, id string) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter EventFilter) ([]domain.Event, error)
	CountByOrganizer(ctx context.Context, organizerID string) (int, error)
}

type eventRepository struct {
	db DBTX
}

// NewEventRepository instantiates repository.
func NewEventRepository(db DBTX) EventRepository {
	return &eventRepository{db: db}
}

const eventSelect = `
        SELECT e.id, e.title, e.description, e.date, e.location, e.organizer_id, e.approved,
               e.created_at, e.updated_at, u.email, u.role
        FROM events e
        JOIN users u ON u.id = e.organizer_id`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (title, description, date, location, organizer_id, approved)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.OrganizerID,
		event.Approved,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	return translate(err)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
        UPDATE events SET title=$1, description=$2, date=$3, location=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.ID,
	).Scan(&event.UpdatedAt)
	return translate(err)
}

func (r *eventRepository) Approve(ctx context.Context, id string) (*domain.Event, error) {
	const query = `UPDATE events SET approved=TRUE, updated_at=NOW() WHERE id=$1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return nil, translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the event; RSVPs and favorites go with it through ON DELETE CASCADE.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	rows, err := r.db.Query(ctx, eventSelect+` WHERE e.id=$1`, id)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrNotFound
	}
	return &events[0], nil
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]domain.Event, error) {
	query := eventSelect + ` WHERE ($1::boolean = FALSE OR e.approved = TRUE)
          AND ($2::uuid IS NULL OR e.organizer_id = $2)
        ORDER BY e.created_at DESC`
	rows, err := r.db.Query(ctx, query, filter.ApprovedOnly, filter.OrganizerID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *eventRepository) CountByOrganizer(ctx context.Context, organizerID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events WHERE organizer_id=$1`, organizerID).Scan(&count)
	return count, translate(err)
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	result := []domain.Event{}
	for rows.Next() {
		var (
			event     domain.Event
			organizer domain.UserSummary
		)
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Date,
			&event.Location,
			&event.OrganizerID,
			&event.Approved,
			&event.CreatedAt,
			&event.UpdatedAt,
			&organizer.Email,
			&organizer.Role,
		); err != nil {
			return nil, err
		}
		organizer.ID = event.OrganizerID
		event.Organizer = &organizer
		result = append(result, event)
	}
	return result, rows.Err()
}
