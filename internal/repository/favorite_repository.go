package repository

import (
	"context"

	"github.com/spec-kit/event-service/internal/domain"
)

// FavoriteRepository manages bookmarked events.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.Favorite) error
	Delete(ctx context.Context, userID, eventID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
}

type favoriteRepository struct {
	db DBTX
}

// NewFavoriteRepository constructs repository.
func NewFavoriteRepository(db DBTX) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Create returns ErrDuplicate when the pair is already stored.
func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	const query = `
        INSERT INTO favorites (user_id, event_id)
        VALUES ($1, $2)
        RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, favorite.UserID, favorite.EventID).
		Scan(&favorite.ID, &favorite.CreatedAt)
	return translate(err)
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, eventID string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE user_id=$1 AND event_id=$2`, userID, eventID)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	const query = `
        SELECT f.id, f.user_id, f.event_id, f.created_at,
               e.title, e.description, e.date, e.location, e.organizer_id, e.approved,
               e.created_at, e.updated_at, u.email, u.role
        FROM favorites f
        JOIN events e ON e.id = f.event_id
        JOIN users u ON u.id = e.organizer_id
        WHERE f.user_id=$1
        ORDER BY f.created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.Favorite{}
	for rows.Next() {
		var (
			fav       domain.Favorite
			event     domain.Event
			organizer domain.UserSummary
		)
		if err := rows.Scan(
			&fav.ID,
			&fav.UserID,
			&fav.EventID,
			&fav.CreatedAt,
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
		event.ID = fav.EventID
		organizer.ID = event.OrganizerID
		event.Organizer = &organizer
		fav.Event = &event
		result = append(result, fav)
	}
	return result, rows.Err()
}
