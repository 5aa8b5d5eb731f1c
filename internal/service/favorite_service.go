package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/spec-kit/event-service/internal/domain"
	"github.com/spec-kit/event-service/internal/repository"
	apperrors "github.com/spec-kit/event-service/pkg/util/errorutil"
)

// FavoriteService manages bookmarked events.
type FavoriteService struct {
	events    repository.EventRepository
	favorites repository.FavoriteRepository
}

// NewFavoriteService constructs the service.
func NewFavoriteService(events repository.EventRepository, favorites repository.FavoriteRepository) *FavoriteService {
	return &FavoriteService{events: events, favorites: favorites}
}

// Add bookmarks an event. A second Add for the same pair is a conflict.
func (s *FavoriteService) Add(ctx context.Context, userID, eventID string) (*domain.Favorite, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, repoError(err, "Event")
	}

	favorite := &domain.Favorite{UserID: userID, EventID: eventID}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.New(apperrors.CodeConflict, "Event already in favorites", http.StatusBadRequest)
		}
		return nil, repoError(err, "Event")
	}
	favorite.Event = event
	return favorite, nil
}

// Remove drops a bookmark.
func (s *FavoriteService) Remove(ctx context.Context, userID, eventID string) error {
	if err := s.favorites.Delete(ctx, userID, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.New(apperrors.CodeNotFound, "Event not in favorites", http.StatusNotFound)
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

// List returns the caller's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return favorites, nil
}
