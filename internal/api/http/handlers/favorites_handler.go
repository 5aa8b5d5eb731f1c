package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-service/internal/api/dto"
	"github.com/spec-kit/event-service/internal/service"
)

// FavoritesHandler exposes favorite endpoints.
type FavoritesHandler struct {
	favorites *service.FavoriteService
}

// NewFavoritesHandler constructs handler.
func NewFavoritesHandler(favorites *service.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// Add handles POST /api/events/:id/favorite.
func (h *FavoritesHandler) Add(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}
	favorite, err := h.favorites.Add(c.UserContext(), p.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.FavoriteEnvelope{
		Message:  "Event added to favorites",
		Favorite: dto.NewFavoriteResponse(favorite),
	})
}

// Remove handles DELETE /api/events/:id/favorite.
func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}
	if err := h.favorites.Remove(c.UserContext(), p.ID, id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Event removed from favorites"})
}

// ListMine handles GET /api/events/user/favorites.
func (h *FavoritesHandler) ListMine(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	favorites, err := h.favorites.List(c.UserContext(), p.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFavoriteListResponse(favorites))
}
