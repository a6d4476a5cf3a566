// This file defines handlers for the public browsing API. Guests can list
// restaurants and read menus without authentication; responses embed menu
// items (with nested categories) so a menu page renders from one request.
// Owner ids appear in restaurant bodies as the `owner` field, matching the
// stored reference, but nothing here allows any mutation.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ajeyanth/SafeServeBackend/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
type PublicHandler struct {
	Restaurants *repository.RestaurantRepo
	MenuItems   *repository.MenuItemRepo
}

func NewPublicHandler(r *repository.RestaurantRepo, m *repository.MenuItemRepo) *PublicHandler {
	return &PublicHandler{Restaurants: r, MenuItems: m}
}

// ListRestaurants handles GET /v1/restaurants. Every restaurant is
// serialized with its full menu_items list, mirroring the detail shape.
func (h *PublicHandler) ListRestaurants(c echo.Context) error {
	ctx := c.Request().Context()
	restaurants, err := h.Restaurants.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]restaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		items, err := h.MenuItems.ListByRestaurant(ctx, r.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		out = append(out, newRestaurantResponse(r, items))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetRestaurant handles GET /v1/restaurants/:id for any caller.
func (h *PublicHandler) GetRestaurant(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	r, err := h.Restaurants.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.MenuItems.ListByRestaurant(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, newRestaurantResponse(r, items))
}

// ListMenuItems handles GET /v1/restaurants/:restaurant_id/menu for any
// caller. The restaurant must exist; the list may be empty.
func (h *PublicHandler) ListMenuItems(c echo.Context) error {
	ctx := c.Request().Context()
	restaurantID, err := pathID(c, "restaurant_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.Restaurants.GetByID(ctx, restaurantID); err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.MenuItems.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": newMenuItemResponses(items)})
}

// GetMenuItem handles GET /v1/restaurants/:restaurant_id/menu/:id for any
// caller. The item id is scoped to the restaurant in the path, so an item
// belonging to another restaurant is not found here.
func (h *PublicHandler) GetMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	restaurantID, err := pathID(c, "restaurant_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	item, err := h.MenuItems.GetByIDAndRestaurant(ctx, id, restaurantID)
	if err != nil {
		if err == repository.ErrMenuItemNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, newMenuItemResponse(item))
}
