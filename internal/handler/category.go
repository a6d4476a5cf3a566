// Category endpoints. Listing requires authentication (any role); create
// and delete resolve the owned restaurant first, so callers cannot tell a
// foreign restaurant from a missing one.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ajeyanth/SafeServeBackend/internal/model"
	"github.com/Ajeyanth/SafeServeBackend/internal/repository"
	"github.com/Ajeyanth/SafeServeBackend/internal/validation"
)

// ListCategories handles GET /v1/restaurants/:restaurant_id/categories for
// authenticated callers of either role.
func (h *OwnerHandler) ListCategories(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, err := pathID(c, "restaurant_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Restaurants.GetByID(ctx, restaurantID); err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	cats, err := h.Categories.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]categoryPart, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryPart{ID: cat.ID, Name: cat.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateCategory handles POST /v1/restaurants/:restaurant_id/categories.
// The restaurant is resolved with the id+owner predicate before anything
// is written; the category's restaurant reference is fixed here forever.
func (h *OwnerHandler) CreateCategory(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, err := pathID(c, "restaurant_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	if _, err := h.Restaurants.GetByIDAndOwner(ctx, restaurantID, ownerID); err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	fe := validation.New()
	name := fe.Require("name", body.Name)
	if !fe.Empty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": fe})
	}

	cat := &model.Category{RestaurantID: restaurantID, Name: name}
	if err := h.Categories.Create(ctx, cat); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create category"})
	}
	_ = h.Restaurants.Touch(ctx, restaurantID)
	return c.JSON(http.StatusCreated, categoryPart{ID: cat.ID, Name: cat.Name})
}

// DeleteCategory handles DELETE /v1/restaurants/:restaurant_id/categories/:id.
// Menu items referencing the category survive with a cleared category.
func (h *OwnerHandler) DeleteCategory(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, err := pathID(c, "restaurant_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	if _, err := h.Restaurants.GetByIDAndOwner(ctx, restaurantID, ownerID); err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Categories.DeleteByIDAndRestaurant(ctx, id, restaurantID); err != nil {
		if err == repository.ErrCategoryNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	_ = h.Restaurants.Touch(ctx, restaurantID)
	return c.NoContent(http.StatusNoContent)
}
