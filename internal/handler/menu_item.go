// Menu item write endpoints. Every mutation resolves the owned restaurant
// through the id+owner predicate first. The earlier revision of this API
// let anonymous callers update and delete items; that hole was closed so
// item writes carry the same ownership rule as every sibling endpoint
// (see DESIGN.md).
//
// The cross-entity rule lives here: a referenced category must belong to
// the restaurant in the path. The lookup itself is restaurant-scoped, so
// a category from another restaurant is indistinguishable from a missing
// one and both yield a field-scoped category_id error.
package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ajeyanth/SafeServeBackend/internal/model"
	"github.com/Ajeyanth/SafeServeBackend/internal/queue"
	"github.com/Ajeyanth/SafeServeBackend/internal/repository"
	"github.com/Ajeyanth/SafeServeBackend/internal/validation"
)

type menuItemReq struct {
	Name        *string `json:"name"`
	Ingredients *string `json:"ingredients"`
	Allergens   *string `json:"allergens"`
	// Raw so that "category_id": null (clear) can be told apart from the
	// key being absent (leave unchanged on PATCH).
	CategoryID json.RawMessage `json:"category_id"`
}

// categoryRef is the decoded tri-state of the write-only category_id field.
type categoryRef struct {
	present bool
	clear   bool
	id      uint64
}

func decodeCategoryRef(raw json.RawMessage, fe validation.FieldErrors) categoryRef {
	if len(raw) == 0 {
		return categoryRef{}
	}
	if string(raw) == "null" {
		return categoryRef{present: true, clear: true}
	}
	var id uint64
	if err := json.Unmarshal(raw, &id); err != nil {
		fe.Add("category_id", "must be a category id or null")
		return categoryRef{}
	}
	return categoryRef{present: true, id: id}
}

// resolveCategory enforces the cross-entity rule for a write against the
// restaurant in the path. Returns the value to store.
func (h *OwnerHandler) resolveCategory(c echo.Context, restaurantID uint64, ref categoryRef, fe validation.FieldErrors) sql.NullInt64 {
	if !ref.present || ref.clear {
		return sql.NullInt64{}
	}
	_, err := h.Categories.GetByIDAndRestaurant(c.Request().Context(), ref.id, restaurantID)
	if err != nil {
		if err == repository.ErrCategoryNotFound {
			fe.Add("category_id", "Category does not belong to this restaurant.")
		} else {
			fe.Add("category_id", "could not verify category")
		}
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(ref.id), Valid: true}
}

func (h *OwnerHandler) publishMenuChanged(c echo.Context, item *model.MenuItem, action string) {
	if h.Events == nil {
		return
	}
	ev := queue.MenuChangedEvent{
		RestaurantID: item.RestaurantID,
		MenuItemID:   item.ID,
		ItemName:     item.Name,
		Action:       action,
		ChangedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	// Best effort: the publisher logs its own failures.
	_ = h.Events.PublishMenuChanged(c.Request().Context(), ev)
}

// CreateMenuItem handles POST /v1/restaurants/:restaurant_id/menu.
func (h *OwnerHandler) CreateMenuItem(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, err := pathID(c, "restaurant_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body menuItemReq
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
	var name, ingredients string
	if body.Name != nil {
		name = *body.Name
	}
	if body.Ingredients != nil {
		ingredients = *body.Ingredients
	}
	name = fe.Require("name", name)
	ingredients = fe.Require("ingredients", ingredients)
	ref := decodeCategoryRef(body.CategoryID, fe)
	catID := h.resolveCategory(c, restaurantID, ref, fe)
	if !fe.Empty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": fe})
	}

	item := &model.MenuItem{
		RestaurantID: restaurantID,
		Name:         name,
		Ingredients:  ingredients,
		CategoryID:   catID,
	}
	if body.Allergens != nil {
		item.Allergens = *body.Allergens
	}
	if err := h.MenuItems.Create(ctx, item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create menu item"})
	}
	_ = h.Restaurants.Touch(ctx, restaurantID)
	h.publishMenuChanged(c, item, "created")
	return c.JSON(http.StatusCreated, newMenuItemResponse(item))
}

// UpdateMenuItem handles PUT/PATCH /v1/restaurants/:restaurant_id/menu/:id.
// PUT requires name and ingredients; PATCH applies only provided fields.
// A null category_id clears the category either way.
func (h *OwnerHandler) UpdateMenuItem(c echo.Context) error {
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
	var body menuItemReq
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
	item, err := h.MenuItems.GetByIDAndRestaurant(ctx, id, restaurantID)
	if err != nil {
		if err == repository.ErrMenuItemNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	fe := validation.New()
	isPut := c.Request().Method == http.MethodPut
	if body.Name != nil {
		item.Name = fe.Require("name", *body.Name)
	} else if isPut {
		fe.Add("name", "this field is required")
	}
	if body.Ingredients != nil {
		item.Ingredients = fe.Require("ingredients", *body.Ingredients)
	} else if isPut {
		fe.Add("ingredients", "this field is required")
	}
	if body.Allergens != nil {
		item.Allergens = *body.Allergens
	}
	ref := decodeCategoryRef(body.CategoryID, fe)
	if ref.present {
		item.CategoryID = h.resolveCategory(c, restaurantID, ref, fe)
	} else if isPut {
		// PUT replaces the whole resource; an omitted category clears it.
		item.CategoryID = sql.NullInt64{}
	}
	if !fe.Empty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": fe})
	}

	if err := h.MenuItems.Update(ctx, item); err != nil {
		if err == repository.ErrMenuItemNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	_ = h.Restaurants.Touch(ctx, restaurantID)
	h.publishMenuChanged(c, item, "updated")
	return c.JSON(http.StatusOK, newMenuItemResponse(item))
}

// DeleteMenuItem handles DELETE /v1/restaurants/:restaurant_id/menu/:id.
func (h *OwnerHandler) DeleteMenuItem(c echo.Context) error {
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
	item, err := h.MenuItems.GetByIDAndRestaurant(ctx, id, restaurantID)
	if err != nil {
		if err == repository.ErrMenuItemNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.MenuItems.DeleteByIDAndRestaurant(ctx, id, restaurantID); err != nil {
		if err == repository.ErrMenuItemNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	_ = h.Restaurants.Touch(ctx, restaurantID)
	h.publishMenuChanged(c, item, "deleted")
	return c.NoContent(http.StatusNoContent)
}
