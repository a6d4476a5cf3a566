// This file implements the authenticated restaurant endpoints. Creation is
// open to any authenticated caller, who becomes the owner; update and
// delete resolve the restaurant through the id+owner predicate, so a
// restaurant owned by someone else produces the same 404 as one that does
// not exist.
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ajeyanth/SafeServeBackend/internal/model"
	"github.com/Ajeyanth/SafeServeBackend/internal/queue"
	"github.com/Ajeyanth/SafeServeBackend/internal/repository"
	"github.com/Ajeyanth/SafeServeBackend/internal/validation"
)

// MenuEventPublisher publishes menu change notifications. A nil publisher
// disables events; publish failures never fail the originating request.
type MenuEventPublisher interface {
	PublishMenuChanged(ctx context.Context, ev queue.MenuChangedEvent) error
}

// OwnerHandler bundles repositories for authenticated mutation endpoints.
type OwnerHandler struct {
	Restaurants *repository.RestaurantRepo
	Categories  *repository.CategoryRepo
	MenuItems   *repository.MenuItemRepo
	Events      MenuEventPublisher
}

// NewOwnerHandler constructs an OwnerHandler and panics if a repository is
// missing. Events may be nil.
func NewOwnerHandler(r *repository.RestaurantRepo, cat *repository.CategoryRepo, m *repository.MenuItemRepo, ev MenuEventPublisher) *OwnerHandler {
	if r == nil || cat == nil || m == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{Restaurants: r, Categories: cat, MenuItems: m, Events: ev}
}

type restaurantReq struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	CuisineType *string `json:"cuisine_type"`
}

// CreateRestaurant handles POST /v1/restaurants. The authenticated caller
// becomes the owner; ownership never transfers afterwards.
func (h *OwnerHandler) CreateRestaurant(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body restaurantReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	fe := validation.New()
	name := ""
	if body.Name != nil {
		name = *body.Name
	}
	name = fe.Require("name", name)
	if !fe.Empty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": fe})
	}

	rest := &model.Restaurant{OwnerID: ownerID, Name: name}
	if body.Location != nil {
		rest.Location = *body.Location
	}
	if body.CuisineType != nil {
		rest.CuisineType = *body.CuisineType
	}
	if err := h.Restaurants.Create(c.Request().Context(), rest); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create restaurant"})
	}
	return c.JSON(http.StatusCreated, newRestaurantResponse(rest, nil))
}

// UpdateRestaurant handles PUT/PATCH /v1/restaurants/:id. PUT requires the
// name field; PATCH applies only the provided fields. The owner reference
// is never writable.
func (h *OwnerHandler) UpdateRestaurant(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body restaurantReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	current, err := h.Restaurants.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	fe := validation.New()
	name := current.Name
	if body.Name != nil {
		name = fe.Require("name", *body.Name)
	} else if c.Request().Method == http.MethodPut {
		fe.Add("name", "this field is required")
	}
	if !fe.Empty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": fe})
	}

	location := current.Location
	if body.Location != nil {
		location = *body.Location
	}
	cuisine := current.CuisineType
	if body.CuisineType != nil {
		cuisine = *body.CuisineType
	}

	updated, err := h.Restaurants.Update(ctx, id, ownerID, name, location, cuisine)
	if err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	items, err := h.MenuItems.ListByRestaurant(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, newRestaurantResponse(updated, items))
}

// DeleteRestaurant handles DELETE /v1/restaurants/:id. The repository
// removes the restaurant's categories and menu items in the same
// transaction. 204 on success; a non-owned or missing id is 404.
func (h *OwnerHandler) DeleteRestaurant(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Restaurants.DeleteByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		if err == repository.ErrRestaurantNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
