package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/Ajeyanth/SafeServeBackend/internal/handler"
	"github.com/Ajeyanth/SafeServeBackend/internal/middleware"
	"github.com/Ajeyanth/SafeServeBackend/internal/model"
)

// RegisterOwner registers the authenticated mutation endpoints under /v1.
// All routes require a valid JWT. Both roles are admitted at the group
// level because any authenticated user may create a restaurant (becoming
// its owner); per-resource ownership is enforced inside the handlers via
// the id+owner lookup, which masks foreign resources as not found.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, qr *handler.QRHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOwner, model.RoleCustomer),
	)

	// ---- Restaurants ----
	g.POST("/restaurants", o.CreateRestaurant)
	g.PUT("/restaurants/:id", o.UpdateRestaurant)
	g.PATCH("/restaurants/:id", o.UpdateRestaurant) // partial updates
	g.DELETE("/restaurants/:id", o.DeleteRestaurant)

	// ---- Categories ----
	// Reads require authentication too; listings are not public.
	g.GET("/restaurants/:restaurant_id/categories", o.ListCategories)
	g.POST("/restaurants/:restaurant_id/categories", o.CreateCategory)
	g.DELETE("/restaurants/:restaurant_id/categories/:id", o.DeleteCategory)

	// ---- Menu items ----
	// NOTE: Reading menus is handled by the public browse API; only
	// writes live here.
	g.POST("/restaurants/:restaurant_id/menu", o.CreateMenuItem)
	g.PUT("/restaurants/:restaurant_id/menu/:id", o.UpdateMenuItem)
	g.PATCH("/restaurants/:restaurant_id/menu/:id", o.UpdateMenuItem)
	g.DELETE("/restaurants/:restaurant_id/menu/:id", o.DeleteMenuItem)

	// ---- QR ----
	g.GET("/restaurants/:restaurant_id/generate-qr", qr.GenerateQR)
}
