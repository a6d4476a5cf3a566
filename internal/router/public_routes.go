package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Ajeyanth/SafeServeBackend/internal/handler"
)

// RegisterPublic registers unauthenticated browse endpoints. Guests can
// list restaurants and read menus; every response is already sanitized by
// the handlers. The optional middleware (typically the Redis response
// cache) is applied to these read-only routes and nowhere else.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/v1/restaurants", p.ListRestaurants, mw...)
	e.GET("/v1/restaurants/:id", p.GetRestaurant, mw...)
	e.GET("/v1/restaurants/:restaurant_id/menu", p.ListMenuItems, mw...)
	e.GET("/v1/restaurants/:restaurant_id/menu/:id", p.GetMenuItem, mw...)
}
