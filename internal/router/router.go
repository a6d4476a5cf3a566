// Package router defines how HTTP routes are registered for the API.
// Registration is split by audience: RegisterRoutes for infrastructure,
// RegisterAuth for session/account endpoints, RegisterPublic for guest
// browsing and RegisterOwner for authenticated mutations.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Ajeyanth/SafeServeBackend/internal/handler"
	"github.com/Ajeyanth/SafeServeBackend/internal/middleware"
	"github.com/Ajeyanth/SafeServeBackend/internal/model"
)

// RegisterRoutes registers routes that do not require authentication and
// are not part of the resource API. Currently only the health check used
// by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers session and account endpoints. Unauthenticated
// operations live under /v1/auth; the owner registration shortcut lives on
// the restaurants root per the public API contract; /v1/users/me requires
// a valid token of either role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotating refresh: exchanges the refresh token for a new pair.
	g.POST("/refresh", a.Refresh)
	// Non-rotating: issues a fresh access token only.
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	// Owner registration is open: it creates the OWNER account and its
	// default restaurant in one transaction.
	e.POST("/v1/restaurants/register-owner", a.RegisterOwner)

	me := e.Group("/v1/users",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOwner, model.RoleCustomer),
	)
	me.GET("/me", a.Me)
	me.PATCH("/me", a.UpdateMe)
}
